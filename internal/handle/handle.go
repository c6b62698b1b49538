/*
Package handle maps opaque integer handles to Go values.

Go pointers may not be kept by C code. Objects which are handed out across
the C boundary are therefore stored in a Table, and C holds a Handle instead.
Handles carry a generation tag: once a handle has been removed, it will never
resolve again, even if its slot is re-used for a new object.

A Handle is a uint64. The lower 32 bits denote a slot, the upper 32 bits the
generation of the slot at insertion time. Generations start at 1, so the zero
handle is never issued and may serve as a null value.

______________________________________________________________________

License

This project is provided under the terms of the UNLICENSE or
the 3-Clause BSD license denoted by the following SPDX identifier:

SPDX-License-Identifier: 'Unlicense' OR 'BSD-3-Clause'

You may use the project under the terms of either license.

Licenses are reproduced in the license file in the root folder of this module.

Copyright © 2021–26 Norbert Pillmayer <norbert@pillmayer.com>
*/
package handle

import (
	"fmt"
	"math"
	"sync"

	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces to jmorph.handle .
func tracer() tracing.Trace {
	return tracing.Select("jmorph.handle")
}

// Handle is an opaque reference to a value stored in a Table.
type Handle uint64

// Null is the handle which never refers to a value.
const Null Handle = 0

func makeHandle(slot int, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(slot)) //nolint:gosec
}

func (h Handle) slot() int {
	return int(uint32(h)) //nolint:gosec
}

func (h Handle) generation() uint32 {
	return uint32(h >> 32) //nolint:gosec
}

func (h Handle) String() string {
	if h == Null {
		return "handle(null)"
	}
	return fmt.Sprintf("handle(%d/%d)", h.slot(), h.generation())
}

type entry[T any] struct {
	value T
	gen   uint32
	used  bool
}

// Table stores values of type T under handles. It is safe for concurrent use.
type Table[T any] struct {
	mu      sync.RWMutex
	entries []entry[T]
	free    *arraystack.Stack // indices of unused slots
	count   int
}

// NewTable creates an empty table.
func NewTable[T any]() *Table[T] {
	return &Table[T]{free: arraystack.New()}
}

// Insert stores a value and returns a new handle for it.
func (t *Table[T]) Insert(value T) Handle {
	t.mu.Lock()
	defer t.mu.Unlock()
	var slot int
	if s, ok := t.free.Pop(); ok {
		slot = s.(int)
	} else {
		if uint64(len(t.entries)) >= math.MaxUint32 {
			panic("handle: table full")
		}
		slot = len(t.entries)
		t.entries = append(t.entries, entry[T]{})
	}
	e := &t.entries[slot]
	e.gen++
	if e.gen == 0 { // wrapped around, skip zero
		e.gen = 1
	}
	e.value, e.used = value, true
	t.count++
	h := makeHandle(slot, e.gen)
	tracer().Debugf("inserted %s", h)
	return h
}

// Get returns the value for a handle. ok is false for Null, for removed
// handles and for handles never issued by this table.
func (t *Table[T]) Get(h Handle) (value T, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if e := t.lookup(h); e != nil {
		return e.value, true
	}
	return value, false
}

// Remove deletes the value for a handle and returns it. Removing a handle
// which does not resolve does nothing and returns false.
func (t *Table[T]) Remove(h Handle) (value T, ok bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	e := t.lookup(h)
	if e == nil {
		tracer().Debugf("ignoring removal of stale or unknown %s", h)
		return value, false
	}
	value = e.value
	var zero T
	e.value, e.used = zero, false
	t.free.Push(h.slot())
	t.count--
	tracer().Debugf("removed %s", h)
	return value, true
}

// Len returns the number of values in the table.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.count
}

func (t *Table[T]) lookup(h Handle) *entry[T] {
	if h == Null {
		return nil
	}
	slot := h.slot()
	if slot >= len(t.entries) {
		return nil
	}
	e := &t.entries[slot]
	if !e.used || e.gen != h.generation() {
		return nil
	}
	return e
}
