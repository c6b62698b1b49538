package main

/*
#include <stdlib.h>
#include "jmorph.h"
*/
import "C"

import (
	"unsafe"

	"github.com/npillmayer/jmorph"
	"github.com/npillmayer/jmorph/internal/boundary"
)

// Go test files cannot use cgo. The aliases and helpers below give tests
// access to the C types of the exported functions.
type (
	cHandle = C.jmorph_handle
	cMode   = C.jmorph_mode
	cSize   = C.size_t
	cToken  = C.jmorph_token
)

const nullHandle cHandle = 0

// newTokenArray allocates a zeroed array of n token pointers. The array has
// at least one slot, so an empty result is not mistaken for a failure.
// It returns nil if calloc fails.
func newTokenArray(n int) **C.jmorph_token {
	if n < 1 {
		n = 1
	}
	p := C.calloc(C.size_t(n), C.size_t(unsafe.Sizeof((*C.jmorph_token)(nil))))
	return (**C.jmorph_token)(p)
}

func tokenSlice(tokens **C.jmorph_token, n int) []*C.jmorph_token {
	if tokens == nil || n <= 0 {
		return nil
	}
	return unsafe.Slice(tokens, n)
}

// newToken copies a record to C memory. Absent fields become NULL.
// It returns nil if calloc fails.
func newToken(r boundary.Record) *C.jmorph_token {
	t := (*C.jmorph_token)(C.calloc(1, C.size_t(C.sizeof_jmorph_token)))
	if t == nil {
		return nil
	}
	t.surface = C.CString(r.Surface)
	t.reading = newField(r.Reading)
	t.dictionary_form = newField(r.DictionaryForm)
	t.normalized_form = newField(r.NormalizedForm)
	t.pos = newField(r.POS)
	t.begin = C.int32_t(r.Begin)
	t.end = C.int32_t(r.End)
	return t
}

func newField(f boundary.Field) *C.char {
	s, ok := f.Get()
	if !ok {
		return nil
	}
	return C.CString(s)
}

// recordOf copies a token back to Go.
func recordOf(t *C.jmorph_token) boundary.Record {
	r := boundary.Record{
		Reading:        fieldOf(t.reading),
		DictionaryForm: fieldOf(t.dictionary_form),
		NormalizedForm: fieldOf(t.normalized_form),
		POS:            fieldOf(t.pos),
		Begin:          int32(t.begin),
		End:            int32(t.end),
	}
	r.Surface = goString(t.surface)
	return r
}

func fieldOf(s *C.char) boundary.Field {
	if s == nil {
		return boundary.Absent
	}
	return boundary.Some(goString(s))
}

func goString(s *C.char) string {
	if s == nil {
		return ""
	}
	return C.GoString(s)
}

func cString(s string) *C.char {
	return C.CString(s)
}

func freeCString(s *C.char) {
	C.free(unsafe.Pointer(s))
}

func abiMode(m jmorph.ABIMode) cMode {
	return cMode(m)
}
