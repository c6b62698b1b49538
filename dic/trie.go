package dic

import (
	"encoding/binary"
	"fmt"
)

// Trie is a frozen double-array trie over byte strings, operating on
// mapped storage.
//
//   - States are indices into an array of units {base, check}; the root is 0.
//   - Transition: t := base[s] + c; valid if check[t] == s; next state is t.
//   - c is byte+1 for key bytes; c == 0 is the terminal transition. A state
//     reached by the terminal transition is a leaf, its base holds the value.
//   - Unused units carry check == -1.
type Trie struct {
	units []byte
	n     int
}

const trieUnitSize = 8

func loadTrie(sec []byte) (Trie, error) {
	if len(sec)%trieUnitSize != 0 || len(sec) == 0 {
		return Trie{}, fmt.Errorf("%w: trie section has invalid size %d", ErrCorrupt, len(sec))
	}
	return Trie{units: sec, n: len(sec) / trieUnitSize}, nil
}

// Size returns the number of units of the trie.
func (t Trie) Size() int {
	return t.n
}

func (t Trie) base(s int) int32 {
	return int32(binary.LittleEndian.Uint32(t.units[s*trieUnitSize:])) //nolint:gosec
}

func (t Trie) check(s int) int32 {
	return int32(binary.LittleEndian.Uint32(t.units[s*trieUnitSize+4:])) //nolint:gosec
}

// child returns the state reached from s by code c, or -1.
func (t Trie) child(s int, c int) int {
	next := int(t.base(s)) + c
	if next <= 0 || next >= t.n || t.check(next) != int32(s) { //nolint:gosec
		return -1
	}
	return next
}

// CommonPrefixSearch finds all keys which are prefixes of key[from:]. For
// every key found, fn is called with the key's value and the end position of
// the key within key (exclusive). Keys are reported from shortest to longest.
func (t Trie) CommonPrefixSearch(key []byte, from int, fn func(value int32, end int)) {
	if t.n == 0 || from < 0 || from > len(key) {
		return
	}
	s := 0
	for i := from; ; i++ {
		if leaf := t.child(s, 0); leaf > 0 {
			fn(t.base(leaf), i)
		}
		if i >= len(key) {
			return
		}
		if s = t.child(s, int(key[i])+1); s < 0 {
			return
		}
	}
}

// Lookup finds the value for an exact key.
func (t Trie) Lookup(key []byte) (int32, bool) {
	s := 0
	for _, b := range key {
		if s = t.child(s, int(b)+1); s < 0 {
			return 0, false
		}
	}
	if leaf := t.child(s, 0); leaf > 0 {
		return t.base(leaf), true
	}
	return 0, false
}

// --- Construction -----------------------------------------------------

// trieBuilder creates the double-array from a sorted list of unique keys.
type trieBuilder struct {
	base      []int32
	check     []int32
	firstFree int
}

const freeUnit = -1

// buildTrie creates the units of a trie. keys have to be sorted (byte-wise)
// and unique. values[i] is the value for keys[i] and must not be negative.
func buildTrie(keys [][]byte, values []int32) ([]byte, error) {
	if len(keys) != len(values) {
		return nil, fmt.Errorf("dic: %d trie keys, but %d values", len(keys), len(values))
	}
	b := &trieBuilder{firstFree: 1}
	b.grow(256)
	b.check[0] = -2 // root is never free
	if len(keys) > 0 {
		if err := b.insert(0, keys, values, 0); err != nil {
			return nil, err
		}
	} else {
		b.base[0] = 1
	}
	units := make([]byte, 0, len(b.base)*trieUnitSize)
	for i := range b.base {
		units = appendI32(units, b.base[i])
		units = appendI32(units, b.check[i])
	}
	tracer().Debugf("trie: %d keys in %d units", len(keys), len(b.base))
	return units, nil
}

func (b *trieBuilder) grow(n int) {
	for len(b.base) < n {
		b.base = append(b.base, 0)
		b.check = append(b.check, freeUnit)
	}
}

// insert places the children of state parent. keys share the first depth
// bytes; they are sorted, so a key ending at depth comes first.
func (b *trieBuilder) insert(parent int, keys [][]byte, values []int32, depth int) error {
	type child struct {
		code     int
		from, to int // range of keys below this child
	}
	var children []child
	for i, key := range keys {
		code := 0
		if len(key) > depth {
			code = int(key[depth]) + 1
		} else if len(key) < depth || i > 0 {
			return fmt.Errorf("dic: trie keys not sorted or not unique: %q", key)
		}
		if n := len(children); n > 0 && children[n-1].code == code {
			children[n-1].to = i + 1
			continue
		}
		if n := len(children); n > 0 && children[n-1].code > code {
			return fmt.Errorf("dic: trie keys not sorted: %q", key)
		}
		children = append(children, child{code: code, from: i, to: i + 1})
	}
	base := b.findBase(children[0].code, func(bb int) bool {
		for _, c := range children {
			if b.check[bb+c.code] != freeUnit {
				return false
			}
		}
		return true
	}, children[len(children)-1].code)
	b.base[parent] = int32(base) //nolint:gosec
	for _, c := range children {
		b.check[base+c.code] = int32(parent) //nolint:gosec
	}
	for _, c := range children {
		s := base + c.code
		if c.code == 0 {
			if values[c.from] < 0 {
				return fmt.Errorf("dic: negative trie value for key %q", keys[c.from])
			}
			b.base[s] = values[c.from]
			continue
		}
		if err := b.insert(s, keys[c.from:c.to], values[c.from:c.to], depth+1); err != nil {
			return err
		}
	}
	return nil
}

// findBase searches for the smallest base ≥ 1 for which fits is true.
func (b *trieBuilder) findBase(lowCode int, fits func(int) bool, highCode int) int {
	for b.firstFree < len(b.check) && b.check[b.firstFree] != freeUnit {
		b.firstFree++
	}
	base := b.firstFree - lowCode
	if base < 1 {
		base = 1
	}
	for {
		b.grow(base + highCode + 1)
		if fits(base) {
			return base
		}
		base++
	}
}
