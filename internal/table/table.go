// Package table implements an open addressing hash table for well
// distributed 128-bit keys, such as content hashes.
package table

import (
	"fmt"
	"iter"
)

// Key is a 128-bit table key.
type Key struct {
	Hi, Lo uint64
}

// jitterProbes is the number of probes that jump by key-derived offsets
// before falling back to triangular probing.
const jitterProbes = 8

type slot[V any] struct {
	key   Key
	value V
}

// Table maps Keys to fixed-size values. The zero value is not usable; build
// tables with New.
type Table[V any] struct {
	slots    []slot[V]
	n        int
	mask     int
	sizeLog2 uint8
	empty    Key
	zero     V
}

// New allocates a table with 1<<sizeLog2 slots. The empty key marks unused
// slots and can never be stored.
func New[V any](sizeLog2 uint8, empty Key, zero V) *Table[V] {
	if sizeLog2 < 1 {
		sizeLog2 = 1
	}
	size := 1 << sizeLog2
	slots := make([]slot[V], size)
	for i := range slots {
		slots[i] = slot[V]{key: empty, value: zero}
	}
	return &Table[V]{
		slots:    slots,
		mask:     size - 1,
		sizeLog2: sizeLog2,
		empty:    empty,
		zero:     zero,
	}
}

// Len returns the number of stored entries.
func (t *Table[V]) Len() int { return t.n }

// SizeLog2 returns log2 of the slot count.
func (t *Table[V]) SizeLog2() uint8 { return t.sizeLog2 }

// find returns the slot holding key, or the empty slot where it belongs.
func (t *Table[V]) find(key Key) (int, bool) {
	jitter := key.Lo>>24 | key.Hi<<40
	idx := int(key.Lo) & t.mask
	for probe := 1; ; probe++ {
		s := &t.slots[idx]
		if s.key == key {
			return idx, true
		}
		if s.key == t.empty {
			return idx, false
		}
		if probe <= jitterProbes {
			idx = (idx + int(jitter&0xff) + 1) & t.mask
			jitter >>= 8
			continue
		}
		idx = (idx + probe - jitterProbes) & t.mask
	}
}

// Get returns the value stored under key.
func (t *Table[V]) Get(key Key) (V, bool) {
	idx, ok := t.find(key)
	if !ok {
		return t.zero, false
	}
	return t.slots[idx].value, true
}

// Add inserts key or overwrites its value when already present.
func (t *Table[V]) Add(key Key, value V) {
	if key == t.empty {
		panic(fmt.Sprintf("table: cannot store the empty key %016x%016x", key.Hi, key.Lo))
	}
	idx, ok := t.find(key)
	if ok {
		t.slots[idx].value = value
		return
	}
	t.slots[idx] = slot[V]{key: key, value: value}
	t.n++
	if t.n >= len(t.slots)/2 {
		t.grow()
	}
}

func (t *Table[V]) grow() {
	next := New(t.sizeLog2+1, t.empty, t.zero)
	for _, s := range t.slots {
		if s.key != t.empty {
			next.Add(s.key, s.value)
		}
	}
	if next.n != t.n {
		panic(fmt.Sprintf("table: lost entries while growing (%d != %d)", next.n, t.n))
	}
	*t = *next
}

// All iterates over every stored entry in slot order.
func (t *Table[V]) All() iter.Seq2[Key, V] {
	return func(yield func(Key, V) bool) {
		for _, s := range t.slots {
			if s.key == t.empty {
				continue
			}
			if !yield(s.key, s.value) {
				return
			}
		}
	}
}
