// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import "github.com/aristanetworks/chainmap/internal/alloc"

// entry is one key/elem pair on a collision chain. Entries live in the
// map's arena and refer to each other by slot: slot i is entries[i-1],
// and slot 0 terminates a chain.
type entry[K, E any] struct {
	hash uint64
	next int
	key  K
	elem E
}

// newEntry stores a pair in a free slot, reusing a freed one when
// available, and returns the slot.
func (m *Map[K, E]) newEntry(hash uint64, key K, elem E) int {
	if s := m.free; s != 0 {
		e := &m.entries[s-1]
		m.free = e.next
		*e = entry[K, E]{hash: hash, key: key, elem: elem}
		return s
	}
	if len(m.entries) == cap(m.entries) {
		grown := alloc.MakeSlice[entry[K, E]](
			alloc.NextCap(cap(m.entries), m.cfg.initialBuckets, m.cfg.growthFactor,
				alloc.MaxLen[entry[K, E]]()))
		copy(grown, m.entries)
		m.entries = grown[:len(m.entries)]
	}
	m.entries = append(m.entries, entry[K, E]{hash: hash, key: key, elem: elem})
	return len(m.entries)
}

// freeEntry returns slot s to the free list. The pair is zeroed in
// case it holds pointers.
func (m *Map[K, E]) freeEntry(s int) {
	m.entries[s-1] = entry[K, E]{next: m.free}
	m.free = s
}

// at returns the entry stored in slot s.
func (m *Map[K, E]) at(s int) *entry[K, E] {
	return &m.entries[s-1]
}
