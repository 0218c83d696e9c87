// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import "golang.org/x/exp/rand"

// Iterator is instantiated by a call Iter(). It allows iterating over
// a Map. An Iterator is bound to the state of the Map at the time it
// was created: calling Next after the Map has been modified panics.
type Iterator[K, E any] struct {
	key  K
	elem E
	m    *Map[K, E]

	generation uint64
	start      int // bucket the walk started at
	visited    int // # of buckets whose chains have been entered
	cur        int // slot of the next entry to return, 0 if none
}

// Iter instantiates an Iterator to explore the elements of the Map.
// Ordering is undefined and is intentionally randomized.
func (m *Map[K, E]) Iter() *Iterator[K, E] {
	if m == nil {
		panic("Iter called on nil map")
	}
	it := &Iterator[K, E]{m: m, generation: m.generation}
	if n := len(m.buckets); n > 0 && m.count > 0 {
		it.start = int(rand.Uint64() % uint64(n))
	}
	return it
}

// Key returns the key at the iterator's current position. This is
// only valid after a call to Next() that returns true.
func (it *Iterator[K, E]) Key() K {
	return it.key
}

// Elem returns the element at the iterator's current position. This
// is only valid after a call to Next() that returns true.
func (it *Iterator[K, E]) Elem() E {
	return it.elem
}

// Next moves the iterator to the next element. Next returns false
// when the iterator is complete, and keeps returning false on
// subsequent calls.
func (it *Iterator[K, E]) Next() bool {
	m := it.m
	if it.generation != m.generation {
		panic("map modified during iteration")
	}
	for it.cur == 0 {
		if it.visited == len(m.buckets) || m.count == 0 {
			// end of iteration
			var (
				zeroK K
				zeroE E
			)
			it.key = zeroK
			it.elem = zeroE
			return false
		}
		it.cur = m.buckets[(it.start+it.visited)%len(m.buckets)]
		it.visited++
	}
	e := m.at(it.cur)
	it.key = e.key
	it.elem = e.elem
	it.cur = e.next
	return true
}
