// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build go1.23

package chainmap

import (
	"hash/maphash"
	"iter"
)

// All returns an iterator over key-value pairs from m. Like Iter, the
// returned sequence panics if m is modified while it is being ranged
// over, including from within the loop body.
func (m *Map[K, E]) All() iter.Seq2[K, E] {
	return func(yield func(K, E) bool) {
		for it := m.Iter(); it.Next(); {
			if !yield(it.Key(), it.Elem()) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in m.
func (m *Map[K, E]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		m.All()(func(k K, _ E) bool { return yield(k) })
	}
}

// Values returns an iterator over values in m.
func (m *Map[K, E]) Values() iter.Seq[E] {
	return func(yield func(E) bool) {
		m.All()(func(_ K, e E) bool { return yield(e) })
	}
}

// Insert sets every key-value pair from seq in m. Later pairs win over
// earlier ones with an equal key.
func (m *Map[K, E]) Insert(seq iter.Seq2[K, E]) {
	for k, e := range seq {
		m.Set(k, e)
	}
}

// Collect builds a new Map from the key-value pairs in seq. See [New]
// for discussion of the equal and hash arguments.
func Collect[K, E any](
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64,
	seq iter.Seq2[K, E]) *Map[K, E] {

	m := New[K, E](equal, hash)
	m.Insert(seq)
	return m
}
