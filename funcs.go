// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// String converts m to a string representation using fmt's default
// formatting of keys and elems.
func (m *Map[K, E]) String() string {
	return StringFunc(m,
		func(key K) string { return fmt.Sprint(key) },
		func(elem E) string { return fmt.Sprint(elem) },
	)
}

// String converts m to a string representation using K's and E's
// String functions.
func String[K fmt.Stringer, E fmt.Stringer](m *Map[K, E]) string {
	return StringFunc(m,
		func(key K) string { return key.String() },
		func(elem E) string { return elem.String() },
	)
}

// StringFunc converts m to a string representation with the help of
// strK and strE functions to stringify m's keys and elems. Pairs are
// sorted by their key's string.
func StringFunc[K any, E any](m *Map[K, E],
	strK func(key K) string,
	strE func(elem E) string) string {
	const prefix = "chainmap.Map["
	if m == nil || m.Len() == 0 {
		return prefix + "]"
	}
	pairs := make([]KeyElem[string, string], 0, m.Len())
	for it := m.Iter(); it.Next(); {
		pairs = append(pairs, KeyElem[string, string]{strK(it.Key()), strE(it.Elem())})
	}
	slices.SortFunc(pairs, func(a, b KeyElem[string, string]) bool { return a.Key < b.Key })

	var b strings.Builder
	b.WriteString(prefix)
	for i, p := range pairs {
		if i != 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p.Key)
		b.WriteByte(':')
		b.WriteString(p.Elem)
	}
	b.WriteByte(']')
	return b.String()
}

// Equal returns true if the same set of keys and elems are in m1 and
// m2. Elements are compared using ==.
func Equal[K any, E comparable](m1, m2 *Map[K, E]) bool {
	return EqualFunc(m1, m2, func(a, b E) bool { return a == b })
}

// EqualFunc returns true if the same set of keys and elems are in m1
// and m2. Elements are compared using eq. Keys of m1 are looked up in
// m2 with m2's hash and equal functions.
func EqualFunc[K, E any](m1, m2 *Map[K, E], eq func(E, E) bool) bool {
	if eq == nil {
		panic("nil elem equal func")
	}
	if m1 == m2 {
		return true
	}
	if m1 == nil || m2 == nil {
		return false
	}
	if m1.Len() != m2.Len() {
		return false
	}
	for it := m1.Iter(); it.Next(); {
		e2, ok := m2.Get(it.Key())
		if !ok || !eq(it.Elem(), e2) {
			return false
		}
	}
	return true
}

// CopyFunc returns a copy of m like [Map.Copy], with every key and
// elem replaced by the result of cloneK and cloneE. A nil function
// copies by assignment. cloneK must return a key equal to, and hashing
// like, its argument.
func CopyFunc[K, E any](m *Map[K, E], cloneK func(K) K, cloneE func(E) E) *Map[K, E] {
	c := m.Copy()
	if cloneK == nil && cloneE == nil {
		return c
	}
	for _, s := range c.buckets {
		for s != 0 {
			e := c.at(s)
			if cloneK != nil {
				e.key = cloneK(e.key)
			}
			if cloneE != nil {
				e.elem = cloneE(e.elem)
			}
			s = e.next
		}
	}
	return c
}
