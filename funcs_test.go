// Modifications copyright (c) Arista Networks, Inc. 2024
// Underlying
// Copyright 2014 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"bytes"
	"hash/maphash"
	"strings"
	"testing"
)

type abbrev string

func (a abbrev) String() string { return "<" + string(a) + ">" }

func TestString(t *testing.T) {
	m := New(bytes.Equal, maphash.Bytes,
		KeyElem[[]byte, struct{}]{[]byte("abc"), struct{}{}},
		KeyElem[[]byte, struct{}]{[]byte("def"), struct{}{}},
		KeyElem[[]byte, struct{}]{[]byte("ghi"), struct{}{}},
	)
	s := m.String()
	expected := "chainmap.Map[[100 101 102]:{} [103 104 105]:{} [97 98 99]:{}]"
	if expected != s {
		t.Errorf("Got: %q Expected: %q", s, expected)
	}

	s = StringFunc(m,
		func(b []byte) string { return string(b) },
		func(struct{}) string { return "✅" })
	expected = "chainmap.Map[abc:✅ def:✅ ghi:✅]"
	if s != expected {
		t.Errorf("Got: %q Expected: %q", s, expected)
	}

	a := New(Equals[abbrev], func(seed maphash.Seed, a abbrev) uint64 {
		return maphash.String(seed, string(a))
	},
		KeyElem[abbrev, abbrev]{"Street", "ST"},
		KeyElem[abbrev, abbrev]{"Avenue", "AVE"},
	)
	expected = "chainmap.Map[<Avenue>:<AVE> <Street>:<ST>]"
	if s := String(a); s != expected {
		t.Errorf("Got: %q Expected: %q", s, expected)
	}

	m.Clear()
	if s := m.String(); s != "chainmap.Map[]" {
		t.Errorf("Got: %q Expected: %q", s, "chainmap.Map[]")
	}
}

func TestEqual(t *testing.T) {
	m1 := New[int, int](intEqual, intHash)
	for i := 0; i < 100; i++ {
		m1.Set(i, i*i)
	}
	// Same pairs, different history, hash function and bucket layout.
	m2 := NewConfig[int, int](intEqual, IdentityHash[int],
		WithInitialBuckets(3), WithGrowthFactor(1.5))
	for i := 199; i >= 0; i-- {
		m2.Set(i, -1)
	}
	for i := 100; i < 200; i++ {
		m2.Delete(i)
	}
	for i := 0; i < 100; i++ {
		m2.Set(i, i*i)
	}
	if !Equal(m1, m2) || !Equal(m2, m1) {
		t.Fatal("maps with the same pairs are not equal")
	}

	m2.Set(50, 0)
	if Equal(m1, m2) || Equal(m2, m1) {
		t.Error("maps with a different elem are equal")
	}
	m2.Set(50, 2500)
	m2.Set(100, 0)
	if Equal(m1, m2) || Equal(m2, m1) {
		t.Error("maps of different sizes are equal")
	}
	m2.Delete(99)
	if Equal(m1, m2) || Equal(m2, m1) {
		t.Error("maps with different keys are equal")
	}

	if !Equal(m1, m1) {
		t.Error("map not equal to itself")
	}
	var nilMap *Map[int, int]
	if !Equal(nilMap, nilMap) {
		t.Error("nil map not equal to itself")
	}
	if Equal(m1, nilMap) || Equal(nilMap, m1) {
		t.Error("nil map equal to non-nil map")
	}
}

func TestEqualFunc(t *testing.T) {
	m1 := New(Equals[int], IntHash[int],
		KeyElem[int, string]{1, "One"},
		KeyElem[int, string]{2, "TWO"},
	)
	m2 := New(Equals[int], IntHash[int],
		KeyElem[int, string]{2, "two"},
		KeyElem[int, string]{1, "one"},
	)
	if Equal(m1, m2) {
		t.Error("maps with differently cased elems are equal with ==")
	}
	if !EqualFunc(m1, m2, strings.EqualFold) || !EqualFunc(m2, m1, strings.EqualFold) {
		t.Error("maps are not equal ignoring case")
	}
	expectPanic(t, "nil elem equal func", func() { EqualFunc(m1, m2, nil) })
}
