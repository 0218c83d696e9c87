// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chainmap provides the Map type, a hash table that resolves
// collisions by separate chaining. Like Go's built-in map it stores
// unique keys mapped to elems, with the additional requirement that
// users provide an equal and a hash function.
//
// The following requirements are the user's responsibility to follow:
//   - equal(a, b) => hash(a) == hash(b)
//   - equal(a, a) must be true for all values of a. Be careful around NaN
//     float values.
//   - If a key in a `Map` contains references -- such as pointers, maps,
//     or slices -- modifying the referenced data in a way that affects
//     the result of the equal or hash functions will result in undefined
//     behavior.
//
// A Map is not safe for concurrent use. Any Set, Update, successful
// Delete or Clear invalidates every Iterator created before it; using
// such an Iterator panics. An equal func or Update callback that
// modifies the map it is called from panics as well.
package chainmap

// The table is an array of buckets, each holding the head of a singly
// linked chain of entries whose hash reduces to that bucket's index
// (hash % len(buckets)). Entries are not individually allocated: they
// live in an arena slice and link to each other by slot number, see
// arena.go. Every entry caches its full hash so that growing the table
// only re-buckets entries, and so that lookups can skip the equal call
// for entries whose hash differs.
//
// Growth is lazy and collision gated. An insert grows the table only
// if the bucket it lands in is already occupied and the load factor
// has been reached. Inserts that land in empty buckets never pay for a
// rehash, at the cost of a somewhat higher effective load factor.

import (
	"fmt"
	"hash/maphash"
	"math"

	"github.com/aristanetworks/chainmap/internal/alloc"
)

const (
	// Ratio of entries to buckets at which a colliding insert grows the
	// table.
	defaultLoadFactor = 0.75
	// Factor by which the bucket array is scaled on growth. Must be > 1.
	defaultGrowthFactor = 2
	// Number of buckets allocated by the first insert into an empty
	// table.
	defaultInitialBuckets = 8
)

// Map implements a hashmap
type Map[K, E any] struct {
	count int // # live entries == size of map
	// generation is bumped by every mutation. Iterators compare it
	// against the value they captured to detect stale use.
	generation uint64
	// writing is set while a write is in progress, so that equal
	// funcs and Update callbacks cannot modify m underneath it.
	writing bool

	// buckets holds the slot of each chain's head entry, or 0 for an
	// empty bucket. May be nil if the map never held an entry or was
	// cleared.
	buckets []int
	// entries is the arena backing all chains. Freed slots are linked
	// through their next field starting at free.
	entries []entry[K, E]
	free    int

	seed maphash.Seed
	cfg  Config

	hash  func(maphash.Seed, K) uint64
	equal func(K, K) bool
}

// KeyElem contains a Key and Elem.
type KeyElem[K, E any] struct {
	Key  K
	Elem E
}

// Config holds the tuning parameters of a Map. It is populated through
// the With* options passed to NewConfig.
type Config struct {
	sizeHint       int
	loadFactor     float64
	growthFactor   float64
	initialBuckets int
	maxBuckets     int
}

func defaultConfig() Config {
	return Config{
		loadFactor:     defaultLoadFactor,
		growthFactor:   defaultGrowthFactor,
		initialBuckets: defaultInitialBuckets,
		maxBuckets:     alloc.MaxLen[int](),
	}
}

// WithPresize configures a new Map with enough buckets to hold
// sizeHint entries without growing.
func WithPresize(sizeHint int) func(*Config) {
	return func(c *Config) {
		c.sizeHint = sizeHint
	}
}

// WithLoadFactor sets the ratio of entries to buckets at which a
// colliding insert grows the table. It must be positive.
func WithLoadFactor(f float64) func(*Config) {
	return func(c *Config) {
		c.loadFactor = f
	}
}

// WithGrowthFactor sets the factor by which the bucket array is scaled
// on growth. It must be greater than 1.
func WithGrowthFactor(f float64) func(*Config) {
	return func(c *Config) {
		c.growthFactor = f
	}
}

// WithInitialBuckets sets the number of buckets allocated when an empty
// table first grows.
func WithInitialBuckets(n int) func(*Config) {
	return func(c *Config) {
		c.initialBuckets = n
	}
}

// WithMaxBuckets caps the size of the bucket array. Once a table has
// reached it, an insert that would need to grow it panics.
func WithMaxBuckets(n int) func(*Config) {
	return func(c *Config) {
		c.maxBuckets = n
	}
}

func (c *Config) validate() {
	switch {
	case !(c.loadFactor > 0) || math.IsInf(c.loadFactor, 1):
		panic(fmt.Sprintf("invalid load factor %v", c.loadFactor))
	case !(c.growthFactor > 1) || math.IsInf(c.growthFactor, 1):
		panic(fmt.Sprintf("invalid growth factor %v", c.growthFactor))
	case c.initialBuckets <= 0:
		panic(fmt.Sprintf("invalid initial bucket count %d", c.initialBuckets))
	case c.maxBuckets <= 0 || c.maxBuckets > alloc.MaxLen[int]():
		panic(fmt.Sprintf("invalid max bucket count %d", c.maxBuckets))
	}
}

// New instantiates a new Map initialized with any KeyElems passed.
// The equal func must return true for two values of K that are equal
// and false otherwise. The hash func should return a uniformly
// distributed hash value. If equal(a, b) then hash(a) == hash(b). The
// hash function is passed a [hash/maphash.Seed], this is meant to be
// used with functions and types in the [hash/maphash] package, though
// can be ignored.
func New[K, E any](
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64,
	kes ...KeyElem[K, E]) *Map[K, E] {

	m := NewHint[K, E](len(kes), equal, hash)
	for _, ke := range kes {
		m.Set(ke.Key, ke.Elem)
	}
	return m
}

// NewHint instantiates a new Map with a hint as to how many elements
// will be inserted. See [New] for discussion of the equal and hash
// arguments.
func NewHint[K, E any](
	hint int,
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64) *Map[K, E] {

	return NewConfig[K, E](equal, hash, WithPresize(hint))
}

// NewConfig instantiates a new Map tuned by options. See [New] for
// discussion of the equal and hash arguments.
func NewConfig[K, E any](
	equal func(a, b K) bool,
	hash func(maphash.Seed, K) uint64,
	options ...func(*Config)) *Map[K, E] {

	if equal == nil {
		panic("nil equal func")
	}
	if hash == nil {
		panic("nil hash func")
	}
	cfg := defaultConfig()
	for _, o := range options {
		o(&cfg)
	}
	cfg.validate()

	m := &Map[K, E]{seed: maphash.MakeSeed(), cfg: cfg, hash: hash, equal: equal}
	if cfg.sizeHint > 0 {
		nbuckets := 0
		for float64(nbuckets)*cfg.loadFactor < float64(cfg.sizeHint) {
			nbuckets = alloc.NextCap(nbuckets, cfg.initialBuckets, cfg.growthFactor,
				cfg.maxBuckets)
		}
		m.buckets = alloc.MakeSlice[int](nbuckets)
		m.entries = alloc.MakeSlice[entry[K, E]](cfg.sizeHint)[:0]
	}
	return m
}

// Len returns the count of occupied elements in m.
func (m *Map[K, E]) Len() int {
	if m == nil {
		panic("Len called on nil map")
	}
	return m.count
}

func (m *Map[K, E]) bucketIndex(hash uint64) int {
	return int(hash % uint64(len(m.buckets)))
}

// find returns the entry holding key, or nil.
func (m *Map[K, E]) find(hash uint64, key K) *entry[K, E] {
	if len(m.buckets) == 0 {
		return nil
	}
	for s := m.buckets[m.bucketIndex(hash)]; s != 0; {
		e := m.at(s)
		// Only call equal when the cached hash already matches.
		if e.hash == hash && m.equal(key, e.key) {
			return e
		}
		s = e.next
	}
	return nil
}

// Get returns the element associated with key and true if that key is
// in the Map, otherwise it returns the zero value of E and false.
func (m *Map[K, E]) Get(key K) (E, bool) {
	if m == nil {
		panic("Get called on nil map")
	}
	if e := m.find(m.hash(m.seed, key), key); e != nil {
		return e.elem, true
	}
	var zeroE E
	return zeroE, false
}

// Has reports whether key is in m.
func (m *Map[K, E]) Has(key K) bool {
	_, ok := m.Get(key)
	return ok
}

// Set associates key with elem in m. If key was already present its
// elem is replaced, and the previous elem and true are returned.
// Otherwise Set returns the zero value of E and false.
func (m *Map[K, E]) Set(key K, elem E) (E, bool) {
	if m == nil {
		// We have to panic here rather than initialize an empty map
		// because we need the user to pass in hash and equal
		// functions
		panic("Set called on nil map")
	}
	hash := m.hash(m.seed, key)
	// Start the write after calling m.hash, since m.hash may panic,
	// in which case we have not actually done a write.
	m.startWrite()
	m.generation++

	if e := m.find(hash, key); e != nil {
		old := e.elem
		e.elem = elem
		m.endWrite()
		return old, true
	}
	m.insert(hash, key, elem)
	m.endWrite()
	var zeroE E
	return zeroE, false
}

// Update calls fn with the elem associated with key, or the zero value
// of E if key is not in m, and stores the result under key. fn may read
// m but must not modify it; doing so panics.
func (m *Map[K, E]) Update(key K, fn func(E) E) {
	if m == nil {
		panic("Update called on nil map")
	}
	hash := m.hash(m.seed, key)
	m.startWrite()
	// fn is arbitrary code, release the write even if it panics.
	defer m.endWrite()
	m.generation++

	if e := m.find(hash, key); e != nil {
		e.elem = fn(e.elem)
		return
	}
	var zeroE E
	m.insert(hash, key, fn(zeroE))
}

func (m *Map[K, E]) startWrite() {
	if m.writing {
		panic("concurrent map writes")
	}
	m.writing = true
}

func (m *Map[K, E]) endWrite() {
	if !m.writing {
		panic("concurrent map writes")
	}
	m.writing = false
}

// insert pushes a new entry at the head of its chain, growing the
// table first if needed. key must not already be present.
func (m *Map[K, E]) insert(hash uint64, key K, elem E) {
	i := 0
	if len(m.buckets) != 0 {
		i = m.bucketIndex(hash)
	}
	if m.shouldGrow(i) {
		m.grow()
		i = m.bucketIndex(hash)
	}
	s := m.newEntry(hash, key, elem)
	m.at(s).next = m.buckets[i]
	m.buckets[i] = s
	m.count++
}

// shouldGrow reports whether inserting into bucket i must first grow
// the table.
func (m *Map[K, E]) shouldGrow(i int) bool {
	switch {
	case len(m.buckets) == 0:
		return true
	case m.buckets[i] == 0:
		// No collision, so don't grow even if we're over the load
		// factor.
		return false
	default:
		return float64(m.count) >= float64(len(m.buckets))*m.cfg.loadFactor
	}
}

// grow scales the bucket array up and moves every entry to the chain
// its cached hash selects in the new array.
func (m *Map[K, E]) grow() {
	if len(m.buckets) >= m.cfg.maxBuckets {
		panic(fmt.Sprintf("cannot grow map beyond %d buckets", m.cfg.maxBuckets))
	}
	newbuckets := alloc.MakeSlice[int](alloc.NextCap(len(m.buckets),
		m.cfg.initialBuckets, m.cfg.growthFactor, m.cfg.maxBuckets))
	n := uint64(len(newbuckets))
	for _, s := range m.buckets {
		for s != 0 {
			e := m.at(s)
			next := e.next
			i := e.hash % n
			e.next = newbuckets[i]
			newbuckets[i] = s
			s = next
		}
	}
	m.buckets = newbuckets
}

// Delete removes key and its associated elem from the map. It returns
// the removed elem and true, or the zero value of E and false if key
// was not present.
func (m *Map[K, E]) Delete(key K) (E, bool) {
	if m == nil {
		panic("Delete called on nil map")
	}
	var zeroE E
	if m.count == 0 {
		return zeroE, false
	}

	hash := m.hash(m.seed, key)
	m.startWrite()
	i := m.bucketIndex(hash)
	prev := 0
	for s := m.buckets[i]; s != 0; prev, s = s, m.at(s).next {
		e := m.at(s)
		if e.hash != hash || !m.equal(key, e.key) {
			continue
		}
		if prev == 0 {
			m.buckets[i] = e.next
		} else {
			m.at(prev).next = e.next
		}
		elem := e.elem
		m.freeEntry(s)
		m.count--
		m.generation++
		// Reset the hash seed to make it more difficult for attackers to
		// repeatedly trigger hash collisions. See golang/go#25237.
		if m.count == 0 {
			m.seed = maphash.MakeSeed()
		}
		m.endWrite()
		return elem, true
	}
	m.endWrite()
	return zeroE, false
}

// Clear deletes all keys from m and releases its buckets.
func (m *Map[K, E]) Clear() {
	if m == nil {
		panic("Clear called on nil map")
	}
	m.startWrite()
	m.generation++
	m.count = 0
	m.buckets = nil
	m.entries = nil
	m.free = 0
	m.seed = maphash.MakeSeed()
	m.endWrite()
}

// Copy returns a copy of m that shares no storage with it. Keys and
// elems are copied by assignment; use [CopyFunc] to also clone what
// they reference. The order in which the copy is iterated may differ
// from m.
func (m *Map[K, E]) Copy() *Map[K, E] {
	if m == nil {
		panic("Copy called on nil map")
	}
	c := *m
	c.writing = false
	c.buckets = alloc.Clone(m.buckets)
	c.entries = alloc.Clone(m.entries)
	return &c
}
