// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chainmap

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/exp/constraints"
)

// This file contains ready-made hash and equal functions for common
// key types. maphash.String and maphash.Bytes from the standard
// library can be passed to New directly as well.

// Equals is an equal func for any comparable key type.
func Equals[K comparable](a, b K) bool {
	return a == b
}

// XXString hashes s with xxHash64. The seed is ignored, so hashes are
// stable across maps and processes.
func XXString(_ maphash.Seed, s string) uint64 {
	return xxhash.Sum64String(s)
}

// XXBytes hashes b with xxHash64. The seed is ignored, so hashes are
// stable across maps and processes.
func XXBytes(_ maphash.Seed, b []byte) uint64 {
	return xxhash.Sum64(b)
}

// IntHash hashes an integer key with the map's seed.
func IntHash[K constraints.Integer](seed maphash.Seed, k K) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(k))
	return maphash.Bytes(seed, buf[:])
}

// IdentityHash uses an integer key as its own hash. Sequential keys
// then land in distinct buckets, but keys sharing residues modulo the
// bucket count always collide.
func IdentityHash[K constraints.Integer](_ maphash.Seed, k K) uint64 {
	return uint64(k)
}
