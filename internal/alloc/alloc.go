// Copyright (c) 2024 Arista Networks, Inc.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package alloc provides checked, overflow-safe helpers for sizing and
// allocating the backing slices of the containers in this module.
// None of the helpers return errors: a size that cannot be represented
// is a programming error and panics.
package alloc

import (
	"fmt"
	"math"
	"math/bits"
	"unsafe"
)

// maxAlloc is the largest byte size we are willing to request for a
// single slice. It mirrors the runtime's own limit on 64-bit platforms
// and falls back to MaxInt on 32-bit ones.
const maxAlloc = 1<<47*(bits.UintSize/64) + math.MaxInt32*(1-bits.UintSize/64)

// Mul returns num*size, panicking if size is zero, either argument is
// negative, or the product overflows an int.
func Mul(num, size int) int {
	if size <= 0 {
		panic(fmt.Sprintf("alloc: invalid unit size %d", size))
	}
	if num < 0 {
		panic(fmt.Sprintf("alloc: negative count %d", num))
	}
	hi, lo := bits.Mul(uint(num), uint(size))
	if hi != 0 || lo > math.MaxInt {
		panic(fmt.Sprintf("alloc: size is too large: %d * %d", num, size))
	}
	return int(lo)
}

// MaxLen returns the largest slice length of T that MakeSlice accepts.
func MaxLen[T any]() int {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return math.MaxInt
	}
	return maxAlloc / size
}

// MakeSlice allocates a zeroed slice of n elements of T. It returns nil
// for n == 0 and panics if n is negative or n elements of T would exceed
// the allocation limit.
func MakeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	var zero T
	if size := int(unsafe.Sizeof(zero)); size != 0 {
		if Mul(n, size) > maxAlloc {
			panic(fmt.Sprintf("alloc: size is too large: %d * %d", n, size))
		}
	} else if n < 0 {
		panic(fmt.Sprintf("alloc: negative count %d", n))
	}
	return make([]T, n)
}

// Clone returns a copy of s with its own backing array. Unlike
// slices.Clone it preserves the capacity of s so that a cloned arena
// keeps its spare room.
func Clone[T any](s []T) []T {
	if s == nil {
		return nil
	}
	c := MakeSlice[T](cap(s))
	copy(c, s)
	return c[:len(s)]
}

// NextCap returns the capacity that follows cur in a growth sequence
// starting at initial and scaled by factor. The result is always
// greater than cur and saturates at max. NextCap panics if cur is
// already at or above max, since the sequence cannot advance.
func NextCap(cur, initial int, factor float64, max int) int {
	if cur >= max {
		panic(fmt.Sprintf("alloc: cannot grow beyond %d", max))
	}
	if cur == 0 {
		if initial > max {
			return max
		}
		return initial
	}
	if float64(cur) > float64(max)/factor {
		return max
	}
	next := int(math.Ceil(float64(cur) * factor))
	if next <= cur {
		next = cur + 1
	}
	if next > max {
		next = max
	}
	return next
}
