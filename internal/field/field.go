// Copyright (C) 2024 The Umash-Go Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

// Package field implements lazily-reduced arithmetic modulo 2^64-8, a small
// multiple (8x) of the Mersenne prime 2^61-1. Working in the larger modulus
// lets additions and multiplications stay inside a single uint64 without a
// conditional reduction on every operation; callers that need a canonical
// representative modulo 2^61-1 reduce once at the boundary (see Reduce).
package field

import "math/bits"

// Modulo is the Mersenne prime the hash's polynomial accumulator works over.
const Modulo = (uint64(1) << 61) - 1

// lazyModulo is 8 * Modulo == 2^64 - 8. Every value produced by AddFast,
// AddSlow and MulFast is congruent to its mathematical result modulo
// lazyModulo, and therefore also modulo Modulo.
const lazyModulo = ^uint64(0) - 7

// AddFast returns x+y mod 2^64-8, reduced just enough to fit in 64 bits: the
// result may exceed the canonical representative by as much as 8. It is the
// cheap primitive the rest of the package builds on.
func AddFast(x, y uint64) uint64 {
	sum := x + y
	if sum < x {
		// The true sum overflowed 64 bits by exactly 2^64; 2^64 = 8 mod
		// lazyModulo, so add 8 back in to stay congruent.
		sum += 8
		if sum < 8 {
			// Adding 8 wrapped again (both inputs near 2^64); the
			// second lost 2^64 is again worth 8.
			sum += 8
		}
	}
	return sum
}

// AddSlow returns x+y mod 2^64-8, guaranteed strictly less than 2^64-8.
// It costs an extra branch over AddFast and is used where the accumulator
// must re-enter a chain of AddFast calls bounded by that strict inequality.
func AddSlow(x, y uint64) uint64 {
	var fixup uint64
	sum := x + y
	if sum < x {
		fixup = 8
	}

	// sum+fixup is already < lazyModulo for almost all pseudorandom
	// inputs; only the narrow band [2^64-16, 2^64) needs a second pass.
	if sum < lazyModulo-8 {
		return sum + fixup
	}
	return addSlowPath(sum, fixup)
}

func addSlowPath(sum, fixup uint64) uint64 {
	if sum >= lazyModulo {
		sum += 8
	}
	// sum < lazyModulo now, so this cannot overflow.
	sum += fixup
	if sum >= lazyModulo {
		sum += 8
	}
	return sum
}

// MulFast returns x*y mod 2^64-8, reduced just enough to fit in 64 bits.
func MulFast(x, y uint64) uint64 {
	hi, lo := bits.Mul64(x, y)
	// 8*hi overflows 64 bits once hi >= 2^61; the overflow, hi>>61, counts
	// lost multiples of 2^64, each congruent to 8.
	return AddFast(AddFast(lo, hi<<3), (hi>>61)<<3)
}

// Reduce returns the canonical representative of x modulo the Mersenne
// prime 2^61-1, given x < 2^64-8.
func Reduce(x uint64) uint64 {
	r := (x & Modulo) + (x >> 61)
	if r >= Modulo {
		r -= Modulo
	}
	return r
}

// HornerDoubleUpdate absorbs two field elements x, y into accumulator acc
// using multipliers m0, m1: one step of Horner's rule that consumes two
// inputs per step, matching the two polynomial coefficients UMASH derives
// per key (a base multiplier and its pre-computed square). The outer AddSlow
// is load-bearing, not cosmetic: it re-establishes the strict bound AddFast
// relies on for the next call in the chain.
func HornerDoubleUpdate(acc, m0, m1, x, y uint64) uint64 {
	acc = AddFast(acc, x)
	return AddSlow(MulFast(m0, acc), MulFast(m1, y))
}
