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

// Package umash implements a fast, almost-universal 64-bit keyed string
// hash (the UMASH construction): a polynomial hash over the Mersenne field
// 2^61-1, fed by a PH almost-XOR-universal block compressor, dispatched
// across three size tiers to keep small-key latency low. It is not a
// cryptographic hash: given the key, collisions are findable. It is meant
// for hash tables, Bloom/Cuckoo filters, and sharding/sampling bucket
// selection.
//
// Sum64 and Fingerprint are pure: given prepared Params, a seed, and input
// bytes, they allocate nothing, mutate no shared state, and are safe to
// call concurrently from any number of goroutines against the same Params,
// as long as UnmarshalBinary is not running concurrently against it.
package umash

import "unsafe"

// tierObserved, when non-nil, is called with the name of the size tier a
// hash call dispatched to. It exists purely so tests can verify the tier
// boundaries of spec.md §8 without duplicating the boundary arithmetic;
// production callers never set it.
var tierObserved func(tier string)

// hash is the single entry point every size tier funnels through: which
// selects the polynomial key and noise-table slice (any nonzero value is
// normalized to 1, per spec.md §9's compatibility note).
func hash(params *Params, seed uint64, which int, data []byte) uint64 {
	if which != 0 {
		which = 1
	}
	shift := 0
	if which != 0 {
		shift = toeplitzShift
	}
	noise := params.noise[shift:]
	n := len(data)

	switch {
	case n <= 8:
		if tierObserved != nil {
			tierObserved("short")
		}
		return shortPath(noise, seed, data, n)
	case n <= 16:
		if tierObserved != nil {
			tierObserved("medium")
		}
		return mediumPath(params.poly[which], noise, seed, data, n)
	default:
		if tierObserved != nil {
			tierObserved("long")
		}
		return longPath(params.poly[which], noise, seed, data, n)
	}
}

// Sum64 hashes data under the given prepared Params and seed, using the
// first of the two polynomial keys (which=0 in spec.md §4.7's terms).
func Sum64(params *Params, seed uint64, data []byte) uint64 {
	return hash(params, seed, 0, data)
}

// SumString hashes a string with the same semantics as Sum64, without
// copying s into a new []byte.
func SumString(params *Params, seed uint64, s string) uint64 {
	return hash(params, seed, 0, stringToBytes(s))
}

// stringToBytes reinterprets s as a []byte without copying. The hash
// functions never write through the slice, so aliasing the string's
// immutable backing array is safe.
func stringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}
