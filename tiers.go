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

package umash

import (
	"encoding/binary"

	"github.com/dgryski/go-umash/internal/clmul"
	"github.com/dgryski/go-umash/internal/field"
)

// vecToU64 decodes up to 8 bytes of data into a single 64-bit value using a
// branch-minimal overlap scheme that never reads past [0, n), for any n in
// [0, 8] (spec.md §4.4, §5). For n < 4 every byte is read exactly once; for
// n in [5, 7] the two 4-byte loads overlap.
func vecToU64(data []byte, n int) uint64 {
	var lo, hi uint32

	if n >= 4 {
		lo = binary.LittleEndian.Uint32(data[0:4])
		hi = binary.LittleEndian.Uint32(data[n-4 : n])
	} else {
		if n&1 != 0 {
			lo = uint32(data[0])
		}
		if n&2 != 0 {
			hi = uint32(binary.LittleEndian.Uint16(data[n-2 : n]))
		}
	}

	// The addition mixes hi into lo's bits, compensating for SplitMix64's
	// known weakness in its low input bits.
	return (uint64(hi) << 32) | uint64(lo+hi)
}

// shortPath implements the n<=8 tier: decode, then a SplitMix64-style
// avalanche with the seed (XORed with the noise table's length-indexed
// word, which binds the input length in) injected partway through the mix
// (spec.md §4.4).
func shortPath(noise []uint64, seed uint64, data []byte, n int) uint64 {
	seed ^= noise[n]

	h := vecToU64(data, n)
	h ^= h >> 30
	h *= staffordMul1
	h = (h ^ seed) ^ (h >> 27)
	h *= staffordMul2
	h ^= h >> 31
	return h
}

// mediumPath implements the 9<=n<=16 tier: one PH-style lane compression of
// the first and last 8 bytes (which may overlap), folded through a single
// Horner double update (spec.md §4.4).
func mediumPath(pair polyPair, noise []uint64, seed uint64, data []byte, n int) uint64 {
	accLo := seed ^ uint64(n)
	var accHi uint64

	x := binary.LittleEndian.Uint64(data[0:8]) ^ noise[0]
	y := binary.LittleEndian.Uint64(data[n-8:n]) ^ noise[1]
	lane0, lane1 := clmul.Multiply(x, y)
	accLo ^= lane0
	accHi ^= lane1

	acc := field.HornerDoubleUpdate(0, pair.preSquared, pair.base, accLo, accHi)
	return finalize(acc)
}

// longPath implements the n>=17 tier: consume full 256-byte PH blocks,
// folding each into the polynomial accumulator via a Horner double update,
// then fold in the final partial block (spec.md §4.4).
func longPath(pair polyPair, noise []uint64, seed uint64, data []byte, n int) uint64 {
	var acc uint64

	tail := data
	for n > blockSize {
		lo, hi := phOneBlock(noise[:phParamCount], seed, tail[:blockSize])
		acc = field.HornerDoubleUpdate(acc, pair.preSquared, pair.base, lo, hi)
		tail = tail[blockSize:]
		n -= blockSize
	}

	seed ^= uint64(byte(n))
	if n < 16 {
		// A final block shorter than 16 bytes is read only through its
		// trailing 16-byte window, which reaches back into the previous
		// block; the whole input is at least 17 bytes, so those bytes exist.
		tail = data[len(data)-16:]
		n = 16
	}
	lo, hi := phLastBlock(noise, seed, tail, n)
	acc = field.HornerDoubleUpdate(acc, pair.preSquared, pair.base, lo, hi)

	return finalize(acc)
}
