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
)

// phOneBlock compresses exactly one 256-byte (phParamCount*8) block of data
// into a 128-bit (lo, hi) accumulator, keyed by noise (at least phParamCount
// words) and seeded with seed. This is the PH almost-XOR-universal
// compressor of spec.md §4.3.
func phOneBlock(noise []uint64, seed uint64, data []byte) (lo, hi uint64) {
	lo, hi = seed, 0
	for i := 0; i < phParamCount; i += 2 {
		x0 := binary.LittleEndian.Uint64(data[i*8:])
		x1 := binary.LittleEndian.Uint64(data[(i+1)*8:])
		x0 ^= noise[i]
		x1 ^= noise[i+1]

		lane0, lane1 := clmul.Multiply(x1, x0)
		lo ^= lane0
		hi ^= lane1
	}
	return lo, hi
}

// phLastBlock compresses the final, possibly-partial block of between 16 and
// phParamCount*8 bytes. It reads bytes [0, n) only: full pairs up front,
// then a trailing 16-byte region taken from offset n-16 that may overlap
// previously-read bytes, giving every (data, n) an unambiguous digest
// without reading past data (spec.md §4.3, §5). A final block shorter than
// 16 bytes is handled by longPath, which passes the last 16 input bytes
// with n = 16 instead.
func phLastBlock(noise []uint64, seed uint64, data []byte, n int) (lo, hi uint64) {
	lo, hi = seed, 0

	remaining := 1 + ((n - 1) % 16)
	endFullPairs := (n - remaining) / 8
	lastOff := n - 16

	i := 0
	for ; i < endFullPairs; i += 2 {
		x0 := binary.LittleEndian.Uint64(data[i*8:])
		x1 := binary.LittleEndian.Uint64(data[(i+1)*8:])
		x0 ^= noise[i]
		x1 ^= noise[i+1]

		lane0, lane1 := clmul.Multiply(x1, x0)
		lo ^= lane0
		hi ^= lane1
	}

	x := binary.LittleEndian.Uint64(data[lastOff:]) ^ noise[i]
	y := binary.LittleEndian.Uint64(data[lastOff+8:]) ^ noise[i+1]
	lane0, lane1 := clmul.Multiply(x, y)
	lo ^= lane0
	hi ^= lane1

	return lo, hi
}
