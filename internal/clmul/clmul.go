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

// Package clmul provides a 64x64 -> 128 bit carryless (GF(2)) multiply, the
// primitive the PH block compressor folds pairs of keyed input words with.
// A hardware fast path is used where the target provides one (PCLMULQDQ on
// amd64); everywhere else a portable shift-and-xor fallback produces a
// bit-exact match, matching the hardware/software split the teacher uses
// for its own keyed hash engine in internal/aes.
package clmul

// Multiply returns the low and high 64-bit halves of the 128-bit GF(2)
// polynomial product of a and b: the bit-exact result of multiplying a and
// b as polynomials over GF(2) and reducing modulo nothing (no modulus is
// applied; the caller folds the raw 128-bit product into an accumulator).
func Multiply(a, b uint64) (lo, hi uint64) {
	return multiply(a, b)
}
