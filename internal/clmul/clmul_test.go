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

package clmul

import "testing"

func TestMultiplyKnownVectors(t *testing.T) {
	cases := []struct {
		a, b   uint64
		lo, hi uint64
	}{
		{0, 0, 0, 0},
		{1, 1, 1, 0},
		{0xffffffffffffffff, 1, 0xffffffffffffffff, 0},
		// x^63 * x^63 = x^126, which sits entirely in the high half.
		{1 << 63, 1 << 63, 0, 1 << 62},
	}

	for _, c := range cases {
		lo, hi := Multiply(c.a, c.b)
		if lo != c.lo || hi != c.hi {
			t.Fatalf("Multiply(%#x, %#x) = (%#x, %#x), want (%#x, %#x)",
				c.a, c.b, lo, hi, c.lo, c.hi)
		}
	}
}

func TestMultiplyCommutative(t *testing.T) {
	inputs := []uint64{0, 1, 2, 0x123456789abcdef0, 0xdeadbeefcafebabe, ^uint64(0)}
	for _, a := range inputs {
		for _, b := range inputs {
			lo1, hi1 := Multiply(a, b)
			lo2, hi2 := Multiply(b, a)
			if lo1 != lo2 || hi1 != hi2 {
				t.Fatalf("Multiply(%#x, %#x) != Multiply(%#x, %#x)", a, b, b, a)
			}
		}
	}
}

func TestSoftMultiplyMatchesDispatch(t *testing.T) {
	inputs := []uint64{0, 1, 3, 0x0102030405060708, 0xffffffffffffffff, 0x8000000000000001}
	for _, a := range inputs {
		for _, b := range inputs {
			wantLo, wantHi := softMultiply(a, b)
			gotLo, gotHi := Multiply(a, b)
			if gotLo != wantLo || gotHi != wantHi {
				t.Fatalf("dispatch disagrees with portable fallback for (%#x, %#x): got (%#x,%#x) want (%#x,%#x)",
					a, b, gotLo, gotHi, wantLo, wantHi)
			}
		}
	}
}
