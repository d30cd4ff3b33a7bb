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

package field

import (
	"math/big"
	"testing"
)

func bigModulo() *big.Int {
	return big.NewInt(0).SetUint64(Modulo)
}

// reduceBig computes x mod 2^61-1 with math/big, used as an independent
// oracle for Reduce and the lazily-reduced Add/Mul primitives.
func reduceBig(x uint64) uint64 {
	bx := new(big.Int).SetUint64(x)
	bx.Mod(bx, bigModulo())
	return bx.Uint64()
}

func TestAddFastAgreesWithBigInt(t *testing.T) {
	cases := []uint64{0, 1, Modulo - 1, Modulo, ^uint64(0), ^uint64(0) - 1, 0x0102030405060708}
	for _, x := range cases {
		for _, y := range cases {
			got := reduceBig(AddFast(x, y))
			want := reduceBig(reduceBig(x) + reduceBig(y))
			if got != want {
				t.Fatalf("AddFast(%#x, %#x) mod p = %#x, want %#x", x, y, got, want)
			}
		}
	}
}

func TestAddSlowStrictlyReduced(t *testing.T) {
	cases := []uint64{0, 1, Modulo, ^uint64(0), ^uint64(0) - 7, ^uint64(0) - 8}
	for _, x := range cases {
		for _, y := range cases {
			sum := AddSlow(x, y)
			if sum >= lazyModulo {
				t.Fatalf("AddSlow(%#x, %#x) = %#x, not < 2^64-8", x, y, sum)
			}
			if reduceBig(sum) != reduceBig(reduceBig(x)+reduceBig(y)) {
				t.Fatalf("AddSlow(%#x, %#x) mod p mismatch", x, y)
			}
		}
	}
}

func TestMulFastAgreesWithBigInt(t *testing.T) {
	cases := []uint64{0, 1, 2, Modulo - 1, ^uint64(0), 0xdeadbeefcafebabe}
	for _, x := range cases {
		for _, y := range cases {
			got := reduceBig(MulFast(x, y))
			want := new(big.Int).Mul(new(big.Int).SetUint64(x), new(big.Int).SetUint64(y))
			want.Mod(want, bigModulo())
			if got != want.Uint64() {
				t.Fatalf("MulFast(%#x, %#x) mod p = %#x, want %s", x, y, got, want.String())
			}
		}
	}
}

func TestReduceCanonical(t *testing.T) {
	cases := []uint64{0, 1, Modulo - 1, Modulo, Modulo + 1, ^uint64(0) - 8}
	for _, x := range cases {
		r := Reduce(x)
		if r >= Modulo {
			t.Fatalf("Reduce(%#x) = %#x >= Modulo", x, r)
		}
		if r != reduceBig(x) {
			t.Fatalf("Reduce(%#x) = %#x, want %#x", x, r, reduceBig(x))
		}
	}
}

func TestHornerDoubleUpdateMatchesDefinition(t *testing.T) {
	acc, m0, m1, x, y := uint64(12345), uint64(7), uint64(11), uint64(99), uint64(1000)
	got := HornerDoubleUpdate(acc, m0, m1, x, y)
	want := AddSlow(MulFast(m0, AddFast(acc, x)), MulFast(m1, y))
	if got != want {
		t.Fatalf("HornerDoubleUpdate = %#x, want %#x", got, want)
	}
}
