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

import "fmt"

// SelfTest exercises params against a handful of structural invariants
// spec.md §8 calls out as universal (Sum64 determinism, a fingerprint that
// changes when one input byte is flipped, Prepare idempotence) and returns
// an error describing the
// first one that doesn't hold. It is meant as a cheap smoke test on an
// unfamiliar target — for instance, to catch a broken hardware
// carryless-multiply path without needing precomputed reference digests.
func SelfTest(params *Params) error {
	lengths := []int{0, 1, 7, 8, 9, 16, 17, 256, 257, 1000}
	seed := uint64(0xC0FFEE)

	for _, n := range lengths {
		data := make([]byte, n)
		for i := range data {
			data[i] = byte(i * 2654435761 >> 24)
		}

		h1 := Sum64(params, seed, data)
		h2 := Sum64(params, seed, data)
		if h1 != h2 {
			return fmt.Errorf("umash: Sum64 not deterministic for n=%d: %#x != %#x", n, h1, h2)
		}

		fp := Fingerprint(params, seed, data)
		if n > 0 {
			flipped := append([]byte(nil), data...)
			flipped[0] ^= 0xff
			fpFlipped := Fingerprint(params, seed, flipped)
			if fp.Low == fpFlipped.Low && fp.High == fpFlipped.High {
				return fmt.Errorf("umash: fingerprint unchanged after flipping one byte, n=%d", n)
			}
		}
	}

	var raw RawParams
	raw.Poly[0][1] = params.poly[0].base
	raw.Poly[1][1] = params.poly[1].base
	raw.Noise = params.noise
	again, ok := Prepare(raw)
	if !ok {
		return fmt.Errorf("umash: Prepare is not idempotent on an already-prepared key: pool exhausted")
	}
	if again.poly != params.poly || again.noise != params.noise {
		return fmt.Errorf("umash: Prepare is not idempotent on an already-prepared key")
	}

	return nil
}
