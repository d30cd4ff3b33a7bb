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
	"testing"

	"github.com/dgryski/go-umash/internal/field"
	"github.com/dgryski/go-umash/internal/keygen"
)

func deterministicRawParams(t *testing.T, label string) RawParams {
	t.Helper()
	var raw RawParams
	raw.Poly[0][1] = keygen.Uint64s(label+"/poly0", 1)[0]
	raw.Poly[1][1] = keygen.Uint64s(label+"/poly1", 1)[0]
	words := keygen.Uint64s(label+"/noise", noiseWords)
	copy(raw.Noise[:], words)
	return raw
}

func TestPrepareEstablishesInvariants(t *testing.T) {
	raw := deterministicRawParams(t, "prepare-invariants")
	p, ok := Prepare(raw)
	if !ok {
		t.Fatal("Prepare failed on well-randomized input")
	}

	for i, pair := range p.poly {
		if pair.base == 0 || pair.base >= field.Modulo {
			t.Fatalf("poly[%d].base = %#x, want in (0, 2^61-1)", i, pair.base)
		}
		want := field.Reduce(field.MulFast(pair.base, pair.base))
		if pair.preSquared != want {
			t.Fatalf("poly[%d].preSquared = %#x, want base^2 mod p = %#x", i, pair.preSquared, want)
		}
	}

	seen := make(map[uint64]bool, len(p.noise))
	for i, w := range p.noise {
		if seen[w] {
			t.Fatalf("noise[%d] = %#x duplicates an earlier entry", i, w)
		}
		seen[w] = true
	}
}

func TestPrepareIsIdempotentOnPreparedInput(t *testing.T) {
	raw := deterministicRawParams(t, "prepare-idempotent")
	p1, ok := Prepare(raw)
	if !ok {
		t.Fatal("Prepare failed on well-randomized input")
	}

	var raw2 RawParams
	raw2.Poly[0][1] = p1.poly[0].base
	raw2.Poly[1][1] = p1.poly[1].base
	raw2.Noise = p1.noise
	p2, ok := Prepare(raw2)
	if !ok {
		t.Fatal("Prepare failed on already-prepared input")
	}
	if p1.poly != p2.poly || p1.noise != p2.noise {
		t.Fatal("Prepare is not a fixed point on already-prepared input")
	}
}

func TestPrepareFailsWhenPoolExhausted(t *testing.T) {
	var raw RawParams
	// Both base multipliers are zero (invalid), and the replacement pool
	// (the redundant pre-squared slots) is also all zero, so rejection
	// sampling can never find a valid replacement.
	_, ok := Prepare(raw)
	if ok {
		t.Fatal("Prepare succeeded despite an exhausted, all-zero replacement pool")
	}
}

func TestParamsMarshalRoundTrip(t *testing.T) {
	raw := deterministicRawParams(t, "marshal-roundtrip")
	p, ok := Prepare(raw)
	if !ok {
		t.Fatal("Prepare failed on well-randomized input")
	}

	buf, err := p.MarshalBinary()
	if err != nil {
		t.Fatalf("MarshalBinary: %v", err)
	}

	var p2 Params
	if err := p2.UnmarshalBinary(buf); err != nil {
		t.Fatalf("UnmarshalBinary: %v", err)
	}
	if p != p2 {
		t.Fatal("UnmarshalBinary(MarshalBinary(p)) != p")
	}
}

func TestParamsUnmarshalRejectsWrongLength(t *testing.T) {
	var p Params
	if err := p.UnmarshalBinary([]byte{1, 2, 3}); err == nil {
		t.Fatal("UnmarshalBinary accepted a truncated buffer")
	}
}
