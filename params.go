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
	"fmt"

	"github.com/dgryski/go-umash/internal/field"
)

const (
	// phParamCount is the number of 64-bit noise words one PH block
	// compressor pass consumes (32 words = 256 bytes, spec.md §3).
	phParamCount = 32

	// toeplitzShift is the fixed offset, in 64-bit words, between the two
	// noise-table slices the fingerprint's two halves draw from.
	toeplitzShift = 4

	// noiseWords is the total size of the noise table: one PH block plus
	// the Toeplitz overlap region.
	noiseWords = phParamCount + toeplitzShift

	// blockSize is the number of input bytes one PH block pass consumes.
	blockSize = phParamCount * 8

	// BlockSize is blockSize, exported for callers (umashsum's -v flag)
	// that want to report input size in PH-block units without reaching
	// into the package's internals.
	BlockSize = blockSize
)

// polyPair holds one polynomial key: a base multiplier and its pre-squared
// value, both reduced field elements in (0, 2^61-1).
type polyPair struct {
	preSquared uint64
	base       uint64
}

// Params is the prepared key material shared, read-only, across any number
// of Sum64/Fingerprint calls. It must be built with Prepare (or loaded back
// via UnmarshalBinary from bytes a prior Prepare produced); hashing with an
// unprepared Params has unspecified behavior, per spec.md §3.
//
// A Params value is safe for concurrent use by any number of goroutines as
// long as none of them calls UnmarshalBinary on it concurrently with the
// others; Prepare returns a new Params and never mutates an existing one.
type Params struct {
	poly  [2]polyPair
	noise [noiseWords]uint64
}

// RawParams is the caller-supplied, pre-randomized buffer Prepare sanitizes
// into a valid Params. Fill Poly and Noise from any source of independent
// uniform randomness (the core deliberately does not generate this itself,
// per spec.md §1's non-goals) and pass the result to Prepare.
type RawParams struct {
	// Poly holds two (anything, base) pairs; the first element of each
	// pair is ignored on input and used only as extra entropy for
	// rejection sampling, matching the reference's reuse of the
	// redundant pre-squared slot.
	Poly [2][2]uint64
	// Noise holds noiseWords (36) candidate noise words.
	Noise [noiseWords]uint64
}

// Prepare sanitizes raw into a valid Params: it masks each base multiplier
// into the field, rejects zero and out-of-range values, squares each base,
// and de-duplicates the noise table — establishing the invariants of
// spec.md §3. It fails only if raw's redundant pre-squared slots (the only
// source of replacement entropy) are exhausted by rejection sampling, which
// essentially never happens for well-randomized input.
//
// Prepare does not mutate raw.
func Prepare(raw RawParams) (Params, bool) {
	pool := [2]uint64{raw.Poly[0][0], raw.Poly[1][0]}
	poolIdx := 0
	drawReplacement := func() (uint64, bool) {
		if poolIdx >= len(pool) {
			return 0, false
		}
		v := pool[poolIdx]
		poolIdx++
		return v, true
	}

	var p Params
	for i := range raw.Poly {
		f := raw.Poly[i][1]
		for {
			f &= field.Modulo
			if f != 0 && f < field.Modulo {
				break
			}
			var ok bool
			f, ok = drawReplacement()
			if !ok {
				return Params{}, false
			}
		}
		p.poly[i] = polyPair{
			preSquared: field.Reduce(field.MulFast(f, f)),
			base:       f,
		}
	}

	p.noise = raw.Noise
	for i := range p.noise {
		for isRepeated(p.noise[:i], p.noise[i]) {
			v, ok := drawReplacement()
			if !ok {
				return Params{}, false
			}
			p.noise[i] = v
		}
	}

	return p, true
}

func isRepeated(seen []uint64, v uint64) bool {
	for _, s := range seen {
		if s == v {
			return true
		}
	}
	return false
}

// marshaledParamsSize is the byte length of Params.MarshalBinary's output:
// 4 uint64s of polynomial key material plus noiseWords uint64s of noise,
// all little-endian per spec.md §1.
const marshaledParamsSize = (4 + noiseWords) * 8

// MarshalBinary encodes a prepared Params into a little-endian byte slice
// that UnmarshalBinary can later decode, so a key prepared once (spec.md
// §3's "created once... shared read-only... never mutated" lifecycle) can
// be persisted across process restarts.
func (p Params) MarshalBinary() ([]byte, error) {
	buf := make([]byte, marshaledParamsSize)
	off := 0
	for _, pair := range p.poly {
		binary.LittleEndian.PutUint64(buf[off:], pair.preSquared)
		binary.LittleEndian.PutUint64(buf[off+8:], pair.base)
		off += 16
	}
	for _, w := range p.noise {
		binary.LittleEndian.PutUint64(buf[off:], w)
		off += 8
	}
	return buf, nil
}

// UnmarshalBinary decodes a Params previously produced by MarshalBinary. It
// does not re-validate the prepared-key invariants of spec.md §3; the bytes
// are trusted to originate from a successful Prepare/MarshalBinary round
// trip.
func (p *Params) UnmarshalBinary(data []byte) error {
	if len(data) != marshaledParamsSize {
		return fmt.Errorf("umash: invalid Params encoding: got %d bytes, want %d", len(data), marshaledParamsSize)
	}
	off := 0
	for i := range p.poly {
		p.poly[i] = polyPair{
			preSquared: binary.LittleEndian.Uint64(data[off:]),
			base:       binary.LittleEndian.Uint64(data[off+8:]),
		}
		off += 16
	}
	for i := range p.noise {
		p.noise[i] = binary.LittleEndian.Uint64(data[off:])
		off += 8
	}
	return nil
}
