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

import "github.com/google/uuid"

// Fingerprint128 is a pair of independent 64-bit digests, computed from
// disjoint noise-table slices and distinct polynomial keys so the
// collision bound is the square of a single Sum64's (spec.md §1, §8).
type Fingerprint128 struct {
	Low, High uint64
}

// Fingerprint computes both halves of a 128-bit fingerprint over data under
// the given prepared Params and seed (spec.md §4.7).
func Fingerprint(params *Params, seed uint64, data []byte) Fingerprint128 {
	return Fingerprint128{
		Low:  hash(params, seed, 0, data),
		High: hash(params, seed, 1, data),
	}
}

// FingerprintString has the same semantics as Fingerprint, without copying
// s into a new []byte.
func FingerprintString(params *Params, seed uint64, s string) Fingerprint128 {
	data := stringToBytes(s)
	return Fingerprint128{
		Low:  hash(params, seed, 0, data),
		High: hash(params, seed, 1, data),
	}
}

// UUID formats the fingerprint as a 16-byte uuid.UUID, little-endian Low
// followed by little-endian High. The fingerprint is not an RFC 4122
// identifier (no version/variant bits are forced); uuid.UUID is reused
// purely as a convenient, widely-supported 128-bit external representation
// for content-addressed identifiers.
func (fp Fingerprint128) UUID() uuid.UUID {
	var u uuid.UUID
	putUint64LE(u[0:8], fp.Low)
	putUint64LE(u[8:16], fp.High)
	return u
}

func putUint64LE(b []byte, v uint64) {
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
}
