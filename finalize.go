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

// Stafford's mixing constants (spec.md §3), used both by the shared
// finalizer and by the short path's inline SplitMix64-style mixer.
const (
	staffordMul1 = 0xBF58476D1CE4E5B9
	staffordMul2 = 0x94D049BB133111EB
)

// finalize is the single-shot avalanche mixer applied once to the
// polynomial accumulator of the medium and long paths (spec.md §4.5).
func finalize(x uint64) uint64 {
	x ^= x >> 27
	x *= staffordMul2
	x ^= x >> 31
	return x
}
