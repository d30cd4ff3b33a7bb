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

//go:build amd64
// +build amd64

package clmul

import "golang.org/x/sys/cpu"

// hasHardware mirrors the teacher's offsX86HasAVX512VAES pattern of reading
// a cpu feature flag once at package init to gate a hardware fast path.
var hasHardware = cpu.X86.HasPCLMULQDQ

//go:noescape
//go:nosplit
func clmulHardware(a, b uint64) (lo, hi uint64)

func multiply(a, b uint64) (lo, hi uint64) {
	if hasHardware {
		return clmulHardware(a, b)
	}
	return softMultiply(a, b)
}
