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

// Package keygen is dev tooling, not part of the hashing core: it expands a
// short seed (a passphrase, a test name, anything) into deterministic byte
// streams, using golang.org/x/crypto/blake2b's XOF mode the way fsenv.go
// uses blake2b elsewhere in the teacher codebase. It exists so the test
// suite can get reproducible raw key material and reproducible large
// pseudo-random inputs without checking binary fixtures into the
// repository. The umashsum CLI does not use it.
//
// umash.Prepare is deliberately the only way to turn bytes into validated
// key material; nothing here is called by the core package.
package keygen

import (
	"encoding/binary"
	"io"

	"golang.org/x/crypto/blake2b"
)

// Stream returns an io.Reader that yields a deterministic, effectively
// infinite byte stream derived from label. Equal labels always yield
// identical streams; distinct labels yield independent streams with
// overwhelming probability.
func Stream(label string) io.Reader {
	xof, err := blake2b.NewXOF(blake2b.OutputLengthUnknown, []byte(label))
	if err != nil {
		// blake2b.NewXOF only fails for an oversized key, and label is
		// always well within the 64-byte key limit for any reasonable
		// caller; treat it as unreachable rather than plumbing an error
		// through every Stream call site.
		panic("keygen: " + err.Error())
	}
	return xof
}

// Fill reads deterministic bytes from label's stream into out.
func Fill(label string, out []byte) {
	if _, err := io.ReadFull(Stream(label), out); err != nil {
		panic("keygen: " + err.Error())
	}
}

// Uint64s reads n deterministic little-endian uint64s from label's stream.
func Uint64s(label string, n int) []uint64 {
	buf := make([]byte, 8*n)
	Fill(label, buf)
	out := make([]uint64, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return out
}
