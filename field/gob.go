// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package field

import "encoding/binary"

// GobEncode/GobDecode let F and EF appear as struct fields anywhere a
// Proof is serialized with encoding/gob (spec §6's "a serialized Proof
// ... round-trip serialize/deserialize must be stable within one
// implementation"). F.v is unexported so the default gob reflection
// would otherwise skip it silently.

// GobEncode writes a's canonical representative as 8 little-endian bytes.
func (a F) GobEncode() ([]byte, error) {
	buf := make([]byte, 8)
	binary.LittleEndian.PutUint64(buf, a.v)
	return buf, nil
}

// GobDecode is the inverse of GobEncode.
func (a *F) GobDecode(data []byte) error {
	a.v = binary.LittleEndian.Uint64(data) % Modulus
	return nil
}

// GobEncode writes a's four coordinates as 32 little-endian bytes.
func (a EF) GobEncode() ([]byte, error) {
	buf := make([]byte, 32)
	for i, c := range a.c {
		binary.LittleEndian.PutUint64(buf[i*8:], c.v)
	}
	return buf, nil
}

// GobDecode is the inverse of GobEncode.
func (a *EF) GobDecode(data []byte) error {
	for i := range a.c {
		a.c[i].v = binary.LittleEndian.Uint64(data[i*8:]) % Modulus
	}
	return nil
}
