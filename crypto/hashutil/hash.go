// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package hashutil

import (
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Size is the fixed output length, in bytes, of a Hash.
const Size = blake2b.Size // 64

// ErrInvalidHashSize is raised when a Hash is reconstructed from a slice
// whose length does not match Size.
var ErrInvalidHashSize = errors.New("hash must be exactly 64 bytes long")

// Hash is a fixed-size BLAKE2b-512 fingerprint.
type Hash struct {
	raw [Size]byte
}

// FromBytes computes the BLAKE2b-512 digest of the given input.
func FromBytes(b []byte) Hash {
	return Hash{raw: blake2b.Sum512(b)}
}

// FromSlice wraps an already computed 64-byte digest. It fails with
// ErrInvalidHashSize if the slice length is not exactly Size.
func FromSlice(b []byte) (Hash, error) {
	if len(b) != Size {
		return Hash{}, fmt.Errorf("%w: got %d bytes", ErrInvalidHashSize, len(b))
	}

	var h Hash
	copy(h.raw[:], b)
	return h, nil
}

// Equal reports whether two hashes are identical using a constant-time
// comparison.
func (h Hash) Equal(other Hash) bool {
	return subtle.ConstantTimeCompare(h.raw[:], other.raw[:]) == 1
}

// Bytes returns a defensive copy of the 64-byte digest.
func (h Hash) Bytes() []byte {
	cp := make([]byte, Size)
	copy(cp, h.raw[:])
	return cp
}

// String implements fmt.Stringer, returning the lowercase hex encoding of
// the digest.
func (h Hash) String() string {
	return hex.EncodeToString(h.raw[:])
}
