// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package v0

import (
	"crypto/aes"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// KeySize is the length, in bytes, of an AEAD_AES_256_GCM_SIV key.
	KeySize = 32
	// NonceSize is the length, in bytes, of the nonce.
	NonceSize = 12
	// Overhead is the size of the authentication tag appended to every
	// sealed payload.
	Overhead = 16

	// MaxPlaintextSize is the largest plaintext this construction can seal,
	// per RFC 8452 Section 6.
	MaxPlaintextSize = (1 << 36) - 16
)

// ErrOpen is returned when a sealed payload fails authentication. It never
// distinguishes tampering from a wrong key.
var ErrOpen = errors.New("v0: message authentication failed")

// deriveKeys runs the AEAD_AES_256_GCM_SIV key derivation process (RFC 8452
// Section 4): six AES-256-ECB blocks keyed under the master key, each block
// built from a little-endian counter followed by the nonce. The low 8 bytes
// of each of the first two outputs form the authentication key; the low 8
// bytes of the remaining four form the encryption key.
func deriveKeys(masterKey []byte, nonce [NonceSize]byte) (authKey [16]byte, encKey [32]byte, err error) {
	block, err := aes.NewCipher(masterKey)
	if err != nil {
		return authKey, encKey, fmt.Errorf("v0: unable to initialize key-derivation cipher: %w", err)
	}

	var material [48]byte
	var in, out [16]byte
	for i := 0; i < 6; i++ {
		binary.LittleEndian.PutUint32(in[:4], uint32(i)) // nolint:gosec // i < 6
		copy(in[4:], nonce[:])
		block.Encrypt(out[:], in[:])
		copy(material[i*8:], out[:8])
	}

	copy(authKey[:], material[:16])
	copy(encKey[:], material[16:])
	return authKey, encKey, nil
}

// lengthBlock encodes the bit lengths of aad and plaintext as two
// little-endian 64-bit integers, per RFC 8452 Section 4.
func lengthBlock(aad, plaintext []byte) [16]byte {
	var b [16]byte
	binary.LittleEndian.PutUint64(b[:8], uint64(len(aad))*8)  // nolint:gosec // bounded by MaxPlaintextSize
	binary.LittleEndian.PutUint64(b[8:], uint64(len(plaintext))*8)
	return b
}

// computeTag derives S_s = POLYVAL(authKey, pad(aad)||pad(plaintext)||lengthBlock),
// folds in the nonce, clears the top bit, and encrypts the result under
// encKey to produce the 16-byte SIV tag.
func computeTag(block ciph, authKey [16]byte, nonce [NonceSize]byte, aad, plaintext []byte) [16]byte {
	blocks := make([][16]byte, 0, len(aad)/16+len(plaintext)/16+3)
	blocks = append(blocks, padBlocks(aad)...)
	blocks = append(blocks, padBlocks(plaintext)...)
	blocks = append(blocks, lengthBlock(aad, plaintext))

	s := polyval(authKey, blocks)
	for i := 0; i < NonceSize; i++ {
		s[i] ^= nonce[i]
	}
	s[15] &= 0x7f

	var tag [16]byte
	block.Encrypt(tag[:], s[:])
	return tag
}

// ciph is the subset of cipher.Block used here, named to keep call sites
// short.
type ciph interface {
	Encrypt(dst, src []byte)
}

// keystream XORs src into dst using AES-256-CTR seeded from the tag, per the
// GCM-SIV convention: the counter block is the tag with its top bit set, and
// only the low 32 bits (little-endian) increment between blocks.
func keystream(block ciph, tag [16]byte, dst, src []byte) {
	counter := tag
	counter[15] |= 0x80

	var ks [16]byte
	for len(src) > 0 {
		block.Encrypt(ks[:], counter[:])

		n := len(src)
		if n > 16 {
			n = 16
		}
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ ks[i]
		}
		dst, src = dst[n:], src[n:]

		c := binary.LittleEndian.Uint32(counter[:4]) + 1
		binary.LittleEndian.PutUint32(counter[:4], c)
	}
}

// Seal encrypts and authenticates plaintext under key and nonce, binding
// aad into the authentication tag. The returned slice is
// ciphertext||tag.
func Seal(key []byte, nonce [NonceSize]byte, plaintext, aad []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("v0: key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(plaintext) > MaxPlaintextSize {
		return nil, fmt.Errorf("v0: plaintext exceeds maximum size of %d bytes", MaxPlaintextSize)
	}

	authKey, encKey, err := deriveKeys(key, nonce)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(encKey[:])
	if err != nil {
		return nil, fmt.Errorf("v0: unable to initialize record cipher: %w", err)
	}

	tag := computeTag(block, authKey, nonce, aad, plaintext)

	out := make([]byte, len(plaintext)+Overhead)
	keystream(block, tag, out[:len(plaintext)], plaintext)
	copy(out[len(plaintext):], tag[:])
	return out, nil
}

// Open verifies and decrypts a payload produced by Seal. Any authentication
// failure is reported as ErrOpen, regardless of cause.
func Open(key []byte, nonce [NonceSize]byte, sealed, aad []byte) ([]byte, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("v0: key must be %d bytes, got %d", KeySize, len(key))
	}
	if len(sealed) < Overhead {
		return nil, ErrOpen
	}

	ciphertext := sealed[:len(sealed)-Overhead]
	var wantTag [16]byte
	copy(wantTag[:], sealed[len(sealed)-Overhead:])

	authKey, encKey, err := deriveKeys(key, nonce)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(encKey[:])
	if err != nil {
		return nil, fmt.Errorf("v0: unable to initialize record cipher: %w", err)
	}

	plaintext := make([]byte, len(ciphertext))
	keystream(block, wantTag, plaintext, ciphertext)

	gotTag := computeTag(block, authKey, nonce, aad, plaintext)
	if subtle.ConstantTimeCompare(gotTag[:], wantTag[:]) != 1 {
		return nil, ErrOpen
	}
	return plaintext, nil
}
