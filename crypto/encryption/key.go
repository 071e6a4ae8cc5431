// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package encryption

import (
	"errors"
	"fmt"
	"strings"

	"github.com/awnumar/memguard"

	"github.com/FluffyLabs/iamdead.fyi/crypto/encryption/internal/v0"
	"github.com/FluffyLabs/iamdead.fyi/encoding/dnssec32"
	"github.com/FluffyLabs/iamdead.fyi/generator/randomness"
)

// KeyPrefix is the string prefix identifying an encoded MessageEncryptionKey.
const KeyPrefix = "icod-key:"

// keyMagic is the inner magic sequence, distinct from KeyPrefix, that tags
// the encoded payload itself.
const keyMagic = "icodk"

// VersionV0 is the only key scheme currently defined.
const VersionV0 byte = 0x00

// Errors returned while decoding or using a MessageEncryptionKey.
var (
	ErrMissingMagicBytes  = errors.New("encryption: missing key magic bytes")
	ErrInvalidVersion     = errors.New("encryption: invalid version byte")
	ErrInvalidKeySize     = errors.New("encryption: invalid key size")
	ErrUnsupportedVersion = errors.New("encryption: unsupported key version")
	ErrMissingPrefix      = errors.New("encryption: missing expected string prefix")
)

// MessageEncryptionKey is a versioned, 256-bit symmetric key. Its raw bytes
// live inside a memguard enclave and are wiped from process memory as soon
// as they are no longer in use.
type MessageEncryptionKey struct {
	version byte
	enclave *memguard.Enclave
}

// GenerateMessageEncryptionKey draws a fresh, random V0 key from the
// cryptographic random source.
func GenerateMessageEncryptionKey() (*MessageEncryptionKey, error) {
	raw, err := randomness.Bytes(v0.KeySize)
	if err != nil {
		return nil, fmt.Errorf("encryption: unable to generate key material: %w", err)
	}
	defer memguard.WipeBytes(raw)

	return NewMessageEncryptionKey(raw)
}

// NewMessageEncryptionKey wraps raw key bytes (which must be exactly
// v0.KeySize long) into a V0 MessageEncryptionKey. The caller's copy of raw
// is not wiped by this call; ownership of raw is not taken.
func NewMessageEncryptionKey(raw []byte) (*MessageEncryptionKey, error) {
	if len(raw) != v0.KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeySize, v0.KeySize, len(raw))
	}
	return &MessageEncryptionKey{
		version: VersionV0,
		enclave: memguard.NewEnclave(append([]byte(nil), raw...)),
	}, nil
}

// Version reports the key's wire-format version.
func (k *MessageEncryptionKey) Version() byte {
	return k.version
}

// withRaw opens the key's enclave, hands its raw bytes to fn, and wipes the
// opened copy from memory before returning.
func (k *MessageEncryptionKey) withRaw(fn func(raw []byte) error) error {
	lb, err := k.enclave.Open()
	if err != nil {
		return fmt.Errorf("encryption: unable to open key enclave: %w", err)
	}
	defer lb.Destroy()
	return fn(lb.Bytes())
}

// EncodePayload renders the key's canonical wire bytes: the icodk magic,
// the version byte, and the 32 raw key bytes. This is the exact byte string
// that Shamir splitting treats as the secret, and whose BLAKE2b-512 digest
// becomes a Chunk's key hash.
func (k *MessageEncryptionKey) EncodePayload() ([]byte, error) {
	var payload []byte
	err := k.withRaw(func(raw []byte) error {
		payload = make([]byte, 0, len(keyMagic)+1+len(raw))
		payload = append(payload, keyMagic...)
		payload = append(payload, k.version)
		payload = append(payload, raw...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return payload, nil
}

// Encode renders the key as its canonical icod-key: string: EncodePayload,
// Base32-DNSSEC encoded and prefixed.
func (k *MessageEncryptionKey) Encode() (string, error) {
	payload, err := k.EncodePayload()
	if err != nil {
		return "", err
	}
	return KeyPrefix + dnssec32.Encode(payload), nil
}

// Wipe drops the key's reference to its backing enclave; the enclave's
// sealed contents are not overwritten by this call. The key must not be
// used again afterwards.
func (k *MessageEncryptionKey) Wipe() {
	k.enclave = nil
}

// DecodeMessageEncryptionKey parses a string produced by Encode.
func DecodeMessageEncryptionKey(s string) (*MessageEncryptionKey, error) {
	body, ok := strings.CutPrefix(s, KeyPrefix)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingPrefix, KeyPrefix)
	}

	payload, err := dnssec32.Decode(body)
	if err != nil {
		return nil, err
	}

	return DecodeMessageEncryptionKeyPayload(payload)
}

// DecodeMessageEncryptionKeyPayload parses the raw wire bytes produced by
// EncodePayload (the icodk magic, version byte, and raw key), without any
// outer string prefix or Base32 framing. Shamir reconstruction uses this
// directly, since the secret it recovers is EncodePayload's output.
func DecodeMessageEncryptionKeyPayload(payload []byte) (*MessageEncryptionKey, error) {
	if len(payload) < len(keyMagic)+1 {
		return nil, ErrMissingMagicBytes
	}
	if string(payload[:len(keyMagic)]) != keyMagic {
		return nil, ErrMissingMagicBytes
	}

	version := payload[len(keyMagic)]
	if version != VersionV0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}

	raw := payload[len(keyMagic)+1:]
	if len(raw) != v0.KeySize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKeySize, v0.KeySize, len(raw))
	}

	return NewMessageEncryptionKey(raw)
}
