// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package encryption

import (
	"errors"
	"fmt"

	"github.com/FluffyLabs/iamdead.fyi/crypto/bytesutil"
	"github.com/FluffyLabs/iamdead.fyi/crypto/encryption/internal/v0"
)

// AAD is the fixed associated data bound into every AEAD operation for
// domain separation.
var AAD = []byte("ICOD-Crypto library of ICOD project. Non omnis moriar.")

// MaxCiphertextSize bounds the sealed payload so its length fits the 24-bit
// part counters used by the multi-part wire format.
const MaxCiphertextSize = (1 << 24) - 1

// partHeaderSize is the length, in bytes, of the version/index/all header
// that precedes every part.
const partHeaderSize = 1 + 3 + 3

// Errors surfaced by EncryptedMessage construction, encryption, and part
// collation.
var (
	ErrDataTooBig      = errors.New("encryption: ciphertext exceeds maximum size")
	ErrEncryptionError = errors.New("encryption: authenticated encryption failed")
	ErrMissingParts    = errors.New("encryption: one or more message parts are missing")
	ErrMalformedData   = errors.New("encryption: malformed part data")
)

// MalformedDataError reports a structural defect found while collating
// message parts. Reason is one of a small, stable set of literal tags
// ("Number of parts mismatch.", "Not enough bytes to read NONCE.",
// "part shorter than header", "duplicate part index"), not a free-form
// message. It unwraps to ErrMalformedData so callers can match
// the whole family with errors.Is without caring about Reason.
type MalformedDataError struct {
	Reason string
}

func (e *MalformedDataError) Error() string {
	return fmt.Sprintf("encryption: malformed data: %s", e.Reason)
}

func (e *MalformedDataError) Unwrap() error {
	return ErrMalformedData
}

// EncryptedMessage is an authenticated ciphertext produced by EncryptMessage.
type EncryptedMessage struct {
	version byte
	nonce   [v0.NonceSize]byte
	data    bytesutil.Bytes
}

// Version reports the wire-format version of the encrypted message.
func (e EncryptedMessage) Version() byte {
	return e.version
}

// Nonce returns the 12-byte nonce used to seal this message.
func (e EncryptedMessage) Nonce() [v0.NonceSize]byte {
	return e.nonce
}

// Data returns a defensive copy of the sealed ciphertext, tag included.
func (e EncryptedMessage) Data() []byte {
	return e.data.Raw()
}

// NewEncryptedMessage wraps already-sealed bytes (ciphertext || tag) and an
// explicit nonce into an EncryptedMessage, validating the size invariant.
// It performs no cryptographic operation; use EncryptMessage to seal
// plaintext.
func NewEncryptedMessage(data, nonce []byte) (EncryptedMessage, error) {
	if len(nonce) != v0.NonceSize {
		return EncryptedMessage{}, ErrInvalidKeySize
	}
	if len(data) > MaxCiphertextSize {
		return EncryptedMessage{}, ErrDataTooBig
	}
	var n [v0.NonceSize]byte
	copy(n[:], nonce)
	return EncryptedMessage{version: VersionV0, nonce: n, data: bytesutil.New(data)}, nil
}

// EncryptMessage seals msg under key, binding the fixed AAD.
func EncryptMessage(key *MessageEncryptionKey, msg Message) (EncryptedMessage, error) {
	if key.version != VersionV0 {
		return EncryptedMessage{}, ErrUnsupportedVersion
	}

	var sealed []byte
	err := key.withRaw(func(raw []byte) error {
		out, sealErr := v0.Seal(raw, msg.nonce, msg.Data(), AAD)
		if sealErr != nil {
			return sealErr
		}
		sealed = out
		return nil
	})
	if err != nil {
		return EncryptedMessage{}, fmt.Errorf("%w: %v", ErrEncryptionError, err)
	}
	if len(sealed) > MaxCiphertextSize {
		return EncryptedMessage{}, ErrDataTooBig
	}

	return EncryptedMessage{version: VersionV0, nonce: msg.nonce, data: bytesutil.New(sealed)}, nil
}

// DecryptMessage opens an EncryptedMessage, returning its plaintext.
// Authentication failures and malformed ciphertexts are both reported as
// ErrEncryptionError, deliberately indistinguishable.
func DecryptMessage(key *MessageEncryptionKey, msg EncryptedMessage) ([]byte, error) {
	if key.version != VersionV0 || msg.version != VersionV0 {
		return nil, ErrUnsupportedVersion
	}

	var plaintext []byte
	err := key.withRaw(func(raw []byte) error {
		out, openErr := v0.Open(raw, msg.nonce, msg.data.Raw(), AAD)
		if openErr != nil {
			return openErr
		}
		plaintext = out
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEncryptionError, err)
	}
	return plaintext, nil
}

func putBE24(dst []byte, v uint32) {
	dst[0] = byte(v >> 16)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v)
}

func getBE24(src []byte) uint32 {
	return uint32(src[0])<<16 | uint32(src[1])<<8 | uint32(src[2])
}

// SplitAndEncode lays the message out as an ordered sequence of parts, each
// carrying the [version|index|all] header, the nonce in part 0, and up to
// split bytes of ciphertext payload per part. split == nil produces a
// single part holding the nonce and the whole ciphertext contiguously.
// split == 0 is normalized to 1.
func (e EncryptedMessage) SplitAndEncode(split *int) [][]byte {
	data := e.data.Raw()
	nonce := e.nonce[:]

	if split == nil {
		part := make([]byte, 0, partHeaderSize+len(nonce)+len(data))
		part = append(part, e.version)
		part = append(part, 0, 0, 0) // index 0
		part = append(part, 0, 0, 1) // all = 1
		part = append(part, nonce...)
		part = append(part, data...)
		return [][]byte{part}
	}

	s := *split
	if s == 0 {
		s = 1
	}

	header := func(index, all uint32) []byte {
		h := make([]byte, partHeaderSize)
		h[0] = e.version
		putBE24(h[1:4], index)
		putBE24(h[4:7], all)
		return h
	}

	var firstData, rest []byte
	if s >= v0.NonceSize {
		budget := s - v0.NonceSize
		if budget > len(data) {
			budget = len(data)
		}
		firstData, rest = data[:budget], data[budget:]
	} else {
		firstData, rest = nil, data
	}

	numRestParts := 0
	if len(rest) > 0 {
		numRestParts = (len(rest) + s - 1) / s
	}
	all := uint32(1 + numRestParts) // nolint:gosec // bounded by MaxCiphertextSize

	parts := make([][]byte, 0, all)
	part0 := append(header(0, all), nonce...)
	part0 = append(part0, firstData...)
	parts = append(parts, part0)

	idx := uint32(1)
	for i := 0; i < len(rest); i += s {
		end := i + s
		if end > len(rest) {
			end = len(rest)
		}
		p := append(header(idx, all), rest[i:end]...)
		parts = append(parts, p)
		idx++
	}

	return parts
}

// MessagePart is the decoded header and payload of a single part produced
// by SplitAndEncode, used by identify to describe a part without needing
// its siblings.
type MessagePart struct {
	Version byte
	Index   uint32
	All     uint32
	Nonce   []byte // only set when Index == 0
	Data    []byte
}

// DecodeMessagePart parses a single part's header (and, for index 0, its
// nonce) without requiring the rest of the message's parts.
func DecodeMessagePart(payload []byte) (MessagePart, error) {
	if len(payload) < partHeaderSize {
		return MessagePart{}, &MalformedDataError{Reason: "part shorter than header"}
	}
	if payload[0] != VersionV0 {
		return MessagePart{}, ErrInvalidVersion
	}

	index := getBE24(payload[1:4])
	all := getBE24(payload[4:7])
	rest := payload[partHeaderSize:]

	part := MessagePart{Version: payload[0], Index: index, All: all}
	if index == 0 {
		if len(rest) < v0.NonceSize {
			return MessagePart{}, &MalformedDataError{Reason: "Not enough bytes to read NONCE."}
		}
		part.Nonce = append([]byte(nil), rest[:v0.NonceSize]...)
		rest = rest[v0.NonceSize:]
	}
	part.Data = append([]byte(nil), rest...)
	return part, nil
}

// CollateFromParts reassembles an EncryptedMessage from an unordered
// collection of parts produced by SplitAndEncode.
func CollateFromParts(parts [][]byte) (EncryptedMessage, error) {
	if len(parts) == 0 {
		return EncryptedMessage{}, ErrMissingParts
	}

	var all uint32
	byIndex := make(map[uint32][]byte, len(parts))

	for i, p := range parts {
		if len(p) < partHeaderSize {
			return EncryptedMessage{}, &MalformedDataError{Reason: "part shorter than header"}
		}
		if p[0] != VersionV0 {
			return EncryptedMessage{}, ErrInvalidVersion
		}
		index := getBE24(p[1:4])
		a := getBE24(p[4:7])
		if i == 0 {
			all = a
		} else if a != all {
			return EncryptedMessage{}, &MalformedDataError{Reason: "Number of parts mismatch."}
		}

		if _, dup := byIndex[index]; dup {
			return EncryptedMessage{}, &MalformedDataError{Reason: "duplicate part index"}
		}
		byIndex[index] = p[partHeaderSize:]
	}

	// Every index in 0..all-1, including 0, must be present before we look
	// at any individual part's payload: a missing part (index 0 or not) is
	// ErrMissingParts, distinct from a present-but-truncated part 0.
	for idx := uint32(0); idx < all; idx++ {
		if _, ok := byIndex[idx]; !ok {
			return EncryptedMessage{}, ErrMissingParts
		}
	}

	var nonce [v0.NonceSize]byte
	rest0 := byIndex[0]
	if len(rest0) < v0.NonceSize {
		return EncryptedMessage{}, &MalformedDataError{Reason: "Not enough bytes to read NONCE."}
	}
	copy(nonce[:], rest0[:v0.NonceSize])
	byIndex[0] = rest0[v0.NonceSize:]

	data := make([]byte, 0, int(all)*16)
	for idx := uint32(0); idx < all; idx++ {
		data = append(data, byIndex[idx]...)
	}

	return NewEncryptedMessage(data, nonce[:])
}
