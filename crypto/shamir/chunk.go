// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package shamir

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FluffyLabs/iamdead.fyi/crypto/bytesutil"
	"github.com/FluffyLabs/iamdead.fyi/crypto/hashutil"
	"github.com/FluffyLabs/iamdead.fyi/encoding/dnssec32"
)

// ChunkPrefix is the string prefix identifying an encoded Chunk.
const ChunkPrefix = "icod-chunk:"

// chunkMagic is the inner magic sequence inside a Chunk's wire payload,
// distinct from the outer ChunkPrefix string prefix - "icod" plus the
// type tag "c", mirroring the key payload's "icodk" magic.
const chunkMagic = "icodc"

// VersionV0 is the only chunk scheme currently defined.
const VersionV0 byte = 0x00

// Errors raised while decoding a Chunk.
var (
	ErrMissingMagicBytes = errors.New("shamir: missing chunk magic bytes")
	ErrInvalidVersion    = errors.New("shamir: invalid chunk version byte")
	ErrNotEnoughData     = errors.New("shamir: chunk payload too short")
)

// chunkHeaderSize is the length, in bytes, of everything in a Chunk's wire
// payload before its variable-length data: magic + version + key_hash +
// required + spare + index.
const chunkHeaderSize = len(chunkMagic) + 1 + hashutil.Size + 1 + 1 + 1

// Chunk is one Shamir share of an encoded MessageEncryptionKey.
type Chunk struct {
	Version  byte
	KeyHash  hashutil.Hash
	Config   ChunksConfiguration
	Index    uint8
	Data     bytesutil.Bytes
}

// EncodePayload renders the chunk's canonical wire bytes: the icodc
// magic, version, key hash, configuration, index, and share data.
func (c Chunk) EncodePayload() []byte {
	data := c.Data.Raw()
	out := make([]byte, 0, chunkHeaderSize+len(data))
	out = append(out, chunkMagic...)
	out = append(out, c.Version)
	out = append(out, c.KeyHash.Bytes()...)
	out = append(out, c.Config.Required, c.Config.Spare, c.Index)
	out = append(out, data...)
	return out
}

// Encode renders the chunk as its canonical icod-chunk: string, without a
// name.
func (c Chunk) Encode() string {
	return ChunkPrefix + dnssec32.Encode(c.EncodePayload())
}

// DecodeChunkPayload parses the raw wire bytes produced by EncodePayload.
func DecodeChunkPayload(payload []byte) (Chunk, error) {
	if len(payload) < len(chunkMagic) {
		return Chunk{}, ErrMissingMagicBytes
	}
	if string(payload[:len(chunkMagic)]) != chunkMagic {
		return Chunk{}, ErrMissingMagicBytes
	}
	if len(payload) < chunkHeaderSize {
		return Chunk{}, fmt.Errorf("%w: too short to read header", ErrNotEnoughData)
	}

	rest := payload[len(chunkMagic):]
	version := rest[0]
	if version != VersionV0 {
		return Chunk{}, fmt.Errorf("%w: %d", ErrInvalidVersion, version)
	}
	rest = rest[1:]

	keyHash, err := hashutil.FromSlice(rest[:hashutil.Size])
	if err != nil {
		return Chunk{}, fmt.Errorf("shamir: invalid key hash: %w", err)
	}
	rest = rest[hashutil.Size:]

	config, err := NewChunksConfiguration(rest[0], rest[1])
	if err != nil {
		return Chunk{}, err
	}
	index := rest[2]
	data := rest[3:]

	if len(data) == 0 {
		return Chunk{}, fmt.Errorf("%w: share data must not be empty", ErrNotEnoughData)
	}

	return Chunk{
		Version: version,
		KeyHash: keyHash,
		Config:  config,
		Index:   index,
		Data:    bytesutil.New(data),
	}, nil
}

// SplitChunkString strips the ChunkPrefix and an optional "<name>:" prefix
// from s, returning the name (empty if none was present) and the remaining
// Base32 payload string.
func SplitChunkString(s string) (name, body string, err error) {
	trimmed, ok := strings.CutPrefix(s, ChunkPrefix)
	if !ok {
		return "", "", fmt.Errorf("shamir: %q is not a chunk string", s)
	}
	if idx := strings.IndexByte(trimmed, ':'); idx >= 0 {
		return trimmed[:idx], trimmed[idx+1:], nil
	}
	return "", trimmed, nil
}

// DecodeChunkString parses a full icod-chunk: string, with or without a
// name, returning the decoded Chunk and the name if one was present.
func DecodeChunkString(s string) (chunk Chunk, name string, err error) {
	name, body, err := SplitChunkString(s)
	if err != nil {
		return Chunk{}, "", err
	}
	payload, err := dnssec32.Decode(body)
	if err != nil {
		return Chunk{}, "", err
	}
	chunk, err = DecodeChunkPayload(payload)
	if err != nil {
		return Chunk{}, "", err
	}
	return chunk, name, nil
}
