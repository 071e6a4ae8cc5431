// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package identify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FluffyLabs/iamdead.fyi/crypto/encryption"
	"github.com/FluffyLabs/iamdead.fyi/crypto/shamir"
	"github.com/FluffyLabs/iamdead.fyi/encoding/dnssec32"
)

// MsgPrefix is the string prefix identifying an encrypted message part.
const MsgPrefix = "icod-msg:"

// Errors surfaced while identifying or renaming a candidate string.
var (
	ErrMissingPrefix     = errors.New("identify: string carries no known prefix")
	ErrNotAChunk         = errors.New("identify: string is not a chunk")
	ErrInvalidCharacters = errors.New("identify: name contains a colon")
	ErrNameTooLong       = errors.New("identify: name exceeds 16 code units")
)

// maxNameLength is the maximum number of code units (runes) a chunk name
// may hold.
const maxNameLength = 16

// Kind tags which wire artifact an Identification describes.
type Kind int

const (
	// KindMessagePart tags a decoded icod-msg: part.
	KindMessagePart Kind = iota
	// KindChunk tags a decoded icod-chunk: share.
	KindChunk
)

// Identification is the decoded, display-oriented view of a candidate
// string returned by Identify.
type Identification struct {
	Kind Kind

	// Populated when Kind == KindMessagePart.
	MessagePart encryption.MessagePart

	// Populated when Kind == KindChunk.
	Chunk     shamir.Chunk
	ChunkName string // display name, defaulted if none was present
}

// Identify classifies s as an encoded chunk or message part, decoding its
// structure. It fails with ErrMissingPrefix if s carries neither known
// prefix.
func Identify(s string) (Identification, error) {
	if strings.HasPrefix(s, shamir.ChunkPrefix) {
		chunk, name, err := shamir.DecodeChunkString(s)
		if err != nil {
			return Identification{}, err
		}
		if name == "" {
			name = defaultChunkName(chunk)
		}
		return Identification{Kind: KindChunk, Chunk: chunk, ChunkName: name}, nil
	}

	if strings.HasPrefix(s, MsgPrefix) {
		body := strings.TrimPrefix(s, MsgPrefix)
		payload, err := dnssec32.Decode(body)
		if err != nil {
			return Identification{}, err
		}
		part, err := encryption.DecodeMessagePart(payload)
		if err != nil {
			return Identification{}, err
		}
		return Identification{Kind: KindMessagePart, MessagePart: part}, nil
	}

	return Identification{}, ErrMissingPrefix
}

// defaultChunkName produces the "Restoration Piece <index+1>/<total>" label
// used when a chunk carries no explicit name.
func defaultChunkName(c shamir.Chunk) string {
	return fmt.Sprintf("Restoration Piece %d/%d", c.Index+1, c.Config.Shares())
}

// AlterChunksName re-emits chunk (with or without an existing name) under
// newName, preserving its inner payload bytes exactly.
func AlterChunksName(chunkStr string, newName string) (string, error) {
	if !strings.HasPrefix(chunkStr, shamir.ChunkPrefix) {
		return "", ErrNotAChunk
	}
	if strings.ContainsRune(newName, ':') {
		return "", ErrInvalidCharacters
	}
	if len([]rune(newName)) > maxNameLength {
		return "", ErrNameTooLong
	}

	_, body, err := shamir.SplitChunkString(chunkStr)
	if err != nil {
		return "", ErrNotAChunk
	}

	return shamir.ChunkPrefix + newName + ":" + body, nil
}
