// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package identify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluffyLabs/iamdead.fyi/crypto/encryption"
	"github.com/FluffyLabs/iamdead.fyi/crypto/shamir"
	"github.com/FluffyLabs/iamdead.fyi/encoding/dnssec32"
)

func testKey(t *testing.T, fill byte) *encryption.MessageEncryptionKey {
	t.Helper()
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	key, err := encryption.NewMessageEncryptionKey(raw)
	require.NoError(t, err)
	return key
}

func TestIdentify_messagePart(t *testing.T) {
	t.Parallel()

	key := testKey(t, 0x05)
	msg, err := encryption.NewMessage([]byte("hello identify"), []byte("identify test"))
	require.NoError(t, err)
	enc, err := encryption.EncryptMessage(key, msg)
	require.NoError(t, err)

	parts := enc.SplitAndEncode(nil)
	require.Len(t, parts, 1)

	encoded := MsgPrefix + dnssec32.Encode(parts[0])
	ident, err := Identify(encoded)
	require.NoError(t, err)
	assert.Equal(t, KindMessagePart, ident.Kind)
	assert.Equal(t, uint32(0), ident.MessagePart.Index)
	assert.Equal(t, uint32(1), ident.MessagePart.All)
	assert.Len(t, ident.MessagePart.Nonce, 12)
}

func TestIdentify_chunkWithDefaultName(t *testing.T) {
	t.Parallel()

	key := testKey(t, 0x06)
	config, err := shamir.NewChunksConfiguration(2, 1)
	require.NoError(t, err)
	chunks, err := shamir.SplitIntoChunks(key, config)
	require.NoError(t, err)

	ident, err := Identify(chunks[0].Encode())
	require.NoError(t, err)
	assert.Equal(t, KindChunk, ident.Kind)
	assert.Equal(t, "Restoration Piece 1/3", ident.ChunkName)
}

func TestIdentify_chunkWithExplicitName(t *testing.T) {
	t.Parallel()

	key := testKey(t, 0x07)
	config, err := shamir.NewChunksConfiguration(2, 0)
	require.NoError(t, err)
	chunks, err := shamir.SplitIntoChunks(key, config)
	require.NoError(t, err)

	named := shamir.ChunkPrefix + "Grandma:" + chunks[0].Encode()[len(shamir.ChunkPrefix):]
	ident, err := Identify(named)
	require.NoError(t, err)
	assert.Equal(t, "Grandma", ident.ChunkName)
}

func TestIdentify_missingPrefix(t *testing.T) {
	t.Parallel()

	_, err := Identify("not-a-known-artifact")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingPrefix))
}

func TestAlterChunksName(t *testing.T) {
	t.Parallel()

	key := testKey(t, 0x08)
	config, err := shamir.NewChunksConfiguration(2, 0)
	require.NoError(t, err)
	chunks, err := shamir.SplitIntoChunks(key, config)
	require.NoError(t, err)

	unnamed := chunks[0].Encode()

	renamed, err := AlterChunksName(unnamed, "new name")
	require.NoError(t, err)

	gotChunk, name, err := shamir.DecodeChunkString(renamed)
	require.NoError(t, err)
	assert.Equal(t, "new name", name)
	assert.Equal(t, chunks[0].Index, gotChunk.Index)

	named := shamir.ChunkPrefix + "old:" + unnamed[len(shamir.ChunkPrefix):]
	renamedAgain, err := AlterChunksName(named, "new name")
	require.NoError(t, err)
	assert.Equal(t, renamed, renamedAgain)

	idempotent, err := AlterChunksName(renamed, "new name")
	require.NoError(t, err)
	assert.Equal(t, renamed, idempotent)
}

func TestAlterChunksName_errors(t *testing.T) {
	t.Parallel()

	key := testKey(t, 0x09)
	config, err := shamir.NewChunksConfiguration(2, 0)
	require.NoError(t, err)
	chunks, err := shamir.SplitIntoChunks(key, config)
	require.NoError(t, err)
	unnamed := chunks[0].Encode()

	_, err = AlterChunksName(unnamed, "new:name")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidCharacters))

	_, err = AlterChunksName(unnamed, "a name that is definitely too long")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNameTooLong))

	msg, err := encryption.NewMessage([]byte("x"), []byte("123456789012"))
	require.NoError(t, err)
	enc, err := encryption.EncryptMessage(key, msg)
	require.NoError(t, err)
	msgStr := MsgPrefix + dnssec32.Encode(enc.SplitAndEncode(nil)[0])
	_, err = AlterChunksName(msgStr, "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotAChunk))
}
