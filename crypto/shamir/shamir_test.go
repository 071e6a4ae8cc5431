// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package shamir

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FluffyLabs/iamdead.fyi/crypto/encryption"
)

func newTestKey(t *testing.T, fill byte) *encryption.MessageEncryptionKey {
	t.Helper()
	raw := make([]byte, 32)
	for i := range raw {
		raw[i] = fill
	}
	key, err := encryption.NewMessageEncryptionKey(raw)
	require.NoError(t, err)
	return key
}

func TestSplitIntoChunks_knownAnswerShape(t *testing.T) {
	t.Parallel()

	// Key = 32x0x01, config (required=2, spare=1) yields 3 chunks sharing
	// one key hash; any two of them recover the original key.
	key := newTestKey(t, 0x01)
	config, err := NewChunksConfiguration(2, 1)
	require.NoError(t, err)

	chunks, err := SplitIntoChunks(key, config)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	for _, c := range chunks {
		assert.Equal(t, VersionV0, c.Version)
		assert.Equal(t, config, c.Config)
		assert.True(t, c.KeyHash.Equal(chunks[0].KeyHash))
	}

	recovered, err := RecoverKey(chunks[:2])
	require.NoError(t, err)
	want, err := key.EncodePayload()
	require.NoError(t, err)
	got, err := recovered.EncodePayload()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSplitIntoChunks_recoverFromAnyTwoOfThree(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 0x42)
	config, err := NewChunksConfiguration(2, 1)
	require.NoError(t, err)

	chunks, err := SplitIntoChunks(key, config)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	wantPayload, err := key.EncodePayload()
	require.NoError(t, err)

	pairs := [][]int{{0, 1}, {0, 2}, {1, 2}}
	for _, pair := range pairs {
		subset := []Chunk{chunks[pair[0]], chunks[pair[1]]}
		recovered, err := RecoverKey(subset)
		require.NoError(t, err)
		gotPayload, err := recovered.EncodePayload()
		require.NoError(t, err)
		assert.Equal(t, wantPayload, gotPayload)
	}
}

func TestRecoverKey_notEnoughChunks(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 0x03)
	config, err := NewChunksConfiguration(3, 0)
	require.NoError(t, err)

	chunks, err := SplitIntoChunks(key, config)
	require.NoError(t, err)

	_, err = RecoverKey(chunks[:2])
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEnoughChunks))

	_, err = RecoverKey(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotEnoughChunks))
}

func TestRecoverKey_inconsistentConfiguration(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 0x07)
	configA, err := NewChunksConfiguration(2, 0)
	require.NoError(t, err)
	configB, err := NewChunksConfiguration(3, 0)
	require.NoError(t, err)

	chunksA, err := SplitIntoChunks(key, configA)
	require.NoError(t, err)
	chunksB, err := SplitIntoChunks(key, configB)
	require.NoError(t, err)

	mixed := []Chunk{chunksA[0], chunksB[0]}
	_, err = RecoverKey(mixed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistentConfiguration))
}

func TestRecoverKey_inconsistentChunks(t *testing.T) {
	t.Parallel()

	config, err := NewChunksConfiguration(2, 0)
	require.NoError(t, err)

	keyA := newTestKey(t, 0x11)
	keyB := newTestKey(t, 0x22)

	chunksA, err := SplitIntoChunks(keyA, config)
	require.NoError(t, err)
	chunksB, err := SplitIntoChunks(keyB, config)
	require.NoError(t, err)

	mixed := []Chunk{chunksA[0], chunksB[1]}
	_, err = RecoverKey(mixed)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistentChunks))
}

func TestRecoverKey_duplicateIndex(t *testing.T) {
	t.Parallel()

	key := newTestKey(t, 0x13)
	config, err := NewChunksConfiguration(2, 1)
	require.NoError(t, err)

	chunks, err := SplitIntoChunks(key, config)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	// Same chunk submitted twice must be rejected before reaching the
	// Lagrange reconstruction, which would otherwise divide by zero on two
	// shares carrying the same index.
	duplicated := []Chunk{chunks[0], chunks[0]}
	_, err = RecoverKey(duplicated)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInconsistentChunks))
}

func TestSplitIntoChunks_requiredOneDegenerateCase(t *testing.T) {
	t.Parallel()

	// When required == 1, each share carries the whole encoded key.
	key := newTestKey(t, 0x09)
	config, err := NewChunksConfiguration(1, 2)
	require.NoError(t, err)

	chunks, err := SplitIntoChunks(key, config)
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	wantPayload, err := key.EncodePayload()
	require.NoError(t, err)

	for _, c := range chunks {
		assert.Equal(t, wantPayload, c.Data.Raw())
	}

	recovered, err := RecoverKey(chunks[:1])
	require.NoError(t, err)
	gotPayload, err := recovered.EncodePayload()
	require.NoError(t, err)
	assert.Equal(t, wantPayload, gotPayload)
}
