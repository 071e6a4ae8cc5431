// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package shamir

import (
	"errors"
	"fmt"

	"github.com/FluffyLabs/iamdead.fyi/crypto/bytesutil"
	"github.com/FluffyLabs/iamdead.fyi/crypto/encryption"
	"github.com/FluffyLabs/iamdead.fyi/crypto/hashutil"
)

// Key recovery error taxonomy. These are wrapped with fmt.Errorf and
// inspected with errors.Is by callers.
var (
	ErrInconsistentChunks        = errors.New("shamir: chunks do not share the same key hash")
	ErrInconsistentConfiguration = errors.New("shamir: chunks do not share the same configuration")
	ErrNotEnoughChunks           = errors.New("shamir: not enough chunks to reach the required threshold")
	ErrUnexpectedKey             = errors.New("shamir: reconstructed key does not match the expected hash")
	ErrKeyDecodingError          = errors.New("shamir: unable to decode the reconstructed key")
)

// SplitIntoChunks splits key's encoded wire bytes into
// config.Required+config.Spare Chunk shares, any config.Required of which
// reconstruct it.
func SplitIntoChunks(key *encryption.MessageEncryptionKey, config ChunksConfiguration) ([]Chunk, error) {
	payload, err := key.EncodePayload()
	if err != nil {
		return nil, fmt.Errorf("shamir: unable to encode key: %w", err)
	}

	keyHash := hashutil.FromBytes(payload)

	shares, err := splitSecret(payload, config.Shares(), int(config.Required))
	if err != nil {
		return nil, err
	}

	chunks := make([]Chunk, len(shares))
	for i, s := range shares {
		chunks[i] = Chunk{
			Version: VersionV0,
			KeyHash: keyHash,
			Config:  config,
			Index:   uint8(i), // nolint:gosec // bounded by config validation (<=254)
			Data:    bytesutil.New(s.data),
		}
	}
	return chunks, nil
}

// RecoverKey reconstructs a MessageEncryptionKey from an unordered
// collection of Chunk shares. At least config.Required of them, all
// sharing the same key hash and configuration, must be present.
func RecoverKey(chunks []Chunk) (*encryption.MessageEncryptionKey, error) {
	if len(chunks) == 0 {
		return nil, ErrNotEnoughChunks
	}

	first := chunks[0]
	seenIndex := map[uint8]bool{first.Index: true}
	for _, c := range chunks[1:] {
		if c.Config != first.Config {
			return nil, ErrInconsistentConfiguration
		}
		if !c.KeyHash.Equal(first.KeyHash) {
			return nil, ErrInconsistentChunks
		}
		if seenIndex[c.Index] {
			return nil, fmt.Errorf("%w: duplicate chunk index %d", ErrInconsistentChunks, c.Index)
		}
		seenIndex[c.Index] = true
	}

	if len(chunks) < int(first.Config.Required) {
		return nil, ErrNotEnoughChunks
	}

	shares := make([]share, len(chunks))
	for i, c := range chunks {
		shares[i] = share{x: c.Index + 1, data: c.Data.Raw()}
	}

	candidate, err := reconstructSecret(shares)
	if err != nil {
		return nil, fmt.Errorf("shamir: %w", err)
	}

	if !hashutil.FromBytes(candidate).Equal(first.KeyHash) {
		return nil, ErrUnexpectedKey
	}

	key, err := encryption.DecodeMessageEncryptionKeyPayload(candidate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrKeyDecodingError, err)
	}
	return key, nil
}
