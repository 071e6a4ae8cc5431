// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package testament

import (
	"github.com/FluffyLabs/iamdead.fyi/crypto/encryption"
	"github.com/FluffyLabs/iamdead.fyi/crypto/shamir"
	"github.com/FluffyLabs/iamdead.fyi/identify"
)

// The root package re-exports the advanced, lower-level operations listed
// alongside secure_message/restore_message so that a single import of this
// module exposes its whole external surface.

// MessageEncryptionKey is crypto/encryption.MessageEncryptionKey.
type MessageEncryptionKey = encryption.MessageEncryptionKey

// EncryptedMessage is crypto/encryption.EncryptedMessage.
type EncryptedMessage = encryption.EncryptedMessage

// Message is crypto/encryption.Message.
type Message = encryption.Message

// ChunksConfiguration is crypto/shamir.ChunksConfiguration.
type ChunksConfiguration = shamir.ChunksConfiguration

// Chunk is crypto/shamir.Chunk.
type Chunk = shamir.Chunk

// Identification is identify.Identification.
type Identification = identify.Identification

var (
	// GenerateMessageEncryptionKey re-exports encryption.GenerateMessageEncryptionKey.
	GenerateMessageEncryptionKey = encryption.GenerateMessageEncryptionKey
	// NewMessageEncryptionKey re-exports encryption.NewMessageEncryptionKey.
	NewMessageEncryptionKey = encryption.NewMessageEncryptionKey
	// EncryptMessage re-exports encryption.EncryptMessage.
	EncryptMessage = encryption.EncryptMessage
	// DecryptMessage re-exports encryption.DecryptMessage.
	DecryptMessage = encryption.DecryptMessage

	// NewChunksConfiguration re-exports shamir.NewChunksConfiguration.
	NewChunksConfiguration = shamir.NewChunksConfiguration
	// SplitIntoChunks re-exports shamir.SplitIntoChunks.
	SplitIntoChunks = shamir.SplitIntoChunks
	// RecoverKey re-exports shamir.RecoverKey.
	RecoverKey = shamir.RecoverKey

	// Identify re-exports identify.Identify.
	Identify = identify.Identify
	// AlterChunksName re-exports identify.AlterChunksName.
	AlterChunksName = identify.AlterChunksName
)
