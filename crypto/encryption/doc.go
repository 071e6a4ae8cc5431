// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package encryption implements the versioned symmetric-encryption layer of
// the testament core: MessageEncryptionKey (a wiped-on-drop 256-bit key),
// Message (plaintext paired with its nonce), and EncryptedMessage (the
// sealed ciphertext together with its splittable multi-part wire format).
// The underlying AEAD is AEAD_AES_256_GCM_SIV, implemented in the internal
// v0 sub-package.
package encryption
