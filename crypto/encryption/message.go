// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package encryption

import (
	"github.com/FluffyLabs/iamdead.fyi/crypto/bytesutil"
	"github.com/FluffyLabs/iamdead.fyi/crypto/encryption/internal/v0"
	"github.com/FluffyLabs/iamdead.fyi/crypto/hashutil"
)

// Message is plaintext paired with the nonce it will be sealed under.
type Message struct {
	data  bytesutil.Bytes
	nonce [v0.NonceSize]byte
}

// NewMessage pairs explicit plaintext and nonce bytes. The nonce must be
// exactly v0.NonceSize bytes long; callers pairing this message with a key
// they intend to reuse are responsible for nonce uniqueness.
func NewMessage(data, nonce []byte) (Message, error) {
	if len(nonce) != v0.NonceSize {
		return Message{}, ErrInvalidKeySize
	}
	var n [v0.NonceSize]byte
	copy(n[:], nonce)
	return Message{data: bytesutil.New(data), nonce: n}, nil
}

// MessageFromString builds a Message from a UTF-8 string, deriving its
// nonce deterministically as the first 12 bytes of BLAKE2b-512(data). This
// is safe only when paired with a freshly generated key, as the orchestrator
// always does.
func MessageFromString(s string) Message {
	data := []byte(s)
	digest := hashutil.FromBytes(data).Bytes()

	var n [v0.NonceSize]byte
	copy(n[:], digest[:v0.NonceSize])

	return Message{data: bytesutil.New(data), nonce: n}
}

// Data returns a defensive copy of the plaintext bytes.
func (m Message) Data() []byte {
	return m.data.Raw()
}

// Nonce returns the 12-byte nonce bound to this message.
func (m Message) Nonce() [v0.NonceSize]byte {
	return m.nonce
}

// Wipe overwrites the message's plaintext bytes with zero.
func (m *Message) Wipe() {
	m.data.Wipe()
}
