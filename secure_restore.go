// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package testament

import (
	"errors"
	"fmt"
	"strings"

	"github.com/FluffyLabs/iamdead.fyi/crypto/encryption"
	"github.com/FluffyLabs/iamdead.fyi/crypto/shamir"
	"github.com/FluffyLabs/iamdead.fyi/encoding/dnssec32"
	"github.com/FluffyLabs/iamdead.fyi/identify"
	"github.com/FluffyLabs/iamdead.fyi/log"
)

// ErrNoPlaintext is returned by RestoreMessage when no message parts are
// given at all, before any decoding or decryption is attempted.
var ErrNoPlaintext = errors.New("testament: no message parts to restore")

// SecuredMessage is the output of SecureMessage: the encoded message parts
// and the encoded Shamir chunks, ready to print, embed in QR codes, or hand
// to recipients.
type SecuredMessage struct {
	EncryptedMessage []string
	Chunks           []string
}

// SecureMessage encrypts message under a freshly generated key, splits that
// key into config.Required+config.Spare Shamir chunks, and encodes every
// artifact as a prefixed Base32-DNSSEC string. split controls how the
// ciphertext is fragmented across message parts; nil produces a single
// part.
func SecureMessage(message string, split *int, config shamir.ChunksConfiguration) (SecuredMessage, error) {
	msg := encryption.MessageFromString(message)
	defer msg.Wipe()

	key, err := encryption.GenerateMessageEncryptionKey()
	if err != nil {
		return SecuredMessage{}, fmt.Errorf("testament: unable to generate key: %w", err)
	}
	defer key.Wipe()

	encrypted, err := encryption.EncryptMessage(key, msg)
	if err != nil {
		return SecuredMessage{}, err
	}

	chunks, err := shamir.SplitIntoChunks(key, config)
	if err != nil {
		return SecuredMessage{}, err
	}

	parts := encrypted.SplitAndEncode(split)
	encodedParts := make([]string, len(parts))
	for i, p := range parts {
		encodedParts[i] = identify.MsgPrefix + dnssec32.Encode(p)
	}

	encodedChunks := make([]string, len(chunks))
	for i, c := range chunks {
		encodedChunks[i] = c.Encode()
	}

	log.Field("part_count", len(encodedParts)).
		Field("chunk_count", len(encodedChunks)).
		Field("required", config.Required).
		Field("spare", config.Spare).
		Message("testament: secured message")

	return SecuredMessage{EncryptedMessage: encodedParts, Chunks: encodedChunks}, nil
}

// RestoreMessage reverses SecureMessage: it collates the encoded message
// parts, recovers the key from the encoded chunks, decrypts, and returns
// the plaintext as a UTF-8 string (invalid sequences are replaced, mirroring
// the lossy UTF-8 recovery spec.md asks for).
func RestoreMessage(messages []string, chunks []string) (string, error) {
	if len(messages) == 0 {
		return "", ErrNoPlaintext
	}

	parts := make([][]byte, len(messages))
	for i, m := range messages {
		body, ok := strings.CutPrefix(m, identify.MsgPrefix)
		if !ok {
			return "", fmt.Errorf("testament: %q: %w", m, identify.ErrMissingPrefix)
		}
		payload, err := dnssec32.Decode(body)
		if err != nil {
			return "", err
		}
		parts[i] = payload
	}

	encrypted, err := encryption.CollateFromParts(parts)
	if err != nil {
		return "", err
	}

	decodedChunks := make([]shamir.Chunk, len(chunks))
	for i, c := range chunks {
		chunk, _, err := shamir.DecodeChunkString(c)
		if err != nil {
			return "", err
		}
		decodedChunks[i] = chunk
	}

	key, err := shamir.RecoverKey(decodedChunks)
	if err != nil {
		return "", err
	}
	defer key.Wipe()

	plaintext, err := encryption.DecryptMessage(key, encrypted)
	if err != nil {
		return "", err
	}

	log.Field("chunk_count", len(chunks)).Message("testament: restored message")

	return toUTF8Lossy(plaintext), nil
}

func toUTF8Lossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
