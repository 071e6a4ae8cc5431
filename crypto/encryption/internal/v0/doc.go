// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package v0 implements AEAD_AES_256_GCM_SIV as specified in RFC 8452.
//
// AES-GCM-SIV is not available in the Go standard library or in
// golang.org/x/crypto, and none of the available third-party modules cover
// it (https://github.com/golang/go/issues/54364 is still open). The primitive
// itself is therefore built directly from crypto/aes and crypto/subtle:
// AES-256 in ECB mode for key derivation and keystream generation, and a
// from-scratch POLYVAL universal hash (RFC 8452 Section 3) for
// authentication.
//
// ## Algorithm
//
// ```
// (authKey, encKey) := derive_keys(key, nonce)  // AES-256-ECB, 6 key blocks
// S  := POLYVAL(authKey, pad(aad) || pad(plaintext) || lengthBlock)
// S  := S XOR (nonce || 0^32)
// S  := S with the top bit cleared
// tag := AES-256-ECB(encKey, S)
// ciphertext := plaintext XOR AES-256-CTR(encKey, tag | top-bit-set)
// sealed := ciphertext || tag
// ```
//
// Decryption runs the keystream first (SIV: the tag is the CTR counter),
// then recomputes and compares the tag in constant time.
package v0
