// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

// Package shamir implements threshold secret sharing over GF(2^8), used to
// split an encoded MessageEncryptionKey into labelled Chunk shares such that
// any ChunksConfiguration.Required of them reconstruct the key and fewer
// provide no information about it.
//
// The field arithmetic (gf256.go) and the split/reconstruct polynomial
// evaluation (poly.go) are a direct implementation of classic Shamir
// secret sharing; no suitable third-party module for GF(2^8) secret
// sharing was found among the example repositories, so this follows the
// same hand-rolled-primitive posture as crypto/encryption/internal/v0.
package shamir
