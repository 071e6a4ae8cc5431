// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package randomness

import "io"

// deterministicPurpose scopes DeterministicReader's output away from any
// other DRNG consumer that might share a seed.
const deterministicPurpose = "iamdead.fyi/testament: deterministic test rng"

// DeterministicReader returns a reproducible random-byte stream derived
// from seed: identical seeds yield byte-identical output. It is a
// standalone test helper: Bytes, and the key and share generation built on
// it, always read from crypto/rand and never consume this reader, since the
// RNG is not a parameter of the core API. Not for production use: seed must be kept
// secret to keep the stream unpredictable, which defeats the purpose of
// a reproducible test fixture in a real deployment.
func DeterministicReader(seed []byte) (io.Reader, error) {
	return DRNG(seed, deterministicPurpose)
}
