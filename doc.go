// Package testament implements the cryptographic core of iamdead.fyi: it
// protects a plaintext secret (a "testament") so that recovering it requires
// the cooperation of several designated parties.
//
// A secret is encrypted under a freshly generated symmetric key
// (crypto/encryption), the key is split into labelled shares using a
// threshold secret-sharing scheme (crypto/shamir), and every resulting
// artifact is encoded as a short, self-describing, QR-code-friendly string
// (encoding/dnssec32, identify).
//
// The package is synchronous and holds no mutable shared state beyond the
// cryptographic random source used for key and share generation.
package testament
