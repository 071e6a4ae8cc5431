// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package shamir

import (
	"fmt"

	"github.com/FluffyLabs/iamdead.fyi/generator/randomness"
)

// share is one (x, y) evaluation of the secret-sharing polynomial: x is the
// 1-based share coordinate (never 0, which would expose the secret
// directly), y is the per-byte evaluation of the secret's polynomial.
type share struct {
	x    byte
	data []byte
}

// splitSecret splits secret into n shares such that any threshold of them
// reconstruct it exactly, using an independent random polynomial of degree
// threshold-1 per byte of secret.
func splitSecret(secret []byte, n, threshold int) ([]share, error) {
	if threshold < 1 || threshold > n {
		return nil, fmt.Errorf("shamir: threshold must be between 1 and the number of shares")
	}
	if n > 255 {
		return nil, fmt.Errorf("shamir: cannot produce more than 255 shares")
	}

	extraCoeffs := threshold - 1
	randBytes, err := randomness.Bytes(len(secret) * extraCoeffs)
	if err != nil {
		return nil, fmt.Errorf("shamir: unable to generate polynomial coefficients: %w", err)
	}

	shares := make([]share, n)
	for i := range shares {
		shares[i] = share{x: byte(i + 1), data: make([]byte, len(secret))}
	}

	coeffs := make([]byte, threshold)
	for b := range secret {
		coeffs[0] = secret[b]
		copy(coeffs[1:], randBytes[b*extraCoeffs:(b+1)*extraCoeffs])

		for i := range shares {
			shares[i].data[b] = evalPoly(coeffs, shares[i].x)
		}
	}

	return shares, nil
}

// evalPoly evaluates the polynomial with the given coefficients (lowest
// degree first) at x, via Horner's method in GF(2^8).
func evalPoly(coeffs []byte, x byte) byte {
	y := coeffs[len(coeffs)-1]
	for i := len(coeffs) - 2; i >= 0; i-- {
		y = gfMul(y, x) ^ coeffs[i]
	}
	return y
}

// reconstructSecret recovers the original secret from a set of shares using
// Lagrange interpolation at x=0. Every share must carry the same length of
// data.
func reconstructSecret(shares []share) ([]byte, error) {
	if len(shares) == 0 {
		return nil, fmt.Errorf("shamir: no shares provided")
	}

	size := len(shares[0].data)
	for _, s := range shares {
		if len(s.data) != size {
			return nil, fmt.Errorf("shamir: shares have inconsistent data length")
		}
	}

	out := make([]byte, size)
	for b := 0; b < size; b++ {
		var acc byte
		for i, si := range shares {
			term := si.data[b]
			for j, sj := range shares {
				if i == j {
					continue
				}
				// Lagrange basis polynomial at x=0: product of
				// sj.x / (si.x XOR sj.x) over every other share j.
				term = gfMul(term, gfMul(sj.x, gfInv(si.x^sj.x)))
			}
			acc ^= term
		}
		out[b] = acc
	}

	return out, nil
}
