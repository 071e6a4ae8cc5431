// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package shamir

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitReconstructSecret_roundtrip(t *testing.T) {
	t.Parallel()

	f := fuzz.New().NilChance(0).NumElements(1, 128)

	for n := 2; n <= 8; n++ {
		for threshold := 1; threshold <= n; threshold++ {
			var secret []byte
			f.Fuzz(&secret)

			shares, err := splitSecret(secret, n, threshold)
			require.NoError(t, err)
			assert.Len(t, shares, n)

			got, err := reconstructSecret(shares[:threshold])
			require.NoError(t, err)
			assert.Equal(t, secret, got)
		}
	}
}

func TestSplitSecret_anyThresholdSubsetReconstructs(t *testing.T) {
	t.Parallel()

	secret := []byte("the quick brown fox jumps over the lazy dog")
	shares, err := splitSecret(secret, 5, 3)
	require.NoError(t, err)

	subsets := [][]int{
		{0, 1, 2},
		{1, 2, 3},
		{0, 2, 4},
		{2, 3, 4},
	}
	for _, idxs := range subsets {
		subset := make([]share, len(idxs))
		for i, idx := range idxs {
			subset[i] = shares[idx]
		}
		got, err := reconstructSecret(subset)
		require.NoError(t, err)
		assert.Equal(t, secret, got)
	}
}

func TestReconstructSecret_belowThresholdDoesNotMatch(t *testing.T) {
	t.Parallel()

	secret := []byte("a secret that needs three shares to recover")
	shares, err := splitSecret(secret, 5, 3)
	require.NoError(t, err)

	got, err := reconstructSecret(shares[:2])
	require.NoError(t, err)
	assert.NotEqual(t, secret, got)
}

func TestSplitSecret_thresholdOne(t *testing.T) {
	t.Parallel()

	secret := []byte("no splitting really happens here")
	shares, err := splitSecret(secret, 3, 1)
	require.NoError(t, err)

	for _, s := range shares {
		assert.Equal(t, secret, s.data)
	}
}

func TestSplitSecret_rejectsInvalidThreshold(t *testing.T) {
	t.Parallel()

	_, err := splitSecret([]byte("x"), 3, 0)
	require.Error(t, err)

	_, err = splitSecret([]byte("x"), 3, 4)
	require.Error(t, err)
}

func TestReconstructSecret_rejectsInconsistentLengths(t *testing.T) {
	t.Parallel()

	_, err := reconstructSecret([]share{
		{x: 1, data: []byte{1, 2, 3}},
		{x: 2, data: []byte{1, 2}},
	})
	require.Error(t, err)
}

func TestGFInv_isMultiplicativeInverse(t *testing.T) {
	t.Parallel()

	for a := 1; a < 256; a++ {
		inv := gfInv(byte(a))
		assert.Equal(t, byte(1), gfMul(byte(a), inv))
	}
}
