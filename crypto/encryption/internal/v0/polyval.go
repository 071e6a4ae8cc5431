// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package v0

// POLYVAL operates over GF(2^128) defined by the irreducible polynomial
// x^128 + x^127 + x^126 + x^121 + 1, with bit i of a 16-byte little-endian
// string taken as the coefficient of x^i (RFC 8452 Section 3 - the mirror
// bit order of GHASH, which numbers bit i as the coefficient of x^(127-i)).

// polyvalR is x^127 + x^126 + x^121 + 1 encoded in that same bit order; it
// is XORed in whenever multiplying by x overflows past x^127.
var polyvalR = [16]byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0xc2}

func xorBlock(dst *[16]byte, src [16]byte) {
	for i := range dst {
		dst[i] ^= src[i]
	}
}

// mulX multiplies v by x in the field, reducing modulo the POLYVAL
// polynomial when the shift overflows past bit 127.
func mulX(v *[16]byte) {
	var carry byte
	for i := 0; i < 16; i++ {
		next := v[i] >> 7
		v[i] = (v[i] << 1) | carry
		carry = next
	}
	if carry != 0 {
		xorBlock(v, polyvalR)
	}
}

// polyvalXInv128 is x^-128 = x^127 + x^124 + x^121 + x^114 + 1 in the same
// bit order. POLYVAL's dot operation is a*b*x^-128; polyval folds that
// factor into h once so every step can use the plain product below.
var polyvalXInv128 = [16]byte{0x01, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x04, 0x92}

// dot computes the plain field product a*b: sum of b*x^i over every bit i
// of a that is set.
func dot(a, b [16]byte) [16]byte {
	var z [16]byte
	v := b
	for i := 0; i < 128; i++ {
		byteIdx := i / 8
		bitIdx := uint(i % 8) // nolint:gosec // i is bounded by the loop above
		if a[byteIdx]&(1<<bitIdx) != 0 {
			xorBlock(&z, v)
		}
		mulX(&v)
	}
	return z
}

// polyval computes POLYVAL(h, blocks) = blocks[0]*h'^n + ... + blocks[n-1]*h'
// with h' = h*x^-128, via Horner's method: s := 0; for each block x:
// s := (s XOR x)*h'.
func polyval(h [16]byte, blocks [][16]byte) [16]byte {
	h = dot(h, polyvalXInv128)
	var s [16]byte
	for _, blk := range blocks {
		xorBlock(&s, blk)
		s = dot(s, h)
	}
	return s
}

// padBlocks splits data into 16-byte blocks, zero-padding the final block.
// An empty input yields zero blocks.
func padBlocks(data []byte) [][16]byte {
	if len(data) == 0 {
		return nil
	}
	n := (len(data) + 15) / 16
	blocks := make([][16]byte, n)
	for i := 0; i < n; i++ {
		copy(blocks[i][:], data[i*16:])
	}
	return blocks
}
