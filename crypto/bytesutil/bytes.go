// SPDX-FileCopyrightText: 2023-present Datadog, Inc.
// SPDX-License-Identifier: Apache-2.0

package bytesutil

import (
	"fmt"
	"unicode/utf8"
)

// Bytes is a flat, owned byte buffer used to carry key, message, and share
// material through the testament core. The zero value is an empty buffer.
type Bytes struct {
	data []byte
}

// New wraps a copy of the given slice in a Bytes container.
func New(b []byte) Bytes {
	cp := make([]byte, len(b))
	copy(cp, b)
	return Bytes{data: cp}
}

// FromString wraps the UTF-8 bytes of the given string.
func FromString(s string) Bytes {
	return New([]byte(s))
}

// Len returns the number of bytes held by the container.
func (b Bytes) Len() int {
	return len(b.data)
}

// At returns the byte at the given index. It panics if the index is out of
// range, matching the semantics of indexing a slice directly.
func (b Bytes) At(i int) byte {
	return b.data[i]
}

// Raw returns a defensive copy of the underlying bytes. Callers must not
// assume mutations propagate back to the container.
func (b Bytes) Raw() []byte {
	cp := make([]byte, len(b.data))
	copy(cp, b.data)
	return cp
}

// String implements fmt.Stringer with a debug form showing both the UTF-8
// interpretation of the content (when valid) and its lowercase hex encoding.
func (b Bytes) String() string {
	if utf8.Valid(b.data) {
		return fmt.Sprintf("%q (hex:%x)", string(b.data), b.data)
	}
	return fmt.Sprintf("(hex:%x)", b.data)
}

// Wipe overwrites the buffer in place with zero bytes. It is safe to call
// multiple times and safe to call on an empty container.
func (b *Bytes) Wipe() {
	for i := range b.data {
		b.data[i] = 0
	}
}
