// Package dnssec32 provides encoding and decoding using the Base32-DNSSEC
// extended-hex alphabet (digits 0-9 then letters a-v, case-insensitive, no
// padding). It is used for every wire structure (keys, chunks, message
// parts) that the testament core turns into a printable, QR-code-friendly
// string.
//
// This is a standard, fixed-width-group encoding, so it is built directly on
// top of encoding/base32 with a custom alphabet rather than re-implementing
// bit packing by hand — see encoding/basex in the wider ecosystem for the
// counter-example of a general bignum-based base encoder, which explicitly
// recommends falling back to a dedicated library for common encodings such
// as this one.
package dnssec32
