// Package codec implements the per-column encoding pipelines available to
// a container's columns: delta+zigzag+varint, dictionary+varint,
// run-length, and raw, each wrapped in a block tagged by a single
// codec-tag byte.
package codec

import (
	"fmt"
)

// PutUvarint appends the base-128 little-endian varint encoding of v to
// dst and returns the extended slice. The encoding is always minimal: no
// trailing 0x80 continuation bytes are emitted.
func PutUvarint(dst []byte, v uint64) []byte {
	for v >= 0x80 {
		dst = append(dst, byte(v)|0x80)
		v >>= 7
	}
	return append(dst, byte(v))
}

// Uvarint decodes a varint from the start of src, returning the value and
// the number of bytes consumed. It returns (0, 0) if src does not contain
// a complete, minimal varint, which callers surface as ErrVarintOverflow.
func Uvarint(src []byte) (uint64, int) {
	var v uint64
	var shift uint
	for i, b := range src {
		if i >= 10 || (i == 9 && b > 1) {
			// More than 64 bits' worth of continuation bytes: this can
			// never be a valid encoding of a uint64.
			return 0, 0
		}
		v |= uint64(b&0x7f) << shift
		if b < 0x80 {
			if i > 0 && b == 0 {
				// A continuation byte of 0x80 followed by a final zero
				// byte is a non-minimal encoding: reject it so minimality
				// is enforced on decode, not just on encode.
				return 0, 0
			}
			return v, i + 1
		}
		shift += 7
	}
	return 0, 0
}

// ErrVarintOverflow is returned when Uvarint cannot find a complete,
// minimal varint within src.
var ErrVarintOverflow = fmt.Errorf("codec: varint overflow or truncated")

// ReadUvarint is like Uvarint but returns an error instead of (0, 0) on
// failure, and the remaining unread slice for convenient chaining.
func ReadUvarint(src []byte) (value uint64, rest []byte, err error) {
	v, n := Uvarint(src)
	if n == 0 {
		return 0, nil, ErrVarintOverflow
	}
	return v, src[n:], nil
}
