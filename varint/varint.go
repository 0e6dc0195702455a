// Package varint implements the unsigned-varint little-endian base-128
// continuation-bit encoding used throughout IPFS multiformats and by the
// CAR container codec.
package varint

import (
	"github.com/multiformats/go-varint"

	"github.com/AetherLib/aether-atproto/atperr"
)

// Encode returns the unsigned-varint encoding of n.
func Encode(n uint64) []byte {
	return varint.ToUvarint(n)
}

// Decode reads a single varint from the front of b and returns the decoded
// value along with the remaining, unconsumed bytes.
//
// It fails with atperr.CodeInsufficientData on empty input or on input that
// ends in a continuation byte before a terminator is found.
func Decode(b []byte) (value uint64, rest []byte, err error) {
	if len(b) == 0 {
		return 0, nil, atperr.New(atperr.KindCAS, atperr.CodeInsufficientData, "varint: empty input")
	}
	n, bytesRead, derr := varint.FromUvarint(b)
	if derr != nil {
		return 0, nil, atperr.Wrap(atperr.KindCAS, atperr.CodeInsufficientData, "varint: incomplete or malformed varint", derr)
	}
	return n, b[bytesRead:], nil
}

// EncodedLen returns the number of bytes Encode(n) would produce, without
// allocating.
func EncodedLen(n uint64) int {
	return varint.UvarintSize(n)
}
