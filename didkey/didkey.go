// Package didkey implements the multicodec table and key-bytes codec
// used by did:key parsing in package did.
//
// It knows about exactly two curves: P-256 (ES256) and secp256k1
// (ES256K), each identified by a 2-byte multicodec varint prefix
// ahead of a compressed public-key point, the whole thing base58btc-encoded
// with a "z" multibase prefix.
package didkey

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/mr-tron/base58"

	"github.com/AetherLib/aether-atproto/atperr"
)

// Alg is a JOSE algorithm identifier for a did:key-embedded curve.
type Alg string

const (
	AlgES256  Alg = "ES256"
	AlgES256K Alg = "ES256K"
)

// Multicodec prefixes, 2-byte unsigned-varint encodings of the multicodec
// table entries p256-pub (0x1200) and secp256k1-pub (0xe7).
var (
	prefixP256      = [2]byte{0x80, 0x24}
	prefixSecp256k1 = [2]byte{0xE7, 0x01}
)

// Key is a decoded did:key identifier.
type Key struct {
	Alg      Alg
	KeyBytes []byte // compressed public key point
}

// Parse decodes a did:key method-specific identifier (including its
// leading "z") into its algorithm and compressed public key bytes.
func Parse(identifier string) (Key, error) {
	if len(identifier) == 0 || identifier[0] != 'z' {
		return Key{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidIdentifier, "didkey: identifier must start with 'z'")
	}
	decoded, err := base58.Decode(identifier[1:])
	if err != nil {
		return Key{}, atperr.Wrap(atperr.KindIdent, atperr.CodeInvalidIdentifier, "didkey: invalid base58btc", err)
	}
	if len(decoded) < 2 {
		return Key{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidIdentifier, "didkey: truncated multicodec prefix")
	}
	prefix := [2]byte{decoded[0], decoded[1]}
	keyBytes := decoded[2:]
	switch prefix {
	case prefixP256:
		if len(keyBytes) != 33 {
			return Key{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidIdentifier, "didkey: P-256 key must be 33-byte compressed point")
		}
		return Key{Alg: AlgES256, KeyBytes: keyBytes}, nil
	case prefixSecp256k1:
		if len(keyBytes) != 33 {
			return Key{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidIdentifier, "didkey: secp256k1 key must be 33-byte compressed point")
		}
		return Key{Alg: AlgES256K, KeyBytes: keyBytes}, nil
	default:
		return Key{}, atperr.New(atperr.KindIdent, atperr.CodeUnsupportedMethod, "didkey: unrecognized multicodec prefix")
	}
}

// Format is the inverse of Parse: it prepends the multicodec prefix for alg
// to keyBytes and base58btc-encodes the result with a "z" prefix.
func Format(alg Alg, keyBytes []byte) (string, error) {
	var prefix [2]byte
	switch alg {
	case AlgES256:
		prefix = prefixP256
	case AlgES256K:
		prefix = prefixSecp256k1
	default:
		return "", atperr.New(atperr.KindIdent, atperr.CodeUnsupportedMethod, "didkey: unsupported alg "+string(alg))
	}
	buf := make([]byte, 0, 2+len(keyBytes))
	buf = append(buf, prefix[:]...)
	buf = append(buf, keyBytes...)
	return "z" + base58.Encode(buf), nil
}

// CompressSecp256k1 compresses an uncompressed (0x04-prefixed, 65-byte)
// secp256k1 public key point.
func CompressSecp256k1(uncompressed []byte) ([]byte, error) {
	pub, err := btcec.ParsePubKey(uncompressed)
	if err != nil {
		return nil, atperr.Wrap(atperr.KindCrypto, atperr.CodeInvalidJWK, "didkey: invalid secp256k1 point", err)
	}
	return pub.SerializeCompressed(), nil
}

// DecompressSecp256k1 expands a 33-byte compressed secp256k1 point to its
// uncompressed (65-byte) form.
func DecompressSecp256k1(compressed []byte) ([]byte, error) {
	pub, err := btcec.ParsePubKey(compressed)
	if err != nil {
		return nil, atperr.Wrap(atperr.KindCrypto, atperr.CodeInvalidJWK, "didkey: invalid compressed secp256k1 point", err)
	}
	return pub.SerializeUncompressed(), nil
}
