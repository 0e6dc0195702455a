package dpop

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"math/big"

	"github.com/AetherLib/aether-atproto/atperr"
)

// jwk is the canonical EC public-key JSON Web Key subset this module
// reads and writes: {kty, crv, x, y}. Unexported — callers deal in
// *ecdsa.PublicKey and let GenerateProof/VerifyProof carry it across the
// wire embedded in the JWT header.
type jwk struct {
	Kty string `json:"kty"`
	Crv string `json:"crv"`
	X   string `json:"x"`
	Y   string `json:"y"`
}

func jwkFromPublicKey(pub *ecdsa.PublicKey) jwk {
	size := (pub.Curve.Params().BitSize + 7) / 8
	return jwk{
		Kty: "EC",
		Crv: "P-256",
		X:   base64.RawURLEncoding.EncodeToString(pub.X.FillBytes(make([]byte, size))),
		Y:   base64.RawURLEncoding.EncodeToString(pub.Y.FillBytes(make([]byte, size))),
	}
}

func (k jwk) toPublicKey() (*ecdsa.PublicKey, error) {
	if k.Kty != "EC" || k.Crv != "P-256" {
		return nil, atperr.New(atperr.KindCrypto, atperr.CodeInvalidJWK, "dpop: only EC P-256 JWKs are supported")
	}
	xb, err := base64.RawURLEncoding.DecodeString(k.X)
	if err != nil {
		return nil, atperr.Wrap(atperr.KindCrypto, atperr.CodeInvalidJWK, "dpop: invalid jwk.x", err)
	}
	yb, err := base64.RawURLEncoding.DecodeString(k.Y)
	if err != nil {
		return nil, atperr.Wrap(atperr.KindCrypto, atperr.CodeInvalidJWK, "dpop: invalid jwk.y", err)
	}
	return &ecdsa.PublicKey{
		Curve: elliptic.P256(),
		X:     new(big.Int).SetBytes(xb),
		Y:     new(big.Int).SetBytes(yb),
	}, nil
}

// calculateJKTFromJWK computes the RFC 7638 thumbprint of k: the SHA-256
// digest of the canonical {crv,kty,x,y} JSON object (lexicographic key
// order, no insignificant whitespace), base64url-encoded without padding.
func calculateJKTFromJWK(k jwk) (string, error) {
	canonical := struct {
		Crv string `json:"crv"`
		Kty string `json:"kty"`
		X   string `json:"x"`
		Y   string `json:"y"`
	}{Crv: k.Crv, Kty: k.Kty, X: k.X, Y: k.Y}
	data, err := json.Marshal(canonical)
	if err != nil {
		return "", atperr.Wrap(atperr.KindCrypto, atperr.CodeInvalidJWK, "dpop: failed to canonicalize jwk", err)
	}
	sum := sha256.Sum256(data)
	return base64.RawURLEncoding.EncodeToString(sum[:]), nil
}

// CalculateJKT is the RFC 7638 JWK thumbprint of pub.
func CalculateJKT(pub *ecdsa.PublicKey) (string, error) {
	return calculateJKTFromJWK(jwkFromPublicKey(pub))
}
