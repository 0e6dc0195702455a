// Package dpop implements RFC 9449 Demonstrating Proof-of-Possession JWTs:
// short-lived, key-bound proofs OAuth clients attach to requests so a
// stolen access token alone cannot be replayed.
package dpop

import (
	"crypto/ecdsa"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/AetherLib/aether-atproto/atperr"
)

const typ = "dpop+jwt"

// clockSkew is the bidirectional tolerance allowed between a proof's iat
// and the verifier's wall clock.
const clockSkew = 60 * time.Second

// GenerateOptions customizes GenerateProof.
type GenerateOptions struct {
	Nonce       string
	AccessToken string
}

// GenerateProof issues an ES256 DPoP proof JWT for method/url, signed by
// key, embedding key's public half in the header. now is the clock to
// stamp iat with (callers pass time.Now(); tests can fix it).
func GenerateProof(method, url string, key *ecdsa.PrivateKey, now time.Time, opts GenerateOptions) (string, error) {
	jti, err := randomJTI()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"htm": method,
		"htu": url,
		"jti": jti,
		"iat": now.Unix(),
	}
	if opts.Nonce != "" {
		claims["nonce"] = opts.Nonce
	}
	if opts.AccessToken != "" {
		claims["ath"] = athOf(opts.AccessToken)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodES256, claims)
	token.Header["typ"] = typ
	token.Header["jwk"] = jwkFromPublicKey(&key.PublicKey)

	signed, err := token.SignedString(key)
	if err != nil {
		return "", atperr.Wrap(atperr.KindCrypto, atperr.CodeSigningFailed, "dpop: failed to sign proof", err)
	}
	return signed, nil
}

// VerifyOptions customizes VerifyProof.
type VerifyOptions struct {
	AccessToken string
}

// VerifyProof checks proof against method/url (and, if given, an access
// token's ath binding) as of now, following a fixed ordered checklist.
// On success it returns the embedded public key.
func VerifyProof(proof, method, url string, now time.Time, opts VerifyOptions) (*ecdsa.PublicKey, error) {
	if strings.Count(proof, ".") != 2 {
		return nil, atperr.New(atperr.KindFormat, atperr.CodeInvalidJWTFormat, "dpop: proof is not a three-segment JWT")
	}

	var pub *ecdsa.PublicKey
	token, err := jwt.Parse(proof, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodES256.Alg() {
			return nil, atperr.New(atperr.KindCrypto, atperr.CodeInvalidSignature, "dpop: unexpected signing algorithm")
		}
		typHeader, _ := t.Header["typ"].(string)
		if typHeader != typ {
			return nil, atperr.New(atperr.KindFormat, atperr.CodeInvalidTyp, "dpop: typ must be dpop+jwt")
		}
		rawJWK, ok := t.Header["jwk"]
		if !ok {
			return nil, atperr.New(atperr.KindCrypto, atperr.CodeMissingJWK, "dpop: proof header has no jwk")
		}
		k, err := decodeHeaderJWK(rawJWK)
		if err != nil {
			return nil, err
		}
		pub, err = k.toPublicKey()
		if err != nil {
			return nil, err
		}
		return pub, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}))
	if err != nil {
		var tagged *atperr.Error
		if errors.As(err, &tagged) {
			return nil, tagged
		}
		return nil, atperr.Wrap(atperr.KindCrypto, atperr.CodeInvalidSignature, "dpop: signature verification failed", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, atperr.New(atperr.KindFormat, atperr.CodeInvalidFormat, "dpop: malformed claims")
	}

	htm, _ := claims["htm"].(string)
	if htm != method {
		return nil, atperr.New(atperr.KindCrypto, atperr.CodeHTMMismatch, "dpop: htm does not match request method")
	}
	htu, _ := claims["htu"].(string)
	if htu != url {
		return nil, atperr.New(atperr.KindCrypto, atperr.CodeHTUMismatch, "dpop: htu does not match request url")
	}

	iatf, ok := claims["iat"].(float64)
	if !ok {
		return nil, atperr.New(atperr.KindCrypto, atperr.CodeInvalidTimestamp, "dpop: missing iat")
	}
	iat := time.Unix(int64(iatf), 0)
	if diff := now.Sub(iat); diff > clockSkew || diff < -clockSkew {
		return nil, atperr.New(atperr.KindCrypto, atperr.CodeInvalidTimestamp, "dpop: iat outside allowed clock skew")
	}

	jti, _ := claims["jti"].(string)
	if jti == "" {
		return nil, atperr.New(atperr.KindCrypto, atperr.CodeMissingJTI, "dpop: jti is missing or empty")
	}

	if opts.AccessToken != "" {
		ath, _ := claims["ath"].(string)
		if ath == "" {
			return nil, atperr.New(atperr.KindCrypto, atperr.CodeMissingATH, "dpop: ath required but absent")
		}
		if ath != athOf(opts.AccessToken) {
			return nil, atperr.New(atperr.KindCrypto, atperr.CodeInvalidATH, "dpop: ath does not match access token")
		}
	}

	return pub, nil
}

// ExtractJKT returns the thumbprint of proof's embedded JWK without
// verifying its signature — useful for a quick token-binding check
// before the full verification path runs.
func ExtractJKT(proof string) (string, error) {
	parser := jwt.NewParser()
	token, _, err := parser.ParseUnverified(proof, jwt.MapClaims{})
	if err != nil {
		return "", atperr.Wrap(atperr.KindFormat, atperr.CodeInvalidJWTFormat, "dpop: failed to parse proof", err)
	}
	rawJWK, ok := token.Header["jwk"]
	if !ok {
		return "", atperr.New(atperr.KindCrypto, atperr.CodeMissingJWK, "dpop: proof header has no jwk")
	}
	k, err := decodeHeaderJWK(rawJWK)
	if err != nil {
		return "", err
	}
	return calculateJKTFromJWK(k)
}

func decodeHeaderJWK(raw any) (jwk, error) {
	m, ok := raw.(map[string]any)
	if !ok {
		return jwk{}, atperr.New(atperr.KindCrypto, atperr.CodeInvalidJWK, "dpop: jwk header is malformed")
	}
	get := func(key string) string {
		s, _ := m[key].(string)
		return s
	}
	return jwk{Kty: get("kty"), Crv: get("crv"), X: get("x"), Y: get("y")}, nil
}

func athOf(accessToken string) string {
	sum := sha256.Sum256([]byte(accessToken))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func randomJTI() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", atperr.Wrap(atperr.KindCrypto, atperr.CodeMissingJTI, "dpop: failed to generate jti", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
