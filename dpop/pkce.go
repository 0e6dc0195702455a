package dpop

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"github.com/AetherLib/aether-atproto/atperr"
)

// PKCE (RFC 7636) is DPoP's companion on the authorization-code leg: it
// binds the code exchange to the party that started the flow, the same
// way DPoP binds individual requests to a key. Supplemented alongside
// DPoP since an OAuth client normally carries both.

// GenerateCodeVerifier returns a cryptographically random code_verifier:
// 32 random bytes, base64url-encoded without padding (43 characters,
// within RFC 7636's 43-128 character requirement).
func GenerateCodeVerifier() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", atperr.Wrap(atperr.KindCrypto, atperr.CodeMissingJTI, "pkce: failed to generate code_verifier", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// CodeChallengeS256 computes the S256 code_challenge for verifier:
// base64url(SHA-256(verifier)), no padding.
func CodeChallengeS256(verifier string) string {
	sum := sha256.Sum256([]byte(verifier))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// VerifyCodeChallenge reports whether verifier hashes to challenge under
// the S256 method.
func VerifyCodeChallenge(verifier, challenge string) bool {
	return CodeChallengeS256(verifier) == challenge
}
