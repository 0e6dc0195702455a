package did

import (
	"strings"

	"github.com/AetherLib/aether-atproto/atperr"
	"github.com/AetherLib/aether-atproto/didkey"
)

const plcAlphabet = "abcdefghijklmnopqrstuvwxyz234567"

// validatePLC checks the 24-char, a-z2-7 alphabet identifier of did:plc.
func validatePLC(identifier string) error {
	if len(identifier) != 24 {
		return atperr.New(atperr.KindIdent, atperr.CodeInvalidIdentifier, "did:plc: identifier must be 24 characters")
	}
	for i := 0; i < len(identifier); i++ {
		if !strings.ContainsRune(plcAlphabet, rune(identifier[i])) {
			return atperr.New(atperr.KindIdent, atperr.CodeInvalidIdentifier, "did:plc: identifier must match [a-z2-7]")
		}
	}
	return nil
}

// validateWeb checks the domain (+ optional colon-separated path) identifier
// of did:web.
func validateWeb(identifier string) error {
	domain := identifier
	if idx := strings.IndexByte(identifier, ':'); idx >= 0 {
		domain = identifier[:idx]
	}
	if domain == "" {
		return atperr.New(atperr.KindIdent, atperr.CodeMissingAuthority, "did:web: missing domain")
	}
	if len(domain) > 253 {
		return atperr.New(atperr.KindIdent, atperr.CodeTooLong, "did:web: domain exceeds 253 characters")
	}
	if !isRFC1123Domain(domain) {
		return atperr.New(atperr.KindIdent, atperr.CodeInvalidIdentifier, "did:web: domain is not RFC-1123 LDH compliant")
	}
	return nil
}

func isRFC1123Domain(domain string) bool {
	labels := strings.Split(domain, ".")
	if len(labels) == 0 {
		return false
	}
	for _, label := range labels {
		if !isLDHLabel(label) {
			return false
		}
	}
	return true
}

func isLDHLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for i := 0; i < len(label); i++ {
		c := label[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum && c != '-' {
			return false
		}
	}
	return true
}

// validateKey checks that the identifier decodes as a did:key multicodec
// public key.
func validateKey(identifier string) error {
	_, err := didkey.Parse(identifier)
	return err
}
