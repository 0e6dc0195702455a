// Package did implements strict parsing and normalisation for the three
// DID methods ATProto recognises: plc, web, key.
package did

import (
	"strings"

	"github.com/AetherLib/aether-atproto/atperr"
)

// Method is one of the three DID methods this module supports.
type Method string

const (
	MethodPLC Method = "plc"
	MethodWeb Method = "web"
	MethodKey Method = "key"
)

// DID is a parsed decentralized identifier.
//
// Identifier is the method-specific identifier exactly as it appeared in
// the source string (case preserved) — normalisation is a separate step
// (see Normalize), so a parsed, non-normalised DID still round-trips via
// String.
type DID struct {
	Method     Method
	Identifier string
	rawQuery   string
	rawFrag    string
	query      *Query
}

// Fragment returns the DID's fragment (without the leading '#'), or "" if
// none was present.
func (d DID) Fragment() string { return d.rawFrag }

// Query returns the DID's parsed query parameters.
func (d DID) Query() *Query {
	if d.query == nil {
		return &Query{}
	}
	return d.query
}

// String reconstructs the DID's original string form.
func (d DID) String() string {
	var b strings.Builder
	b.WriteString("did:")
	b.WriteString(string(d.Method))
	b.WriteByte(':')
	b.WriteString(d.Identifier)
	if d.rawQuery != "" {
		b.WriteByte('?')
		b.WriteString(d.rawQuery)
	}
	if d.rawFrag != "" {
		b.WriteByte('#')
		b.WriteString(d.rawFrag)
	}
	return b.String()
}

// Parse validates and decomposes a DID string.
//
// Parse requires the scheme and method label to already be lowercase (the
// W3C method-name character class is lowercase alphanumeric) — a DID
// string with an uppercase scheme or method is rejected here; use
// Normalize to repair such strings first.
func Parse(s string) (DID, error) {
	return parse(s, false)
}

// MustParse parses s, panicking with a *atperr.ParseError on failure.
func MustParse(s string) DID {
	return atperr.Must(Parse(s))
}

func parse(s string, lenient bool) (DID, error) {
	const scheme = "did:"
	if lenient {
		if len(s) < len(scheme) || !strings.EqualFold(s[:len(scheme)], scheme) {
			return DID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidDID, "did: missing 'did:' scheme")
		}
	} else {
		if !strings.HasPrefix(s, scheme) {
			return DID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidDID, "did: missing 'did:' scheme")
		}
	}
	rest := s[len(scheme):]

	colon := strings.IndexByte(rest, ':')
	if colon < 0 {
		return DID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidDID, "did: missing method separator")
	}
	methodStr := rest[:colon]
	body := rest[colon+1:]

	if !lenient && !isLowerAlphaNum(methodStr) {
		return DID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidDID, "did: method name must be lowercase alphanumeric")
	}
	if lenient && !isLowerAlphaNum(strings.ToLower(methodStr)) {
		return DID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidDID, "did: method name must be alphanumeric")
	}

	method := Method(strings.ToLower(methodStr))
	switch method {
	case MethodPLC, MethodWeb, MethodKey:
	default:
		return DID{}, atperr.Wrap(atperr.KindIdent, atperr.CodeUnsupportedMethod, "did: unsupported method "+methodStr, nil)
	}

	if body == "" {
		return DID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidDID, "did: missing method-specific identifier")
	}

	// Fragment is split off first (it runs to the end of the string),
	// then query is split off the remainder.
	identPart := body
	frag := ""
	if idx := strings.IndexByte(identPart, '#'); idx >= 0 {
		frag = identPart[idx+1:]
		identPart = identPart[:idx]
	}
	query := ""
	if idx := strings.IndexByte(identPart, '?'); idx >= 0 {
		query = identPart[idx+1:]
		identPart = identPart[:idx]
	}

	if identPart == "" {
		return DID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidDID, "did: missing method-specific identifier")
	}
	if strings.HasSuffix(identPart, ":") {
		return DID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidDID, "did: trailing ':' not allowed")
	}
	if !genericIdentCharsetValid(identPart) {
		return DID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidIdentifier, "did: identifier contains disallowed characters")
	}

	switch method {
	case MethodPLC:
		plcIdent := identPart
		if lenient {
			// Normalize lowercases a plc identifier, so its alphabet is
			// checked on the lowercase form.
			plcIdent = strings.ToLower(plcIdent)
		}
		if err := validatePLC(plcIdent); err != nil {
			return DID{}, err
		}
	case MethodWeb:
		if err := validateWeb(identPart); err != nil {
			return DID{}, err
		}
	case MethodKey:
		if err := validateKey(identPart); err != nil {
			return DID{}, err
		}
	}

	d := DID{Method: method, Identifier: identPart, rawQuery: query, rawFrag: frag}
	d.query = parseQuery(query)
	return d, nil
}

func isLowerAlphaNum(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !((c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')) {
			return false
		}
	}
	return true
}

// genericIdentCharsetValid checks the W3C baseline charset for a
// method-specific identifier: alphanumeric plus ". - _ : %", with %HH
// pct-encoding pairs requiring exactly two hex digits.
func genericIdentCharsetValid(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			continue
		case c == '.' || c == '-' || c == '_' || c == ':':
			continue
		case c == '%':
			if i+2 >= len(s) || !isHex(s[i+1]) || !isHex(s[i+2]) {
				return false
			}
			i += 2
		default:
			return false
		}
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
