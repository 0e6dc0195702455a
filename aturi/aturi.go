// Package aturi implements AT-URIs, the at:// addressing scheme used to
// reference a record (or a repository, or a collection within one) by
// authority, collection NSID, and record key.
package aturi

import (
	"regexp"
	"strings"

	"github.com/AetherLib/aether-atproto/atperr"
	"github.com/AetherLib/aether-atproto/did"
	"github.com/AetherLib/aether-atproto/nsid"
)

const (
	scheme     = "at://"
	maxURILen  = 8192
	maxRkeyLen = 512
)

var rkeyPattern = regexp.MustCompile(`^[A-Za-z0-9._~:@!$&'()*+,;=%\-]+$`)

// ATURI is a parsed at:// URI.
type ATURI struct {
	Authority  string // a DID string or a handle
	Collection string // an NSID, or "" if absent
	Rkey       string // record key, or "" if absent
	Fragment   string // without leading '#', or "" if absent
}

// String reconstructs the original at:// URI.
func (u ATURI) String() string {
	var b strings.Builder
	b.WriteString(scheme)
	b.WriteString(u.Authority)
	if u.Collection != "" {
		b.WriteByte('/')
		b.WriteString(u.Collection)
		if u.Rkey != "" {
			b.WriteByte('/')
			b.WriteString(u.Rkey)
		}
	}
	if u.Fragment != "" {
		b.WriteByte('#')
		b.WriteString(u.Fragment)
	}
	return b.String()
}

// Parse validates and decomposes an at:// URI.
func Parse(s string) (ATURI, error) {
	if len(s) > maxURILen {
		return ATURI{}, atperr.New(atperr.KindFormat, atperr.CodeURITooLong, "aturi: exceeds 8192 bytes")
	}
	if !strings.HasPrefix(s, scheme) {
		return ATURI{}, atperr.New(atperr.KindFormat, atperr.CodeInvalidFormat, "aturi: missing 'at://' scheme")
	}
	rest := s[len(scheme):]

	fragment := ""
	if idx := strings.IndexByte(rest, '#'); idx >= 0 {
		fragment = rest[idx+1:]
		rest = rest[:idx]
	}

	parts := strings.SplitN(rest, "/", 3)
	authority := parts[0]
	if authority == "" {
		return ATURI{}, atperr.New(atperr.KindFormat, atperr.CodeMissingAuthority, "aturi: missing authority")
	}
	if err := validateAuthority(authority); err != nil {
		return ATURI{}, err
	}

	u := ATURI{Authority: authority, Fragment: fragment}

	if len(parts) >= 2 && parts[1] != "" {
		n, err := nsid.Parse(parts[1])
		if err != nil {
			return ATURI{}, atperr.Wrap(atperr.KindIdent, atperr.CodeInvalidCollection, "aturi: invalid collection", err)
		}
		u.Collection = n.String()
	}

	if len(parts) >= 3 && parts[2] != "" {
		rkey := parts[2]
		if len(rkey) > maxRkeyLen {
			return ATURI{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidRkey, "aturi: rkey exceeds 512 characters")
		}
		if !rkeyPattern.MatchString(rkey) {
			return ATURI{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidRkey, "aturi: rkey contains disallowed characters")
		}
		u.Rkey = rkey
	}

	return u, nil
}

// MustParse parses s, panicking with a *atperr.ParseError on failure.
func MustParse(s string) ATURI {
	return atperr.Must(Parse(s))
}

func validateAuthority(authority string) error {
	if strings.HasPrefix(authority, "did:") {
		_, err := did.Parse(authority)
		if err != nil {
			return atperr.Wrap(atperr.KindIdent, atperr.CodeInvalidDID, "aturi: invalid DID authority", err)
		}
		return nil
	}
	if !isHandleShaped(authority) {
		return atperr.New(atperr.KindIdent, atperr.CodeInvalidHandle, "aturi: authority is not a DID or a domain-shaped handle")
	}
	return nil
}

func isHandleShaped(s string) bool {
	labels := strings.Split(s, ".")
	if len(labels) < 2 {
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
