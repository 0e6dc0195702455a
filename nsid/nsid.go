// Package nsid implements ATProto namespaced identifiers: a reverse-DNS
// authority plus a name, used pervasively as type and method names.
package nsid

import (
	"strings"

	"github.com/AetherLib/aether-atproto/atperr"
)

const (
	maxTotalLen     = 317
	maxAuthorityLen = 253
	maxSegmentLen   = 63
)

// NSID is a parsed namespaced identifier, e.g. "app.bsky.feed.post".
type NSID struct {
	Authority string // e.g. "app.bsky.feed" (dot-joined segments)
	Name      string // e.g. "post"
}

// String reconstructs the original NSID string.
func (n NSID) String() string {
	if n.Authority == "" {
		return n.Name
	}
	return n.Authority + "." + n.Name
}

// Parse validates and decomposes an NSID string.
func Parse(s string) (NSID, error) {
	if !isASCII(s) {
		return NSID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidFormat, "nsid: must be ASCII")
	}
	if len(s) > maxTotalLen {
		return NSID{}, atperr.New(atperr.KindIdent, atperr.CodeTooLong, "nsid: exceeds 317 characters")
	}

	segments := strings.Split(s, ".")
	if len(segments) < 3 {
		return NSID{}, atperr.New(atperr.KindIdent, atperr.CodeTooFewSegments, "nsid: requires at least 3 segments")
	}

	name := segments[len(segments)-1]
	authoritySegments := segments[:len(segments)-1]
	authority := strings.Join(authoritySegments, ".")

	if len(authority) > maxAuthorityLen {
		return NSID{}, atperr.New(atperr.KindIdent, atperr.CodeAuthorityTooLong, "nsid: authority exceeds 253 characters")
	}

	for i, seg := range authoritySegments {
		if err := validateAuthoritySegment(seg, i == 0); err != nil {
			return NSID{}, err
		}
	}

	if !validateName(name) {
		return NSID{}, atperr.New(atperr.KindIdent, atperr.CodeInvalidName, "nsid: name must match [A-Za-z][A-Za-z0-9]{0,62}")
	}

	return NSID{Authority: authority, Name: name}, nil
}

// MustParse parses s, panicking with a *atperr.ParseError on failure.
func MustParse(s string) NSID {
	return atperr.Must(Parse(s))
}

func validateAuthoritySegment(seg string, isFirst bool) error {
	if seg == "" {
		return atperr.New(atperr.KindIdent, atperr.CodeInvalidAuthoritySegment, "nsid: empty authority segment")
	}
	if len(seg) > maxSegmentLen {
		return atperr.New(atperr.KindIdent, atperr.CodeNameTooLong, "nsid: authority segment exceeds 63 characters")
	}
	for i := 0; i < len(seg); i++ {
		c := seg[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
		isHyphen := c == '-'
		if !isAlnum && !isHyphen {
			return atperr.New(atperr.KindIdent, atperr.CodeInvalidAuthoritySegment, "nsid: authority segments must be lowercase LDH")
		}
	}
	if isFirst && seg[0] >= '0' && seg[0] <= '9' {
		return atperr.New(atperr.KindIdent, atperr.CodeAuthorityStartsWithDigit, "nsid: first authority segment must not start with a digit")
	}
	return nil
}

func validateName(name string) bool {
	if name == "" || len(name) > maxSegmentLen {
		return false
	}
	first := name[0]
	if !((first >= 'A' && first <= 'Z') || (first >= 'a' && first <= 'z')) {
		return false
	}
	for i := 1; i < len(name); i++ {
		c := name[i]
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] > 127 {
			return false
		}
	}
	return true
}
