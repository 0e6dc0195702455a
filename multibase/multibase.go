// Package multibase routes an encoded string to the base codec selected by
// its single-character prefix.
//
// Base16/32/58btc routing matches the standard IPFS multibase table exactly
// and is delegated to go-multibase. The three base64 variants are handled
// directly against stdlib encoding/base64 because the padding semantics
// required here for 'm'/'u'/'U' diverge from the upstream multibase table
// (see DESIGN.md for the rationale).
package multibase

import (
	"encoding/base64"

	gomultibase "github.com/multiformats/go-multibase"

	"github.com/AetherLib/aether-atproto/atperr"
)

// Prefix is a single-character multibase routing prefix.
type Prefix byte

const (
	PrefixBase16      Prefix = 'f'
	PrefixBase16Upper Prefix = 'F'
	PrefixBase32      Prefix = 'b'
	PrefixBase32Upper Prefix = 'B'
	PrefixBase58BTC   Prefix = 'z'
	PrefixBase64      Prefix = 'm'
	PrefixBase64URL   Prefix = 'u'
	PrefixBase64URLPad Prefix = 'U'
)

// Encode prepends the prefix for p and encodes data in that base.
func Encode(p Prefix, data []byte) (string, error) {
	switch p {
	case PrefixBase16:
		s, err := gomultibase.Encode(gomultibase.Base16, data)
		return s, wrapErr(err)
	case PrefixBase16Upper:
		s, err := gomultibase.Encode(gomultibase.Base16Upper, data)
		return s, wrapErr(err)
	case PrefixBase32:
		s, err := gomultibase.Encode(gomultibase.Base32, data)
		return s, wrapErr(err)
	case PrefixBase32Upper:
		s, err := gomultibase.Encode(gomultibase.Base32Upper, data)
		return s, wrapErr(err)
	case PrefixBase58BTC:
		s, err := gomultibase.Encode(gomultibase.Base58BTC, data)
		return s, wrapErr(err)
	case PrefixBase64:
		return string(p) + base64.StdEncoding.EncodeToString(data), nil
	case PrefixBase64URL:
		return string(p) + base64.RawURLEncoding.EncodeToString(data), nil
	case PrefixBase64URLPad:
		return string(p) + base64.URLEncoding.EncodeToString(data), nil
	default:
		return "", atperr.New(atperr.KindFormat, atperr.CodeInvalidFormat, "multibase: unsupported prefix")
	}
}

// Decode routes s by its leading character and returns the decoded bytes
// along with the prefix that selected the codec.
func Decode(s string) (Prefix, []byte, error) {
	if len(s) == 0 {
		return 0, nil, atperr.New(atperr.KindFormat, atperr.CodeInvalidFormat, "multibase: empty input")
	}
	p := Prefix(s[0])
	rest := s[1:]
	switch p {
	case PrefixBase16, PrefixBase16Upper, PrefixBase32, PrefixBase32Upper, PrefixBase58BTC:
		_, data, err := gomultibase.Decode(s)
		if err != nil {
			return 0, nil, wrapErr(err)
		}
		return p, data, nil
	case PrefixBase64:
		data, err := base64.StdEncoding.DecodeString(rest)
		if err != nil {
			return 0, nil, atperr.Wrap(atperr.KindFormat, atperr.CodeInvalidFormat, "multibase: invalid base64", err)
		}
		return p, data, nil
	case PrefixBase64URL:
		data, err := base64.RawURLEncoding.DecodeString(rest)
		if err != nil {
			return 0, nil, atperr.Wrap(atperr.KindFormat, atperr.CodeInvalidFormat, "multibase: invalid base64url", err)
		}
		return p, data, nil
	case PrefixBase64URLPad:
		data, err := base64.URLEncoding.DecodeString(rest)
		if err != nil {
			return 0, nil, atperr.Wrap(atperr.KindFormat, atperr.CodeInvalidFormat, "multibase: invalid base64url (padded)", err)
		}
		return p, data, nil
	default:
		return 0, nil, atperr.New(atperr.KindFormat, atperr.CodeInvalidFormat, "multibase: unsupported prefix")
	}
}

func wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return atperr.Wrap(atperr.KindFormat, atperr.CodeInvalidFormat, "multibase: "+err.Error(), err)
}
