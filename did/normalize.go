package did

import "strings"

// Normalize lowercases the "did:" scheme and method of s always; for
// did:plc it additionally lowercases the identifier; for did:web it
// lowercases only the domain portion of the identifier (path segments
// keep their case); for did:key the identifier is case-sensitive and is
// left untouched. Query and fragment are preserved verbatim.
//
// Normalize accepts input whose scheme/method label is not yet lowercase
// (unlike Parse, which requires that already) — it is meant to repair
// loosely-cased DID strings before strict validation.
func Normalize(s string) (string, error) {
	d, err := parse(s, true)
	if err != nil {
		return "", err
	}

	switch d.Method {
	case MethodPLC:
		d.Identifier = strings.ToLower(d.Identifier)
	case MethodWeb:
		if idx := strings.IndexByte(d.Identifier, ':'); idx >= 0 {
			d.Identifier = strings.ToLower(d.Identifier[:idx]) + d.Identifier[idx:]
		} else {
			d.Identifier = strings.ToLower(d.Identifier)
		}
	case MethodKey:
		// case-sensitive, no change
	}

	return d.String(), nil
}
