// Package atperr is the tagged-error taxonomy shared by every layer of this
// module: codecs, identifiers, repository data structures, and DPoP.
//
// Every validation failure in this module is returned as a *Error rather
// than surfaced as a panic or a bare string. Callers should branch on Code
// (stable across versions) rather than matching Error() strings.
package atperr

import "errors"

// Kind groups Codes into the broad categories named in the error taxonomy.
type Kind string

const (
	KindFormat    Kind = "format"
	KindIdent     Kind = "identifier"
	KindStruct    Kind = "structural"
	KindCAS       Kind = "content_addressing"
	KindLookup    Kind = "lookup"
	KindCrypto    Kind = "crypto"
	KindRepo      Kind = "repo"
	KindInternal  Kind = "internal"
)

// Code is a stable, machine-readable tag for a single error condition.
type Code string

const (
	CodeInvalidFormat    Code = "invalid_format"
	CodeTooLong          Code = "too_long"
	CodeTooFewSegments   Code = "too_few_segments"
	CodeMissingAuthority Code = "missing_authority"
	CodeURITooLong       Code = "uri_too_long"
	CodeInvalidJWTFormat Code = "invalid_jwt_format"

	CodeInvalidDID                 Code = "invalid_did"
	CodeUnsupportedMethod          Code = "unsupported_method"
	CodeInvalidIdentifier          Code = "invalid_identifier"
	CodeInvalidHandle              Code = "invalid_handle"
	CodeInvalidCollection          Code = "invalid_collection"
	CodeInvalidRkey                Code = "invalid_rkey"
	CodeInvalidTID                 Code = "invalid_tid"
	CodeInvalidName                Code = "invalid_name"
	CodeInvalidAuthoritySegment    Code = "invalid_authority_segment"
	CodeAuthorityTooLong           Code = "authority_too_long"
	CodeNameTooLong                Code = "name_too_long"
	CodeAuthorityStartsWithDigit   Code = "authority_starts_with_digit"

	CodeMissingRef     Code = "missing_ref"
	CodeMissingSize    Code = "missing_size"
	CodeMissingType    Code = "missing_type"
	CodeInvalidType    Code = "invalid_type"
	CodeInvalidRef     Code = "invalid_ref"
	CodeInvalidMime    Code = "invalid_mime_type"
	CodeInvalidSize    Code = "invalid_size"
	CodeSizeExceeded   Code = "size_exceeded"

	CodeInvalidCID        Code = "invalid_cid"
	CodeInsufficientData  Code = "insufficient_data"

	CodeNotFound   Code = "not_found"
	CodeNotWebDID  Code = "not_web_did"
	CodeNotDIDKey  Code = "not_did_key"

	CodeInvalidSignature Code = "invalid_signature"
	CodeMissingJWK       Code = "missing_jwk"
	CodeInvalidJWK       Code = "invalid_jwk"
	CodeHTMMismatch      Code = "htm_mismatch"
	CodeHTUMismatch      Code = "htu_mismatch"
	CodeInvalidTimestamp Code = "invalid_timestamp"
	CodeMissingJTI       Code = "missing_jti"
	CodeInvalidATH       Code = "invalid_ath"
	CodeMissingATH       Code = "missing_ath"
	CodeInvalidTyp       Code = "invalid_typ"

	CodeUnsignedCommit    Code = "unsigned_commit"
	CodeInvalidRev        Code = "invalid_rev"
	CodeInvalidDataCID    Code = "invalid_data_cid"
	CodeInvalidPrevCID    Code = "invalid_prev_cid"
	CodeInvalidVersion    Code = "invalid_version"
	CodeSigningFailed     Code = "signing_failed"
	CodeVerificationFailed Code = "verification_failed"
)

// Error is the canonical tagged-result type for this module.
//
// It unifies atom-style Codes with human-readable Messages into one type:
// callers get a stable Code to switch on and a Message to log.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message != "" {
		return e.Message
	}
	return string(e.Code)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// New builds an unwrapped tagged error.
func New(kind Kind, code Code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Wrap builds a tagged error around a causing error. If cause is nil, Wrap
// behaves exactly like New.
func Wrap(kind Kind, code Code, msg string, cause error) *Error {
	if cause == nil {
		return New(kind, code, msg)
	}
	return &Error{Kind: kind, Code: code, Message: msg, Cause: cause}
}

// Is reports whether err is (or wraps) a *Error with the given Code.
func Is(err error, code Code) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Code == code
}

// GetCode returns the Code of a tagged error, or "" if err is not one.
func GetCode(err error) Code {
	var e *Error
	if !errors.As(err, &e) {
		return ""
	}
	return e.Code
}

// ParseError is the unwind-class error produced by "Must"-style convenience
// wrappers (MustParse etc.) — the panicking counterpart to each fallible
// constructor.
type ParseError struct {
	Code    Code
	Message string
}

func (e *ParseError) Error() string {
	return e.Message
}

// Must panics with a *ParseError if err is non-nil, otherwise returns v.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(&ParseError{Code: GetCode(err), Message: err.Error()})
	}
	return v
}
