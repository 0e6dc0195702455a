package commit

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/AetherLib/aether-atproto/atperr"
)

// Signer produces a signature over commit bytes. It is an injectable
// capability so the crypto backend stays pluggable — callers close over
// whatever key material they hold.
type Signer func(bytes []byte) ([]byte, error)

// Verifier reports whether sig is a valid signature over bytes.
type Verifier func(bytes, sig []byte) (bool, error)

// sigBytesShape is the stable, ordered serialization of a sig-less
// commit's fields: DAG-CBOR over a struct, which fxamacker/cbor encodes
// field-by-field in declaration order, giving the required
// {did, version, data, rev, prev} key order byte-for-byte.
type sigBytesShape struct {
	DID     string  `cbor:"did"`
	Version int     `cbor:"version"`
	Data    string  `cbor:"data"`
	Rev     string  `cbor:"rev"`
	Prev    *string `cbor:"prev"`
}

// SigBytes returns the stable bytes a Signer signs and a Verifier checks:
// the sig-less commit fields, DAG-CBOR-encoded in a fixed key order.
func SigBytes(c Commit) ([]byte, error) {
	shape := sigBytesShape{DID: c.DID, Version: c.Version, Data: c.Data.String(), Rev: string(c.Rev)}
	if !c.Prev.IsZero() {
		s := c.Prev.String()
		shape.Prev = &s
	}
	data, err := cbor.Marshal(shape)
	if err != nil {
		return nil, atperr.Wrap(atperr.KindRepo, atperr.CodeSigningFailed, "commit: failed to encode sig bytes", err)
	}
	return data, nil
}

// Sign computes SigBytes(c) and calls signer over them, storing the
// result in c.Sig. Any panic from signer is caught and reported as
// signing_failed.
func Sign(c Commit, signer Signer) (out Commit, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = Commit{}, atperr.New(atperr.KindRepo, atperr.CodeSigningFailed, "commit: signer panicked")
		}
	}()

	bytes, err := SigBytes(c)
	if err != nil {
		return Commit{}, err
	}
	sig, serr := signer(bytes)
	if serr != nil {
		return Commit{}, atperr.Wrap(atperr.KindRepo, atperr.CodeSigningFailed, "commit: signer failed", serr)
	}
	c.Sig = sig
	return c, nil
}

// Verify checks c.Sig against SigBytes(c) using verifier. It returns
// atperr.CodeUnsignedCommit if c has no signature. Any panic from
// verifier is caught and reported as verification_failed.
func Verify(c Commit, verifier Verifier) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, atperr.New(atperr.KindRepo, atperr.CodeVerificationFailed, "commit: verifier panicked")
		}
	}()

	if len(c.Sig) == 0 {
		return false, atperr.New(atperr.KindRepo, atperr.CodeUnsignedCommit, "commit: no signature present")
	}
	bytes, err := SigBytes(c)
	if err != nil {
		return false, err
	}
	valid, verr := verifier(bytes, c.Sig)
	if verr != nil {
		return false, atperr.Wrap(atperr.KindRepo, atperr.CodeVerificationFailed, "commit: verifier failed", verr)
	}
	return valid, nil
}
