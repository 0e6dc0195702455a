// Package cid implements the content identifier codec: parsing,
// construction, and round-tripping of IPFS CIDv0/CIDv1 strings, and
// content-addressed CID computation over arbitrary bytes.
//
// The public surface never exposes a CID as raw bytes: CIDs cross this
// module's boundary as strings only, via String/Parse.
package cid

import (
	"crypto/sha256"
	"regexp"
	"strings"

	gocid "github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"

	"github.com/AetherLib/aether-atproto/atperr"
)

// Well-known multicodec tags this module names by string.
const (
	CodecDagPB   = "dag-pb"
	CodecDagCBOR = "dag-cbor"
	CodecRaw     = "raw"
)

const (
	MultibaseBase58BTC = "base58btc"
	MultibaseBase32    = "base32"
)

var (
	base32Tail = regexp.MustCompile(`^[a-z2-7]+$`)
	base58Tail = regexp.MustCompile(`^[1-9A-Za-z]+$`)
)

var multicodecByName = map[string]uint64{
	CodecDagPB:   gocid.DagProtobuf,
	CodecDagCBOR: gocid.DagCBOR,
	CodecRaw:     gocid.Raw,
}

// CID is a parsed content identifier. Equality is by string form: compare
// two CIDs with a.String() == b.String(), or with Equal.
type CID struct {
	version   int
	codec     string
	multibase string
	hash      string // original string form
	inner     gocid.Cid
}

// Version returns 0 or 1.
func (c CID) Version() int { return c.version }

// Codec returns the multicodec tag this CID was parsed/constructed with
// (dag-pb, dag-cbor, or raw).
func (c CID) Codec() string { return c.codec }

// Multibase returns the multibase tag of the string form (base58btc or base32).
func (c CID) Multibase() string { return c.multibase }

// String returns the original string form. Parse(c.String()) == c.
func (c CID) String() string { return c.hash }

// Equal reports whether two CIDs have the same string form.
func (c CID) Equal(other CID) bool { return c.hash == other.hash }

// IsZero reports whether c is the zero value (not a parsed/constructed CID).
func (c CID) IsZero() bool { return c.hash == "" }

// Parse validates and decomposes a CID string.
func Parse(s string) (CID, error) {
	switch {
	case strings.HasPrefix(s, "Qm") && len(s) == 46:
		inner, err := gocid.Decode(s)
		if err != nil {
			return CID{}, atperr.Wrap(atperr.KindCAS, atperr.CodeInvalidCID, "cid: malformed CIDv0", err)
		}
		return CID{version: 0, codec: CodecDagPB, multibase: MultibaseBase58BTC, hash: s, inner: inner}, nil

	case strings.HasPrefix(s, "b"):
		tail := s[1:]
		if tail == "" || !base32Tail.MatchString(tail) {
			return CID{}, atperr.New(atperr.KindCAS, atperr.CodeInvalidFormat, "cid: invalid base32 CIDv1 body")
		}
		inner, err := gocid.Decode(s)
		if err != nil {
			return CID{}, atperr.Wrap(atperr.KindCAS, atperr.CodeInvalidCID, "cid: malformed CIDv1 (base32)", err)
		}
		return CID{version: 1, codec: CodecDagCBOR, multibase: MultibaseBase32, hash: s, inner: inner}, nil

	case strings.HasPrefix(s, "z"):
		tail := s[1:]
		if tail == "" || !base58Tail.MatchString(tail) {
			return CID{}, atperr.New(atperr.KindCAS, atperr.CodeInvalidFormat, "cid: invalid base58btc CIDv1 body")
		}
		inner, err := gocid.Decode(s)
		if err != nil {
			return CID{}, atperr.Wrap(atperr.KindCAS, atperr.CodeInvalidCID, "cid: malformed CIDv1 (base58btc)", err)
		}
		return CID{version: 1, codec: CodecDagCBOR, multibase: MultibaseBase58BTC, hash: s, inner: inner}, nil

	default:
		return CID{}, atperr.New(atperr.KindCAS, atperr.CodeInvalidFormat, "cid: unrecognized CID string form")
	}
}

// MustParse parses s, panicking with a *atperr.ParseError on failure.
func MustParse(s string) CID {
	return atperr.Must(Parse(s))
}

// FromData computes the content-addressed CIDv1 of data using the given
// codec (default "dag-cbor" when codec == "") and a sha2-256 multihash.
func FromData(data []byte, codec string) (CID, error) {
	if codec == "" {
		codec = CodecDagCBOR
	}
	mcCode, ok := multicodecByName[codec]
	if !ok {
		return CID{}, atperr.New(atperr.KindCAS, atperr.CodeInvalidFormat, "cid: unsupported codec "+codec)
	}
	sum := sha256.Sum256(data)
	mh, err := multihash.Encode(sum[:], multihash.SHA2_256)
	if err != nil {
		return CID{}, atperr.Wrap(atperr.KindCAS, atperr.CodeInvalidCID, "cid: multihash encode failed", err)
	}
	inner := gocid.NewCidV1(mcCode, mh)
	s := inner.String()
	return CID{version: 1, codec: codec, multibase: MultibaseBase32, hash: s, inner: inner}, nil
}

// FromBlobData computes the raw-codec CIDv1 used for ATProto blob
// references: blob CIDs are always computed with codec raw.
func FromBlobData(data []byte) (CID, error) {
	return FromData(data, CodecRaw)
}

// Inner returns the underlying go-cid value, for interop with libraries
// (DAG-CBOR encoders, CAR writers) that expect the ipfs/go-cid type.
func (c CID) Inner() gocid.Cid { return c.inner }
