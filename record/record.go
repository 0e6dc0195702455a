// Package record implements the ATProto record envelope and blob
// reference shapes that sit between raw lexicon-validated values and the
// repository layer.
//
// BlobRef models the ATProto blob-reference shape: a content CID plus
// declared MIME type and size. The CID and size are checked against the
// bytes actually hashed when available; the MIME type is only checked for
// presence.
package record

import (
	"github.com/AetherLib/aether-atproto/atperr"
	"github.com/AetherLib/aether-atproto/cid"
)

// Envelope wraps a record value with its lexicon type tag.
type Envelope struct {
	Type string         // the record's $type, an NSID string
	Data map[string]any // the record's fields, validated separately via lexicon
}

// BlobRef is a reference to out-of-band blob bytes, addressed by a
// raw-codec CID: blob CIDs are always computed with codec raw.
type BlobRef struct {
	Ref      cid.CID
	MimeType string
	Size     int64
}

// Validate checks the structural invariants of a blob reference: Ref must
// be a parse-valid CID, MimeType and Size must be present and sane.
func Validate(b BlobRef) error {
	if b.Ref.IsZero() {
		return atperr.New(atperr.KindStruct, atperr.CodeMissingRef, "record: blob ref missing CID")
	}
	if b.MimeType == "" {
		return atperr.New(atperr.KindStruct, atperr.CodeInvalidMime, "record: blob ref missing mime type")
	}
	if b.Size <= 0 {
		return atperr.New(atperr.KindStruct, atperr.CodeMissingSize, "record: blob ref missing size")
	}
	return nil
}

// ValidateAgainstBytes checks a blob reference against the bytes it claims
// to describe: the CID must match the content hash of data, Size must
// equal len(data), and — if maxSize is positive — Size must not exceed it.
func ValidateAgainstBytes(b BlobRef, data []byte, maxSize int64) error {
	if err := Validate(b); err != nil {
		return err
	}
	if maxSize > 0 && b.Size > maxSize {
		return atperr.New(atperr.KindStruct, atperr.CodeSizeExceeded, "record: blob exceeds configured size limit")
	}
	if b.Size != int64(len(data)) {
		return atperr.New(atperr.KindStruct, atperr.CodeInvalidSize, "record: declared size does not match blob bytes")
	}
	want, err := cid.FromBlobData(data)
	if err != nil {
		return atperr.Wrap(atperr.KindCAS, atperr.CodeInvalidCID, "record: failed to hash blob bytes", err)
	}
	if !b.Ref.Equal(want) {
		return atperr.New(atperr.KindStruct, atperr.CodeInvalidRef, "record: CID does not match blob bytes")
	}
	return nil
}
