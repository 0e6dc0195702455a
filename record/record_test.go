package record

import (
	"testing"

	"github.com/AetherLib/aether-atproto/cid"
)

func TestValidateAgainstBytesAccepts(t *testing.T) {
	data := []byte("a picture of a cat")
	ref, err := cid.FromBlobData(data)
	if err != nil {
		t.Fatalf("FromBlobData: %v", err)
	}
	b := BlobRef{Ref: ref, MimeType: "image/jpeg", Size: int64(len(data))}
	if err := ValidateAgainstBytes(b, data, 0); err != nil {
		t.Errorf("ValidateAgainstBytes: %v", err)
	}
}

func TestValidateAgainstBytesDetectsSizeMismatch(t *testing.T) {
	data := []byte("content")
	ref, _ := cid.FromBlobData(data)
	b := BlobRef{Ref: ref, MimeType: "text/plain", Size: 999}
	if err := ValidateAgainstBytes(b, data, 0); err == nil {
		t.Fatalf("expected error for a size mismatch")
	}
}

func TestValidateAgainstBytesDetectsCIDMismatch(t *testing.T) {
	data := []byte("content")
	wrongRef, _ := cid.FromBlobData([]byte("different content"))
	b := BlobRef{Ref: wrongRef, MimeType: "text/plain", Size: int64(len(data))}
	if err := ValidateAgainstBytes(b, data, 0); err == nil {
		t.Fatalf("expected error for a CID mismatch")
	}
}

func TestValidateAgainstBytesEnforcesMaxSize(t *testing.T) {
	data := []byte("a longer blob of content")
	ref, _ := cid.FromBlobData(data)
	b := BlobRef{Ref: ref, MimeType: "text/plain", Size: int64(len(data))}
	if err := ValidateAgainstBytes(b, data, 4); err == nil {
		t.Fatalf("expected error exceeding the configured max size")
	}
}

func TestValidateRejectsMissingFields(t *testing.T) {
	if err := Validate(BlobRef{}); err == nil {
		t.Fatalf("expected error for a zero-value blob ref")
	}
}
