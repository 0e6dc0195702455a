package didkey

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
)

func compressedSecp256k1Key(t *testing.T) []byte {
	t.Helper()
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return priv.PubKey().SerializeCompressed()
}

func TestFormatParseRoundTripSecp256k1(t *testing.T) {
	keyBytes := compressedSecp256k1Key(t)
	id, err := Format(AlgES256K, keyBytes)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if id[0] != 'z' {
		t.Fatalf("expected did:key identifier to start with 'z', got %q", id)
	}
	key, err := Parse(id)
	if err != nil {
		t.Fatalf("Parse(%q): %v", id, err)
	}
	if key.Alg != AlgES256K {
		t.Errorf("Alg = %v, want %v", key.Alg, AlgES256K)
	}
	if !bytes.Equal(key.KeyBytes, keyBytes) {
		t.Errorf("KeyBytes round trip mismatch")
	}
}

func TestParseRejectsMissingZPrefix(t *testing.T) {
	if _, err := Parse("abc"); err == nil {
		t.Fatalf("expected error for identifier without 'z' prefix")
	}
}

func TestParseRejectsTruncatedPrefix(t *testing.T) {
	if _, err := Parse("z1"); err == nil {
		t.Fatalf("expected error for a too-short decoded payload")
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	uncompressed := priv.PubKey().SerializeUncompressed()

	compressed, err := CompressSecp256k1(uncompressed)
	if err != nil {
		t.Fatalf("CompressSecp256k1: %v", err)
	}
	gotUncompressed, err := DecompressSecp256k1(compressed)
	if err != nil {
		t.Fatalf("DecompressSecp256k1: %v", err)
	}
	if !bytes.Equal(gotUncompressed, uncompressed) {
		t.Errorf("decompress round trip mismatch")
	}
}
