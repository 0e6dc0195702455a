package commit

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"testing"

	"github.com/AetherLib/aether-atproto/atperr"
	"github.com/AetherLib/aether-atproto/cid"
	"github.com/AetherLib/aether-atproto/tid"
)

func dataCID(t *testing.T) cid.CID {
	t.Helper()
	c, err := cid.FromData([]byte("mst root"), "")
	if err != nil {
		t.Fatalf("cid.FromData: %v", err)
	}
	return c
}

func TestCreateProducesValidCommit(t *testing.T) {
	c, err := Create("did:plc:z72i7hdynmk6r22z27h6tvur", dataCID(t), Options{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := Validate(c); err != nil {
		t.Errorf("Validate(Create(...)): %v", err)
	}
	if c.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", c.Version, CurrentVersion)
	}
}

func TestCreateNextEnforcesStrictlyIncreasingRev(t *testing.T) {
	did := "did:plc:z72i7hdynmk6r22z27h6tvur"
	first, err := Create(did, dataCID(t), Options{Rev: tid.FromTimestamp(1000, 0)})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	firstCID, err := cid.FromData([]byte("commit-1"), cid.CodecDagCBOR)
	if err != nil {
		t.Fatalf("cid.FromData: %v", err)
	}

	_, err = CreateNext(did, dataCID(t), first, firstCID, Options{Rev: tid.FromTimestamp(500, 0)})
	if !atperr.Is(err, atperr.CodeInvalidRev) {
		t.Fatalf("expected CodeInvalidRev for a non-increasing rev, got %v", err)
	}

	next, err := CreateNext(did, dataCID(t), first, firstCID, Options{Rev: tid.FromTimestamp(2000, 0)})
	if err != nil {
		t.Fatalf("CreateNext: %v", err)
	}
	if !next.Prev.Equal(firstCID) {
		t.Errorf("expected Prev to equal firstCID")
	}
}

func TestValidateRejectsBadDID(t *testing.T) {
	c, _ := Create("did:plc:z72i7hdynmk6r22z27h6tvur", dataCID(t), Options{})
	c.DID = "not-a-did"
	if err := Validate(c); !atperr.Is(err, atperr.CodeInvalidDID) {
		t.Fatalf("expected CodeInvalidDID, got %v", err)
	}
}

func TestValidateRejectsWrongVersion(t *testing.T) {
	c, _ := Create("did:plc:z72i7hdynmk6r22z27h6tvur", dataCID(t), Options{})
	c.Version = 2
	if err := Validate(c); !atperr.Is(err, atperr.CodeInvalidVersion) {
		t.Fatalf("expected CodeInvalidVersion, got %v", err)
	}
}

func ecdsaSigner(priv *ecdsa.PrivateKey) Signer {
	return func(bytes []byte) ([]byte, error) {
		h := sha256.Sum256(bytes)
		return ecdsa.SignASN1(rand.Reader, priv, h[:])
	}
}

func ecdsaVerifier(pub *ecdsa.PublicKey) Verifier {
	return func(bytes, sig []byte) (bool, error) {
		h := sha256.Sum256(bytes)
		return ecdsa.VerifyASN1(pub, h[:], sig), nil
	}
}

func TestSignAndVerify(t *testing.T) {
	priv, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	c, err := Create("did:plc:z72i7hdynmk6r22z27h6tvur", dataCID(t), Options{})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	signed, err := Sign(c, ecdsaSigner(priv))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := Verify(signed, ecdsaVerifier(&priv.PublicKey))
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Fatalf("expected a valid signature to verify")
	}
}

func TestVerifyUnsignedCommitErrors(t *testing.T) {
	c, _ := Create("did:plc:z72i7hdynmk6r22z27h6tvur", dataCID(t), Options{})
	_, err := Verify(c, ecdsaVerifier(&ecdsa.PublicKey{}))
	if !atperr.Is(err, atperr.CodeUnsignedCommit) {
		t.Fatalf("expected CodeUnsignedCommit, got %v", err)
	}
}

func TestSignerPanicIsCaughtAsSigningFailed(t *testing.T) {
	c, _ := Create("did:plc:z72i7hdynmk6r22z27h6tvur", dataCID(t), Options{})
	panicky := Signer(func(bytes []byte) ([]byte, error) { panic("boom") })
	_, err := Sign(c, panicky)
	if !atperr.Is(err, atperr.CodeSigningFailed) {
		t.Fatalf("expected CodeSigningFailed, got %v", err)
	}
}

func TestSigBytesIsDeterministic(t *testing.T) {
	c, _ := Create("did:plc:z72i7hdynmk6r22z27h6tvur", dataCID(t), Options{Rev: tid.FromTimestamp(1, 0)})
	b1, err := SigBytes(c)
	if err != nil {
		t.Fatalf("SigBytes: %v", err)
	}
	b2, err := SigBytes(c)
	if err != nil {
		t.Fatalf("SigBytes: %v", err)
	}
	if string(b1) != string(b2) {
		t.Errorf("SigBytes is not deterministic for identical commits")
	}
}
