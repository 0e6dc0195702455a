package cid

import "testing"

func TestFromDataRoundTrip(t *testing.T) {
	c, err := FromData([]byte("hello atproto"), "")
	if err != nil {
		t.Fatalf("FromData: %v", err)
	}
	if c.Version() != 1 {
		t.Errorf("Version() = %d, want 1", c.Version())
	}
	if c.Codec() != CodecDagCBOR {
		t.Errorf("Codec() = %q, want %q", c.Codec(), CodecDagCBOR)
	}

	parsed, err := Parse(c.String())
	if err != nil {
		t.Fatalf("Parse(%q): %v", c.String(), err)
	}
	if !parsed.Equal(c) {
		t.Errorf("round trip mismatch: %q != %q", parsed.String(), c.String())
	}
}

func TestFromBlobDataUsesRawCodec(t *testing.T) {
	c, err := FromBlobData([]byte{0xDE, 0xAD, 0xBE, 0xEF})
	if err != nil {
		t.Fatalf("FromBlobData: %v", err)
	}
	if c.Codec() != CodecRaw {
		t.Errorf("Codec() = %q, want %q", c.Codec(), CodecRaw)
	}
}

func TestFromDataWithDagPBCodec(t *testing.T) {
	c, err := FromData([]byte("v0 test"), CodecDagPB)
	if err == nil {
		// dag-pb CIDv1 construction is allowed; just confirm the codec took.
		if c.Codec() != CodecDagPB {
			t.Errorf("Codec() = %q, want %q", c.Codec(), CodecDagPB)
		}
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	cases := []string{"", "not-a-cid", "b", "z", "bNOT-VALID-BASE32!!"}
	for _, s := range cases {
		if _, err := Parse(s); err == nil {
			t.Errorf("Parse(%q): expected error, got nil", s)
		}
	}
}

func TestIsZero(t *testing.T) {
	var c CID
	if !c.IsZero() {
		t.Errorf("zero value CID should report IsZero")
	}
	nonZero, _ := FromData([]byte("x"), "")
	if nonZero.IsZero() {
		t.Errorf("constructed CID should not report IsZero")
	}
}

func TestMustParsePanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustParse to panic on an invalid CID")
		}
	}()
	MustParse("not-a-cid")
}
