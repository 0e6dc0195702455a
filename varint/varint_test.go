package varint

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cases := []uint64{0, 1, 127, 128, 300, 16384, 1 << 40}
	for _, n := range cases {
		enc := Encode(n)
		if len(enc) != EncodedLen(n) {
			t.Errorf("EncodedLen(%d) = %d, want %d", n, EncodedLen(n), len(enc))
		}
		got, rest, err := Decode(enc)
		if err != nil {
			t.Fatalf("Decode(%v): %v", enc, err)
		}
		if got != n {
			t.Errorf("Decode round trip = %d, want %d", got, n)
		}
		if len(rest) != 0 {
			t.Errorf("expected no leftover bytes, got %v", rest)
		}
	}
}

func TestDecodeLeavesTrailingBytes(t *testing.T) {
	enc := Encode(42)
	buf := append(append([]byte{}, enc...), 0xAA, 0xBB)
	n, rest, err := Decode(buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if n != 42 {
		t.Errorf("n = %d, want 42", n)
	}
	if len(rest) != 2 || rest[0] != 0xAA || rest[1] != 0xBB {
		t.Errorf("rest = %v, want [0xAA 0xBB]", rest)
	}
}

func TestDecodeEmptyInput(t *testing.T) {
	_, _, err := Decode(nil)
	if err == nil {
		t.Fatalf("expected error decoding empty input")
	}
}

func TestDecodeIncomplete(t *testing.T) {
	// A continuation byte with no terminator.
	_, _, err := Decode([]byte{0x80})
	if err == nil {
		t.Fatalf("expected error decoding a truncated varint")
	}
}
