package tid

import "testing"

func TestFromTimestampRoundTrip(t *testing.T) {
	const ts = uint64(1_700_000_000_000_000)
	const clock = uint16(0x155)
	id := FromTimestamp(ts, clock)
	if err := Valid(id); err != nil {
		t.Fatalf("Valid: %v", err)
	}
	gotTS, err := Timestamp(id)
	if err != nil {
		t.Fatalf("Timestamp: %v", err)
	}
	if gotTS != ts {
		t.Errorf("Timestamp = %d, want %d", gotTS, ts)
	}
	gotClock, err := ClockID(id)
	if err != nil {
		t.Fatalf("ClockID: %v", err)
	}
	if gotClock != clock {
		t.Errorf("ClockID = %d, want %d", gotClock, clock)
	}
}

func TestNextProducesValidTID(t *testing.T) {
	id, err := Next()
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if err := Valid(id); err != nil {
		t.Errorf("Valid(Next()): %v", err)
	}
}

func TestOrderingMatchesTimestampOrder(t *testing.T) {
	earlier := FromTimestamp(1000, 0)
	later := FromTimestamp(2000, 0)
	if Compare(earlier, later) >= 0 {
		t.Errorf("expected earlier TID to sort before later TID")
	}
}

func TestValidRejectsWrongLength(t *testing.T) {
	if err := Valid(TID("short")); err == nil {
		t.Fatalf("expected error for a TID of the wrong length")
	}
}

func TestValidRejectsBadFirstChar(t *testing.T) {
	// '0' is not in firstChars (it restricts the leading character's
	// high bit); pad to 13 characters with valid alphabet characters.
	if err := Valid(TID("0234567abcdef")); err == nil {
		t.Fatalf("expected error for an out-of-range leading character")
	}
}

func TestValidRejectsOutOfAlphabetChar(t *testing.T) {
	if err := Valid(TID("2abcdefghij1!")); err == nil {
		t.Fatalf("expected error for a character outside the TID alphabet")
	}
}
