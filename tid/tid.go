// Package tid implements ATProto's timestamp identifier: a 13-character
// base32-sortable token whose lexicographic order equals the chronological
// order of the microsecond timestamp it encodes.
package tid

import (
	"crypto/rand"
	"encoding/binary"
	"strings"
	"time"

	"github.com/AetherLib/aether-atproto/atperr"
)

// alphabet is base32-sortable: ordered so that byte-wise string comparison
// matches numeric comparison of the 5-bit groups it encodes.
const alphabet = "234567abcdefghijklmnopqrstuvwxyz"

// firstChars restricts the first character so the encoded 64-bit value's
// high bit is always zero.
const firstChars = "234567abcdefghij"

const length = 13

// TID is a 13-character timestamp identifier string.
type TID string

// Next generates a new TID from the current wall-clock time and a random
// 10-bit clock identifier. It is not guaranteed to be strictly monotonic
// under high-frequency concurrent calls; callers requiring strict
// ordering must externally increment.
func Next() (TID, error) {
	clockID, err := randomClockID()
	if err != nil {
		return "", err
	}
	return FromTimestamp(uint64(time.Now().UnixMicro()), clockID), nil
}

// MustNext generates a new TID, panicking on RNG failure.
func MustNext() TID {
	return atperr.Must(Next())
}

func randomClockID() (uint16, error) {
	var b [2]byte
	if _, err := rand.Read(b[:]); err != nil {
		return 0, atperr.Wrap(atperr.KindCrypto, atperr.CodeInvalidFormat, "tid: failed to read random clock id", err)
	}
	return binary.BigEndian.Uint16(b[:]) & 0x3FF, nil
}

// FromTimestamp encodes a microsecond timestamp and a 10-bit clock
// identifier into a TID.
func FromTimestamp(timestampUs uint64, clockID uint16) TID {
	v := (timestampUs << 10) | uint64(clockID&0x3FF)
	// v's top bit must be zero: timestampUs is a 53-bit quantity by
	// construction (microseconds since epoch fits comfortably), so v uses
	// at most 63 bits.
	var out [length]byte
	for i := length - 1; i >= 0; i-- {
		out[i] = alphabet[v&0x1F]
		v >>= 5
	}
	return TID(out[:])
}

// Timestamp decodes the microsecond timestamp component of a TID.
func Timestamp(t TID) (uint64, error) {
	if err := Valid(t); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < length; i++ {
		v = (v << 5) | uint64(strings.IndexByte(alphabet, byte(t[i])))
	}
	return v >> 10, nil
}

// ClockID decodes the 10-bit clock identifier component of a TID.
func ClockID(t TID) (uint16, error) {
	if err := Valid(t); err != nil {
		return 0, err
	}
	var v uint64
	for i := 0; i < length; i++ {
		v = (v << 5) | uint64(strings.IndexByte(alphabet, byte(t[i])))
	}
	return uint16(v & 0x3FF), nil
}

// Valid reports whether t is a syntactically valid TID.
func Valid(t TID) error {
	if len(t) != length {
		return atperr.New(atperr.KindIdent, atperr.CodeInvalidTID, "tid: must be 13 characters")
	}
	if !strings.ContainsRune(firstChars, rune(t[0])) {
		return atperr.New(atperr.KindIdent, atperr.CodeInvalidTID, "tid: first character out of range")
	}
	for i := 0; i < length; i++ {
		if strings.IndexByte(alphabet, byte(t[i])) < 0 {
			return atperr.New(atperr.KindIdent, atperr.CodeInvalidTID, "tid: contains characters outside the TID alphabet")
		}
	}
	return nil
}

// Compare is byte-wise string comparison: <0 if a<b, 0 if equal, >0 if a>b.
func Compare(a, b TID) int {
	return strings.Compare(string(a), string(b))
}
