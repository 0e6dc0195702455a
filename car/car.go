// Package car implements the CAR (Content-Addressable aRchive) container
// codec: a binary bundle of a root-CID header and a sequence of
// (CID, bytes) blocks, used for repository import/export.
package car

import (
	"github.com/fxamacker/cbor/v2"

	"github.com/AetherLib/aether-atproto/atperr"
	"github.com/AetherLib/aether-atproto/cid"
	"github.com/AetherLib/aether-atproto/varint"
)

// Block is one (CID, bytes) entry of a CAR.
type Block struct {
	CID  cid.CID
	Data []byte
}

// CAR is a decoded container: a version, an ordered list of root CIDs
// (the first is the canonical "head"), and its blocks in file order.
type CAR struct {
	Version int
	Roots   []cid.CID
	Blocks  []Block
}

type carHeader struct {
	Version int      `cbor:"version"`
	Roots   []string `cbor:"roots"`
}

// Encode serialises c as
// varint-len(header) || CBOR(header) || block*, where each block is
// varint-len(payload) || varint-len(cid-str) || cid-str || data.
func Encode(c CAR) ([]byte, error) {
	header := carHeader{Version: c.Version}
	for _, r := range c.Roots {
		header.Roots = append(header.Roots, r.String())
	}
	headerBytes, err := cbor.Marshal(header)
	if err != nil {
		return nil, atperr.Wrap(atperr.KindCAS, atperr.CodeInvalidFormat, "car: failed to encode header", err)
	}

	out := append([]byte{}, varint.Encode(uint64(len(headerBytes)))...)
	out = append(out, headerBytes...)

	for _, b := range c.Blocks {
		cidStr := []byte(b.CID.String())
		payload := append([]byte{}, varint.Encode(uint64(len(cidStr)))...)
		payload = append(payload, cidStr...)
		payload = append(payload, b.Data...)

		out = append(out, varint.Encode(uint64(len(payload)))...)
		out = append(out, payload...)
	}

	return out, nil
}

// Decode parses a CAR byte stream produced by Encode.
func Decode(data []byte) (CAR, error) {
	headerLen, rest, err := varint.Decode(data)
	if err != nil {
		return CAR{}, err
	}
	if uint64(len(rest)) < headerLen {
		return CAR{}, atperr.New(atperr.KindCAS, atperr.CodeInsufficientData, "car: header length exceeds remaining bytes")
	}
	headerBytes, rest := rest[:headerLen], rest[headerLen:]

	var header carHeader
	if err := cbor.Unmarshal(headerBytes, &header); err != nil {
		return CAR{}, atperr.Wrap(atperr.KindCAS, atperr.CodeInvalidFormat, "car: invalid header", err)
	}

	c := CAR{Version: header.Version}
	for _, r := range header.Roots {
		rc, err := cid.Parse(r)
		if err != nil {
			return CAR{}, err
		}
		c.Roots = append(c.Roots, rc)
	}

	for len(rest) > 0 {
		blockLen, next, err := varint.Decode(rest)
		if err != nil {
			return CAR{}, err
		}
		if uint64(len(next)) < blockLen {
			return CAR{}, atperr.New(atperr.KindCAS, atperr.CodeInsufficientData, "car: block length exceeds remaining bytes")
		}
		payload, after := next[:blockLen], next[blockLen:]

		cidLen, payloadRest, err := varint.Decode(payload)
		if err != nil {
			return CAR{}, err
		}
		if uint64(len(payloadRest)) < cidLen {
			return CAR{}, atperr.New(atperr.KindCAS, atperr.CodeInsufficientData, "car: block CID length exceeds remaining bytes")
		}
		cidStr, blockData := payloadRest[:cidLen], payloadRest[cidLen:]

		bc, err := cid.Parse(string(cidStr))
		if err != nil {
			return CAR{}, err
		}
		c.Blocks = append(c.Blocks, Block{CID: bc, Data: append([]byte{}, blockData...)})

		rest = after
	}

	return c, nil
}

// GetBlock scans c's blocks for one whose CID's string form matches id.
func GetBlock(c CAR, id cid.CID) (Block, error) {
	for _, b := range c.Blocks {
		if b.CID.Equal(id) {
			return b, nil
		}
	}
	return Block{}, atperr.New(atperr.KindLookup, atperr.CodeNotFound, "car: block not found")
}
