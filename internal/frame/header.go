// Package frame implements the header/data frame wire layout, CRC
// validation, session-scoped reassembly, and the packetizer that splits
// a payload into frames (§4.5, and the byte-exact layout pinned in
// SPEC_FULL.md §3). Modeled on the teacher's dvbs/reedsolomon.go-adjacent
// framing discipline: small, explicit structs with an Encode and a
// parse function each, no reflection-based (de)serialisation.
package frame

import (
	"encoding/binary"
	"fmt"

	"acoumodem/internal/consts"
)

// HeaderInfo is the parsed, validated contents of a header frame.
type HeaderInfo struct {
	SessionID      uint16
	TotalFrames    uint16
	OriginalLength uint32 // fits in 3 bytes on the wire
	Compressed     bool
	Encrypted      bool
	CompressAlgo   byte
	PayloadLength  uint16
	CRCValid       bool
}

// Header is the pre-FEC, pre-CRC header frame contents used to build the
// wire bytes.
type Header struct {
	SessionID      uint16
	TotalFrames    uint16
	OriginalLength uint32
	Compressed     bool
	Encrypted      bool
	CompressAlgo   byte
	PayloadLength  uint16
}

// Encode serialises the header per the 12-byte layout pinned in
// SPEC_FULL.md §3, followed by a little-endian CRC-16.
func (h Header) Encode() []byte {
	buf := make([]byte, consts.HeaderFrameLen)
	buf[0] = consts.HeaderMagic0
	buf[1] = consts.HeaderMagic1
	binary.LittleEndian.PutUint16(buf[2:4], h.SessionID)
	binary.LittleEndian.PutUint16(buf[4:6], h.TotalFrames)
	buf[6] = byte(h.OriginalLength)
	buf[7] = byte(h.OriginalLength >> 8)
	buf[8] = byte(h.OriginalLength >> 16)
	buf[9] = consts.PackFlags(h.Compressed, h.Encrypted, h.CompressAlgo)
	binary.LittleEndian.PutUint16(buf[10:12], h.PayloadLength)
	crc := CRC16(buf[:consts.HeaderDataLen])
	binary.LittleEndian.PutUint16(buf[consts.HeaderDataLen:], crc)
	return buf
}

// ParseHeaderFrame validates magic and bounds and returns the parsed
// header together with a CRCValid flag; it returns an error only when
// the input is too short or the magic does not match, per §4.5's
// "parseHeaderFrame(bytes) -> HeaderInfo|null" contract (nil maps to a
// returned error here).
func ParseHeaderFrame(data []byte) (*HeaderInfo, error) {
	if len(data) < consts.HeaderFrameLen {
		return nil, fmt.Errorf("frame: header frame too short: %d bytes", len(data))
	}
	if data[0] != consts.HeaderMagic0 || data[1] != consts.HeaderMagic1 {
		return nil, fmt.Errorf("frame: bad header magic")
	}

	originalLength := uint32(data[6]) | uint32(data[7])<<8 | uint32(data[8])<<16
	compressed, encrypted, algo := consts.UnpackFlags(data[9])

	info := &HeaderInfo{
		SessionID:      binary.LittleEndian.Uint16(data[2:4]),
		TotalFrames:    binary.LittleEndian.Uint16(data[4:6]),
		OriginalLength: originalLength,
		Compressed:     compressed,
		Encrypted:      encrypted,
		CompressAlgo:   algo,
		PayloadLength:  binary.LittleEndian.Uint16(data[10:12]),
	}

	expectedCRC := CRC16(data[:consts.HeaderDataLen])
	actualCRC := binary.LittleEndian.Uint16(data[consts.HeaderDataLen:consts.HeaderFrameLen])
	info.CRCValid = expectedCRC == actualCRC
	if !info.CRCValid {
		return info, nil
	}
	if info.OriginalLength > consts.MaxPayloadBytes {
		info.CRCValid = false
	}
	return info, nil
}

// FuseHeaderCopies combines two received header copies byte-wise: where
// the copies agree the shared byte is kept, and where they differ the
// first copy's byte is taken, so the result equals a cut to the shorter
// length. No other tie-break is attempted; the caller re-validates the
// CRC of the result.
func FuseHeaderCopies(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			out[i] = a[i]
		} else {
			// No further side-channel to break the tie; keep the
			// first copy's byte.
			out[i] = a[i]
		}
	}
	return out
}
