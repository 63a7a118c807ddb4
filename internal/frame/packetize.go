package frame

import (
	"crypto/rand"
	"encoding/binary"

	"acoumodem/internal/consts"
)

// Packet bundles the header frame and the data frames produced by
// Packetize, plus the session id assigned to this transmission.
type Packet struct {
	HeaderFrame []byte
	DataFrames  [][]byte
	SessionID   uint16
}

// Packetize implements §4.5: pick a frame size (32/64/128), split
// payload into chunks of that size (final chunk may be shorter),
// build data frames with ascending indices, then one header frame
// carrying totalFrames, originalLength, compression/encryption flags,
// and a fresh random session id.
func Packetize(payload []byte, originalLength int, compressed, encrypted bool, compressAlgo byte) Packet {
	frameSize := consts.FrameSizeFor(len(payload))

	var dataFrames [][]byte
	for i := 0; i < len(payload); i += frameSize {
		end := i + frameSize
		if end > len(payload) {
			end = len(payload)
		}
		idx := uint16(i / frameSize)
		dataFrames = append(dataFrames, EncodeDataFrame(idx, payload[i:end]))
	}
	totalFrames := uint16(len(dataFrames))

	sessionID := randomSessionID()
	header := Header{
		SessionID:      sessionID,
		TotalFrames:    totalFrames,
		OriginalLength: uint32(originalLength),
		Compressed:     compressed,
		Encrypted:      encrypted,
		CompressAlgo:   compressAlgo,
		PayloadLength:  uint16(len(payload)),
	}

	return Packet{
		HeaderFrame: header.Encode(),
		DataFrames:  dataFrames,
		SessionID:   sessionID,
	}
}

func randomSessionID() uint16 {
	var b [2]byte
	_, _ = rand.Read(b[:])
	return binary.LittleEndian.Uint16(b[:])
}
