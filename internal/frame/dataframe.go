package frame

import (
	"encoding/binary"
	"fmt"

	"acoumodem/internal/consts"
)

// DataFrame is a parsed, validated data frame.
type DataFrame struct {
	FrameIndex uint16
	Payload    []byte
	CRCValid   bool
}

// DataFrameOverheadFor returns the pre-FEC byte length of a data frame
// carrying payloadSize bytes: magic+frameIndex+payload+CRC.
func DataFrameOverheadFor(payloadSize int) int {
	return consts.DataFrameOverhead + payloadSize
}

// EncodeDataFrame serialises a data frame: magic(1) . frameIndex(2,LE) .
// payload . CRC-16(2,LE) over the preceding bytes.
func EncodeDataFrame(frameIndex uint16, payload []byte) []byte {
	buf := make([]byte, consts.DataFrameHeaderLen+len(payload)+2)
	buf[0] = consts.DataMagic
	binary.LittleEndian.PutUint16(buf[1:3], frameIndex)
	copy(buf[consts.DataFrameHeaderLen:], payload)
	crc := CRC16(buf[:consts.DataFrameHeaderLen+len(payload)])
	binary.LittleEndian.PutUint16(buf[len(buf)-2:], crc)
	return buf
}

// ParseDataFrame validates magic and CRC and returns the parsed frame.
func ParseDataFrame(data []byte) (*DataFrame, error) {
	if len(data) < consts.DataFrameOverhead {
		return nil, fmt.Errorf("frame: data frame too short: %d bytes", len(data))
	}
	if data[0] != consts.DataMagic {
		return nil, fmt.Errorf("frame: bad data frame magic")
	}

	payloadLen := len(data) - consts.DataFrameOverhead
	df := &DataFrame{
		FrameIndex: binary.LittleEndian.Uint16(data[1:3]),
		Payload:    append([]byte(nil), data[consts.DataFrameHeaderLen:consts.DataFrameHeaderLen+payloadLen]...),
	}

	expected := CRC16(data[:consts.DataFrameHeaderLen+payloadLen])
	actual := binary.LittleEndian.Uint16(data[len(data)-2:])
	df.CRCValid = expected == actual
	return df, nil
}
