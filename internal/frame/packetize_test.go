package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acoumodem/internal/frame"
)

func TestPacketizeSplitsIntoFramesAndHeader(t *testing.T) {
	t.Parallel()
	payload := make([]byte, 100)
	for i := range payload {
		payload[i] = byte(i)
	}

	pkt := frame.Packetize(payload, len(payload), false, false, 0)

	info, err := frame.ParseHeaderFrame(pkt.HeaderFrame)
	require.NoError(t, err)
	require.True(t, info.CRCValid)
	assert.Equal(t, pkt.SessionID, info.SessionID)
	assert.Equal(t, uint16(len(pkt.DataFrames)), info.TotalFrames)
	assert.Equal(t, uint32(100), info.OriginalLength)
	assert.Equal(t, uint16(100), info.PayloadLength)
}

func TestPacketizeReassemblesThroughCollector(t *testing.T) {
	t.Parallel()
	payload := []byte("a payload long enough to span multiple data frames of the default chunk size, repeated a bit more for good measure")

	pkt := frame.Packetize(payload, len(payload), false, false, 0)
	info, err := frame.ParseHeaderFrame(pkt.HeaderFrame)
	require.NoError(t, err)

	collector := frame.NewCollector()
	require.NoError(t, collector.SetHeader(info))
	for _, raw := range pkt.DataFrames {
		df, err := frame.ParseDataFrame(raw)
		require.NoError(t, err)
		require.True(t, df.CRCValid)
		require.NoError(t, collector.AddFrame(df.FrameIndex, df.Payload, pkt.SessionID))
	}

	require.True(t, collector.IsComplete())
	reassembled, err := collector.Reassemble()
	require.NoError(t, err)
	assert.Equal(t, payload, reassembled)
}
