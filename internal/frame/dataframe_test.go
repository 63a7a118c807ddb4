package frame_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acoumodem/internal/consts"
	"acoumodem/internal/frame"
)

func TestDataFrameEncodeParseRoundTrip(t *testing.T) {
	t.Parallel()
	payload := []byte("some chunk of data")

	encoded := frame.EncodeDataFrame(7, payload)
	require.Len(t, encoded, frame.DataFrameOverheadFor(len(payload)))

	df, err := frame.ParseDataFrame(encoded)
	require.NoError(t, err)
	assert.True(t, df.CRCValid)
	assert.Equal(t, uint16(7), df.FrameIndex)
	assert.Equal(t, payload, df.Payload)
}

func TestParseDataFrameRejectsBadMagic(t *testing.T) {
	t.Parallel()
	encoded := frame.EncodeDataFrame(0, []byte("x"))
	encoded[0] = 'Z'

	_, err := frame.ParseDataFrame(encoded)
	assert.Error(t, err)
}

func TestParseDataFrameDetectsCorruption(t *testing.T) {
	t.Parallel()
	encoded := frame.EncodeDataFrame(2, []byte("payload"))
	encoded[consts.DataFrameHeaderLen] ^= 0xFF

	df, err := frame.ParseDataFrame(encoded)
	require.NoError(t, err)
	assert.False(t, df.CRCValid)
}
