package fec_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"acoumodem/internal/fec"
)

func TestEncodeDecodeNormalRoundTrip(t *testing.T) {
	t.Parallel()
	frame := []byte("0123456789abcd")
	require.Len(t, frame, 14)

	encoded := fec.EncodeNormal(frame)
	assert.Len(t, encoded, fec.NormalEncodedLen(14))

	result := fec.DecodeNormal(encoded, 14)
	require.NotEqual(t, -1, result.Corrected)
	assert.Equal(t, frame, result.Data)
}

func TestEncodeDecodeRobustRoundTrip(t *testing.T) {
	t.Parallel()
	frame := []byte("0123456789abcd")

	encoded := fec.EncodeRobust(frame)
	assert.Len(t, encoded, fec.RobustEncodedLen(14))

	result := fec.DecodeRobust(encoded, 14)
	require.NotEqual(t, -1, result.Corrected)
	assert.Equal(t, frame, result.Data)
}

func TestDecodeRobustToleratesChannelErrors(t *testing.T) {
	t.Parallel()
	frame := bytes.Repeat([]byte{0x5A}, 30)

	encoded := fec.EncodeRobust(frame)
	// Flip a handful of outer-RS-protected bytes; the outer RS corrects
	// up to 8 byte errors before the convolutional stage even sees them.
	encoded[0] ^= 0xFF
	encoded[5] ^= 0x0F
	encoded[len(encoded)-1] ^= 0xFF

	result := fec.DecodeRobust(encoded, 30)
	require.NotEqual(t, -1, result.Corrected)
	assert.Equal(t, frame, result.Data)
}

func TestValidateFrameLen(t *testing.T) {
	t.Parallel()
	assert.NoError(t, fec.ValidateFrameLen(1))
	assert.Error(t, fec.ValidateFrameLen(0))
	assert.Error(t, fec.ValidateFrameLen(-3))
}

func TestRobustRoundTripRandomFrames(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 40).Draw(t, "frameLen")
		frame := rapid.SliceOfN(rapid.Byte(), n, n).Draw(t, "frame")

		encoded := fec.EncodeRobust(frame)
		result := fec.DecodeRobust(encoded, n)
		if result.Corrected == -1 {
			t.Fatalf("decode failed for frameLen %d", n)
		}
		if !bytes.Equal(result.Data, frame) {
			t.Fatalf("round trip mismatch for frameLen %d", n)
		}
	})
}
