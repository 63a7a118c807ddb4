package rs_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"acoumodem/internal/rs"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()
	codec := rs.NewCodec(14)
	data := []byte("acoustic-modem")
	require.Len(t, data, 14)

	encoded, err := codec.Encode(data)
	require.NoError(t, err)
	require.Len(t, encoded, 30)

	decoded, corrected, err := codec.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 0, corrected)
	assert.Equal(t, data, decoded)
}

func TestDecodeCorrectsByteErrors(t *testing.T) {
	t.Parallel()
	codec := rs.NewCodec(14)
	data := bytes.Repeat([]byte{0x42}, 14)

	encoded, err := codec.Encode(data)
	require.NoError(t, err)

	// Flip up to 8 bytes; the code must still recover the original data.
	corruptedPositions := []int{0, 3, 7, 13, 20, 25, 29}
	for _, pos := range corruptedPositions {
		encoded[pos] ^= 0xFF
	}

	decoded, corrected, err := codec.Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, len(corruptedPositions), corrected)
	assert.Equal(t, data, decoded)
}

func TestDecodeFailsUncorrectable(t *testing.T) {
	t.Parallel()
	codec := rs.NewCodec(14)
	data := bytes.Repeat([]byte{0x7A}, 14)

	encoded, err := codec.Encode(data)
	require.NoError(t, err)

	for i := 0; i < 9; i++ {
		encoded[i] ^= 0xFF
	}

	_, _, err = codec.Decode(encoded)
	assert.Error(t, err)
}

func TestEncodeRejectsWrongLength(t *testing.T) {
	t.Parallel()
	codec := rs.NewCodec(14)
	_, err := codec.Encode(make([]byte, 13))
	assert.Error(t, err)
}

func TestRoundTripUnderRandomDataAndErrors(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		k := rapid.IntRange(1, 60).Draw(t, "k")
		data := rapid.SliceOfN(rapid.Byte(), k, k).Draw(t, "data")
		numErrors := rapid.IntRange(0, 8).Draw(t, "numErrors")

		codec := rs.NewCodec(k)
		encoded, err := codec.Encode(data)
		if err != nil {
			t.Fatalf("encode: %v", err)
		}

		used := map[int]bool{}
		for len(used) < numErrors {
			pos := rapid.IntRange(0, len(encoded)-1).Draw(t, "errpos")
			if used[pos] {
				continue
			}
			used[pos] = true
			encoded[pos] ^= 0xFF
		}

		decoded, corrected, err := codec.Decode(encoded)
		if err != nil {
			t.Fatalf("decode with %d errors: %v", numErrors, err)
		}
		if corrected != numErrors {
			t.Fatalf("expected %d corrections, got %d", numErrors, corrected)
		}
		if !bytes.Equal(decoded, data) {
			t.Fatalf("round trip mismatch with %d errors", numErrors)
		}
	})
}
