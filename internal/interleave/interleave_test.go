package interleave_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"acoumodem/internal/interleave"
)

func TestInterleaveDeinterleaveRoundTrip(t *testing.T) {
	t.Parallel()
	data := []byte("0123456789abcdefghijklmnop")

	interleaved := interleave.Interleave(data, 8)
	assert.Len(t, interleaved, len(data))
	assert.NotEqual(t, data, interleaved)

	back := interleave.Deinterleave(interleaved, 8)
	assert.Equal(t, data, back)
}

func TestInterleaveSpreadsBurstErrors(t *testing.T) {
	t.Parallel()
	data := bytes.Repeat([]byte{0}, 32)
	for i := range data {
		data[i] = byte(i)
	}

	interleaved := interleave.Interleave(data, 8)

	// A contiguous burst in the interleaved stream must land on
	// non-contiguous positions once deinterleaved.
	corrupted := make([]byte, len(interleaved))
	copy(corrupted, interleaved)
	for i := 0; i < 4; i++ {
		corrupted[i] = 0xFF
	}
	deinterleaved := interleave.Deinterleave(corrupted, 8)

	corruptedPositions := 0
	contiguousRun := 0
	maxRun := 0
	for i, b := range deinterleaved {
		if b != data[i] {
			corruptedPositions++
			contiguousRun++
			if contiguousRun > maxRun {
				maxRun = contiguousRun
			}
		} else {
			contiguousRun = 0
		}
	}
	assert.Equal(t, 4, corruptedPositions)
	assert.Less(t, maxRun, 4)
}

func TestInterleaveEdgeCases(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []byte{}, interleave.Interleave(nil, 8))
	assert.Equal(t, []byte{0x5A}, interleave.Interleave([]byte{0x5A}, 8))
	assert.Equal(t, []byte{1, 2, 3}, interleave.Interleave([]byte{1, 2, 3}, 1))
}

func TestInterleaveRoundTripRandom(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOf(rapid.Byte()).Draw(t, "data")
		rows := rapid.IntRange(1, 16).Draw(t, "rows")

		interleaved := interleave.Interleave(data, rows)
		back := interleave.Deinterleave(interleaved, rows)
		if !bytes.Equal(back, data) {
			t.Fatalf("round trip mismatch rows=%d len=%d", rows, len(data))
		}
	})
}
