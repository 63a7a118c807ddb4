package bitpack_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"acoumodem/internal/bitpack"
)

func TestPackUnpackRoundTripEachWidth(t *testing.T) {
	t.Parallel()
	data := []byte("modem")

	for _, b := range []int{2, 3, 4} {
		packed := bitpack.Pack(data, b)
		unpacked := bitpack.Unpack(packed, len(data), b)
		assert.Equal(t, data, unpacked, "width %d", b)
	}
}

func TestPackNibblesIsTwoPerByte(t *testing.T) {
	t.Parallel()
	packed := bitpack.Pack([]byte{0xAB, 0xCD}, 4)
	assert.Equal(t, []byte{0x0A, 0x0B, 0x0C, 0x0D}, packed)
}

func TestUnpackIgnoresTrailingSymbols(t *testing.T) {
	t.Parallel()
	packed := bitpack.Pack([]byte{0x5A}, 3)
	padded := append(append([]byte{}, packed...), 0, 0, 0)
	assert.Equal(t, []byte{0x5A}, bitpack.Unpack(padded, 1, 3))
}

func TestPackUnpackRoundTripRandom(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		data := rapid.SliceOf(rapid.Byte()).Draw(t, "data")
		b := rapid.SampledFrom([]int{2, 3, 4}).Draw(t, "width")

		packed := bitpack.Pack(data, b)
		unpacked := bitpack.Unpack(packed, len(data), b)
		if !bytes.Equal(unpacked, data) {
			t.Fatalf("round trip mismatch width=%d", b)
		}
	})
}
