package compressplugin_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acoumodem/internal/compressplugin"
	"acoumodem/internal/consts"
)

func TestTryCompressDecompressRoundTrip(t *testing.T) {
	t.Parallel()
	data := bytes.Repeat([]byte("highly compressible text "), 200)

	compressed, ok := compressplugin.TryCompress(data)
	require.True(t, ok)
	assert.Less(t, len(compressed), len(data))

	out, err := compressplugin.Decompress(compressed, consts.CompAlgoZstd, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestTryCompressDeclinesIncompressibleData(t *testing.T) {
	t.Parallel()
	// Already-compressed-looking random bytes won't shrink under zstd.
	data := []byte{0x8f, 0x12, 0x91, 0x00, 0x77, 0x3c, 0xfa, 0x02}
	out, ok := compressplugin.TryCompress(data)
	assert.False(t, ok)
	assert.Equal(t, data, out)
}

func TestDecompressNoneIsPassthrough(t *testing.T) {
	t.Parallel()
	data := []byte("uncompressed")
	out, err := compressplugin.Decompress(data, consts.CompAlgoNone, len(data))
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func TestDecompressRejectsUnknownAlgo(t *testing.T) {
	t.Parallel()
	_, err := compressplugin.Decompress([]byte("x"), 0xFF, 1)
	assert.Error(t, err)
}

func TestPluginSatisfiesBothMethods(t *testing.T) {
	t.Parallel()
	var p compressplugin.Plugin
	data := []byte("plugin wiring check")

	out, compressed := p.TryCompress(data)
	if compressed {
		decoded, err := p.Decompress(out, consts.CompAlgoZstd, len(data))
		require.NoError(t, err)
		assert.Equal(t, data, decoded)
	}
}
