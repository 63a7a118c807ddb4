package wavio_test

import (
	"math"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acoumodem/internal/wavio"
)

func TestWriteReadWAVRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "tone.wav")

	const sampleRate = 8000
	samples := make([]float32, sampleRate/10)
	for i := range samples {
		samples[i] = float32(0.5 * math.Sin(2*math.Pi*440*float64(i)/float64(sampleRate)))
	}

	require.NoError(t, wavio.WriteWAV(path, samples, sampleRate))

	readBack, readRate, err := wavio.ReadWAV(path)
	require.NoError(t, err)
	assert.Equal(t, sampleRate, readRate)
	require.Len(t, readBack, len(samples))

	for i, want := range samples {
		assert.InDelta(t, want, readBack[i], 1.0/32767*2)
	}
}

func TestWriteWAVClampsOutOfRangeSamples(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "clamped.wav")

	require.NoError(t, wavio.WriteWAV(path, []float32{2.0, -2.0, 0}, 8000))

	readBack, _, err := wavio.ReadWAV(path)
	require.NoError(t, err)
	require.Len(t, readBack, 3)
	assert.InDelta(t, 1.0, readBack[0], 1.0/32767*2)
	assert.InDelta(t, -1.0, readBack[1], 1.0/32767*2)
}
