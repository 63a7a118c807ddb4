package decoder

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStopMakesProcessSamplesANoOp(t *testing.T) {
	t.Parallel()
	d := New(Config{SampleRate: 48000})
	d.Start()
	d.Stop()

	require.NoError(t, d.ProcessSamples(make([]float32, 4096)))
	assert.Equal(t, Idle, d.State())
}

func TestStartResetsPriorSessionState(t *testing.T) {
	t.Parallel()
	d := New(Config{SampleRate: 48000})
	d.Start()
	d.headerFailures = 3
	d.needsPassword = true

	d.Start()
	assert.Equal(t, 0, d.headerFailures)
	assert.False(t, d.needsPassword)
	assert.Equal(t, DetectingPreamble, d.State())
}

func TestWhiteNoiseNeverCompletesADecode(t *testing.T) {
	t.Parallel()
	d := New(Config{SampleRate: 48000})
	d.Start()

	// The loose preamble pattern tier is a last-resort heuristic and can
	// occasionally false-lock on noise; the header's CRC-16 check is what
	// actually guards correctness, soft-resetting back to preamble search.
	// This asserts that backstop holds: noise alone never reaches Complete.
	rng := rand.New(rand.NewSource(1))
	noise := make([]float32, 48000*2)
	for i := range noise {
		noise[i] = float32(rng.Float64()*2 - 1)
	}

	const block = 4096
	for i := 0; i < len(noise); i += block {
		end := i + block
		if end > len(noise) {
			end = len(noise)
		}
		require.NoError(t, d.ProcessSamples(noise[i:end]))
		require.NotEqual(t, Complete, d.State())
	}
}

func TestSoftResetTrimsTracksAndClearsLock(t *testing.T) {
	t.Parallel()
	d := New(Config{SampleRate: 48000})
	d.Start()
	d.locked = true
	d.headerInfo = nil
	track := d.tracks[0][0]
	track.symbols = make([]int, 301)
	track.confidences = make([]float64, 301)

	d.softReset()
	assert.Len(t, track.symbols, 200)
	assert.False(t, d.locked)
	assert.Equal(t, DetectingPreamble, d.State())
}
