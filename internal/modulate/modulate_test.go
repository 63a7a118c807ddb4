package modulate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"acoumodem/internal/consts"
	"acoumodem/internal/modulate"
)

const sampleRate = 48000

func TestModulateDetectRoundTripPhone(t *testing.T) {
	t.Parallel()
	cfg := consts.Phone.Config()
	mod := modulate.NewModulator(cfg, sampleRate)
	det := modulate.NewDetector(cfg, sampleRate)

	symbols := []int{0, 1, 2, 3, 4, 5, 6, 7, 7, 0}
	pcm := mod.ModulateSymbols(symbols)

	symbolLen := len(pcm) / len(symbols)
	for i, want := range symbols {
		window := pcm[i*symbolLen : (i+1)*symbolLen]
		got, _, present := det.DetectSymbol(window)
		require.True(t, present, "symbol %d", i)
		assert.Equal(t, want, got, "symbol %d", i)
	}
}

func TestModulateDetectRoundTripWideband(t *testing.T) {
	t.Parallel()
	cfg := consts.Wideband.Config()
	mod := modulate.NewModulator(cfg, sampleRate)
	det := modulate.NewDetector(cfg, sampleRate)

	symbols := []int{15, 14, 1, 0, 8, 9}
	pcm := mod.ModulateSymbols(symbols)

	symbolLen := len(pcm) / len(symbols)
	for i, want := range symbols {
		window := pcm[i*symbolLen : (i+1)*symbolLen]
		got, _, present := det.DetectSymbol(window)
		require.True(t, present, "symbol %d", i)
		assert.Equal(t, want, got, "symbol %d", i)
	}
}

func TestGenerateTransmissionIsDeterministic(t *testing.T) {
	t.Parallel()
	cfg := consts.Phone.Config()
	mod := modulate.NewModulator(cfg, sampleRate)

	headerCopies := [][]int{{1, 2, 3}, {1, 2, 3}}
	dataSymbols := []int{4, 5, 6}
	first := mod.GenerateTransmission(headerCopies, dataSymbols)
	second := mod.GenerateTransmission(headerCopies, dataSymbols)
	assert.Equal(t, first, second)

	firstCopyLen := len(mod.ModulateSymbols(headerCopies[0]))
	secondCopyStart := len(mod.Preamble()) + firstCopyLen
	secondCopyPCM := first[secondCopyStart : secondCopyStart+firstCopyLen]
	firstCopyPCM := first[len(mod.Preamble()) : len(mod.Preamble())+firstCopyLen]
	assert.Equal(t, firstCopyPCM, secondCopyPCM, "repeated header copies must render bit-identical PCM")
}

func TestCalculateDurationMatchesRenderedLength(t *testing.T) {
	t.Parallel()
	cfg := consts.Phone.Config()
	mod := modulate.NewModulator(cfg, sampleRate)

	symbols := []int{1, 2, 3}
	pcm := mod.GenerateTransmission([][]int{{0}}, symbols)
	wantSeconds := float64(len(pcm)) / float64(sampleRate)

	assert.InDelta(t, wantSeconds, mod.CalculateDuration(len(symbols)+1), 1e-6)
}

func TestDetectSymbolGatesOnSilence(t *testing.T) {
	t.Parallel()
	cfg := consts.Phone.Config()
	det := modulate.NewDetector(cfg, sampleRate)

	silence := make([]float32, 2000)
	_, _, present := det.DetectSymbol(silence)
	assert.False(t, present)
}

func TestDetectChirpRecognisesChirpWindow(t *testing.T) {
	t.Parallel()
	cfg := consts.Phone.Config()
	mod := modulate.NewModulator(cfg, sampleRate)
	det := modulate.NewDetector(cfg, sampleRate)

	preamble := mod.Preamble()
	// The chirp follows the warmup tone; sample a window well inside it.
	warmupSamples := int(consts.WarmupMs * float64(sampleRate) / 1000.0)
	chirpSamples := int(consts.ChirpMs * float64(sampleRate) / 1000.0)
	window := preamble[warmupSamples+chirpSamples/4 : warmupSamples+chirpSamples/2]

	assert.True(t, det.DetectChirp(window))
}
