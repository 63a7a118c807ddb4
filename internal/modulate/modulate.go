// Package modulate implements the MFSK waveform: tone generation with
// Hann-windowed guard intervals, the three-part preamble (warmup, chirp,
// calibration+sync), an end marker, and the Goertzel-based single-symbol
// detector the decoder uses to recover a tone index from a PCM window.
//
// Grounded on the teacher's filter package (plain float32/float64 math,
// no FFT library) and on the Hann-window + power-bin style of the FSK
// ID decoder carried in the broader reference pack.
package modulate

import (
	"math"

	"acoumodem/internal/consts"
)

// jitterSeed is the fixed reset value for the jitter PRNG at the start
// of every GenerateTransmission call, so a given (mode, sampleRate,
// symbol sequence) always renders identical PCM.
const jitterSeed = 12345

// Modulator renders symbol streams to PCM for one ModeConfig and sample
// rate. It owns a deterministic PRNG so that per-tone frequency jitter
// is reproducible across calls for identical inputs.
type Modulator struct {
	cfg        consts.ModeConfig
	sampleRate int
	rngState   uint64
}

// NewModulator seeds the jitter PRNG from the fixed reset value.
func NewModulator(cfg consts.ModeConfig, sampleRate int) *Modulator {
	return &Modulator{cfg: cfg, sampleRate: sampleRate, rngState: jitterSeed}
}

// resetJitter reseeds the PRNG to jitterSeed; GenerateTransmission calls
// this so every rendered transmission starts from the same sequence.
func (m *Modulator) resetJitter() {
	m.rngState = jitterSeed
}

// nextJitter returns a deterministic pseudo-random offset in
// [-FrequencyJitter, +FrequencyJitter] Hz, advancing a linear
// congruential generator (multiplier 1103515245, increment 12345,
// modulus 2^31). Used to slightly decorrelate adjacent tones of the
// same frequency so a long run of repeated symbols doesn't look like a
// pure continuous tone to naive energy detectors downstream.
func (m *Modulator) nextJitter() float64 {
	m.rngState = (1103515245*m.rngState + 12345) % (1 << 31)
	r := float64(m.rngState) / float64(1<<31) // [0,1)
	return (r*2 - 1) * consts.FrequencyJitter
}

func (m *Modulator) symbolSamples() int {
	return int(m.cfg.SymbolDurationMs * float64(m.sampleRate) / 1000.0)
}

func (m *Modulator) guardSamples() int {
	return int(m.cfg.GuardIntervalMs * float64(m.sampleRate) / 1000.0)
}

// hannGuard returns the multiplicative envelope for a symbol of n total
// samples with a guard interval of g samples tapered at each end via a
// half-Hann window; the steady middle section is full amplitude.
func hannGuard(i, n, g int) float64 {
	if g <= 0 {
		return 1.0
	}
	if i < g {
		return 0.5 * (1 - math.Cos(math.Pi*float64(i)/float64(g)))
	}
	if i >= n-g {
		j := n - 1 - i
		return 0.5 * (1 - math.Cos(math.Pi*float64(j)/float64(g)))
	}
	return 1.0
}

// renderTone appends one symbol's worth of samples at freq (with jitter
// applied unless jitter is false, per §4.6 excluding preamble/end-marker
// tones from jitter) to out.
func (m *Modulator) renderTone(out []float32, freq float64, jitter bool) []float32 {
	n := m.symbolSamples()
	g := m.guardSamples()
	f := freq
	if jitter {
		f += m.nextJitter()
	}
	phaseInc := 2 * math.Pi * f / float64(m.sampleRate)
	for i := 0; i < n; i++ {
		env := hannGuard(i, n, g)
		sample := consts.ToneAmplitude * math.Sin(phaseInc*float64(i)) * env
		out = append(out, float32(sample))
	}
	return out
}

// ModulateSymbols renders a sequence of tone indices to PCM, applying
// jitter to every symbol.
func (m *Modulator) ModulateSymbols(symbols []int) []float32 {
	out := make([]float32, 0, len(symbols)*m.symbolSamples())
	for _, sym := range symbols {
		out = m.renderTone(out, m.cfg.ToneFrequencies[sym], true)
	}
	return out
}

// renderChirp synthesises a linear up/down frequency sweep from
// ChirpStartHz to ChirpPeakHz and back, ChirpMs milliseconds total,
// used as the second preamble stage and as the feature the decoder's
// observational chirp hint listens for.
func (m *Modulator) renderChirp() []float32 {
	n := int(consts.ChirpMs * float64(m.sampleRate) / 1000.0)
	out := make([]float32, n)
	half := n / 2
	phase := 0.0
	for i := 0; i < n; i++ {
		var freq float64
		if i < half {
			frac := float64(i) / float64(half)
			freq = consts.ChirpStartHz + frac*(consts.ChirpPeakHz-consts.ChirpStartHz)
		} else {
			frac := float64(i-half) / float64(n-half)
			freq = consts.ChirpPeakHz - frac*(consts.ChirpPeakHz-consts.ChirpStartHz)
		}
		phase += 2 * math.Pi * freq / float64(m.sampleRate)
		out[i] = float32(consts.ToneAmplitude * math.Sin(phase))
	}
	return out
}

// renderWarmup emits a steady tone at the mode's first calibration
// frequency for WarmupMs, giving AGC/auto-gain circuits time to settle
// before the chirp and calibration tones that the decoder measures.
func (m *Modulator) renderWarmup() []float32 {
	n := int(consts.WarmupMs * float64(m.sampleRate) / 1000.0)
	freq := m.cfg.ToneFrequencies[m.cfg.CalibrationIndices[0]]
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		out[i] = float32(consts.ToneAmplitude * math.Sin(2*math.Pi*freq*float64(i)/float64(m.sampleRate)))
	}
	return out
}

// Preamble renders the full warmup+chirp+calibration+sync sequence for
// this mode: warmup tone, chirp, the calibration index pattern repeated
// to fill CalibrationSymbols symbols (two copies of the four indices;
// unjittered, so the decoder can use them as
// an amplitude/frequency reference), then the fixed sync pattern.
func (m *Modulator) Preamble() []float32 {
	out := m.renderWarmup()
	out = append(out, m.renderChirp()...)

	calibSeq := make([]int, 0, consts.CalibrationSymbols)
	for len(calibSeq) < consts.CalibrationSymbols {
		calibSeq = append(calibSeq, m.cfg.CalibrationIndices...)
	}
	calibSeq = calibSeq[:consts.CalibrationSymbols]
	for _, sym := range calibSeq {
		out = m.renderTone(out, m.cfg.ToneFrequencies[sym], false)
	}
	for _, sym := range m.cfg.SyncPattern {
		out = m.renderTone(out, m.cfg.ToneFrequencies[sym], false)
	}
	return out
}

// EndMarker renders one repetition of the sync pattern (SyncSymbols
// tones, unjittered), signalling end-of-transmission to a decoder that
// has run out of expected frames.
func (m *Modulator) EndMarker() []float32 {
	var out []float32
	for _, sym := range m.cfg.SyncPattern {
		out = m.renderTone(out, m.cfg.ToneFrequencies[sym], false)
	}
	return out
}

// GenerateTransmission renders the complete PCM stream: preamble, each
// headerCopies entry (the header symbol sequence, once or twice when the
// payload spans multiple data frames), dataSymbols, then the end marker.
// The jitter PRNG resets to jitterSeed before the preamble and again
// before every header copy, so repeated calls render identical PCM and
// the two on-air header copies are bit-identical to each other.
func (m *Modulator) GenerateTransmission(headerCopies [][]int, dataSymbols []int) []float32 {
	m.resetJitter()
	out := m.Preamble()
	for _, copySymbols := range headerCopies {
		m.resetJitter()
		out = append(out, m.ModulateSymbols(copySymbols)...)
	}
	out = append(out, m.ModulateSymbols(dataSymbols)...)
	out = append(out, m.EndMarker()...)
	return out
}

// CalculateDuration returns the wall-clock duration in seconds of a
// transmission carrying numSymbols symbols between preamble and end
// marker (header copies plus data) under this modulator's mode and
// sample rate; the preamble and end marker are added here.
func (m *Modulator) CalculateDuration(numSymbols int) float64 {
	preambleSamples := len(m.Preamble())
	symSamples := numSymbols * m.symbolSamples()
	endSamples := consts.SyncSymbols * m.symbolSamples()
	return float64(preambleSamples+symSamples+endSamples) / float64(m.sampleRate)
}
