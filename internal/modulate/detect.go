package modulate

import (
	"math"

	"acoumodem/internal/consts"
)

// Detector runs the Goertzel algorithm against one ModeConfig's tone
// table to recover the most likely symbol from a single symbol-length
// PCM window, per §4.7.
type Detector struct {
	cfg        consts.ModeConfig
	sampleRate int
}

// NewDetector builds a detector for cfg at sampleRate.
func NewDetector(cfg consts.ModeConfig, sampleRate int) *Detector {
	return &Detector{cfg: cfg, sampleRate: sampleRate}
}

// goertzel returns the power of samples at freq Hz, windowed with a
// full Hann window to reduce spectral leakage from neighbouring tones.
func goertzel(samples []float32, freq float64, sampleRate int) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	k := int(0.5 + float64(n)*freq/float64(sampleRate))
	omega := 2 * math.Pi * float64(k) / float64(n)
	coeff := 2 * math.Cos(omega)

	var s0, s1, s2 float64
	for i := 0; i < n; i++ {
		w := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		x := float64(samples[i]) * w
		s0 = x + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	real := s1 - s2*math.Cos(omega)
	imag := s2 * math.Sin(omega)
	return real*real + imag*imag
}

// CalculateSignalEnergy returns a normalised RMS-like energy measure
// used to gate symbol detection against silence, per §4.7's EnergyGate.
func CalculateSignalEnergy(samples []float32) float64 {
	if len(samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range samples {
		sum += float64(s) * float64(s)
	}
	return math.Sqrt(sum / float64(len(samples)))
}

// DetectSymbol evaluates the Goertzel power of every tone in the mode's
// table against samples and returns the index of the strongest tone and
// its confidence (winner power over total power across all tones).
// present reports argmax against SymbolConfidenceHigh first; if that
// threshold rejects, it falls back to SymbolConfidenceLow before giving
// up and reporting the best-guess index with present=false.
func (d *Detector) DetectSymbol(samples []float32) (symbol int, confidence float64, present bool) {
	if CalculateSignalEnergy(samples) < consts.EnergyGate {
		return 0, 0, false
	}

	powers := make([]float64, d.cfg.NumTones)
	var total float64
	best := 0
	for i, freq := range d.cfg.ToneFrequencies {
		p := goertzel(samples, freq, d.sampleRate)
		powers[i] = p
		total += p
		if p > powers[best] {
			best = i
		}
	}
	if total == 0 {
		return 0, 0, false
	}

	confidence = powers[best] / total
	if confidence > consts.SymbolConfidenceHigh {
		return best, confidence, true
	}
	if confidence > consts.SymbolConfidenceLow {
		return best, confidence, true
	}
	return best, confidence, false
}

// DetectChirp reports true when samples pass the EnergyGate and the
// summed Goertzel power at ChirpStartHz, ChirpPeakHz and their midpoint
// is non-zero. That power is not compared against the window's total
// energy, so any window above the gate counts. The decoder uses the
// result only as an observational hint; preamble lock goes through the
// symbol-pattern search.
func (d *Detector) DetectChirp(samples []float32) bool {
	energy := CalculateSignalEnergy(samples)
	if energy < consts.EnergyGate {
		return false
	}
	mid := (consts.ChirpStartHz + consts.ChirpPeakHz) / 2
	startP := goertzel(samples, consts.ChirpStartHz, d.sampleRate)
	midP := goertzel(samples, mid, d.sampleRate)
	peakP := goertzel(samples, consts.ChirpPeakHz, d.sampleRate)
	return (startP + midP + peakP) > 0
}
