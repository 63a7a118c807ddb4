package decoder

import (
	"acoumodem/internal/consts"
	"acoumodem/internal/modulate"
)

// phaseTrack accumulates detected symbols for one (mode, phase offset)
// candidate while the decoder hunts for the preamble, per spec.md §4.8's
// multi-phase extraction.
type phaseTrack struct {
	mode        consts.Mode
	phaseIdx    int
	detector    *modulate.Detector
	symbolLen   int // samples per symbol for this mode
	nextSample  int64
	symbols     []int
	confidences []float64
}

func newPhaseTrack(mode consts.Mode, phaseIdx, sampleRate int) *phaseTrack {
	cfg := mode.Config()
	symbolLen := int(cfg.SymbolDurationMs * float64(sampleRate) / 1000.0)
	return &phaseTrack{
		mode:       mode,
		phaseIdx:   phaseIdx,
		detector:   modulate.NewDetector(cfg, sampleRate),
		symbolLen:  symbolLen,
		nextSample: int64(phaseIdx * symbolLen / consts.NumPhases),
	}
}

// extend pulls as many new complete symbol windows as buf currently
// makes available, starting from nextSample.
func (t *phaseTrack) extend(buf *ringBuffer) {
	// A track that was not extended for a while (only the locked track is
	// extended after lock) may point before the retained window; skip
	// ahead by whole symbols so the phase offset is kept.
	if behind := buf.base - t.nextSample; behind > 0 && t.symbolLen > 0 {
		sl := int64(t.symbolLen)
		t.nextSample += (behind + sl - 1) / sl * sl
	}
	for {
		window := buf.Slice(t.nextSample, t.nextSample+int64(t.symbolLen))
		if window == nil {
			return
		}
		symbol, confidence, present := t.detector.DetectSymbol(window)
		if !present {
			symbol = 0
			confidence = 0
		}
		t.symbols = append(t.symbols, symbol)
		t.confidences = append(t.confidences, confidence)
		t.nextSample += int64(t.symbolLen)
	}
}

// trim keeps only the last `keep` symbols once the track exceeds
// `limit` entries, per spec.md §4.8's header-failure trim rule.
func (t *phaseTrack) trim(limit, keep int) {
	if len(t.symbols) <= limit {
		return
	}
	drop := len(t.symbols) - keep
	t.symbols = t.symbols[drop:]
	t.confidences = t.confidences[drop:]
}

func (t *phaseTrack) reset() {
	t.symbols = nil
	t.confidences = nil
}
