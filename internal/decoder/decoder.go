package decoder

import (
	"crypto/sha256"
	"unicode/utf8"

	"acoumodem/internal/consts"
	"acoumodem/internal/frame"
	"acoumodem/internal/logx"
	"acoumodem/internal/modulate"
	"acoumodem/internal/progress"
)

// Compressor decompresses a payload given its algorithm tag, per
// SPEC_FULL.md §4.11; the decoder depends only on this interface.
type Compressor interface {
	Decompress(data []byte, algo byte, originalLength int) ([]byte, error)
}

// Decryptor reverses the encryption plugin's Encrypt, per SPEC_FULL.md
// §4.12.
type Decryptor interface {
	Decrypt(data, password []byte) ([]byte, error)
}

// Result is the terminal output of a completed decode.
type Result struct {
	Bytes          []byte
	Text           string
	Checksum       [32]byte
	Encrypted      bool
	FrameCount     int
	ErrorsCorrected int
}

// Config bundles a Decoder's fixed collaborators.
type Config struct {
	SampleRate int
	Compressor Compressor
	Decryptor  Decryptor
	Logger     *logx.Logger
	Observer   progress.Observer
}

// Decoder is the receive-side state machine of spec.md §4.8. Not safe
// for concurrent use: ProcessSamples calls must be serialized by the
// caller, matching the module's single-threaded cooperative model.
type Decoder struct {
	cfg   Config
	state State

	buf                  *ringBuffer
	totalSamplesReceived int64

	tracks [2][consts.NumPhases]*phaseTrack

	bestMode   consts.Mode
	bestPhase  int
	locked     bool
	syncFoundAt int64 // symbol index within the locked track, not sample index

	headerFailures   int
	headerInfo       *frame.HeaderInfo
	headerUsedRobust bool
	collector        *frame.Collector
	attempted        map[uint16]struct{}

	pendingPayload  []byte
	needsPassword   bool
	errorsCorrected int
	result          *Result

	chirpDetector *modulate.Detector
	chirpRising   int

	lastErr error
}

const bufferSeconds = 10

// New builds a Decoder in the idle state.
func New(cfg Config) *Decoder {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = consts.DefaultSampleRate
	}
	d := &Decoder{
		cfg:           cfg,
		state:         Idle,
		buf:           newRingBuffer(bufferSeconds * cfg.SampleRate),
		collector:     frame.NewCollector(),
		chirpDetector: modulate.NewDetector(consts.Phone.Config(), cfg.SampleRate),
	}
	return d
}

// Start (re)initialises the multi-phase symbol trackers and passes
// through listening into detecting_preamble.
func (d *Decoder) Start() {
	d.state = Listening
	d.resetTracks()
	d.locked = false
	d.collector.Reset()
	d.headerFailures = 0
	d.headerInfo = nil
	d.attempted = nil
	d.pendingPayload = nil
	d.needsPassword = false
	d.state = DetectingPreamble
}

// Stop transitions to idle and makes subsequent ProcessSamples calls
// no-ops until Start is called again.
func (d *Decoder) Stop() {
	d.state = Idle
}

func (d *Decoder) resetTracks() {
	for m, mode := range consts.AllModes {
		for p := 0; p < consts.NumPhases; p++ {
			d.tracks[m][p] = newPhaseTrack(mode, p, d.cfg.SampleRate)
		}
	}
}

// State returns the decoder's current state.
func (d *Decoder) State() State { return d.state }

// ProcessSamples ingests one block of Float32 PCM, advancing the state
// machine as far as the currently available data allows.
func (d *Decoder) ProcessSamples(samples []float32) error {
	if d.state == Idle || d.state == ErrorState {
		return nil
	}
	d.buf.Append(samples)
	d.totalSamplesReceived += int64(len(samples))
	d.updateChirpDetector(samples)

	switch d.state {
	case DetectingPreamble:
		d.extendAllTracks()
		d.searchAllPhases()
	case ReceivingHeader:
		d.extendLockedTrack()
		d.attemptHeader()
	case ReceivingData:
		d.extendLockedTrack()
		d.attemptDataFrames()
	}

	d.emitProgress()
	return nil
}

func (d *Decoder) extendAllTracks() {
	for m := range consts.AllModes {
		for p := 0; p < consts.NumPhases; p++ {
			d.tracks[m][p].extend(d.buf)
		}
	}
}

func (d *Decoder) extendLockedTrack() {
	d.tracks[d.bestMode][d.bestPhase].extend(d.buf)
}

func (d *Decoder) lockedTrack() *phaseTrack { return d.tracks[d.bestMode][d.bestPhase] }

// searchAllPhases implements spec.md §4.8's preamble/sync search across
// every (mode, phase) candidate with >= 20 symbols. Each pattern tier
// (full, sync-only, loose) is tried on phone then wideband, per
// AllModes' order, before the next tier is tried.
func (d *Decoder) searchAllPhases() {
	tiers := []func([]int, consts.ModeConfig) matchResult{searchFullPattern, searchSyncOnly, searchLoosePattern}
	for _, search := range tiers {
		for m, mode := range consts.AllModes {
			for p := 0; p < consts.NumPhases; p++ {
				track := d.tracks[m][p]
				if len(track.symbols) < 20 {
					continue
				}
				res := search(track.symbols, mode.Config())
				if res.found {
					d.lockMode(m, p, int64(res.syncEnd))
					return
				}
			}
		}
	}
}

func (d *Decoder) lockMode(modeIdx, phaseIdx int, syncEnd int64) {
	d.bestMode = consts.AllModes[modeIdx]
	d.bestPhase = phaseIdx
	d.syncFoundAt = syncEnd
	d.locked = true
	d.state = ReceivingHeader
}

// soft reset per spec.md §4.8: clears the collector and the header lock,
// trims every phase track that holds more than 300 symbols down to its
// last 200, and returns to preamble search. Tracks of 300 symbols or
// fewer are kept as they are, not cleared. Decryption failure is
// excluded by the caller never invoking this on that path.
func (d *Decoder) softReset() {
	d.locked = false
	d.bestPhase = 0
	d.syncFoundAt = 0
	d.collector.Reset()
	d.headerInfo = nil
	d.attempted = nil
	for m := range consts.AllModes {
		for p := 0; p < consts.NumPhases; p++ {
			track := d.tracks[m][p]
			track.trim(300, 200)
		}
	}
	d.state = DetectingPreamble
}

// updateChirpDetector is the optional UX hint of spec.md §4.8: each
// incoming block is tested with the Goertzel-based chirp detector and
// chirpRising counts consecutive blocks that look like the preamble
// chirp. Purely observational; preamble lock itself goes through
// searchPreamble on the symbol trackers, not this counter.
func (d *Decoder) updateChirpDetector(samples []float32) {
	if len(samples) < 2 || d.cfg.SampleRate <= 0 {
		return
	}
	if d.chirpDetector.DetectChirp(samples) {
		d.chirpRising++
	} else {
		d.chirpRising = 0
	}
}

// ChirpDetected reports whether three consecutive blocks looked like
// the preamble chirp.
func (d *Decoder) ChirpDetected() bool { return d.chirpRising >= 3 }

func (d *Decoder) emitProgress() {
	if d.cfg.Observer == nil {
		return
	}
	framesExpected := 0
	framesReceived := 0
	if d.headerInfo != nil {
		framesExpected = int(d.headerInfo.TotalFrames)
		framesReceived = d.collector.FramesReceived()
	}
	d.cfg.Observer.OnUpdate(progress.Snapshot{
		State:           d.state.String(),
		SignalLevel:     d.signalLevelEstimate(),
		SyncConfidence:  d.syncConfidenceEstimate(),
		FramesReceived:  framesReceived,
		FramesExpected:  framesExpected,
		ErrorsCorrected: d.errorsCorrected,
		NeedsPassword:   d.needsPassword,
		SignalWarning:   d.headerFailures >= consts.MaxHeaderFailures,
	})
}

func (d *Decoder) signalLevelEstimate() int {
	const window = 2048
	n := d.buf.Len()
	if n == 0 {
		return 0
	}
	from := d.buf.End() - int64(window)
	if from < d.buf.base {
		from = d.buf.base
	}
	samples := d.buf.Slice(from, d.buf.End())
	energy := 0.0
	for _, s := range samples {
		energy += float64(s) * float64(s)
	}
	if len(samples) == 0 {
		return 0
	}
	rms := energy / float64(len(samples))
	level := int(rms * 400)
	if level > 100 {
		level = 100
	}
	return level
}

func (d *Decoder) syncConfidenceEstimate() float64 {
	if !d.locked {
		return 0
	}
	track := d.lockedTrack()
	if len(track.confidences) == 0 {
		return 0
	}
	return track.confidences[len(track.confidences)-1]
}


// LastError returns the most recent recoverable/non-recoverable error
// observed, for callers that want detail beyond the state machine.
func (d *Decoder) LastError() error { return d.lastErr }

// NeedsPassword reports whether the decoder is waiting on
// RetryWithPassword.
func (d *Decoder) NeedsPassword() bool { return d.needsPassword }

// checksumAndText computes the SHA-256 checksum and a best-effort UTF-8
// text view of bytes, per spec.md §4.8's finalize step.
func checksumAndText(data []byte) ([32]byte, string) {
	sum := sha256.Sum256(data)
	if utf8.Valid(data) {
		return sum, string(data)
	}
	return sum, ""
}
