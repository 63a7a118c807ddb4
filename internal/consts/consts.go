// Package consts holds the fixed numeric tables that define the acoustic
// link layer: per-mode tone plans, preamble composition, and the protocol
// constants framing and FEC are built around.
//
// Modeled after the teacher's flat, table-driven consts package
// (consts/consts.go, consts/qpsk.go in the DVB-S reference): small const
// blocks plus a couple of package-level lookup tables, no runtime
// configuration.
package consts

const (
	// DefaultSampleRate is the PCM sample rate used when the caller does
	// not specify one.
	DefaultSampleRate = 48000

	// MaxPayloadBytes is the hard cap on a single transmission's original
	// payload size. The header's originalLength field can represent up to
	// 16 MiB (3 bytes, little-endian); this implementation sets a much
	// smaller practical ceiling since every byte costs real transmission
	// time over an audio channel.
	MaxPayloadBytes = 1 << 20 // 1 MiB

	// EncryptionOverhead is the fixed number of bytes the encryption
	// plugin adds: a 16-byte salt, a 12-byte nonce, and a 16-byte AEAD tag.
	EncryptionOverhead = 44

	// CalibrationSymbols and SyncSymbols are the post-chirp preamble
	// lengths: calibration tones repeated twice (8 symbols) followed by
	// the sync pattern (8 symbols).
	CalibrationSymbols = 8
	SyncSymbols        = 8
	PostChirpSymbols   = CalibrationSymbols + SyncSymbols

	// WarmupMs, ChirpMs are preamble timing: a warmup tone followed by an
	// up-chirp/down-chirp pair.
	WarmupMs = 200.0
	ChirpMs  = 400.0

	// CHIRP_START_HZ / CHIRP_PEAK_HZ bound the linear frequency sweep
	// used by the preamble chirp and by the decoder's chirp detector.
	ChirpStartHz = 300.0
	ChirpPeakHz  = 3800.0

	// FrequencyJitter bounds the per-tone deterministic jitter (Hz)
	// applied during modulation, excluding preamble/end-marker symbols.
	FrequencyJitter = 3.0

	// ToneAmplitude scales every rendered symbol sinusoid, preamble and
	// end-marker tones included, leaving headroom below full scale.
	ToneAmplitude = 0.85

	// NumPhases is the number of candidate symbol-boundary offsets the
	// decoder tracks simultaneously while hunting for sync.
	NumPhases = 4

	// InterleaveDepth (rows) used by the block interleaver for every
	// frame, post-FEC.
	InterleaveDepth = 8

	// MaxHeaderFailures is the number of consecutive header-decode
	// failures before the decoder emits a "poor signal" debug hint.
	MaxHeaderFailures = 3

	// EnergyGate is the signal-present threshold that DetectSymbol and
	// DetectChirp compare CalculateSignalEnergy's RMS result against.
	EnergyGate = 0.05

	// SymbolConfidenceHigh / SymbolConfidenceLow are the Goertzel peak
	// confidence thresholds tried in order by the symbol detector.
	SymbolConfidenceHigh = 0.10
	SymbolConfidenceLow  = 0.05
)

// Mode is a closed tagged variant over the two supported audio modes.
// Unlike the teacher's runtime map-based symbol lookup, mode selection
// here is a fixed enum with two immutable tables, never a dynamic switch.
type Mode int

const (
	Phone Mode = iota
	Wideband
)

func (m Mode) String() string {
	if m == Wideband {
		return "wideband"
	}
	return "phone"
}

// ModeConfig bundles every constant that varies by Mode.
type ModeConfig struct {
	Mode               Mode
	NumTones           int
	BitsPerSymbol      int
	SymbolDurationMs   float64
	GuardIntervalMs    float64
	ToneFrequencies    []float64
	CalibrationIndices []int
	SyncPattern        []int
}

// phoneTones spans roughly 600-3050 Hz in 8 steps, suited to
// telephone-grade band-limited channels.
var phoneTones = []float64{600, 950, 1300, 1650, 2000, 2350, 2700, 3050}

// widebandTones spans 600-9600 Hz in 16 steps for a wider channel.
var widebandTones = []float64{
	600, 1200, 1800, 2400, 3000, 3600, 4200, 4800,
	5400, 6000, 6600, 7200, 7800, 8400, 9000, 9600,
}

var phoneConfig = ModeConfig{
	Mode:               Phone,
	NumTones:           8,
	BitsPerSymbol:      3,
	SymbolDurationMs:   40.0,
	GuardIntervalMs:    8.0,
	ToneFrequencies:    phoneTones,
	CalibrationIndices: []int{0, 2, 5, 7},
	SyncPattern:        []int{0, 7, 0, 7, 0, 7, 0, 7},
}

var widebandConfig = ModeConfig{
	Mode:               Wideband,
	NumTones:           16,
	BitsPerSymbol:      4,
	SymbolDurationMs:   25.0,
	GuardIntervalMs:    5.0,
	ToneFrequencies:    widebandTones,
	CalibrationIndices: []int{0, 4, 11, 15},
	SyncPattern:        []int{0, 15, 0, 15, 0, 15, 0, 15},
}

// Config returns the fixed table for a mode. Both tables are package-level
// and immutable for the lifetime of the process.
func (m Mode) Config() ModeConfig {
	if m == Wideband {
		return widebandConfig
	}
	return phoneConfig
}

// AllModes is the closed set of recognised modes, in preamble-search order
// (§4.8 of the spec tries phone, then wideband, for each pattern).
var AllModes = []Mode{Phone, Wideband}
