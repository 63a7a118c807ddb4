// Package encode implements the transmit-side pipeline: optional
// compress/encrypt, packetize, per-frame FEC + interleave, bit-pack to
// symbols, then modulate to PCM (spec.md §2's "bytes -> packetize ->
// FEC -> interleave -> symbol pack -> MFSK modulate -> PCM" flow).
package encode

import (
	"crypto/sha256"

	"acoumodem/internal/bitpack"
	"acoumodem/internal/consts"
	"acoumodem/internal/fec"
	"acoumodem/internal/frame"
	"acoumodem/internal/interleave"
	"acoumodem/internal/modemerr"
	"acoumodem/internal/modulate"
)

// Compressor compresses a payload, per SPEC_FULL.md §4.11.
type Compressor interface {
	TryCompress(data []byte) (out []byte, compressed bool)
}

// Encryptor encrypts a payload under a password, per SPEC_FULL.md §4.12.
type Encryptor interface {
	Encrypt(data, password []byte) ([]byte, error)
}

// Stats describes the outcome of one Encode call.
type Stats struct {
	FrameCount     int
	Encrypted      bool
	Compressed     bool
	OriginalLength int
	PayloadLength  int
}

// Result is the complete transmit-side output.
type Result struct {
	PCM        []float32
	SampleRate int
	Duration   float64
	Checksum   [32]byte
	Stats      Stats
}

// Config bundles an Encode call's fixed collaborators and options.
type Config struct {
	SampleRate int
	Mode       consts.Mode
	Password   []byte // nil/empty disables encryption
	Compress   bool
	Compressor Compressor
	Encryptor  Encryptor
}

// Encode runs the full transmit pipeline for payload. It returns an
// Input-kind error when payload exceeds MaxPayloadBytes and a Fatal-kind
// error when the Encryptor fails.
func Encode(payload []byte, cfg Config) (*Result, error) {
	if len(payload) > consts.MaxPayloadBytes {
		return nil, modemerr.Newf(modemerr.Input, "encode: payload of %d bytes exceeds MaxPayloadBytes (%d)", len(payload), consts.MaxPayloadBytes)
	}
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = consts.DefaultSampleRate
	}

	checksum := sha256.Sum256(payload)
	originalLength := len(payload)

	data := payload
	compressed := false
	algo := consts.CompAlgoNone
	if cfg.Compress && cfg.Compressor != nil {
		if out, ok := cfg.Compressor.TryCompress(data); ok {
			data = out
			compressed = true
			algo = consts.CompAlgoZstd
		}
	}

	encrypted := len(cfg.Password) > 0
	if encrypted {
		out, err := cfg.Encryptor.Encrypt(data, cfg.Password)
		if err != nil {
			return nil, modemerr.Wrap(modemerr.Fatal, err, "encode: encryption failed")
		}
		data = out
	}

	pkt := frame.Packetize(data, originalLength, compressed, encrypted, algo)

	headerCopies, dataSymbols := buildSymbolStream(pkt, cfg.Mode)

	modulator := modulate.NewModulator(cfg.Mode.Config(), cfg.SampleRate)
	pcm := modulator.GenerateTransmission(headerCopies, dataSymbols)

	numSymbols := len(dataSymbols)
	for _, c := range headerCopies {
		numSymbols += len(c)
	}

	return &Result{
		PCM:        pcm,
		SampleRate: cfg.SampleRate,
		Duration:   modulator.CalculateDuration(numSymbols),
		Checksum:   checksum,
		Stats: Stats{
			FrameCount:     len(pkt.DataFrames),
			Encrypted:      encrypted,
			Compressed:     compressed,
			OriginalLength: originalLength,
			PayloadLength:  len(data),
		},
	}, nil
}

// buildSymbolStream returns the header symbol sequence (returned once,
// or twice when there is more than one data frame, per spec.md §4.6) and
// the concatenated data-frame symbol sequence, each individually
// FEC-encoded, interleaved, and bit-packed to symbols. The two are kept
// separate so the modulator can reset its jitter PRNG before each header
// copy, making repeated copies bit-identical on air.
func buildSymbolStream(pkt frame.Packet, mode consts.Mode) (headerCopies [][]int, dataSymbols []int) {
	bitsPerSymbol := mode.Config().BitsPerSymbol

	header := encodeHeaderSymbols(pkt.HeaderFrame, bitsPerSymbol)
	headerCopies = append(headerCopies, header)
	if len(pkt.DataFrames) > 1 {
		headerCopies = append(headerCopies, header)
	}

	for _, df := range pkt.DataFrames {
		dataSymbols = append(dataSymbols, encodeDataFrameSymbols(df, bitsPerSymbol)...)
	}
	return headerCopies, dataSymbols
}

// encodeHeaderSymbols applies robust FEC (convolutional + scramble + RS)
// to a header frame, matching the receiver's header auto-detect which
// tries normal first but accepts robust — robust is the stronger,
// always-safe choice for transmission.
func encodeHeaderSymbols(headerFrame []byte, bitsPerSymbol int) []int {
	encoded := fec.EncodeRobust(headerFrame)
	interleaved := interleave.Interleave(encoded, consts.InterleaveDepth)
	packed := bitpack.Pack(interleaved, bitsPerSymbol)
	return bytesToInts(packed)
}

func encodeDataFrameSymbols(dataFrame []byte, bitsPerSymbol int) []int {
	encoded := fec.EncodeRobust(dataFrame)
	interleaved := interleave.Interleave(encoded, consts.InterleaveDepth)
	packed := bitpack.Pack(interleaved, bitsPerSymbol)
	return bytesToInts(packed)
}

func bytesToInts(b []byte) []int {
	out := make([]int, len(b))
	for i, v := range b {
		out[i] = int(v)
	}
	return out
}
