// Package acoumodem is the public facade over the acoustic MFSK modem:
// Encode for the transmit pipeline and NewDecoder for the receive state
// machine, wiring the default zstd/chacha20poly1305 plugins so callers
// that don't need to substitute their own never have to touch the
// internal/ packages directly.
package acoumodem

import (
	"acoumodem/internal/compressplugin"
	"acoumodem/internal/consts"
	"acoumodem/internal/cryptoplugin"
	"acoumodem/internal/decoder"
	"acoumodem/internal/encode"
	"acoumodem/internal/logx"
	"acoumodem/internal/progress"
)

// Re-exported types so callers only need this package.
type (
	Mode           = consts.Mode
	EncodeResult   = encode.Result
	EncodeStats    = encode.Stats
	DecodeResult   = decoder.Result
	DecodeState    = decoder.State
	Progress       = progress.Snapshot
	ProgressObserver = progress.Observer
)

const (
	Phone    = consts.Phone
	Wideband = consts.Wideband
)

// EncodeOptions configures Encode; zero value encodes at 48 kHz, phone
// mode, uncompressed, unencrypted.
type EncodeOptions struct {
	SampleRate int
	Mode       Mode
	Compress   bool
	Password   []byte
}

// Encode runs the full transmit pipeline and returns PCM plus stats.
func Encode(payload []byte, opts EncodeOptions) (*EncodeResult, error) {
	return encode.Encode(payload, encode.Config{
		SampleRate: opts.SampleRate,
		Mode:       opts.Mode,
		Compress:   opts.Compress,
		Password:   opts.Password,
		Compressor: compressplugin.Plugin{},
		Encryptor:  cryptoplugin.Plugin{},
	})
}

// DecoderOptions configures NewDecoder.
type DecoderOptions struct {
	SampleRate int
	Logger     *logx.Logger
	Observer   ProgressObserver
}

// Decoder wraps internal/decoder.Decoder with the default compression
// and encryption plugins wired in.
type Decoder struct {
	inner *decoder.Decoder
}

// NewDecoder builds a Decoder in the idle state.
func NewDecoder(opts DecoderOptions) *Decoder {
	return &Decoder{inner: decoder.New(decoder.Config{
		SampleRate: opts.SampleRate,
		Compressor: compressplugin.Plugin{},
		Decryptor:  cryptoplugin.Plugin{},
		Logger:     opts.Logger,
		Observer:   opts.Observer,
	})}
}

// Start transitions the decoder into listening/detecting-preamble.
func (d *Decoder) Start() { d.inner.Start() }

// Stop transitions the decoder to idle.
func (d *Decoder) Stop() { d.inner.Stop() }

// ProcessSamples feeds one block of Float32 PCM into the state machine.
func (d *Decoder) ProcessSamples(samples []float32) error {
	return d.inner.ProcessSamples(samples)
}

// State returns the decoder's current state.
func (d *Decoder) State() DecodeState { return d.inner.State() }

// Result returns the completed decode result, or nil until Complete.
func (d *Decoder) Result() *DecodeResult { return d.inner.Result() }

// NeedsPassword reports whether the decoder is waiting on
// RetryWithPassword.
func (d *Decoder) NeedsPassword() bool { return d.inner.NeedsPassword() }

// RetryWithPassword re-attempts finalize with a newly supplied password.
func (d *Decoder) RetryWithPassword(password []byte) error {
	return d.inner.RetryWithPassword(password)
}

// LastError returns the most recent recoverable/non-recoverable error.
func (d *Decoder) LastError() error { return d.inner.LastError() }
