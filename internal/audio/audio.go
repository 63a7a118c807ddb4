// Package audio defines the injected audio collaborator interfaces
// (SPEC_FULL.md §4.13) and an implementation over a pre-loaded buffer.
// The CLI subcommands do not use this package.
package audio

import "context"

// Source yields Float32 PCM samples in arbitrary-sized blocks.
type Source interface {
	ReadSamples(ctx context.Context) ([]float32, error)
}

// Sink accepts Float32 PCM samples for playback or storage.
type Sink interface {
	WriteSamples(ctx context.Context, samples []float32) error
}

// FileSource serves a single pre-loaded buffer in fixed-size chunks,
// then returns io.EOF-equivalent via ErrExhausted.
type FileSource struct {
	samples   []float32
	chunkSize int
	pos       int
}

// ErrExhausted is returned once a FileSource has yielded every sample.
var ErrExhausted = errExhausted{}

type errExhausted struct{}

func (errExhausted) Error() string { return "audio: source exhausted" }

// NewFileSource wraps samples, delivered chunkSize at a time (the final
// chunk may be shorter).
func NewFileSource(samples []float32, chunkSize int) *FileSource {
	if chunkSize <= 0 {
		chunkSize = 4096
	}
	return &FileSource{samples: samples, chunkSize: chunkSize}
}

func (s *FileSource) ReadSamples(ctx context.Context) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.pos >= len(s.samples) {
		return nil, ErrExhausted
	}
	end := s.pos + s.chunkSize
	if end > len(s.samples) {
		end = len(s.samples)
	}
	chunk := s.samples[s.pos:end]
	s.pos = end
	return chunk, nil
}

// FileSink accumulates every written block into a single buffer, read
// back via Samples once writing is done.
type FileSink struct {
	buf []float32
}

// NewFileSink returns an empty FileSink.
func NewFileSink() *FileSink { return &FileSink{} }

func (s *FileSink) WriteSamples(ctx context.Context, samples []float32) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.buf = append(s.buf, samples...)
	return nil
}

// Samples returns everything written so far.
func (s *FileSink) Samples() []float32 { return s.buf }
