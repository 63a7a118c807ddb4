package audio

import (
	"context"

	"github.com/gordonklaus/portaudio"
)

// PortaudioSource captures Float32 PCM from the default input device in
// fixed-size blocks (SPEC_FULL.md §4.13). No subcommand constructs one;
// `serve` does no live capture. The rest of the module never imports
// portaudio directly except through this file.
type PortaudioSource struct {
	stream *portaudio.Stream
	buf    []float32
}

// NewPortaudioSource opens the default input device at sampleRate,
// reading blockSize samples per call.
func NewPortaudioSource(sampleRate float64, blockSize int) (*PortaudioSource, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	s := &PortaudioSource{buf: make([]float32, blockSize)}
	stream, err := portaudio.OpenDefaultStream(1, 0, sampleRate, blockSize, s.buf)
	if err != nil {
		return nil, err
	}
	s.stream = stream
	if err := stream.Start(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PortaudioSource) ReadSamples(ctx context.Context) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.stream.Read(); err != nil {
		return nil, err
	}
	out := make([]float32, len(s.buf))
	copy(out, s.buf)
	return out, nil
}

// Close stops the stream and releases portaudio resources.
func (s *PortaudioSource) Close() error {
	if err := s.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}

// PortaudioSink plays Float32 PCM to the default output device.
type PortaudioSink struct {
	stream    *portaudio.Stream
	buf       []float32
	blockSize int
}

// NewPortaudioSink opens the default output device at sampleRate.
func NewPortaudioSink(sampleRate float64, blockSize int) (*PortaudioSink, error) {
	if err := portaudio.Initialize(); err != nil {
		return nil, err
	}
	buf := make([]float32, blockSize)
	stream, err := portaudio.OpenDefaultStream(0, 1, sampleRate, blockSize, buf)
	if err != nil {
		return nil, err
	}
	if err := stream.Start(); err != nil {
		return nil, err
	}
	return &PortaudioSink{stream: stream, buf: buf, blockSize: blockSize}, nil
}

// WriteSamples plays samples one blockSize-sized chunk at a time,
// zero-padding the final partial chunk.
func (s *PortaudioSink) WriteSamples(ctx context.Context, samples []float32) error {
	for i := 0; i < len(samples); i += s.blockSize {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := i + s.blockSize
		n := copy(s.buf, samples[i:min(end, len(samples))])
		for j := n; j < s.blockSize; j++ {
			s.buf[j] = 0
		}
		if err := s.stream.Write(); err != nil {
			return err
		}
	}
	return nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Close stops the stream and releases portaudio resources.
func (s *PortaudioSink) Close() error {
	if err := s.stream.Close(); err != nil {
		return err
	}
	return portaudio.Terminate()
}
