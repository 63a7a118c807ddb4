// Package wavio is a thin wrapper around github.com/go-audio/wav and
// github.com/go-audio/audio for CLI file I/O, per SPEC_FULL.md §4.14.
// Not imported by any core modem package — the modem core only ever
// sees []float32.
package wavio

import (
	"fmt"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ReadWAV decodes a 16-bit or 32-bit PCM WAV file into normalised
// Float32 samples in [-1, 1], returning the file's sample rate.
func ReadWAV(path string) (samples []float32, sampleRate int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("wavio: decode %s: %w", path, err)
	}

	if dec.BitDepth == 0 {
		return nil, 0, fmt.Errorf("wavio: decode %s: missing bit depth", path)
	}
	scale := float32(int64(1) << (uint(dec.BitDepth) - 1))
	out := make([]float32, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float32(v) / scale
	}
	return out, int(dec.SampleRate), nil
}

// WriteWAV encodes Float32 samples in [-1, 1] to a 16-bit PCM mono WAV
// file at sampleRate.
func WriteWAV(path string, samples []float32, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	intData := make([]int, len(samples))
	for i, s := range samples {
		v := s
		if v > 1 {
			v = 1
		}
		if v < -1 {
			v = -1
		}
		intData[i] = int(v * 32767)
	}

	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           intData,
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return err
	}
	return enc.Close()
}
