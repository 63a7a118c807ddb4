// Package compressplugin is the default compression plugin backed by
// github.com/klauspost/compress/zstd. The core modem package depends
// only on the two-method shape this package implements, never on zstd
// directly (SPEC_FULL.md §4.11).
package compressplugin

import (
	"acoumodem/internal/consts"

	"github.com/klauspost/compress/zstd"
)

// Plugin is the default compressplugin.Plugin-shaped value the core
// modem package depends on by interface, not by importing this package
// directly.
type Plugin struct{}

func (Plugin) TryCompress(data []byte) ([]byte, bool) { return TryCompress(data) }
func (Plugin) Decompress(data []byte, algo byte, originalLength int) ([]byte, error) {
	return Decompress(data, algo, originalLength)
}

// TryCompress compresses data with zstd and reports compressed=true only
// when the result is strictly smaller than the input; otherwise it
// returns the original bytes unchanged with compressed=false.
func TryCompress(data []byte) (out []byte, compressed bool) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return data, false
	}
	defer enc.Close()

	compressedData := enc.EncodeAll(data, nil)
	if len(compressedData) < len(data) {
		return compressedData, true
	}
	return data, false
}

// Decompress reverses TryCompress for the given algorithm tag.
// consts.CompAlgoNone is a pass-through; unrecognised tags are rejected
// rather than silently treated as uncompressed, since that would corrupt
// the payload.
func Decompress(data []byte, algo byte, originalLength int) ([]byte, error) {
	switch algo {
	case consts.CompAlgoNone:
		return data, nil
	case consts.CompAlgoZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, make([]byte, 0, originalLength))
		if err != nil {
			return nil, err
		}
		return out, nil
	default:
		return nil, errUnknownAlgo(algo)
	}
}

type errUnknownAlgo byte

func (e errUnknownAlgo) Error() string {
	return "compressplugin: unrecognized compression algorithm tag"
}
