package fec

import (
	"fmt"

	"acoumodem/internal/rs"
)

// Result is the outcome of decoding one FEC-protected frame block.
type Result struct {
	Data      []byte
	Corrected int // -1 on failure, per §4.4
}

// EncodeNormal applies only the outer RS code to a frame's bytes
// (header "normal" FEC mode): frameLen + 16 bytes out.
func EncodeNormal(frameBytes []byte) []byte {
	codec := rs.NewCodec(len(frameBytes))
	encoded, err := codec.Encode(frameBytes)
	if err != nil {
		panic(err) // programmer error: codec built for the wrong length
	}
	return encoded
}

// DecodeNormal reverses EncodeNormal, returning the frameLen-byte frame.
func DecodeNormal(encoded []byte, frameLen int) Result {
	codec := rs.NewCodec(frameLen)
	data, corrected, err := codec.Decode(encoded)
	if err != nil {
		return Result{Corrected: -1}
	}
	return Result{Data: data, Corrected: corrected}
}

// EncodeRobust applies the full v3 inner chain: convolutional-encode,
// scramble, then outer RS. Order per §4.4: payload+CRC (frameBytes here
// already includes the frame's own CRC-16) -> convolutional-encode ->
// scramble -> RS-encode.
func EncodeRobust(frameBytes []byte) []byte {
	convEncoded := EncodeBytes(frameBytes)
	scrambled := Scramble(convEncoded)
	codec := rs.NewCodec(len(scrambled))
	encoded, err := codec.Encode(scrambled)
	if err != nil {
		panic(err)
	}
	return encoded
}

// DecodeRobust reverses EncodeRobust: RS decode -> descramble -> Viterbi
// decode, returning the frameLen-byte frame. Any stage failing is
// reported as Result{Corrected: -1}, per §4.4.
func DecodeRobust(encoded []byte, frameLen int) Result {
	scrambledLen := frameLen * 2
	codec := rs.NewCodec(scrambledLen)
	scrambled, corrected, err := codec.Decode(encoded)
	if err != nil {
		return Result{Corrected: -1}
	}
	convEncoded := Descramble(scrambled)
	data := DecodeBytes(convEncoded, frameLen)
	return Result{Data: data, Corrected: corrected}
}

// RobustEncodedLen and NormalEncodedLen compute the on-air byte count of
// a frameLen-byte frame under each FEC mode, used by the decoder to know
// how many symbols to wait for.
func RobustEncodedLen(frameLen int) int { return frameLen*2 + rs.ParityBytes }
func NormalEncodedLen(frameLen int) int { return frameLen + rs.ParityBytes }

// ValidateFrameLen is a defensive guard used by callers constructing a
// codec for an externally-derived length.
func ValidateFrameLen(n int) error {
	if n <= 0 {
		return fmt.Errorf("fec: invalid frame length %d", n)
	}
	return nil
}
