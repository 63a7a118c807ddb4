// Package rs implements a systematic Reed-Solomon codec over GF(256)
// with 16 parity bytes, correcting up to 8 byte errors per block —
// the outer code used for both the header-robust and data-frame FEC
// paths (§4.3 of the spec).
package rs

import "fmt"

// ParityBytes is fixed at 16 for this protocol (T=8 error correction).
const ParityBytes = 16

// Codec encodes/decodes one block size. n is the total codeword length;
// k = n - ParityBytes is the dataword length.
type Codec struct {
	n         int
	k         int
	generator []byte // feedback coefficients g_1..g_16 (teacher's g[1:]); leading g_0=1 is implicit
}

// NewCodec builds the codec for a dataword of k bytes (codeword length
// k+ParityBytes). Ported directly from the teacher's NewRSEncoder
// generator-polynomial construction: g(x) = product_{i=0}^{15} (x -
// alpha^i), built incrementally the same way (g[0] stays the implicit
// leading 1; g[1:] holds the feedback coefficients the encoder uses).
func NewCodec(k int) *Codec {
	g := make([]byte, ParityBytes+1)
	g[0] = 1
	for i := 0; i < ParityBytes; i++ {
		alphaPow := gfExp[i]
		for j := i + 1; j > 0; j-- {
			g[j] = gfMul(g[j], alphaPow) ^ g[j-1]
		}
	}
	return &Codec{n: k + ParityBytes, k: k, generator: g[1:]}
}

func (c *Codec) N() int { return c.n }
func (c *Codec) K() int { return c.k }

// Encode appends ParityBytes parity bytes to a k-byte dataword, returning
// an n-byte systematic codeword (data unchanged, parity appended).
func (c *Codec) Encode(data []byte) ([]byte, error) {
	if len(data) != c.k {
		return nil, fmt.Errorf("rs: encode expects %d bytes, got %d", c.k, len(data))
	}
	out := make([]byte, c.n)
	copy(out, data)

	// Polynomial division of data*x^ParityBytes by the generator,
	// implemented as the teacher's feedback shift register.
	reg := make([]byte, ParityBytes)
	for _, d := range data {
		feedback := d ^ reg[0]
		copy(reg, reg[1:])
		reg[ParityBytes-1] = 0
		if feedback != 0 {
			for j := 0; j < ParityBytes; j++ {
				reg[j] ^= gfMul(c.generator[j], feedback)
			}
		}
	}
	copy(out[c.k:], reg)
	return out, nil
}

// Decode corrects up to 8 byte errors in an n-byte received codeword and
// returns the k-byte dataword and the number of corrected errors. On an
// uncorrectable block it returns an error and does not mutate state.
func (c *Codec) Decode(received []byte) (data []byte, corrected int, err error) {
	if len(received) != c.n {
		return nil, -1, fmt.Errorf("rs: decode expects %d bytes, got %d", c.n, len(received))
	}

	syndromes := c.syndromes(received)
	allZero := true
	for _, s := range syndromes {
		if s != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		out := make([]byte, c.k)
		copy(out, received[:c.k])
		return out, 0, nil
	}

	locator := berlekampMassey(syndromes)
	if len(locator)-1 > ParityBytes/2 {
		return nil, -1, fmt.Errorf("rs: too many errors, uncorrectable")
	}

	errPos, ok := chienSearch(locator, c.n)
	if !ok || len(errPos) != len(locator)-1 {
		return nil, -1, fmt.Errorf("rs: error locator has no valid roots")
	}

	magnitudes := forney(syndromes, locator, errPos, c.n)

	correctedOut := make([]byte, c.n)
	copy(correctedOut, received)
	for i, pos := range errPos {
		correctedOut[pos] ^= magnitudes[i]
	}

	// Re-check syndromes after correction; a miscorrection (more errors
	// than the code can guarantee) must surface as a failure rather than
	// silently returning garbage.
	if verifySyndromes := c.syndromes(correctedOut); !allZeroBytes(verifySyndromes) {
		return nil, -1, fmt.Errorf("rs: correction failed verification")
	}

	out := make([]byte, c.k)
	copy(out, correctedOut[:c.k])
	return out, len(errPos), nil
}

func allZeroBytes(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

// syndromes computes S_0..S_15 = R(alpha^i) treating received as a
// polynomial with received[0] the highest-degree (leftmost, first
// transmitted) coefficient.
func (c *Codec) syndromes(received []byte) []byte {
	s := make([]byte, ParityBytes)
	for i := 0; i < ParityBytes; i++ {
		s[i] = polyEval(received, gfExp[i])
	}
	return s
}
