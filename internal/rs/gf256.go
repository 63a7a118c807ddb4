package rs

// GF(256) exponential/log tables over the primitive polynomial 0x11D
// (x^8+x^4+x^3+x^2+1), generator alpha = 2. Grounded directly on the
// teacher's dvbs.RSEncoder, which builds the same kind of gfExp/gfLog
// pair and a feedback-shift-register systematic encoder; this package
// generalises it to an arbitrary block size and adds the syndrome/
// Berlekamp-Massey/Chien/Forney machinery needed for true error
// correction (not just encoding), since the pack's only Reed-Solomon
// library (klauspost/reedsolomon) implements erasure coding over a
// Vandermonde/Cauchy matrix and has no notion of an unknown-location
// byte error to correct — see DESIGN.md.
const primPoly = 0x11D

var gfExp [512]byte
var gfLog [256]byte

func init() {
	x := 1
	for i := 0; i < 255; i++ {
		gfExp[i] = byte(x)
		gfLog[x] = byte(i)
		x <<= 1
		if x&0x100 != 0 {
			x ^= primPoly
		}
	}
	for i := 255; i < 512; i++ {
		gfExp[i] = gfExp[i-255]
	}
}

func gfMul(a, b byte) byte {
	if a == 0 || b == 0 {
		return 0
	}
	return gfExp[int(gfLog[a])+int(gfLog[b])]
}

func gfDiv(a, b byte) byte {
	if a == 0 {
		return 0
	}
	return gfExp[(int(gfLog[a])-int(gfLog[b])+255)%255]
}

func gfPow(a byte, n int) byte {
	if a == 0 {
		if n == 0 {
			return 1
		}
		return 0
	}
	return gfExp[(int(gfLog[a])*n)%255]
}

func gfInv(a byte) byte {
	return gfExp[(255-int(gfLog[a]))%255]
}

// polyEval evaluates a polynomial (coefficients highest-degree first, as
// used throughout this package) at x using Horner's method over GF(256).
func polyEval(poly []byte, x byte) byte {
	y := poly[0]
	for i := 1; i < len(poly); i++ {
		y = gfMul(y, x) ^ poly[i]
	}
	return y
}
