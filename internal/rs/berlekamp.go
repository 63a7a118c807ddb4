package rs

// berlekampMassey finds the shortest-degree error locator polynomial
// Lambda(x) (coefficients low-degree-first, Lambda[0]=1) satisfying the
// syndrome recurrence, via the standard Berlekamp-Massey algorithm over
// GF(256).
func berlekampMassey(s []byte) []byte {
	n := len(s)
	c := make([]byte, n+1)
	b := make([]byte, n+1)
	c[0], b[0] = 1, 1
	l := 0
	m := 1
	bCoef := byte(1)

	for i := 0; i < n; i++ {
		delta := s[i]
		for j := 1; j <= l; j++ {
			delta ^= gfMul(c[j], s[i-j])
		}
		if delta == 0 {
			m++
			continue
		}
		t := make([]byte, len(c))
		copy(t, c)
		coef := gfDiv(delta, bCoef)
		for j := 0; j+m < len(c); j++ {
			c[j+m] ^= gfMul(coef, b[j])
		}
		if 2*l <= i {
			l = i + 1 - l
			copy(b, t)
			bCoef = delta
			m = 1
		} else {
			m++
		}
	}
	return c[:l+1]
}

// evalLow evaluates a low-degree-first polynomial at x: sum poly[i]*x^i.
func evalLow(poly []byte, x byte) byte {
	var y byte
	xp := byte(1)
	for _, c := range poly {
		y ^= gfMul(c, xp)
		xp = gfMul(xp, x)
	}
	return y
}

// chienSearch finds the roots of Lambda(x) among the field elements
// corresponding to the n codeword positions, returning the byte-array
// error positions (0-indexed from the start of the codeword).
func chienSearch(locator []byte, n int) (positions []int, ok bool) {
	l := len(locator) - 1
	for pos := 0; pos < n; pos++ {
		e := n - 1 - pos
		invX := gfExp[(255-(e%255))%255]
		if evalLow(locator, invX) == 0 {
			positions = append(positions, pos)
		}
	}
	return positions, len(positions) == l
}

// forney computes the error magnitude at each located position (array
// index into the n-byte codeword), given the syndromes and the error
// locator polynomial.
func forney(syndromes, locator []byte, positions []int, n int) []byte {
	// Omega(x) = S(x) * Lambda(x) mod x^len(syndromes)
	omega := make([]byte, len(syndromes))
	for i, sc := range syndromes {
		if sc == 0 {
			continue
		}
		for j, lc := range locator {
			if i+j >= len(omega) {
				break
			}
			omega[i+j] ^= gfMul(sc, lc)
		}
	}

	// Lambda'(x): formal derivative over GF(2^m) keeps only odd-degree
	// terms, shifted down one degree.
	deriv := make([]byte, len(locator))
	for i := 0; i < len(locator)-1; i++ {
		if (i+1)%2 == 1 {
			deriv[i] = locator[i+1]
		}
	}

	magnitudes := make([]byte, len(positions))
	for i, pos := range positions {
		e := n - 1 - pos
		x := gfExp[e%255]
		invX := gfExp[(255-(e%255))%255]
		num := evalLow(omega, invX)
		den := evalLow(deriv, invX)
		magnitudes[i] = gfMul(x, gfDiv(num, den))
	}
	return magnitudes
}
