package core

import "gonum.org/v1/gonum/floats/scalar"

// Epsilon is the tolerance used by all geometric comparisons
const Epsilon = 1e-10

// IsZero reports whether x is within Epsilon of zero
func IsZero(x float64) bool {
	return scalar.EqualWithinAbs(x, 0, Epsilon)
}

// AlignZero snaps values within Epsilon of zero to exactly zero
func AlignZero(x float64) float64 {
	if IsZero(x) {
		return 0
	}
	return x
}

// CheckSign reports whether a and b are both strictly positive or both strictly negative
func CheckSign(a, b float64) bool {
	return (a > 0 && b > 0) || (a < 0 && b < 0)
}
