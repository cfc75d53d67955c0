// Package lib holds small numeric helpers shared by the geometry and
// rendering packages.
package lib

import (
	"math"

	"golang.org/x/exp/constraints"
)

type Number interface {
	constraints.Integer | constraints.Float
}

// AlmostEqual reports whether a and b differ by at most tolerance relative
// to the larger magnitude. Magnitudes below 1 compare absolutely so that
// values near zero do not divide by zero.
func AlmostEqual[T Number](a, b T, tolerance float64) bool {
	fa, fb := float64(a), float64(b)
	ref := math.Max(float64(Abs(a)), float64(Abs(b)))
	if ref < 1 {
		ref = 1
	}
	return math.Abs(fa-fb)/ref <= tolerance
}

func Abs[T Number](a T) T {
	if a < 0 {
		return -a
	}
	return a
}
