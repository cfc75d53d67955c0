// Package scene builds 3D surface and bar geometry and projects it onto a
// 2D view plane.
package scene

import (
	"math"

	"github.com/verte-zerg/hashviz/internal/lib"
)

// Vec3 is a point or direction in data space.
type Vec3 struct {
	X, Y, Z float64
}

// Point is a projected 2D position.
type Point struct {
	X, Y float64
}

func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vec3) Scale(s float64) Vec3 {
	return Vec3{a.X * s, a.Y * s, a.Z * s}
}

func (a Vec3) Dot(b Vec3) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vec3) Cross(b Vec3) Vec3 {
	return Vec3{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vec3) Norm() float64 {
	return math.Sqrt(a.Dot(a))
}

// Unit returns a normalized copy; the zero vector is returned unchanged.
func (a Vec3) Unit() Vec3 {
	n := a.Norm()
	if n == 0 {
		return a
	}
	return a.Scale(1 / n)
}

// Bounds is an axis-aligned box in data space.
type Bounds struct {
	Min, Max Vec3
}

// Extend grows the box to include v.
func (b Bounds) Extend(v Vec3) Bounds {
	b.Min = Vec3{math.Min(b.Min.X, v.X), math.Min(b.Min.Y, v.Y), math.Min(b.Min.Z, v.Z)}
	b.Max = Vec3{math.Max(b.Max.X, v.X), math.Max(b.Max.Y, v.Y), math.Max(b.Max.Z, v.Z)}
	return b
}

// Padded widens any zero-length side by one unit in each direction.
func (b Bounds) Padded() Bounds {
	if lib.AlmostEqual(b.Max.X, b.Min.X, flatTolerance) {
		b.Min.X--
		b.Max.X++
	}
	if lib.AlmostEqual(b.Max.Y, b.Min.Y, flatTolerance) {
		b.Min.Y--
		b.Max.Y++
	}
	if lib.AlmostEqual(b.Max.Z, b.Min.Z, flatTolerance) {
		b.Min.Z--
		b.Max.Z++
	}
	return b
}

const flatTolerance = 1e-9

func emptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}
