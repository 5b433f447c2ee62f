package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point represents a location in 3D space
type Point struct {
	X, Y, Z float64
}

// Origin is the point (0,0,0)
var Origin = Point{}

// NewPoint creates a new Point
func NewPoint(x, y, z float64) Point {
	return Point{X: x, Y: y, Z: z}
}

// PointOf converts a gonum vector into a Point
func PointOf(v r3.Vec) Point {
	return Point{X: v.X, Y: v.Y, Z: v.Z}
}

// Vec returns the point coordinates as a gonum vector
func (p Point) Vec() r3.Vec {
	return r3.Vec{X: p.X, Y: p.Y, Z: p.Z}
}

// Add returns the point translated by v
func (p Point) Add(v Vector) Point {
	return PointOf(r3.Add(p.Vec(), v.v))
}

// Subtract returns the vector from other to p. It fails with ErrZeroVector
// when the two points coincide.
func (p Point) Subtract(other Point) (Vector, error) {
	return VectorOf(r3.Sub(p.Vec(), other.Vec()))
}

// DistanceSquared returns the squared distance between two points
func (p Point) DistanceSquared(other Point) float64 {
	d := r3.Sub(p.Vec(), other.Vec())
	return r3.Dot(d, d)
}

// Distance returns the distance between two points
func (p Point) Distance(other Point) float64 {
	return r3.Norm(r3.Sub(p.Vec(), other.Vec()))
}

// Equals reports whether both points agree on every axis within Epsilon
func (p Point) Equals(other Point) bool {
	return IsZero(p.X-other.X) && IsZero(p.Y-other.Y) && IsZero(p.Z-other.Z)
}

// Coord returns the coordinate along axis (0=X, 1=Y, 2=Z)
func (p Point) Coord(axis int) float64 {
	switch axis {
	case 0:
		return p.X
	case 1:
		return p.Y
	default:
		return p.Z
	}
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p.X, p.Y, p.Z)
}
