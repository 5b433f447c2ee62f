package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector is a non-zero direction in 3D space. The zero value is not a valid
// Vector; use NewVector or one of the operations below to obtain one.
type Vector struct {
	v r3.Vec
}

// Axis unit vectors
var (
	AxisX = Vector{r3.Vec{X: 1}}
	AxisY = Vector{r3.Vec{Y: 1}}
	AxisZ = Vector{r3.Vec{Z: 1}}
)

// NewVector creates a new Vector, failing with ErrZeroVector for (0,0,0)
func NewVector(x, y, z float64) (Vector, error) {
	return VectorOf(r3.Vec{X: x, Y: y, Z: z})
}

// MustVector is like NewVector but panics on the zero vector.
// It is intended for literals in scenes and tests.
func MustVector(x, y, z float64) Vector {
	v, err := NewVector(x, y, z)
	if err != nil {
		panic(err)
	}
	return v
}

// VectorOf wraps a gonum vector, failing with ErrZeroVector when every
// component is within Epsilon of zero
func VectorOf(v r3.Vec) (Vector, error) {
	if IsZero(v.X) && IsZero(v.Y) && IsZero(v.Z) {
		return Vector{}, ErrZeroVector
	}
	return Vector{v}, nil
}

// X returns the x component
func (v Vector) X() float64 { return v.v.X }

// Y returns the y component
func (v Vector) Y() float64 { return v.v.Y }

// Z returns the z component
func (v Vector) Z() float64 { return v.v.Z }

// Vec returns the components as a gonum vector
func (v Vector) Vec() r3.Vec {
	return v.v
}

// Coord returns the component along axis (0=X, 1=Y, 2=Z)
func (v Vector) Coord(axis int) float64 {
	return PointOf(v.v).Coord(axis)
}

// Add returns the sum of two vectors
func (v Vector) Add(other Vector) (Vector, error) {
	return VectorOf(r3.Add(v.v, other.v))
}

// Subtract returns the difference of two vectors
func (v Vector) Subtract(other Vector) (Vector, error) {
	return VectorOf(r3.Sub(v.v, other.v))
}

// Scale returns the vector multiplied by a scalar. Scaling by (near) zero fails.
func (v Vector) Scale(scalar float64) (Vector, error) {
	return VectorOf(r3.Scale(scalar, v.v))
}

// Negate returns the opposite vector
func (v Vector) Negate() Vector {
	return Vector{r3.Scale(-1, v.v)}
}

// Dot returns the dot product of two vectors
func (v Vector) Dot(other Vector) float64 {
	return r3.Dot(v.v, other.v)
}

// Cross returns the cross product of two vectors. Parallel vectors fail.
func (v Vector) Cross(other Vector) (Vector, error) {
	return VectorOf(r3.Cross(v.v, other.v))
}

// LengthSquared returns the squared magnitude of the vector
func (v Vector) LengthSquared() float64 {
	return r3.Dot(v.v, v.v)
}

// Length returns the magnitude of the vector
func (v Vector) Length() float64 {
	return r3.Norm(v.v)
}

// Normalize returns a unit vector in the same direction
func (v Vector) Normalize() Vector {
	return Vector{r3.Unit(v.v)}
}

// Equals reports whether both vectors agree on every axis within Epsilon
func (v Vector) Equals(other Vector) bool {
	return PointOf(v.v).Equals(PointOf(other.v))
}

func (v Vector) String() string {
	return fmt.Sprintf("<%g, %g, %g>", v.v.X, v.v.Y, v.v.Z)
}
