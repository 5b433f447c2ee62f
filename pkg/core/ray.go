package core

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Ray is a half-line with an origin and a unit direction
type Ray struct {
	origin    Point
	direction Vector
}

// NewRay creates a new ray. The direction is normalized.
func NewRay(origin Point, direction Vector) Ray {
	return Ray{origin: origin, direction: direction.Normalize()}
}

// Origin returns the ray origin
func (r Ray) Origin() Point {
	return r.origin
}

// Direction returns the unit direction of the ray
func (r Ray) Direction() Vector {
	return r.direction
}

// GetPoint returns the point at parameter t along the ray.
// A (near) zero t yields the origin itself.
func (r Ray) GetPoint(t float64) Point {
	if IsZero(t) {
		return r.origin
	}
	return PointOf(r3.Add(r.origin.Vec(), r3.Scale(t, r.direction.v)))
}

func (r Ray) String() string {
	return fmt.Sprintf("ray{%v -> %v}", r.origin, r.direction)
}
