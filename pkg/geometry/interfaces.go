package geometry

import (
	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/material"
)

// Intersectable is implemented by every shape and composite that can be
// queried with CalculateIntersections.
type Intersectable interface {
	// BoundingBox returns the memoized bounding box, or nil when the object
	// is unbounded and must always be tested exactly.
	BoundingBox() *core.BoundingBox

	// IntersectExact runs the object's own intersection step without testing
	// its bounding box. It returns nil, never an empty slice, on a miss.
	// Callers should go through CalculateIntersections instead.
	IntersectExact(ray core.Ray, maxDistance float64, cfg Config) []Intersection
}

// Shape is a leaf primitive with a surface normal and a material
type Shape interface {
	Intersectable

	// Normal returns the outward unit normal at a point on the surface.
	// The result for points off the surface is unspecified.
	Normal(p core.Point) (core.Vector, error)

	// Material returns the surface material
	Material() material.Material
}

// Composite is an Intersectable made of other Intersectables
type Composite interface {
	Intersectable

	// Children returns the direct children in insertion order
	Children() []Intersectable
}
