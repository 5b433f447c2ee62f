package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/material"
	"gonum.org/v1/gonum/spatial/r3"
)

// Sphere represents a sphere shape
type Sphere struct {
	center   core.Point
	radius   float64
	material material.Material
	bounds   boundsCache
}

// NewSphere creates a new sphere
func NewSphere(center core.Point, radius float64, mat material.Material) (*Sphere, error) {
	if core.AlignZero(radius) <= 0 {
		return nil, fmt.Errorf("sphere: %w", ErrNonPositiveRadius)
	}
	return &Sphere{
		center:   center,
		radius:   radius,
		material: mat,
	}, nil
}

// Center returns the sphere center
func (s *Sphere) Center() core.Point { return s.center }

// Radius returns the sphere radius
func (s *Sphere) Radius() float64 { return s.radius }

// Material returns the sphere material
func (s *Sphere) Material() material.Material { return s.material }

// Normal returns the outward normal at p
func (s *Sphere) Normal(p core.Point) (core.Vector, error) {
	v, err := p.Subtract(s.center)
	if err != nil {
		return core.Vector{}, fmt.Errorf("sphere: no normal at the center: %w", err)
	}
	return v.Normalize(), nil
}

// BoundingBox returns the axis-aligned bounding box for this sphere
func (s *Sphere) BoundingBox() *core.BoundingBox {
	return s.bounds.get(func() *core.BoundingBox {
		radius := r3.Vec{X: s.radius, Y: s.radius, Z: s.radius}
		return core.NewBoundingBox(
			core.PointOf(r3.Sub(s.center.Vec(), radius)),
			core.PointOf(r3.Add(s.center.Vec(), radius)),
		)
	})
}

// IntersectExact finds the points where the ray crosses the sphere surface,
// nearest first. A tangent ray is a miss.
func (s *Sphere) IntersectExact(ray core.Ray, maxDistance float64, _ Config) []Intersection {
	origin := ray.Origin()

	// The ray starts at the center: the only hit is one radius away
	if origin.Equals(s.center) {
		if !inRange(s.radius, maxDistance) {
			return nil
		}
		return makeHits(s, ray.GetPoint(s.radius))
	}

	// Project the center onto the ray line
	u := r3.Sub(s.center.Vec(), origin.Vec())
	tm := r3.Dot(ray.Direction().Vec(), u)
	dSquared := r3.Dot(u, u) - tm*tm

	// Tangency is judged relative to r² so it holds at any sphere scale
	radiusSquared := s.radius * s.radius
	thSquared := radiusSquared - dSquared
	if thSquared <= 0 || core.IsZero(thSquared/radiusSquared) {
		return nil
	}
	th := math.Sqrt(thSquared)

	var points []core.Point
	for _, t := range [2]float64{core.AlignZero(tm - th), core.AlignZero(tm + th)} {
		if inRange(t, maxDistance) {
			points = append(points, ray.GetPoint(t))
		}
	}
	return makeHits(s, points...)
}
