package geometry

import (
	"fmt"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/material"
)

// Plane represents an infinite plane defined by a point and normal
type Plane struct {
	point    core.Point        // A point on the plane
	normal   core.Vector       // Unit normal
	material material.Material // Material of the plane
}

// NewPlane creates a new plane; the normal is normalized
func NewPlane(point core.Point, normal core.Vector, mat material.Material) *Plane {
	return &Plane{
		point:    point,
		normal:   normal.Normalize(),
		material: mat,
	}
}

// NewPlaneFromPoints creates the plane through three points. The points must
// be distinct and not collinear.
func NewPlaneFromPoints(p1, p2, p3 core.Point, mat material.Material) (*Plane, error) {
	v1, err := p2.Subtract(p1)
	if err != nil {
		return nil, fmt.Errorf("plane: first and second points coincide: %w", err)
	}
	v2, err := p3.Subtract(p1)
	if err != nil {
		return nil, fmt.Errorf("plane: first and third points coincide: %w", err)
	}
	normal, err := v1.Cross(v2)
	if err != nil {
		return nil, fmt.Errorf("plane: points are collinear: %w", err)
	}
	return NewPlane(p1, normal, mat), nil
}

// Point returns the reference point of the plane
func (p *Plane) Point() core.Point { return p.point }

// Material returns the plane material
func (p *Plane) Material() material.Material { return p.material }

// Normal returns the plane normal, the same everywhere
func (p *Plane) Normal(core.Point) (core.Vector, error) {
	return p.normal, nil
}

// BoundingBox returns nil: a plane is unbounded
func (p *Plane) BoundingBox() *core.BoundingBox {
	return nil
}

// IntersectExact returns the single crossing point, if any
func (p *Plane) IntersectExact(ray core.Ray, maxDistance float64, _ Config) []Intersection {
	point, ok := p.intersectPoint(ray, maxDistance)
	if !ok {
		return nil
	}
	return makeHits(p, point)
}

// intersectPoint solves t = N·(P-origin) / N·dir. Rays parallel to the plane
// and rays starting at the reference point miss.
func (p *Plane) intersectPoint(ray core.Ray, maxDistance float64) (core.Point, bool) {
	u, err := p.point.Subtract(ray.Origin())
	if err != nil {
		return core.Point{}, false
	}

	denominator := core.AlignZero(p.normal.Dot(ray.Direction()))
	if denominator == 0 {
		return core.Point{}, false
	}

	t := core.AlignZero(p.normal.Dot(u) / denominator)
	if !inRange(t, maxDistance) {
		return core.Point{}, false
	}
	return ray.GetPoint(t), true
}
