package geometry

import (
	"fmt"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/material"
)

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	polygon *Polygon
}

// NewTriangle creates a new triangle from three distinct, non-collinear vertices
func NewTriangle(v0, v1, v2 core.Point, mat material.Material) (*Triangle, error) {
	polygon, err := NewPolygon([]core.Point{v0, v1, v2}, mat)
	if err != nil {
		return nil, fmt.Errorf("triangle: %w", err)
	}
	return &Triangle{polygon: polygon}, nil
}

// MustTriangle is like NewTriangle but panics on invalid vertices
func MustTriangle(v0, v1, v2 core.Point, mat material.Material) *Triangle {
	t, err := NewTriangle(v0, v1, v2, mat)
	if err != nil {
		panic(err)
	}
	return t
}

// Vertices returns the three vertices
func (t *Triangle) Vertices() [3]core.Point {
	v := t.polygon.vertices
	return [3]core.Point{v[0], v[1], v[2]}
}

// Material returns the triangle material
func (t *Triangle) Material() material.Material { return t.polygon.material }

// Normal returns the triangle's normal vector
func (t *Triangle) Normal(p core.Point) (core.Vector, error) {
	return t.polygon.Normal(p)
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() *core.BoundingBox {
	return t.polygon.BoundingBox()
}

// IntersectExact returns the hit when the ray crosses the triangle strictly
// inside its edges
func (t *Triangle) IntersectExact(ray core.Ray, maxDistance float64, _ Config) []Intersection {
	point, ok := t.polygon.intersectPoint(ray, maxDistance)
	if !ok {
		return nil
	}
	return makeHits(t, point)
}
