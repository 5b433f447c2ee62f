package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/material"
	"gonum.org/v1/gonum/spatial/r3"
)

// Polygon is a flat convex polygon. Its vertices are coplanar, ordered along
// the edge path, and no three consecutive vertices are collinear.
type Polygon struct {
	vertices []core.Point
	plane    *Plane
	material material.Material
	bounds   boundsCache
}

// NewPolygon validates the vertices and creates a polygon. It rejects fewer
// than three vertices, repeated consecutive vertices, vertices outside the
// plane of the first three, non-convex orderings and self-intersecting edge
// paths.
func NewPolygon(vertices []core.Point, mat material.Material) (*Polygon, error) {
	if len(vertices) < 3 {
		return nil, fmt.Errorf("polygon: need at least 3 vertices, got %d: %w", len(vertices), core.ErrInvalidGeometry)
	}

	plane, err := NewPlaneFromPoints(vertices[0], vertices[1], vertices[2], mat)
	if err != nil {
		return nil, fmt.Errorf("polygon: %w", err)
	}
	n := plane.normal.Vec()

	size := len(vertices)
	for i := 3; i < size; i++ {
		if !core.IsZero(r3.Dot(r3.Sub(vertices[i].Vec(), vertices[0].Vec()), n)) {
			return nil, fmt.Errorf("polygon: vertex %d is not in the polygon plane: %w", i, core.ErrInvalidGeometry)
		}
	}

	// Every turn between consecutive edges must go the same way around the
	// normal, and the turns must add up to exactly one revolution.
	var turning float64
	positive := false
	for i := 0; i < size; i++ {
		prev := vertices[(i+size-1)%size]
		curr := vertices[i]
		next := vertices[(i+1)%size]

		e1, err := curr.Subtract(prev)
		if err != nil {
			return nil, fmt.Errorf("polygon: vertex %d repeats its predecessor: %w", i, err)
		}
		e2, err := next.Subtract(curr)
		if err != nil {
			return nil, fmt.Errorf("polygon: vertex %d repeats its predecessor: %w", (i+1)%size, err)
		}
		cross, err := e1.Cross(e2)
		if err != nil {
			return nil, fmt.Errorf("polygon: edges at vertex %d are collinear: %w", i, err)
		}

		side := r3.Dot(cross.Vec(), n) > 0
		if i == 0 {
			positive = side
		} else if side != positive {
			return nil, fmt.Errorf("polygon: vertices are not in convex order at vertex %d: %w", i, core.ErrInvalidGeometry)
		}
		turning += math.Atan2(cross.Length(), e1.Dot(e2))
	}
	if math.Abs(turning-2*math.Pi) > 1e-6 {
		return nil, fmt.Errorf("polygon: edge path intersects itself: %w", core.ErrInvalidGeometry)
	}

	copied := make([]core.Point, size)
	copy(copied, vertices)
	return &Polygon{
		vertices: copied,
		plane:    plane,
		material: mat,
	}, nil
}

// MustPolygon is like NewPolygon but panics on invalid vertices
func MustPolygon(mat material.Material, vertices ...core.Point) *Polygon {
	p, err := NewPolygon(vertices, mat)
	if err != nil {
		panic(err)
	}
	return p
}

// Vertices returns a copy of the polygon vertices
func (p *Polygon) Vertices() []core.Point {
	vertices := make([]core.Point, len(p.vertices))
	copy(vertices, p.vertices)
	return vertices
}

// Material returns the polygon material
func (p *Polygon) Material() material.Material { return p.material }

// Normal returns the normal of the supporting plane
func (p *Polygon) Normal(core.Point) (core.Vector, error) {
	return p.plane.normal, nil
}

// BoundingBox returns the box of the vertices
func (p *Polygon) BoundingBox() *core.BoundingBox {
	return p.bounds.get(func() *core.BoundingBox {
		return core.BoundingBoxOf(p.vertices...)
	})
}

// IntersectExact returns the plane crossing when it lies strictly inside
// the polygon
func (p *Polygon) IntersectExact(ray core.Ray, maxDistance float64, _ Config) []Intersection {
	point, ok := p.intersectPoint(ray, maxDistance)
	if !ok {
		return nil
	}
	return makeHits(p, point)
}

// intersectPoint intersects the supporting plane, then checks that for every
// edge (edge × (hit - edgeStart))·dir has the same strict sign. A zero on any
// edge means the point lies on an edge or vertex, which is a miss.
func (p *Polygon) intersectPoint(ray core.Ray, maxDistance float64) (core.Point, bool) {
	point, ok := p.plane.intersectPoint(ray, maxDistance)
	if !ok {
		return core.Point{}, false
	}

	dir := ray.Direction().Vec()
	hit := point.Vec()
	size := len(p.vertices)

	var first float64
	for i := 0; i < size; i++ {
		start := p.vertices[i].Vec()
		edge := r3.Sub(p.vertices[(i+1)%size].Vec(), start)
		sign := core.AlignZero(r3.Dot(r3.Cross(edge, r3.Sub(hit, start)), dir))
		if sign == 0 {
			return core.Point{}, false
		}
		if i == 0 {
			first = sign
		} else if !core.CheckSign(first, sign) {
			return core.Point{}, false
		}
	}
	return point, true
}
