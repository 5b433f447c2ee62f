package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/material"
	"gonum.org/v1/gonum/spatial/r3"
)

// Tube is an infinite cylinder around an axis ray
type Tube struct {
	axis     core.Ray
	radius   float64
	material material.Material
}

// NewTube creates a new tube
func NewTube(axis core.Ray, radius float64, mat material.Material) (*Tube, error) {
	if core.AlignZero(radius) <= 0 {
		return nil, fmt.Errorf("tube: %w", ErrNonPositiveRadius)
	}
	return &Tube{
		axis:     axis,
		radius:   radius,
		material: mat,
	}, nil
}

// Axis returns the tube axis
func (t *Tube) Axis() core.Ray { return t.axis }

// Radius returns the tube radius
func (t *Tube) Radius() float64 { return t.radius }

// Material returns the tube material
func (t *Tube) Material() material.Material { return t.material }

// BoundingBox returns nil: a tube is unbounded
func (t *Tube) BoundingBox() *core.BoundingBox {
	return nil
}

// Normal returns the radial direction from the axis to p
func (t *Tube) Normal(p core.Point) (core.Vector, error) {
	return radialNormal(t.axis, p)
}

// IntersectExact returns the side crossings, nearest first
func (t *Tube) IntersectExact(ray core.Ray, maxDistance float64, _ Config) []Intersection {
	var points []core.Point
	for _, root := range sideRoots(t.axis, t.radius, ray) {
		if inRange(root, maxDistance) {
			points = append(points, ray.GetPoint(root))
		}
	}
	return makeHits(t, points...)
}

// radialNormal projects p onto the axis and returns the unit vector from the
// projection to p
func radialNormal(axis core.Ray, p core.Point) (core.Vector, error) {
	along := r3.Dot(r3.Sub(p.Vec(), axis.Origin().Vec()), axis.Direction().Vec())
	center := axis.GetPoint(along)
	n, err := p.Subtract(center)
	if err != nil {
		return core.Vector{}, fmt.Errorf("tube: no normal on the axis: %w", err)
	}
	return n.Normalize(), nil
}

// sideRoots solves a·t² + b·t + c = 0 for the ray parameters at distance
// radius from the axis, using the components of the ray direction and of the
// origin offset that are perpendicular to the axis. Rays parallel to the axis
// and tangent rays yield no roots. Roots are returned smaller first.
func sideRoots(axis core.Ray, radius float64, ray core.Ray) []float64 {
	va := axis.Direction().Vec()
	v := ray.Direction().Vec()

	vva := core.AlignZero(r3.Dot(v, va))
	vPerp := r3.Sub(v, r3.Scale(vva, va))
	a := core.AlignZero(r3.Dot(vPerp, vPerp))
	if a == 0 {
		return nil
	}

	dp := r3.Sub(ray.Origin().Vec(), axis.Origin().Vec())
	dpva := core.AlignZero(r3.Dot(dp, va))
	dpPerp := r3.Sub(dp, r3.Scale(dpva, va))

	b := 2 * r3.Dot(vPerp, dpPerp)
	c := r3.Dot(dpPerp, dpPerp) - radius*radius

	// discriminant/4a is r² minus the squared distance between the ray line
	// and the axis; tangency is judged relative to r²
	discriminant := b*b - 4*a*c
	if discriminant <= 0 || core.IsZero(discriminant/(4*a*radius*radius)) {
		return nil
	}

	sqrtD := math.Sqrt(discriminant)
	return []float64{
		core.AlignZero((-b - sqrtD) / (2 * a)),
		core.AlignZero((-b + sqrtD) / (2 * a)),
	}
}
