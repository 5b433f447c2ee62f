package geometry

import (
	"fmt"
	"math"
	"sort"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/material"
	"gonum.org/v1/gonum/spatial/r3"
)

// Cylinder is a finite, capped tube. The base cap is centered on the axis
// origin and the top cap height units along the axis direction.
type Cylinder struct {
	tube   *Tube
	height float64

	// Cached derived values
	topCenter core.Point
	bottom    *Plane
	top       *Plane
	bounds    boundsCache
}

// NewCylinder creates a new capped cylinder
func NewCylinder(axis core.Ray, radius, height float64, mat material.Material) (*Cylinder, error) {
	if core.AlignZero(height) <= 0 {
		return nil, fmt.Errorf("cylinder: %w", ErrNonPositiveHeight)
	}
	tube, err := NewTube(axis, radius, mat)
	if err != nil {
		return nil, fmt.Errorf("cylinder: %w", err)
	}

	topCenter := axis.GetPoint(height)
	return &Cylinder{
		tube:      tube,
		height:    height,
		topCenter: topCenter,
		bottom:    NewPlane(axis.Origin(), axis.Direction(), mat),
		top:       NewPlane(topCenter, axis.Direction(), mat),
	}, nil
}

// Axis returns the cylinder axis, starting at the base center
func (c *Cylinder) Axis() core.Ray { return c.tube.axis }

// Radius returns the cylinder radius
func (c *Cylinder) Radius() float64 { return c.tube.radius }

// Height returns the distance between the caps
func (c *Cylinder) Height() float64 { return c.height }

// Material returns the cylinder material
func (c *Cylinder) Material() material.Material { return c.tube.material }

// Normal returns the cap normal for points on a cap and the radial
// direction for points on the side
func (c *Cylinder) Normal(p core.Point) (core.Vector, error) {
	axis := c.tube.axis
	along := core.AlignZero(r3.Dot(r3.Sub(p.Vec(), axis.Origin().Vec()), axis.Direction().Vec()))
	switch {
	case along == 0:
		return axis.Direction().Negate(), nil
	case core.IsZero(along - c.height):
		return axis.Direction(), nil
	default:
		return radialNormal(axis, p)
	}
}

// BoundingBox returns the exact axis-aligned box of the cylinder: the box of
// the axis segment grown on each axis by radius·sqrt(1 - a²), where a is the
// axis direction component on that axis
func (c *Cylinder) BoundingBox() *core.BoundingBox {
	return c.bounds.get(func() *core.BoundingBox {
		base := c.tube.axis.Origin()
		va := c.tube.axis.Direction().Vec()
		extent := r3.Vec{
			X: c.tube.radius * math.Sqrt(math.Max(0, 1-va.X*va.X)),
			Y: c.tube.radius * math.Sqrt(math.Max(0, 1-va.Y*va.Y)),
			Z: c.tube.radius * math.Sqrt(math.Max(0, 1-va.Z*va.Z)),
		}
		segment := core.BoundingBoxOf(base, c.topCenter)
		return core.NewBoundingBox(
			core.PointOf(r3.Sub(segment.Min.Vec(), extent)),
			core.PointOf(r3.Add(segment.Max.Vec(), extent)),
		)
	})
}

type cylinderHit struct {
	t     float64
	point core.Point
}

// IntersectExact merges the cap hits that fall strictly inside the cap disc
// with the side hits whose axial projection lies in [0, height], ordered by
// travel distance
func (c *Cylinder) IntersectExact(ray core.Ray, maxDistance float64, _ Config) []Intersection {
	axis := c.tube.axis
	va := axis.Direction().Vec()
	radiusSquared := c.tube.radius * c.tube.radius

	var hits []cylinderHit
	add := func(p core.Point) {
		for _, h := range hits {
			if h.point.Equals(p) {
				return
			}
		}
		hits = append(hits, cylinderHit{t: ray.Origin().Distance(p), point: p})
	}

	for _, side := range sideRoots(axis, c.tube.radius, ray) {
		if !inRange(side, maxDistance) {
			continue
		}
		p := ray.GetPoint(side)
		along := core.AlignZero(r3.Dot(r3.Sub(p.Vec(), axis.Origin().Vec()), va))
		if along >= 0 && core.AlignZero(along-c.height) <= 0 {
			add(p)
		}
	}

	caps := [2]struct {
		plane  *Plane
		center core.Point
	}{
		{c.bottom, axis.Origin()},
		{c.top, c.topCenter},
	}
	for _, disc := range caps {
		p, ok := disc.plane.intersectPoint(ray, maxDistance)
		if !ok {
			continue
		}
		if core.AlignZero(p.DistanceSquared(disc.center)-radiusSquared) < 0 {
			add(p)
		}
	}

	if len(hits) == 0 {
		return nil
	}
	sort.Slice(hits, func(i, j int) bool {
		return hits[i].t < hits[j].t
	})

	points := make([]core.Point, len(hits))
	for i, h := range hits {
		points[i] = h.point
	}
	return makeHits(c, points...)
}
