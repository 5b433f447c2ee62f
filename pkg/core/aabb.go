package core

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// BoundingBox is an axis-aligned bounding box. A nil *BoundingBox stands for
// an unbounded extent: shapes without a box are always tested exactly.
type BoundingBox struct {
	Min Point // Minimum corner
	Max Point // Maximum corner
}

// NewBoundingBox creates a box from two opposite corners given in any order
func NewBoundingBox(a, b Point) *BoundingBox {
	return &BoundingBox{
		Min: NewPoint(math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)),
		Max: NewPoint(math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)),
	}
}

// BoundingBoxOf returns the smallest box containing all points, or nil when
// no points are given
func BoundingBoxOf(points ...Point) *BoundingBox {
	if len(points) == 0 {
		return nil
	}

	min := points[0]
	max := points[0]
	for _, point := range points[1:] {
		min.X = math.Min(min.X, point.X)
		min.Y = math.Min(min.Y, point.Y)
		min.Z = math.Min(min.Z, point.Z)

		max.X = math.Max(max.X, point.X)
		max.Y = math.Max(max.Y, point.Y)
		max.Z = math.Max(max.Z, point.Z)
	}

	return &BoundingBox{Min: min, Max: max}
}

// Intersect tests the ray against the box using the slab method. The interval
// may start behind the ray origin; the box is rejected when it lies entirely
// behind the origin or starts beyond maxDistance.
func (b *BoundingBox) Intersect(ray Ray, maxDistance float64) bool {
	origin := ray.Origin()
	direction := ray.Direction()

	tMin := math.Inf(-1)
	tMax := math.Inf(1)

	for axis := 0; axis < 3; axis++ {
		min := b.Min.Coord(axis)
		max := b.Max.Coord(axis)
		o := origin.Coord(axis)
		d := direction.Coord(axis)

		// Ray is parallel to this slab
		if IsZero(d) {
			if o < min || o > max {
				return false
			}
			continue
		}

		invDirection := 1.0 / d
		t1 := (min - o) * invDirection
		t2 := (max - o) * invDirection
		if t1 > t2 {
			t1, t2 = t2, t1
		}

		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)

		if tMin > tMax {
			return false
		}
	}

	if tMax < 0 {
		return false
	}
	return AlignZero(tMin-maxDistance) <= 0
}

// Union returns the smallest box containing every non-nil box, or nil when
// all inputs are nil
func Union(boxes ...*BoundingBox) *BoundingBox {
	var result *BoundingBox
	for _, box := range boxes {
		if box == nil {
			continue
		}
		if result == nil {
			copied := *box
			result = &copied
			continue
		}
		result.Min = NewPoint(
			math.Min(result.Min.X, box.Min.X),
			math.Min(result.Min.Y, box.Min.Y),
			math.Min(result.Min.Z, box.Min.Z),
		)
		result.Max = NewPoint(
			math.Max(result.Max.X, box.Max.X),
			math.Max(result.Max.Y, box.Max.Y),
			math.Max(result.Max.Z, box.Max.Z),
		)
	}
	return result
}

// Center returns the midpoint of the box
func (b *BoundingBox) Center() Point {
	return PointOf(r3.Scale(0.5, r3.Add(b.Min.Vec(), b.Max.Vec())))
}

// Size returns the extent of the box along each axis
func (b *BoundingBox) Size() r3.Vec {
	return r3.Sub(b.Max.Vec(), b.Min.Vec())
}

// Contains reports whether p lies inside the box, boundary included
func (b *BoundingBox) Contains(p Point) bool {
	for axis := 0; axis < 3; axis++ {
		c := p.Coord(axis)
		if AlignZero(c-b.Min.Coord(axis)) < 0 || AlignZero(b.Max.Coord(axis)-c) < 0 {
			return false
		}
	}
	return true
}

// Equals reports whether two boxes have the same corners within Epsilon
func (b *BoundingBox) Equals(other *BoundingBox) bool {
	if b == nil || other == nil {
		return b == other
	}
	return b.Min.Equals(other.Min) && b.Max.Equals(other.Max)
}
