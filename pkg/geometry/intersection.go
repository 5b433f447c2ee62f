package geometry

import (
	"math"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/material"
)

// Intersection is a point where a ray meets a shape. The material is a
// snapshot taken when the query ran.
type Intersection struct {
	Geometry Shape
	Point    core.Point
	Material material.Material
}

// Config controls how a query traverses a scene
type Config struct {
	// CBR enables conservative bounding-box rejection. It only affects speed:
	// results are identical with it on or off.
	CBR bool
}

// DefaultConfig enables bounding-box rejection
var DefaultConfig = Config{CBR: true}

// CalculateIntersections is the single entry point for intersection queries.
// When CBR is enabled the object's bounding box is tested first and a miss
// short-circuits the exact step. Only hits with 0 < t <= maxDistance are
// returned; the result is unordered and nil when there are none.
func CalculateIntersections(g Intersectable, ray core.Ray, maxDistance float64, cfg Config) []Intersection {
	if cfg.CBR {
		if box := g.BoundingBox(); box != nil && !box.Intersect(ray, maxDistance) {
			return nil
		}
	}
	return g.IntersectExact(ray, maxDistance, cfg)
}

// CalculateAllIntersections queries without a distance limit
func CalculateAllIntersections(g Intersectable, ray core.Ray, cfg Config) []Intersection {
	return CalculateIntersections(g, ray, math.Inf(1), cfg)
}

// FindIntersections returns only the intersection points, in result order
func FindIntersections(g Intersectable, ray core.Ray, cfg Config) []core.Point {
	hits := CalculateAllIntersections(g, ray, cfg)
	if hits == nil {
		return nil
	}
	points := make([]core.Point, len(hits))
	for i, hit := range hits {
		points[i] = hit.Point
	}
	return points
}

// ClosestIntersection returns the hit nearest to origin by squared distance.
// The first of several equally distant hits wins.
func ClosestIntersection(origin core.Point, hits []Intersection) (Intersection, bool) {
	if len(hits) == 0 {
		return Intersection{}, false
	}

	closest := hits[0]
	closestDistance := origin.DistanceSquared(closest.Point)
	for _, hit := range hits[1:] {
		if d := origin.DistanceSquared(hit.Point); d < closestDistance {
			closest = hit
			closestDistance = d
		}
	}
	return closest, true
}

// inRange reports whether t is a valid ray parameter: strictly in front of
// the origin and not past maxDistance
func inRange(t, maxDistance float64) bool {
	return t > 0 && core.AlignZero(t-maxDistance) <= 0
}

// makeHits wraps points into intersections with s, or nil when there are none
func makeHits(s Shape, points ...core.Point) []Intersection {
	if len(points) == 0 {
		return nil
	}
	hits := make([]Intersection, len(points))
	for i, p := range points {
		hits[i] = Intersection{Geometry: s, Point: p, Material: s.Material()}
	}
	return hits
}
