package geometry

import (
	"math"
	"sort"
	"testing"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/material"
)

var testMaterial = material.NewLambertian(material.Gray(0.5))

var inf = math.Inf(1)

func pt(x, y, z float64) core.Point {
	return core.NewPoint(x, y, z)
}

func vec(x, y, z float64) core.Vector {
	return core.MustVector(x, y, z)
}

func ray(origin core.Point, dir core.Vector) core.Ray {
	return core.NewRay(origin, dir)
}

// assertPoints checks that hits contain exactly the expected points in order
func assertPoints(t *testing.T, hits []Intersection, expected ...core.Point) {
	t.Helper()
	if len(expected) == 0 {
		if hits != nil {
			t.Fatalf("Expected no result, got %d hits: %v", len(hits), hits)
		}
		return
	}
	if len(hits) != len(expected) {
		t.Fatalf("Expected %d hits, got %d: %v", len(expected), len(hits), hits)
	}
	for i, p := range expected {
		if !hits[i].Point.Equals(p) {
			t.Errorf("Hit %d: expected %v, got %v", i, p, hits[i].Point)
		}
	}
}

// sortedPoints orders points lexicographically for set comparisons
func sortedPoints(hits []Intersection) []core.Point {
	points := make([]core.Point, len(hits))
	for i, h := range hits {
		points[i] = h.Point
	}
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return points
}
