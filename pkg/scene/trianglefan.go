package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/geometry"
	"github.com/df07/go-ray-intersection/pkg/material"
)

// fanRadius is the rim radius of the triangle fan
const fanRadius = 5.0

// TriangleFan creates a flat disc of radius 5 in the y=0 plane, centered on
// the origin and made of n triangles sharing the center vertex
func TriangleFan(n int) (*geometry.Geometries, error) {
	if n < 3 {
		return nil, fmt.Errorf("triangle fan: need at least 3 triangles, got %d", n)
	}

	mat := material.NewLambertian(material.NewColor(0.8, 0.3, 0.3))
	rim := func(k int) core.Point {
		angle := 2 * math.Pi * float64(k%n) / float64(n)
		return core.NewPoint(fanRadius*math.Cos(angle), 0, fanRadius*math.Sin(angle))
	}

	fan := geometry.NewGeometries()
	for k := 0; k < n; k++ {
		triangle, err := geometry.NewTriangle(core.Origin, rim(k), rim(k+1), mat)
		if err != nil {
			return nil, fmt.Errorf("triangle fan: triangle %d: %w", k, err)
		}
		fan.Add(triangle)
	}
	return fan, nil
}
