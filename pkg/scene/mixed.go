package scene

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/geometry"
	"github.com/df07/go-ray-intersection/pkg/material"
)

// mixedExtent is the half-size of the cube the mixed scene fills
const mixedExtent = 10.0

// Mixed creates n random bounded shapes inside the cube [-10, 10]^3. Every
// fourth shape goes into a nested group so scenes exercise flattening. The
// same seed always produces the same scene.
func Mixed(n int, seed int64) (*geometry.Geometries, error) {
	if n < 0 {
		return nil, fmt.Errorf("mixed: size must not be negative, got %d", n)
	}

	rng := rand.New(rand.NewSource(seed))
	coord := func() float64 { return (rng.Float64()*2 - 1) * mixedExtent }
	color := func() material.Color {
		return material.NewColor(rng.Float64(), rng.Float64(), rng.Float64())
	}

	g := geometry.NewGeometries()
	nested := geometry.NewGeometries()
	for i := 0; i < n; i++ {
		center := core.NewPoint(coord(), coord(), coord())
		size := 0.2 + rng.Float64()*0.6

		var shape geometry.Shape
		var err error
		switch i % 5 {
		case 0:
			shape, err = geometry.NewSphere(center, size, material.NewLambertian(color()))
		case 1:
			shape, err = geometry.NewSphere(center, size, material.NewGlass(0.8))
		case 2:
			var dir core.Vector
			dir, err = core.NewVector(rng.Float64()*2-1, rng.Float64()*2-1, rng.Float64()*2-1)
			if err != nil {
				dir = core.AxisY
			}
			shape, err = geometry.NewCylinder(core.NewRay(center, dir), size/2, size*2, material.NewMetal(color(), 50))
		case 3:
			shape, err = geometry.NewTriangle(
				center,
				core.NewPoint(center.X+size*2, center.Y, center.Z),
				core.NewPoint(center.X+size, center.Y+size*2, center.Z+rng.Float64()*size),
				material.NewLambertian(color()))
		default:
			shape, err = regularPolygon(center, size, 4+rng.Intn(4), rng.Float64()*math.Pi, material.NewLambertian(color()))
		}
		if err != nil {
			return nil, fmt.Errorf("mixed: shape %d: %w", i, err)
		}

		if i%4 == 3 {
			nested.Add(shape)
		} else {
			g.Add(shape)
		}
	}
	if nested.Len() > 0 {
		g.Add(nested)
	}
	return g, nil
}

// regularPolygon creates a regular polygon with the given number of sides in
// the plane y = center.Y, rotated by phase around the vertical axis
func regularPolygon(center core.Point, radius float64, sides int, phase float64, mat material.Material) (*geometry.Polygon, error) {
	vertices := make([]core.Point, sides)
	for k := range vertices {
		angle := phase + 2*math.Pi*float64(k)/float64(sides)
		vertices[k] = core.NewPoint(center.X+radius*math.Cos(angle), center.Y, center.Z+radius*math.Sin(angle))
	}
	return geometry.NewPolygon(vertices, mat)
}
