package scene

import (
	"fmt"
	"math"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/geometry"
	"github.com/df07/go-ray-intersection/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) material.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS, cubed
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	return material.NewColor(
		math.Max(0, math.Min(1, r)),
		math.Max(0, math.Min(1, g)),
		math.Max(0, math.Min(1, blue)),
	)
}

// SphereGrid creates an n x n grid of spheres on the y=0 plane, scaled to
// fit a 9x9 area centered on (4.5, 0, 4.5). The grid is returned as one
// Geometries group per row.
func SphereGrid(n int) (*geometry.Geometries, error) {
	if n < 1 {
		return nil, fmt.Errorf("sphere grid: size must be positive, got %d", n)
	}

	targetArea := 9.0
	spacing := targetArea
	if n > 1 {
		spacing = targetArea / float64(n-1)
	}

	// 35% of spacing, kept within a visible range
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25
	steps := math.Max(1, float64(n-1))

	grid := geometry.NewGeometries()
	for i := 0; i < n; i++ {
		row := geometry.NewGeometries()
		for j := 0; j < n; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5

			// hue varies across X, chroma across Z
			hue := (float64(i) / steps) * 360.0
			chroma := minChroma + (float64(j)/steps)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			shininess := 20 + 40*((i+j)%3)

			sphere, err := geometry.NewSphere(
				core.NewPoint(x, radius, z),
				radius,
				material.NewMetal(oklchToRGB(lightness, chroma, hue), shininess),
			)
			if err != nil {
				return nil, fmt.Errorf("sphere grid: %w", err)
			}
			row.Add(sphere)
		}
		grid.Add(row)
	}
	return grid, nil
}
