package material

import "fmt"

// Color is an RGB triple of non-negative coefficients
type Color struct {
	R, G, B float64
}

// Black is the zero color
var Black = Color{}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns a color with the same value on every channel
func Gray(v float64) Color {
	return Color{R: v, G: v, B: v}
}

func (c Color) String() string {
	return fmt.Sprintf("rgb(%g, %g, %g)", c.R, c.G, c.B)
}

// Material holds the surface coefficients consumed by the shading stage.
// It is a plain value: every intersection carries its own copy, taken at
// query time.
type Material struct {
	Diffuse      Color // kD
	Specular     Color // kS
	Transparency Color // kT
	Reflection   Color // kR
	Shininess    int
}

// NewLambertian creates a purely diffuse material
func NewLambertian(albedo Color) Material {
	return Material{Diffuse: albedo}
}

// NewMetal creates a specular, reflective material
func NewMetal(albedo Color, shininess int) Material {
	return Material{
		Diffuse:    Gray(0.1),
		Specular:   albedo,
		Reflection: albedo,
		Shininess:  shininess,
	}
}

// NewGlass creates a mostly transparent material
func NewGlass(transparency float64) Material {
	return Material{
		Specular:     Gray(0.5),
		Transparency: Gray(transparency),
		Reflection:   Gray(1 - transparency),
		Shininess:    100,
	}
}

// IsTransparent reports whether any light passes through the surface
func (m Material) IsTransparent() bool {
	return m.Transparency != Black
}
