package scene

import (
	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/geometry"
	"github.com/df07/go-ray-intersection/pkg/material"
)

// Floor creates the unbounded part of a scene: a gray ground plane at y=0
// and a tube of radius 0.5 running along the X axis at height 3, z=-2
func Floor() (*geometry.Geometries, error) {
	ground := geometry.NewPlane(core.Origin, core.AxisY, material.NewLambertian(material.Gray(0.5)))

	rail, err := geometry.NewTube(
		core.NewRay(core.NewPoint(0, 3, -2), core.AxisX),
		0.5,
		material.NewMetal(material.NewColor(0.8, 0.6, 0.2), 80),
	)
	if err != nil {
		return nil, err
	}
	return geometry.NewGeometries(ground, rail), nil
}
