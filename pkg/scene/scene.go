package scene

import (
	"errors"
	"fmt"
	"sort"

	"github.com/df07/go-ray-intersection/pkg/geometry"
)

// ErrUnknownScene is returned by ByName for names that are not registered
var ErrUnknownScene = errors.New("unknown scene")

// Info describes a built-in scene
type Info struct {
	Name        string
	Description string
	build       func(size int, seed int64) (*geometry.Geometries, error)
}

var builtin = map[string]Info{
	"grid": {
		Name:        "grid",
		Description: "size x size spheres resting on an open floor",
		build: func(size int, _ int64) (*geometry.Geometries, error) {
			grid, err := SphereGrid(size)
			if err != nil {
				return nil, err
			}
			floor, err := Floor()
			if err != nil {
				return nil, err
			}
			grid.Add(floor)
			return grid, nil
		},
	},
	"mixed": {
		Name:        "mixed",
		Description: "size random spheres, cylinders, triangles and polygons in nested groups",
		build:       Mixed,
	},
	"fan": {
		Name:        "fan",
		Description: "a disc made of size triangles",
		build: func(size int, _ int64) (*geometry.Geometries, error) {
			return TriangleFan(size)
		},
	},
	"floor": {
		Name:        "floor",
		Description: "unbounded shapes only: a plane and a tube",
		build: func(int, int64) (*geometry.Geometries, error) {
			return Floor()
		},
	},
}

// List returns the built-in scenes sorted by name
func List() []Info {
	scenes := make([]Info, 0, len(builtin))
	for _, info := range builtin {
		scenes = append(scenes, info)
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// ByName builds the named scene. size scales the shape count; seed drives
// the scenes that are randomly generated.
func ByName(name string, size int, seed int64) (*geometry.Geometries, error) {
	info, ok := builtin[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownScene)
	}
	g, err := info.build(size, seed)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return g, nil
}
