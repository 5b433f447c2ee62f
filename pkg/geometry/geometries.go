package geometry

import (
	"github.com/df07/go-ray-intersection/pkg/core"
)

// Geometries is an ordered group of Intersectables. A scene, a nested group
// and the top level of a built BVH are all Geometries.
//
// Children must be added before the first query: the bounding box is
// computed once and never refreshed.
type Geometries struct {
	children []Intersectable
	bounds   boundsCache
}

// NewGeometries creates a group holding the given children
func NewGeometries(children ...Intersectable) *Geometries {
	g := &Geometries{}
	g.Add(children...)
	return g
}

// Add appends children in order
func (g *Geometries) Add(children ...Intersectable) {
	g.children = append(g.children, children...)
}

// Children returns the direct children in insertion order
func (g *Geometries) Children() []Intersectable {
	return g.children
}

// Len returns the number of direct children
func (g *Geometries) Len() int {
	return len(g.children)
}

// BoundingBox returns the union of the children's boxes. A group that is
// empty or holds any unbounded child is itself unbounded.
func (g *Geometries) BoundingBox() *core.BoundingBox {
	return g.bounds.get(func() *core.BoundingBox {
		if len(g.children) == 0 {
			return nil
		}
		boxes := make([]*core.BoundingBox, len(g.children))
		for i, child := range g.children {
			boxes[i] = child.BoundingBox()
			if boxes[i] == nil {
				return nil
			}
		}
		return core.Union(boxes...)
	})
}

// IntersectExact queries every child and concatenates their results. The
// result is unordered and nil only when no child was hit.
func (g *Geometries) IntersectExact(ray core.Ray, maxDistance float64, cfg Config) []Intersection {
	var result []Intersection
	for _, child := range g.children {
		result = append(result, CalculateIntersections(child, ray, maxDistance, cfg)...)
	}
	return result
}
