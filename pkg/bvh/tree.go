package bvh

import (
	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/geometry"
)

// Kind tags a node as a leaf or an internal node
type Kind uint8

const (
	// Leaf nodes hold shapes
	Leaf Kind = iota
	// Internal nodes hold exactly two child nodes
	Internal
)

func (k Kind) String() string {
	if k == Leaf {
		return "leaf"
	}
	return "internal"
}

// Node is a BVH node stored in the tree arena. Internal nodes reference
// their children by index; leaves carry their shapes.
type Node struct {
	Kind   Kind
	Box    *core.BoundingBox
	Left   int
	Right  int
	Shapes []geometry.Intersectable
}

// Tree is an immutable bounding volume hierarchy over finite shapes. The
// root is always node 0. A tree is safe for concurrent queries.
type Tree struct {
	nodes []Node
}

// BoundingBox returns the root box
func (t *Tree) BoundingBox() *core.BoundingBox {
	return t.nodes[0].Box
}

// IntersectExact descends the tree. With CBR enabled a child node is only
// visited when the ray meets its box; the root box has already been checked
// by the caller.
func (t *Tree) IntersectExact(ray core.Ray, maxDistance float64, cfg geometry.Config) []geometry.Intersection {
	return t.intersectNode(0, ray, maxDistance, cfg)
}

func (t *Tree) intersectNode(index int, ray core.Ray, maxDistance float64, cfg geometry.Config) []geometry.Intersection {
	node := &t.nodes[index]
	if node.Kind == Leaf {
		var result []geometry.Intersection
		for _, shape := range node.Shapes {
			result = append(result, geometry.CalculateIntersections(shape, ray, maxDistance, cfg)...)
		}
		return result
	}

	var result []geometry.Intersection
	for _, child := range [2]int{node.Left, node.Right} {
		if cfg.CBR && !t.nodes[child].Box.Intersect(ray, maxDistance) {
			continue
		}
		result = append(result, t.intersectNode(child, ray, maxDistance, cfg)...)
	}
	return result
}

// Children returns every shape in the tree in leaf order, so that a built
// tree can be flattened and rebuilt
func (t *Tree) Children() []geometry.Intersectable {
	var shapes []geometry.Intersectable
	t.Walk(func(_ int, node Node) {
		shapes = append(shapes, node.Shapes...)
	})
	return shapes
}

// Len returns the number of nodes
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node at index
func (t *Tree) Node(index int) Node {
	return t.nodes[index]
}

// Walk visits every node depth first, left before right, passing the node
// depth (the root is at depth 0)
func (t *Tree) Walk(fn func(depth int, node Node)) {
	t.walk(0, 0, fn)
}

func (t *Tree) walk(index, depth int, fn func(depth int, node Node)) {
	node := t.nodes[index]
	fn(depth, node)
	if node.Kind == Internal {
		t.walk(node.Left, depth+1, fn)
		t.walk(node.Right, depth+1, fn)
	}
}
