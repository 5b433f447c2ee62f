package bvh

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/geometry"
	"github.com/df07/go-ray-intersection/pkg/log"
)

const (
	// MaxObjectsPerLeaf is the default leaf capacity
	MaxObjectsPerLeaf = 8
	// MaxDepth is the default depth limit; the root is at depth 0
	MaxDepth = 20
)

// ErrInvalidOptions is returned by BuildWithOptions for unusable options
var ErrInvalidOptions = errors.New("invalid bvh options")

// Options controls when the builder stops splitting
type Options struct {
	MaxObjectsPerLeaf int
	MaxDepth          int
}

// DefaultOptions returns the default build options
func DefaultOptions() Options {
	return Options{
		MaxObjectsPerLeaf: MaxObjectsPerLeaf,
		MaxDepth:          MaxDepth,
	}
}

type buildStats struct {
	nodes    int
	leaves   int
	maxDepth int
}

type builder struct {
	logger log.Logger
	opts   Options

	// Nodes stored as a contiguous list; the root is appended first
	nodes []Node

	stats buildStats
}

// Build reorganizes a scene into a BVH using the default options. Nested
// groups are flattened first. Shapes without a bounding box are kept as
// siblings of the tree. When there are too few finite shapes to be worth
// partitioning the scene is returned unchanged.
func Build(scene geometry.Intersectable) geometry.Intersectable {
	root, err := BuildWithOptions(scene, DefaultOptions())
	if err != nil {
		// default options are always valid
		panic(err)
	}
	return root
}

// BuildWithOptions is like Build with explicit leaf capacity and depth limit
func BuildWithOptions(scene geometry.Intersectable, opts Options) (geometry.Intersectable, error) {
	if opts.MaxObjectsPerLeaf < 1 {
		return nil, fmt.Errorf("max objects per leaf must be positive, got %d: %w", opts.MaxObjectsPerLeaf, ErrInvalidOptions)
	}
	if opts.MaxDepth < 0 {
		return nil, fmt.Errorf("max depth must not be negative, got %d: %w", opts.MaxDepth, ErrInvalidOptions)
	}

	logger := log.New("bvh")

	var finite, unbounded []geometry.Intersectable
	for _, shape := range flatten(scene, nil) {
		if shape.BoundingBox() == nil {
			unbounded = append(unbounded, shape)
		} else {
			finite = append(finite, shape)
		}
	}

	if len(finite) <= opts.MaxObjectsPerLeaf {
		logger.Debugf("scene has %d finite shapes, skipping bvh build", len(finite))
		return scene, nil
	}

	b := &builder{
		logger: logger,
		opts:   opts,
		nodes:  make([]Node, 0, 2*len(finite)/opts.MaxObjectsPerLeaf+1),
	}

	start := time.Now()
	b.partition(finite, 0)
	b.logger.Debugf(
		"BVH tree build time: %d ms, shapes: %d, unbounded: %d, maxDepth: %d, nodes: %d, leaves: %d",
		time.Since(start).Milliseconds(),
		len(finite), len(unbounded), b.stats.maxDepth, b.stats.nodes, b.stats.leaves,
	)

	tree := &Tree{nodes: b.nodes}
	if len(unbounded) == 0 {
		return tree, nil
	}
	top := geometry.NewGeometries(tree)
	top.Add(unbounded...)
	return top, nil
}

// flatten collects every non-composite object below g
func flatten(g geometry.Intersectable, out []geometry.Intersectable) []geometry.Intersectable {
	composite, ok := g.(geometry.Composite)
	if !ok {
		return append(out, g)
	}
	for _, child := range composite.Children() {
		out = flatten(child, out)
	}
	return out
}

// partition builds the subtree for shapes and returns its node index
func (b *builder) partition(shapes []geometry.Intersectable, depth int) int {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	boxes := make([]*core.BoundingBox, len(shapes))
	for i, shape := range shapes {
		boxes[i] = shape.BoundingBox()
	}
	node := Node{Box: core.Union(boxes...)}

	if len(shapes) <= b.opts.MaxObjectsPerLeaf || depth >= b.opts.MaxDepth {
		return b.createLeaf(node, shapes)
	}

	axis, spread := widestCentroidAxis(shapes)
	if core.IsZero(spread) {
		return b.createLeaf(node, shapes)
	}

	sorted := make([]geometry.Intersectable, len(shapes))
	copy(sorted, shapes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BoundingBox().Center().Coord(axis) < sorted[j].BoundingBox().Center().Coord(axis)
	})
	mid := len(sorted) / 2

	// Reserve the node before its children so the root stays at index 0
	index := len(b.nodes)
	node.Kind = Internal
	b.nodes = append(b.nodes, node)
	b.stats.nodes++

	left := b.partition(sorted[:mid], depth+1)
	right := b.partition(sorted[mid:], depth+1)
	b.nodes[index].Left = left
	b.nodes[index].Right = right

	return index
}

func (b *builder) createLeaf(node Node, shapes []geometry.Intersectable) int {
	node.Kind = Leaf
	node.Shapes = shapes

	index := len(b.nodes)
	b.nodes = append(b.nodes, node)
	b.stats.nodes++
	b.stats.leaves++
	return index
}

// widestCentroidAxis returns the axis along which the box centers spread the
// most, and that spread. Ties go to the lower axis.
func widestCentroidAxis(shapes []geometry.Intersectable) (axis int, spread float64) {
	first := shapes[0].BoundingBox().Center()
	lo := [3]float64{first.X, first.Y, first.Z}
	hi := lo
	for _, shape := range shapes[1:] {
		c := shape.BoundingBox().Center()
		for a := 0; a < 3; a++ {
			v := c.Coord(a)
			if v < lo[a] {
				lo[a] = v
			}
			if v > hi[a] {
				hi[a] = v
			}
		}
	}

	spread = -1
	for a := 0; a < 3; a++ {
		if r := hi[a] - lo[a]; r > spread {
			axis, spread = a, r
		}
	}
	return axis, spread
}
