package bvh

import (
	"math"

	"github.com/df07/go-ray-intersection/pkg/geometry"
	"gonum.org/v1/gonum/stat"
)

// Stats describes the structure of a built scene
type Stats struct {
	Trees       int // BVH trees found in the scene
	Nodes       int
	Leaves      int
	MaxDepth    int
	LargestLeaf int
	TreeShapes  int // shapes held by tree leaves
	FlatShapes  int // bounded shapes outside any tree
	Unbounded   int

	MeanLeafDepth   float64
	StdDevLeafDepth float64
	MeanLeafSize    float64
}

// Collect gathers statistics for a scene as returned by Build. Flat groups
// are descended, trees are walked.
func Collect(scene geometry.Intersectable) Stats {
	var s Stats
	var depths, sizes []float64
	collect(scene, &s, &depths, &sizes)

	if len(depths) > 0 {
		s.MeanLeafDepth, s.StdDevLeafDepth = stat.MeanStdDev(depths, nil)
		if math.IsNaN(s.StdDevLeafDepth) {
			s.StdDevLeafDepth = 0
		}
		s.MeanLeafSize = stat.Mean(sizes, nil)
	}
	return s
}

func collect(g geometry.Intersectable, s *Stats, depths, sizes *[]float64) {
	switch node := g.(type) {
	case *Tree:
		s.Trees++
		node.Walk(func(depth int, n Node) {
			s.Nodes++
			if depth > s.MaxDepth {
				s.MaxDepth = depth
			}
			if n.Kind != Leaf {
				return
			}
			s.Leaves++
			s.TreeShapes += len(n.Shapes)
			if len(n.Shapes) > s.LargestLeaf {
				s.LargestLeaf = len(n.Shapes)
			}
			*depths = append(*depths, float64(depth))
			*sizes = append(*sizes, float64(len(n.Shapes)))
		})
	case geometry.Composite:
		for _, child := range node.Children() {
			collect(child, s, depths, sizes)
		}
	default:
		if g.BoundingBox() == nil {
			s.Unbounded++
		} else {
			s.FlatShapes++
		}
	}
}
