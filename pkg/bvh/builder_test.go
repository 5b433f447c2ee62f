package bvh

import (
	"errors"
	"math/rand"
	"sort"
	"sync"
	"testing"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/geometry"
	"github.com/df07/go-ray-intersection/pkg/material"
	"go.viam.com/test"
)

var testMaterial = material.NewLambertian(material.Gray(0.5))

func sphere(t testing.TB, x, y, z, r float64) *geometry.Sphere {
	t.Helper()
	s, err := geometry.NewSphere(core.NewPoint(x, y, z), r, testMaterial)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

// sphereLine places n unit-spaced spheres along the X axis
func sphereLine(t testing.TB, n int) *geometry.Geometries {
	g := geometry.NewGeometries()
	for i := 0; i < n; i++ {
		g.Add(sphere(t, float64(i)*3, 0, 0, 1))
	}
	return g
}

// randomScene mixes spheres, triangles, cylinders and nested groups
func randomScene(t testing.TB, n int, seed int64) *geometry.Geometries {
	rng := rand.New(rand.NewSource(seed))
	coord := func() float64 { return rng.Float64()*40 - 20 }

	g := geometry.NewGeometries()
	nested := geometry.NewGeometries()
	for i := 0; i < n; i++ {
		x, y, z := coord(), coord(), coord()
		switch i % 4 {
		case 0:
			g.Add(sphere(t, x, y, z, 0.2+rng.Float64()))
		case 1:
			tri, err := geometry.NewTriangle(
				core.NewPoint(x, y, z),
				core.NewPoint(x+1+rng.Float64(), y, z),
				core.NewPoint(x, y+1+rng.Float64(), z+rng.Float64()),
				testMaterial)
			if err != nil {
				t.Fatal(err)
			}
			g.Add(tri)
		case 2:
			axis := core.NewRay(core.NewPoint(x, y, z), core.MustVector(rng.Float64()+0.1, rng.Float64(), rng.Float64()))
			cyl, err := geometry.NewCylinder(axis, 0.3+rng.Float64()/2, 0.5+rng.Float64()*2, testMaterial)
			if err != nil {
				t.Fatal(err)
			}
			g.Add(cyl)
		default:
			nested.Add(sphere(t, x, y, z, 0.5))
		}
	}
	g.Add(nested)
	return g
}

func randomRays(n int, seed int64) []core.Ray {
	rng := rand.New(rand.NewSource(seed))
	rays := make([]core.Ray, 0, n)
	for len(rays) < n {
		origin := core.NewPoint(rng.Float64()*60-30, rng.Float64()*60-30, rng.Float64()*60-30)
		// aim near the scene so most rays hit something
		target := core.NewPoint(rng.Float64()*30-15, rng.Float64()*30-15, rng.Float64()*30-15)
		dir, err := target.Subtract(origin)
		if err != nil {
			continue
		}
		rays = append(rays, core.NewRay(origin, dir))
	}
	return rays
}

func sortedPoints(points []core.Point) []core.Point {
	sort.Slice(points, func(i, j int) bool {
		a, b := points[i], points[j]
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return points
}

func assertSamePoints(t *testing.T, got, expected []core.Point) {
	t.Helper()
	test.That(t, len(got), test.ShouldEqual, len(expected))
	got, expected = sortedPoints(got), sortedPoints(expected)
	for i := range got {
		test.That(t, got[i].Equals(expected[i]), test.ShouldBeTrue)
	}
}

func TestBuild_SmallSceneUnchanged(t *testing.T) {
	scene := sphereLine(t, MaxObjectsPerLeaf)
	test.That(t, Build(scene), test.ShouldEqual, scene)

	// unbounded shapes do not count towards the threshold
	scene.Add(geometry.NewPlane(core.Origin, core.AxisY, testMaterial))
	test.That(t, Build(scene), test.ShouldEqual, scene)
}

func TestBuild_SplitsAboveLeafThreshold(t *testing.T) {
	built := Build(sphereLine(t, MaxObjectsPerLeaf+1))

	tree, ok := built.(*Tree)
	test.That(t, ok, test.ShouldBeTrue)

	stats := Collect(tree)
	test.That(t, stats.Nodes, test.ShouldEqual, 3)
	test.That(t, stats.Leaves, test.ShouldEqual, 2)
	test.That(t, stats.MaxDepth, test.ShouldEqual, 1)
	test.That(t, stats.TreeShapes, test.ShouldEqual, 9)

	root := tree.Node(0)
	test.That(t, root.Kind, test.ShouldEqual, Internal)
	test.That(t, len(tree.Node(root.Left).Shapes), test.ShouldEqual, 4)
	test.That(t, len(tree.Node(root.Right).Shapes), test.ShouldEqual, 5)

	// the median split keeps the left half on the low side of the axis
	for _, shape := range tree.Node(root.Left).Shapes {
		test.That(t, shape.BoundingBox().Center().X, test.ShouldBeLessThan, 12)
	}

	expected := core.NewBoundingBox(core.NewPoint(-1, -1, -1), core.NewPoint(25, 1, 1))
	test.That(t, tree.BoundingBox().Equals(expected), test.ShouldBeTrue)
}

func TestBuild_LeafAndDepthBounds(t *testing.T) {
	built := Build(randomScene(t, 2000, 1))
	stats := Collect(built)

	test.That(t, stats.Trees, test.ShouldEqual, 1)
	test.That(t, stats.TreeShapes, test.ShouldEqual, 2000)
	test.That(t, stats.LargestLeaf, test.ShouldBeLessThanOrEqualTo, MaxObjectsPerLeaf)
	test.That(t, stats.MaxDepth, test.ShouldBeLessThanOrEqualTo, MaxDepth)
	test.That(t, stats.Leaves, test.ShouldBeGreaterThan, 2000/MaxObjectsPerLeaf-1)
	test.That(t, stats.MeanLeafSize, test.ShouldBeGreaterThan, 0)
}

func TestBuildWithOptions_DepthLimit(t *testing.T) {
	built, err := BuildWithOptions(sphereLine(t, 40), Options{MaxObjectsPerLeaf: 1, MaxDepth: 2})
	test.That(t, err, test.ShouldBeNil)

	stats := Collect(built)
	test.That(t, stats.MaxDepth, test.ShouldEqual, 2)
	test.That(t, stats.Leaves, test.ShouldEqual, 4)
	test.That(t, stats.LargestLeaf, test.ShouldEqual, 10)
	test.That(t, stats.MeanLeafDepth, test.ShouldAlmostEqual, 2.0)
	test.That(t, stats.StdDevLeafDepth, test.ShouldAlmostEqual, 0.0)
}

func TestBuildWithOptions_Invalid(t *testing.T) {
	_, err := BuildWithOptions(sphereLine(t, 10), Options{MaxObjectsPerLeaf: 0, MaxDepth: 20})
	test.That(t, errors.Is(err, ErrInvalidOptions), test.ShouldBeTrue)

	_, err = BuildWithOptions(sphereLine(t, 10), Options{MaxObjectsPerLeaf: 8, MaxDepth: -1})
	test.That(t, errors.Is(err, ErrInvalidOptions), test.ShouldBeTrue)
}

func TestBuild_CoincidentCentroidsMakeOneLeaf(t *testing.T) {
	scene := geometry.NewGeometries()
	for i := 0; i < 30; i++ {
		scene.Add(sphere(t, 1, 2, 3, 0.5+float64(i)*0.1))
	}

	stats := Collect(Build(scene))
	test.That(t, stats.Nodes, test.ShouldEqual, 1)
	test.That(t, stats.Leaves, test.ShouldEqual, 1)
	test.That(t, stats.LargestLeaf, test.ShouldEqual, 30)
}

func TestBuild_UnboundedShapesStaySiblings(t *testing.T) {
	scene := sphereLine(t, 20)
	plane := geometry.NewPlane(core.NewPoint(0, -5, 0), core.AxisY, testMaterial)
	tube, err := geometry.NewTube(core.NewRay(core.NewPoint(0, 5, 0), core.AxisZ), 0.5, testMaterial)
	test.That(t, err, test.ShouldBeNil)
	scene.Add(plane, geometry.NewGeometries(tube))

	built := Build(scene)
	top, ok := built.(*geometry.Geometries)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, top.Len(), test.ShouldEqual, 3)

	_, isTree := top.Children()[0].(*Tree)
	test.That(t, isTree, test.ShouldBeTrue)
	test.That(t, top.Children()[1], test.ShouldEqual, plane)
	test.That(t, top.Children()[2], test.ShouldEqual, tube)
	test.That(t, top.BoundingBox(), test.ShouldBeNil)

	stats := Collect(built)
	test.That(t, stats.Unbounded, test.ShouldEqual, 2)
	test.That(t, stats.TreeShapes, test.ShouldEqual, 20)

	// the plane is below every sphere and must still be found
	down := core.NewRay(core.NewPoint(100, 0, 0), core.MustVector(0, -1, 0))
	points := geometry.FindIntersections(built, down, geometry.DefaultConfig)
	test.That(t, len(points), test.ShouldEqual, 1)
	test.That(t, points[0].Equals(core.NewPoint(100, -5, 0)), test.ShouldBeTrue)
}

func TestBuild_LeavesInputSceneIntact(t *testing.T) {
	scene := randomScene(t, 100, 3)
	before := append([]geometry.Intersectable(nil), scene.Children()...)

	Build(scene)

	test.That(t, scene.Len(), test.ShouldEqual, len(before))
	for i, child := range scene.Children() {
		test.That(t, child, test.ShouldEqual, before[i])
	}
}

func TestBuild_RebuildFlattensTree(t *testing.T) {
	scene := randomScene(t, 300, 4)
	scene.Add(geometry.NewPlane(core.NewPoint(0, -30, 0), core.AxisY, testMaterial))

	once := Build(scene)
	twice := Build(once)

	first, second := Collect(once), Collect(twice)
	test.That(t, second.Trees, test.ShouldEqual, 1)
	test.That(t, second.TreeShapes, test.ShouldEqual, first.TreeShapes)
	test.That(t, second.Unbounded, test.ShouldEqual, 1)
}

func TestBuild_SameResultsAsFlatScene(t *testing.T) {
	scene := randomScene(t, 500, 5)
	scene.Add(geometry.NewPlane(core.NewPoint(0, -25, 0), core.MustVector(0.1, 1, 0), testMaterial))
	built := Build(scene)

	hits := 0
	for _, r := range randomRays(500, 6) {
		flat := geometry.FindIntersections(scene, r, geometry.DefaultConfig)
		assertSamePoints(t, geometry.FindIntersections(built, r, geometry.DefaultConfig), flat)
		assertSamePoints(t, geometry.FindIntersections(built, r, geometry.Config{CBR: false}), flat)

		limited := geometry.CalculateIntersections(built, r, 30, geometry.DefaultConfig)
		test.That(t, len(limited), test.ShouldEqual, len(geometry.CalculateIntersections(scene, r, 30, geometry.Config{})))
		hits += len(flat)
	}
	test.That(t, hits, test.ShouldBeGreaterThan, 0)
}

func TestTree_ConcurrentQueries(t *testing.T) {
	scene := randomScene(t, 400, 7)
	built := Build(scene)
	rays := randomRays(200, 8)

	expected := make([][]core.Point, len(rays))
	for i, r := range rays {
		expected[i] = geometry.FindIntersections(scene, r, geometry.DefaultConfig)
	}

	var wg sync.WaitGroup
	results := make([][][]core.Point, 8)
	for w := range results {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			results[w] = make([][]core.Point, len(rays))
			for i, r := range rays {
				results[w][i] = geometry.FindIntersections(built, r, geometry.DefaultConfig)
			}
		}(w)
	}
	wg.Wait()

	for w := range results {
		for i := range rays {
			assertSamePoints(t, results[w][i], expected[i])
		}
	}
}

func TestTree_WalkVisitsEveryNode(t *testing.T) {
	tree := Build(sphereLine(t, 50)).(*Tree)

	visited := 0
	tree.Walk(func(depth int, node Node) {
		visited++
		if node.Kind == Internal {
			test.That(t, node.Shapes, test.ShouldBeNil)
		} else {
			test.That(t, len(node.Shapes), test.ShouldBeGreaterThan, 0)
		}
	})
	test.That(t, visited, test.ShouldEqual, tree.Len())
	test.That(t, len(tree.Children()), test.ShouldEqual, 50)
}

func BenchmarkFlatScene(b *testing.B) {
	benchmarkQueries(b, randomScene(b, 2000, 9), geometry.DefaultConfig)
}

func BenchmarkBVH(b *testing.B) {
	benchmarkQueries(b, Build(randomScene(b, 2000, 9)), geometry.DefaultConfig)
}

func BenchmarkBVHWithoutCBR(b *testing.B) {
	benchmarkQueries(b, Build(randomScene(b, 2000, 9)), geometry.Config{CBR: false})
}

func BenchmarkBuild(b *testing.B) {
	scene := randomScene(b, 2000, 9)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Build(scene)
	}
}

func benchmarkQueries(b *testing.B, scene geometry.Intersectable, cfg geometry.Config) {
	rays := randomRays(256, 10)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		geometry.CalculateAllIntersections(scene, rays[i%len(rays)], cfg)
	}
}
