package main

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/df07/go-ray-intersection/pkg/bvh"
	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/geometry"
	"github.com/df07/go-ray-intersection/pkg/probe"
	"github.com/df07/go-ray-intersection/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// loadScene builds the scene selected by the command flags. The flat scene
// is always returned; root is the BVH unless --no-bvh is set.
func loadScene(c *cli.Context) (flat *geometry.Geometries, root geometry.Intersectable, err error) {
	flat, err = scene.ByName(c.String("scene"), c.Int("size"), c.Int64("seed"))
	if err != nil {
		return nil, nil, err
	}
	if c.Bool("no-bvh") {
		return flat, flat, nil
	}

	start := time.Now()
	root = bvh.Build(flat)
	logger.Infof("built BVH for scene %q in %v", c.String("scene"), time.Since(start))
	return flat, root, nil
}

// parseTriple parses "x,y,z"
func parseTriple(s string) (x, y, z float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected x,y,z, got %q", s)
	}
	var v [3]float64
	for i, part := range parts {
		v[i], err = strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("coordinate %d of %q: %w", i, s, err)
		}
	}
	return v[0], v[1], v[2], nil
}

func newTable(c *cli.Context, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(c.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	return table
}

func listScenes(c *cli.Context) error {
	table := newTable(c, "Scene", "Description")
	for _, info := range scene.List() {
		table.Append([]string{info.Name, info.Description})
	}
	table.Render()
	return nil
}

func printStats(c *cli.Context) error {
	flat, root, err := loadScene(c)
	if err != nil {
		return err
	}

	stats := bvh.Collect(root)
	table := newTable(c, "Statistic", "Value")
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	rows := [][]string{
		{"scene", c.String("scene")},
		{"top-level children", strconv.Itoa(flat.Len())},
		{"trees", strconv.Itoa(stats.Trees)},
		{"nodes", strconv.Itoa(stats.Nodes)},
		{"leaves", strconv.Itoa(stats.Leaves)},
		{"max depth", strconv.Itoa(stats.MaxDepth)},
		{"largest leaf", strconv.Itoa(stats.LargestLeaf)},
		{"shapes in tree", strconv.Itoa(stats.TreeShapes)},
		{"shapes outside tree", strconv.Itoa(stats.FlatShapes)},
		{"unbounded shapes", strconv.Itoa(stats.Unbounded)},
		{"leaf depth", fmt.Sprintf("%.2f ± %.2f", stats.MeanLeafDepth, stats.StdDevLeafDepth)},
		{"mean leaf size", fmt.Sprintf("%.2f", stats.MeanLeafSize)},
	}
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func trace(c *cli.Context) error {
	ox, oy, oz, err := parseTriple(c.String("origin"))
	if err != nil {
		return fmt.Errorf("origin: %w", err)
	}
	dx, dy, dz, err := parseTriple(c.String("direction"))
	if err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	dir, err := core.NewVector(dx, dy, dz)
	if err != nil {
		return fmt.Errorf("direction: %w", err)
	}
	ray := core.NewRay(core.NewPoint(ox, oy, oz), dir)

	_, root, err := loadScene(c)
	if err != nil {
		return err
	}

	maxDistance := c.Float64("max-distance")
	if maxDistance <= 0 {
		maxDistance = math.Inf(1)
	}
	cfg := geometry.Config{CBR: !c.Bool("no-cbr")}
	hits := geometry.CalculateIntersections(root, ray, maxDistance, cfg)

	origin := ray.Origin()
	sort.SliceStable(hits, func(i, j int) bool {
		return origin.DistanceSquared(hits[i].Point) < origin.DistanceSquared(hits[j].Point)
	})
	closest, found := geometry.ClosestIntersection(origin, hits)

	fmt.Fprintf(c.App.Writer, "ray %v: %d intersection(s)\n", ray, len(hits))
	if !found {
		return nil
	}

	table := newTable(c, "#", "Point", "Distance", "Shape", "Diffuse", "")
	for i, hit := range hits {
		mark := ""
		if hit.Geometry == closest.Geometry && hit.Point == closest.Point {
			mark = "closest"
		}
		table.Append([]string{
			strconv.Itoa(i + 1),
			hit.Point.String(),
			fmt.Sprintf("%.6f", origin.Distance(hit.Point)),
			strings.TrimPrefix(fmt.Sprintf("%T", hit.Geometry), "*geometry."),
			hit.Material.Diffuse.String(),
			mark,
		})
	}
	table.Render()
	return nil
}

type benchRun struct {
	name  string
	scene geometry.Intersectable
	cfg   geometry.Config
}

func bench(c *cli.Context) error {
	flat, root, err := loadScene(c)
	if err != nil {
		return err
	}

	cfg := probe.DefaultConfig()
	cfg.Rays = c.Int("rays")
	cfg.Seed = c.Int64("seed")
	if w := c.Int("workers"); w > 0 {
		cfg.Workers = w
	}

	rays, err := probe.ScatterRays(flat.BoundingBox(), cfg)
	if err != nil {
		return err
	}

	runs := []benchRun{
		{"flat, no CBR", flat, geometry.Config{CBR: false}},
		{"flat, CBR", flat, geometry.Config{CBR: true}},
	}
	if root != geometry.Intersectable(flat) {
		runs = append(runs,
			benchRun{"bvh, no CBR", root, geometry.Config{CBR: false}},
			benchRun{"bvh, CBR", root, geometry.Config{CBR: true}},
		)
	}

	table := newTable(c, "Run", "Rays", "Hit", "Intersections", "Time", "Rays/s")
	var baseline *probe.Stats
	for _, run := range runs {
		cfg.Query = run.cfg
		_, stats, err := probe.Run(context.Background(), run.scene, rays, cfg)
		if err != nil {
			return err
		}
		table.Append([]string{
			run.name,
			strconv.Itoa(stats.Rays),
			strconv.Itoa(stats.RaysHit),
			strconv.Itoa(stats.Intersections),
			stats.Elapsed.Round(time.Microsecond).String(),
			fmt.Sprintf("%.0f", stats.RaysPerSecond()),
		})

		if baseline == nil {
			baseline = &stats
		} else if stats.Intersections != baseline.Intersections || stats.RaysHit != baseline.RaysHit {
			table.Render()
			return fmt.Errorf("%s found %d intersections on %d rays, expected %d on %d",
				run.name, stats.Intersections, stats.RaysHit, baseline.Intersections, baseline.RaysHit)
		}
	}
	table.Render()
	return nil
}
