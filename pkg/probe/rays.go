package probe

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-ray-intersection/pkg/core"
)

// Fan returns n rays leaving origin towards points scattered uniformly in a
// cube of half-size spread around target. The same seed always produces the
// same rays.
func Fan(origin, target core.Point, spread float64, n int, seed int64) ([]core.Ray, error) {
	if n < 0 {
		return nil, fmt.Errorf("fan: ray count must not be negative, got %d", n)
	}
	if spread < 0 {
		return nil, fmt.Errorf("fan: spread must not be negative, got %g", spread)
	}
	if _, err := target.Subtract(origin); err != nil && spread == 0 {
		return nil, fmt.Errorf("fan: target coincides with origin: %w", err)
	}

	rng := rand.New(rand.NewSource(seed))
	jitter := func() float64 { return (rng.Float64()*2 - 1) * spread }

	rays := make([]core.Ray, 0, n)
	for len(rays) < n {
		aim := core.NewPoint(target.X+jitter(), target.Y+jitter(), target.Z+jitter())
		dir, err := aim.Subtract(origin)
		if err != nil {
			continue
		}
		rays = append(rays, core.NewRay(origin, dir))
	}
	return rays, nil
}

// Scatter returns n rays that start on a sphere enclosing box and aim at
// random points inside it. A nil box is treated as the cube [-10, 10]^3.
func Scatter(box *core.BoundingBox, n int, seed int64) ([]core.Ray, error) {
	if n < 0 {
		return nil, fmt.Errorf("scatter: ray count must not be negative, got %d", n)
	}
	if box == nil {
		box = core.NewBoundingBox(core.NewPoint(-10, -10, -10), core.NewPoint(10, 10, 10))
	}

	rng := rand.New(rand.NewSource(seed))
	center := box.Center()
	radius := 2*center.Distance(box.Max) + 1
	size := box.Size()

	rays := make([]core.Ray, 0, n)
	for len(rays) < n {
		outward, err := core.NewVector(rng.NormFloat64(), rng.NormFloat64(), rng.NormFloat64())
		if err != nil {
			continue
		}
		offset, err := outward.Normalize().Scale(radius)
		if err != nil {
			continue
		}
		origin := center.Add(offset)
		aim := core.NewPoint(
			box.Min.X+rng.Float64()*size.X,
			box.Min.Y+rng.Float64()*size.Y,
			box.Min.Z+rng.Float64()*size.Z,
		)
		dir, err := aim.Subtract(origin)
		if err != nil {
			continue
		}
		rays = append(rays, core.NewRay(origin, dir))
	}
	return rays, nil
}

// ScatterRays is Scatter driven by a run configuration: it generates
// cfg.Rays rays from cfg.Seed
func ScatterRays(box *core.BoundingBox, cfg Config) ([]core.Ray, error) {
	return Scatter(box, cfg.Rays, cfg.Seed)
}
