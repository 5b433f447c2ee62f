package probe

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-ray-intersection/pkg/core"
	"github.com/df07/go-ray-intersection/pkg/geometry"
	"github.com/df07/go-ray-intersection/pkg/log"
	"gonum.org/v1/gonum/stat"
)

var logger = log.New("probe")

// Config controls a probe run
type Config struct {
	Workers     int     // <= 0 means runtime.NumCPU()
	Rays        int     // ray count for ScatterRays
	Seed        int64   // seed for ScatterRays
	MaxDistance float64 // query distance limit
	Query       geometry.Config
}

// DefaultConfig returns a configuration using every CPU, no distance limit
// and bounding-box rejection enabled
func DefaultConfig() Config {
	return Config{
		Workers:     runtime.NumCPU(),
		Rays:        10000,
		Seed:        1,
		MaxDistance: math.Inf(1),
		Query:       geometry.DefaultConfig,
	}
}

// Task is a single ray query
type Task struct {
	ID  int
	Ray core.Ray
}

// Result holds the intersections found for one task
type Result struct {
	TaskID int
	Hits   []geometry.Intersection
}

// Stats summarizes a run
type Stats struct {
	Workers       int
	Rays          int
	RaysHit       int
	Intersections int
	MeanHits      float64 // mean intersections per ray
	Elapsed       time.Duration
}

// RaysPerSecond returns the query throughput of the run
func (s Stats) RaysPerSecond() float64 {
	if s.Elapsed <= 0 {
		return 0
	}
	return float64(s.Rays) / s.Elapsed.Seconds()
}

// WorkerPool runs ray queries against a shared scene in parallel
type WorkerPool struct {
	scene       geometry.Intersectable
	cfg         Config
	taskQueue   chan Task
	resultQueue chan Result
	numWorkers  int
	wg          sync.WaitGroup
}

// NewWorkerPool creates a pool with room for capacity queued tasks and results
func NewWorkerPool(scene geometry.Intersectable, cfg Config, capacity int) *WorkerPool {
	numWorkers := cfg.Workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		scene:       scene,
		cfg:         cfg,
		taskQueue:   make(chan Task, capacity),
		resultQueue: make(chan Result, capacity),
		numWorkers:  numWorkers,
	}
}

// Start launches the workers. Workers stop picking up queries once ctx is
// done; queued tasks are then drained without being run.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.run(ctx)
	}
}

// Stop waits for every submitted task and closes the result queue
func (wp *WorkerPool) Stop() {
	close(wp.taskQueue)
	wp.wg.Wait()
	close(wp.resultQueue)
}

// SubmitTask queues a task
func (wp *WorkerPool) SubmitTask(task Task) {
	wp.taskQueue <- task
}

// GetResult retrieves a completed result; ok is false once the pool is
// stopped and drained
func (wp *WorkerPool) GetResult() (Result, bool) {
	result, ok := <-wp.resultQueue
	return result, ok
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

func (wp *WorkerPool) run(ctx context.Context) {
	defer wp.wg.Done()

	for task := range wp.taskQueue {
		if ctx.Err() != nil {
			continue
		}
		wp.resultQueue <- Result{
			TaskID: task.ID,
			Hits:   geometry.CalculateIntersections(wp.scene, task.Ray, wp.cfg.MaxDistance, wp.cfg.Query),
		}
	}
}

// Run queries every ray against scene on a worker pool and returns the
// results indexed like rays. A cancelled context stops the run between rays
// and returns the context error.
func Run(ctx context.Context, scene geometry.Intersectable, rays []core.Ray, cfg Config) ([]Result, Stats, error) {
	wp := NewWorkerPool(scene, cfg, len(rays))

	start := time.Now()
	wp.Start(ctx)
	for i, r := range rays {
		wp.SubmitTask(Task{ID: i, Ray: r})
	}
	wp.Stop()

	results := make([]Result, len(rays))
	for {
		result, ok := wp.GetResult()
		if !ok {
			break
		}
		results[result.TaskID] = result
	}
	elapsed := time.Since(start)

	if err := ctx.Err(); err != nil {
		return nil, Stats{}, fmt.Errorf("probe run: %w", err)
	}

	stats := Stats{
		Workers: wp.NumWorkers(),
		Rays:    len(rays),
		Elapsed: elapsed,
	}
	hitsPerRay := make([]float64, len(results))
	for i, result := range results {
		if len(result.Hits) > 0 {
			stats.RaysHit++
		}
		stats.Intersections += len(result.Hits)
		hitsPerRay[i] = float64(len(result.Hits))
	}
	if len(hitsPerRay) > 0 {
		stats.MeanHits = stat.Mean(hitsPerRay, nil)
	}

	logger.Debugf("%d rays on %d workers in %v: %d hit, %d intersections",
		stats.Rays, stats.Workers, stats.Elapsed, stats.RaysHit, stats.Intersections)
	return results, stats, nil
}
