package main

import (
	"fmt"
	"os"

	"github.com/df07/go-ray-intersection/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("rayx")

func newApp() *cli.App {
	// -v is taken by the verbosity flag below
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "rayx"
	app.Usage = "build and query ray intersection scenes"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Before = setupLogging

	sceneFlags := []cli.Flag{
		cli.StringFlag{
			Name:  "scene, s",
			Value: "mixed",
			Usage: "built-in scene: fan, floor, grid or mixed",
		},
		cli.IntFlag{
			Name:  "size",
			Value: 1000,
			Usage: "scene size; shape count for mixed and fan, grid side for grid",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 1,
			Usage: "random seed for generated scenes and rays",
		},
		cli.BoolFlag{
			Name:  "no-bvh",
			Usage: "query the flat scene instead of building a BVH",
		},
	}

	app.Commands = []cli.Command{
		{
			Name:   "scenes",
			Usage:  "list built-in scenes",
			Action: listScenes,
		},
		{
			Name:   "stats",
			Usage:  "build a scene and print BVH statistics",
			Flags:  sceneFlags,
			Action: printStats,
		},
		{
			Name:  "trace",
			Usage: "intersect a single ray with a scene",
			Description: `
Cast one ray into the scene and print every intersection sorted by distance
from the ray origin. The closest intersection is marked.`,
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "origin",
					Value: "0,0,30",
					Usage: "ray origin as x,y,z",
				},
				cli.StringFlag{
					Name:  "direction",
					Value: "0,0,-1",
					Usage: "ray direction as x,y,z",
				},
				cli.Float64Flag{
					Name:  "max-distance",
					Usage: "ignore intersections further than this; 0 means no limit",
				},
				cli.BoolFlag{
					Name:  "no-cbr",
					Usage: "disable bounding-box rejection",
				},
			}, sceneFlags...),
			Action: trace,
		},
		{
			Name:  "bench",
			Usage: "compare flat and BVH queries with and without bounding-box rejection",
			Description: `
Run the same random rays against the flat scene and the BVH, each with
bounding-box rejection on and off. The command fails if the runs disagree on
the number of intersections.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "rays, r",
					Value: 20000,
					Usage: "number of probe rays",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Usage: "query workers; 0 uses every CPU",
				},
			}, sceneFlags...),
			Action: bench,
		},
	}
	return app
}

// setupLogging runs with the application context, so the global flags are
// read directly
func setupLogging(ctx *cli.Context) error {
	if ctx.Bool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.Bool("vv") {
		log.SetLevel(log.Debug)
	}
	return nil
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
