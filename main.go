package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/achilleasa/go-raybench/cmd"
	"github.com/joho/godotenv"
	"github.com/urfave/cli"
)

// Flags shared by all commands that build the demo scene.
var sceneFlags = []cli.Flag{
	cli.Float64Flag{
		Name:   "left",
		Value:  -2,
		Usage:  "viewport left edge",
		EnvVar: "RAYBENCH_VIEWPORT_LEFT",
	},
	cli.Float64Flag{
		Name:   "right",
		Value:  2,
		Usage:  "viewport right edge",
		EnvVar: "RAYBENCH_VIEWPORT_RIGHT",
	},
	cli.Float64Flag{
		Name:   "top",
		Value:  1.5,
		Usage:  "viewport top edge",
		EnvVar: "RAYBENCH_VIEWPORT_TOP",
	},
	cli.Float64Flag{
		Name:   "bottom",
		Value:  -1.5,
		Usage:  "viewport bottom edge",
		EnvVar: "RAYBENCH_VIEWPORT_BOTTOM",
	},
	cli.BoolFlag{
		Name:   "no-partition",
		Usage:  "store the scene as a flat list instead of building a BVH",
		EnvVar: "RAYBENCH_NO_PARTITION",
	},
	cli.IntFlag{
		Name:   "bvh-parallel-depth",
		Value:  0,
		Usage:  "build BVH subtrees above this depth in parallel",
		EnvVar: "RAYBENCH_BVH_PARALLEL_DEPTH",
	},
}

func main() {
	// Settings may also be provided through a .env file.
	_ = godotenv.Load(".env")

	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "raybench"
	app.Usage = "render a benchmark scene using Whitted-style ray tracing"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "log level (debug, info, notice, warning, error)",
			EnvVar: "RAYBENCH_LOG_LEVEL",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render the demo scene",
			Description: `
Build the demo scene, render it using a pool of cpu tracers and write the
resulting frame to an image file.

Each frame is split into row blocks that are rendered in parallel. When more
than one frame is rendered the perfect scheduler uses the block render times
of the previous frame to balance the work.`,
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:   "width",
					Value:  800,
					Usage:  "frame width",
					EnvVar: "RAYBENCH_WIDTH",
				},
				cli.IntFlag{
					Name:   "height",
					Value:  600,
					Usage:  "frame height",
					EnvVar: "RAYBENCH_HEIGHT",
				},
				cli.BoolFlag{
					Name:   "no-shadows",
					Usage:  "do not cast shadow rays",
					EnvVar: "RAYBENCH_NO_SHADOWS",
				},
				cli.IntFlag{
					Name:   "reflection-depth",
					Value:  2,
					Usage:  "max number of mirror bounces; 0 disables reflections",
					EnvVar: "RAYBENCH_REFLECTION_DEPTH",
				},
				cli.BoolFlag{
					Name:   "no-antialias",
					Usage:  "sample each pixel once instead of using a 4x4 grid",
					EnvVar: "RAYBENCH_NO_ANTIALIAS",
				},
				cli.IntFlag{
					Name:   "workers",
					Value:  runtime.NumCPU(),
					Usage:  "number of cpu tracers",
					EnvVar: "RAYBENCH_WORKERS",
				},
				cli.IntFlag{
					Name:   "frames",
					Value:  1,
					Usage:  "number of frames to render",
					EnvVar: "RAYBENCH_FRAMES",
				},
				cli.StringFlag{
					Name:   "scheduler",
					Value:  "perfect",
					Usage:  "block scheduler (naive, perfect)",
					EnvVar: "RAYBENCH_SCHEDULER",
				},
				cli.StringFlag{
					Name:   "out, o",
					Value:  "frame.png",
					Usage:  "image filename for the rendered frame",
					EnvVar: "RAYBENCH_OUT",
				},
				cli.StringFlag{
					Name:   "format",
					Value:  "png",
					Usage:  "output image format (png, ppmx)",
					EnvVar: "RAYBENCH_FORMAT",
				},
				cli.StringFlag{
					Name:   "thumbnail",
					Usage:  "also write a png thumbnail to this file",
					EnvVar: "RAYBENCH_THUMBNAIL",
				},
				cli.IntFlag{
					Name:   "thumbnail-size",
					Value:  128,
					Usage:  "max thumbnail width and height",
					EnvVar: "RAYBENCH_THUMBNAIL_SIZE",
				},
			}, sceneFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:   "scene",
			Usage:  "display demo scene statistics",
			Flags:  sceneFlags,
			Action: cmd.ShowSceneInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
