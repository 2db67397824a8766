package cmd

import (
	"github.com/achilleasa/go-raybench/scene"
	"github.com/achilleasa/go-raybench/scene/compiler"
	"github.com/urfave/cli"
)

// Compile the demo scene and display its statistics.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := compileScene(ctx)
	if err != nil {
		return err
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}

func compileScene(ctx *cli.Context) (*scene.Scene, error) {
	stage := scene.DemoStage(viewport(ctx))
	return compiler.Compile(stage, compiler.Options{
		Partition:     !ctx.Bool("no-partition"),
		ParallelDepth: ctx.Int("bvh-parallel-depth"),
	})
}

func viewport(ctx *cli.Context) scene.Viewport {
	return scene.Viewport{
		Left:   float32(ctx.Float64("left")),
		Right:  float32(ctx.Float64("right")),
		Top:    float32(ctx.Float64("top")),
		Bottom: float32(ctx.Float64("bottom")),
	}
}
