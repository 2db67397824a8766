package compiler

import (
	"errors"
	"fmt"
	"time"

	"github.com/achilleasa/go-raybench/log"
	"github.com/achilleasa/go-raybench/scene"
	"github.com/achilleasa/go-raybench/scene/compiler/bvh"
)

var (
	ErrEmptyStage         = errors.New("compiler: stage does not contain any surfaces")
	ErrUnsupportedSurface = errors.New("compiler: stage surfaces must be spheres or triangles")
)

// Options control how the stage geometry is organized.
type Options struct {
	// Build a BVH over the stage surfaces. If false, all surfaces are
	// stored in a single Jumble.
	Partition bool

	// Partition BVH subtrees above this depth in parallel.
	ParallelDepth int
}

type sceneCompiler struct {
	stage    *scene.Stage
	opts     Options
	compiled *scene.Scene
	logger   log.Logger
	bvhStats bvh.Stats
}

// Compile a stage into an immutable scene that can be shared by tracers.
func Compile(stage *scene.Stage, opts Options) (*scene.Scene, error) {
	compiler := &sceneCompiler{
		stage:    stage,
		opts:     opts,
		compiled: &scene.Scene{},
		logger:   log.New("scene compiler"),
	}

	start := time.Now()
	compiler.logger.Noticef("compiling scene")

	var err error
	err = compiler.validate()
	if err != nil {
		return nil, err
	}

	err = compiler.partitionGeometry()
	if err != nil {
		return nil, err
	}

	compiler.setupCamera()
	compiler.collectInfo()

	compiler.logger.Noticef("compiled scene in %d ms", time.Since(start).Nanoseconds()/1e6)
	return compiler.compiled, nil
}

func (sc *sceneCompiler) validate() error {
	if sc.stage == nil || len(sc.stage.Surfaces) == 0 {
		return ErrEmptyStage
	}

	for index, s := range sc.stage.Surfaces {
		if s == nil {
			return fmt.Errorf("%w: surface %d is nil", ErrUnsupportedSurface, index)
		}
		switch s.Type() {
		case scene.SphereSurface, scene.TriangleSurface:
		default:
			return fmt.Errorf("%w: surface %d is a %s", ErrUnsupportedSurface, index, s.Type())
		}
	}
	return nil
}

func (sc *sceneCompiler) partitionGeometry() error {
	start := time.Now()
	surfaces := sc.stage.Surfaces

	if !sc.opts.Partition {
		sc.logger.Infof("skipping partitioning; storing %d surfaces in a jumble", len(surfaces))
		sc.compiled.World = scene.NewJumble(surfaces)
		return nil
	}

	sc.logger.Infof("building scene BVH tree (%d surfaces)", len(surfaces))
	root, stats, err := bvh.BuildParallel(surfaces, sc.opts.ParallelDepth)
	if err != nil {
		return err
	}

	if stats.Jumbles != 0 {
		sc.logger.Warningf("BVH contains %d jumbles; intersection tests will be slower", stats.Jumbles)
	}

	sc.compiled.World = root
	sc.bvhStats = stats
	sc.logger.Noticef("partitioned geometry in %d ms", time.Since(start).Nanoseconds()/1e6)
	return nil
}

func (sc *sceneCompiler) setupCamera() {
	sc.compiled.Eye = sc.stage.Eye
	sc.compiled.Light = sc.stage.Light
	sc.compiled.Background = sc.stage.Background
}

func (sc *sceneCompiler) collectInfo() {
	info := scene.Inspect(sc.compiled.World)
	info.Partitioned = sc.opts.Partition
	info.Bounds = sc.stage.Bounds()
	info.BuildTime = sc.bvhStats.BuildTime
	sc.compiled.Info = info
}
