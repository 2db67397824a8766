package renderer

import (
	"github.com/achilleasa/go-raybench/tracer/cpu"
	"github.com/achilleasa/go-raybench/types"
)

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// The color the framebuffer is initialized with.
	FillColor types.Vec3

	// Number of cpu tracers. Each tracer runs its own worker goroutine.
	NumTracers int

	// Shading options passed to the tracing kernel.
	Kernel cpu.Options
}
