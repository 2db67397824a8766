package renderer

import (
	"context"

	"github.com/achilleasa/go-raybench/framebuffer"
)

type Renderer interface {
	// Render frame.
	Render(ctx context.Context) error

	// Get the framebuffer holding the last rendered frame.
	Frame() *framebuffer.Framebuffer

	// Shutdown renderer and any attached tracer.
	Close()

	// Get render statistics.
	Stats() FrameStats
}
