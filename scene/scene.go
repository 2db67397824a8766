package scene

import (
	"time"

	"github.com/achilleasa/go-raybench/types"
)

// Viewport describes the image plane window that primary rays pass through.
type Viewport struct {
	Left, Right float32
	Top, Bottom float32
}

// The viewport used by the demonstration scene.
var DefaultViewport = Viewport{Left: -2, Right: 2, Top: 1.5, Bottom: -1.5}

// Stage holds the uncompiled scene description: a flat primitive list plus
// the camera, light and background settings.
type Stage struct {
	Surfaces   []Surface
	Eye        types.Vec3
	Light      types.Vec3
	Background types.Vec3
}

// Scene is a compiled stage ready for tracing. It is immutable once built
// and may be shared by any number of tracers.
type Scene struct {
	Eye        types.Vec3
	Light      types.Vec3
	Background types.Vec3

	// The root of the surface tree.
	World Surface

	// Build information reported by the scene compiler.
	Info BuildInfo
}

// BuildInfo summarizes the structure of a compiled scene.
type BuildInfo struct {
	Primitives  int
	Spheres     int
	Triangles   int
	Volumes     int
	Jumbles     int
	MaxDepth    int
	Partitioned bool
	Bounds      Bounds
	BuildTime   time.Duration
}

// Collect build information by walking a surface tree.
func Inspect(root Surface) BuildInfo {
	var info BuildInfo
	Walk(root, func(s Surface, depth int) bool {
		if depth > info.MaxDepth {
			info.MaxDepth = depth
		}
		switch s.Type() {
		case SphereSurface:
			info.Spheres++
			info.Primitives++
		case TriangleSurface:
			info.Triangles++
			info.Primitives++
		case VolumeSurface:
			info.Volumes++
		case JumbleSurface:
			info.Jumbles++
		}
		return true
	})
	return info
}
