package cpu

import (
	"github.com/achilleasa/go-raybench/framebuffer"
	"github.com/achilleasa/go-raybench/scene"
	"github.com/achilleasa/go-raybench/types"
	"github.com/chewxy/math32"
)

// Offset applied to secondary ray origins to avoid self intersection.
const EPS float32 = 0.00001

// Antialiasing grid size; every pixel is sampled antialiasGrid^2 times.
const antialiasGrid = 4

// A fixed jitter sequence keeps antialiased output reproducible. Each pixel
// consumes 2*antialiasGrid^2 entries starting at index 0 or 1.
var jitter = [...]float32{
	0.495, 0.840, 0.636, 0.407, 0.026, 0.547, 0.223, 0.349, 0.033, 0.643, 0.558, 0.481, 0.039,
	0.175, 0.169, 0.606, 0.638, 0.364, 0.709, 0.814, 0.206, 0.346, 0.812, 0.603, 0.969, 0.888,
	0.294, 0.824, 0.410, 0.467, 0.029, 0.706, 0.314,
}

// Options control the kernel's shading features.
type Options struct {
	Viewport scene.Viewport

	// Cast shadow rays towards the light.
	Shadows bool

	// Max number of mirror bounces. Reflections are disabled when set to 0.
	ReflectionDepth uint32

	// Sample each pixel on a jittered 4x4 grid.
	Antialias bool
}

// Kernel evaluates pixel colors for a compiled scene. It holds no mutable
// state and can be shared by any number of goroutines.
type Kernel struct {
	scene *scene.Scene
	opts  Options
}

// Create a kernel for the given scene.
func NewKernel(sc *scene.Scene, opts Options) *Kernel {
	return &Kernel{
		scene: sc,
		opts:  opts,
	}
}

// Render the pixels in rows [ymin, ylim) and columns [xmin, xlim) into fb.
func (k *Kernel) Trace(fb *framebuffer.Framebuffer, ymin, ylim, xmin, xlim uint32) {
	if k.opts.Antialias {
		k.traceWithAntialias(fb, ymin, ylim, xmin, xlim)
		return
	}
	k.traceWithoutAntialias(fb, ymin, ylim, xmin, xlim)
}

func (k *Kernel) traceWithoutAntialias(fb *framebuffer.Framebuffer, ymin, ylim, xmin, xlim uint32) {
	width, height := fb.Width(), fb.Height()
	for h := ymin; h < ylim; h++ {
		for w := xmin; w < xlim; w++ {
			ray := k.PrimaryRay(float32(w)+0.5, float32(h)+0.5, width, height)
			fb.SetPixel(h, w, k.RayColor(k.scene.Eye, ray, 0, scene.Sentinel, k.opts.ReflectionDepth))
		}
	}
}

// Stratified sampling (Shirley & Marschner ch. 13). The jitter start offset
// alternates with the pixel's linear index in the frame so the output does
// not depend on how the frame is split into blocks.
func (k *Kernel) traceWithAntialias(fb *framebuffer.Framebuffer, ymin, ylim, xmin, xlim uint32) {
	const n = antialiasGrid
	width, height := fb.Width(), fb.Height()
	for h := ymin; h < ylim; h++ {
		for w := xmin; w < xlim; w++ {
			next := int((h*width + w) % 2)
			var c types.Vec3
			for p := 0; p < n; p++ {
				for q := 0; q < n; q++ {
					jx := jitter[next]
					jy := jitter[next+1]
					next += 2
					x := float32(w) + (float32(p)+jx)/n
					y := float32(h) + (float32(q)+jy)/n
					ray := k.PrimaryRay(x, y, width, height)
					c = c.Add(k.RayColor(k.scene.Eye, ray, 0, scene.Sentinel, k.opts.ReflectionDepth))
				}
			}
			fb.SetPixel(h, w, c.DivS(n*n))
		}
	}
}

// Map a point in pixel space to a ray direction through the viewport. x
// grows to the right and y grows upwards; both are measured in pixels.
func (k *Kernel) PrimaryRay(x, y float32, width, height uint32) types.Vec3 {
	vp := k.opts.Viewport
	u := vp.Left + (vp.Right-vp.Left)*x/float32(width)
	v := vp.Bottom + (vp.Top-vp.Bottom)*y/float32(height)
	return types.XYZ(u, v, -k.scene.Eye.Z())
}

// Get the color seen along ray from eye, considering hits in [t0, t1].
// depth is the number of mirror bounces left.
//
// Shading is ambient + Lambert diffuse + Blinn-Phong specular. Shadowed
// points only get the ambient term and no reflection.
func (k *Kernel) RayColor(eye, ray types.Vec3, t0, t1 float32, depth uint32) types.Vec3 {
	world := k.scene.World
	obj, dist := world.Intersect(eye, ray, t0, t1)
	if obj == nil {
		return k.scene.Background
	}

	m := obj.Material()
	p := eye.Add(ray.MulS(dist))
	n1 := obj.Normal(p)
	l1 := k.scene.Light.Sub(p).Normalize()
	c := m.Ambient

	if k.opts.Shadows {
		if shadowObj, _ := world.Intersect(p.Add(l1.MulS(EPS)), l1, EPS, scene.Sentinel); shadowObj != nil {
			return c
		}
	}

	diffuse := max32(0, n1.Dot(l1))
	v1 := ray.Neg().Normalize()
	h1 := v1.Add(l1).Normalize()
	specular := math32.Pow(max32(0, n1.Dot(h1)), m.Shininess)
	c = c.Add(m.Diffuse.MulS(diffuse).Add(m.Specular.MulS(specular)))

	if depth > 0 && m.Mirror != 0 {
		r := ray.Sub(n1.MulS(2 * ray.Dot(n1)))
		c = c.Add(k.RayColor(p.Add(r.MulS(EPS)), r, EPS, scene.Sentinel, depth-1).MulS(m.Mirror))
	}
	return c
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
