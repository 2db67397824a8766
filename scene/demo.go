package scene

import (
	"github.com/achilleasa/go-raybench/types"
	"github.com/chewxy/math32"
)

// Named colors (http://kb.iu.edu/data/aetf.html).
var (
	PaleGreen    = types.ColorFromRGB(152, 251, 152)
	DarkGray     = types.ColorFromRGB(169, 169, 169)
	Yellow       = types.ColorFromRGB(256, 256, 0)
	Red          = types.ColorFromRGB(256, 0, 0)
	Blue         = types.ColorFromRGB(0, 0, 256)
	MidnightBlue = types.ColorFromRGB(25, 25, 112)
)

// Append two triangles (v1, v2, v3) and (v1, v3, v4). The quad does not need
// to be a rectangle.
func Rectangle(world []Surface, m Material, v1, v2, v3, v4 types.Vec3) []Surface {
	return append(world,
		NewTriangle(m, v1, v2, v3),
		NewTriangle(m, v1, v3, v4),
	)
}

// Append the twelve triangles of a hexahedron. v1-v4 is the front face and
// v5-v8 the back face, both counter-clockwise as seen from the outside.
func Cube(world []Surface, m Material, v1, v2, v3, v4, v5, v6, v7, v8 types.Vec3) []Surface {
	world = Rectangle(world, m, v1, v2, v3, v4) // front
	world = Rectangle(world, m, v2, v5, v8, v3) // right
	world = Rectangle(world, m, v6, v1, v4, v7) // left
	world = Rectangle(world, m, v5, v6, v7, v8) // back
	world = Rectangle(world, m, v4, v3, v8, v7) // top
	world = Rectangle(world, m, v6, v1, v2, v5) // bottom
	return world
}

// Build the fixed demonstration stage. The light is placed just outside the
// top-left corner of the viewport.
func DemoStage(vp Viewport) *Stage {
	m1 := NewMaterial(types.XYZ(0.1, 0.2, 0.2), types.XYZ(0.3, 0.6, 0.6), 10, types.XYZ(0.05, 0.1, 0.1), 0)
	m2 := NewMaterial(types.XYZ(0.3, 0.3, 0.2), types.XYZ(0.6, 0.6, 0.4), 10, types.XYZ(0.1, 0.1, 0.05), 0)
	m3 := NewMaterial(types.XYZ(0.1, 0, 0), types.XYZ(0.8, 0, 0), 10, types.XYZ(0.1, 0, 0), 0)
	m4 := NewMaterial(DarkGray.MulS(0.4), DarkGray.MulS(0.3), 100, DarkGray.MulS(0.3), 0.5)
	m5 := NewMaterial(PaleGreen.MulS(0.4), PaleGreen.MulS(0.4), 10, PaleGreen.MulS(0.2), 1.0)
	m6 := NewMaterial(Yellow.MulS(0.6), types.XYZ(0, 0, 0), 0, Yellow.MulS(0.4), 0)
	m7 := NewMaterial(Red.MulS(0.6), types.XYZ(0, 0, 0), 0, Red.MulS(0.4), 0)
	m8 := NewMaterial(Blue.MulS(0.6), types.XYZ(0, 0, 0), 0, Blue.MulS(0.4), 0)

	world := make([]Surface, 0, 168)
	world = append(world,
		NewSphere(m1, types.XYZ(-1, 1, -9), 1),
		NewSphere(m2, types.XYZ(1.5, 1, 0), 0.75),
		NewTriangle(m1, types.XYZ(-1, 0, 0.75), types.XYZ(-0.75, 0, 0), types.XYZ(-0.75, 1.5, 0)),
		NewTriangle(m3, types.XYZ(-2, 0, 0), types.XYZ(-0.5, 0, 0), types.XYZ(-0.5, 2, 0)),
	)
	world = Rectangle(world, m4, types.XYZ(-5, 0, 5), types.XYZ(5, 0, 5), types.XYZ(5, 0, -40), types.XYZ(-5, 0, -40))
	world = Cube(world, m5,
		types.XYZ(1, 1.5, 1.5), types.XYZ(1.5, 1.5, 1.25), types.XYZ(1.5, 1.75, 1.25), types.XYZ(1, 1.75, 1.5),
		types.XYZ(1.5, 1.5, 0.5), types.XYZ(1, 1.5, 0.75), types.XYZ(1, 1.75, 0.75), types.XYZ(1.5, 1.75, 0.5),
	)

	// Particle-like clusters along parametric curves.
	for i := 0; i < 30; i++ {
		fi := float32(i)
		center := types.XYZ(-0.6+fi*0.2, 0.075+fi*0.05, 1.5-fi*math32.Cos(fi/30)*0.5)
		world = append(world, NewSphere(m6, center, 0.075))
	}
	for i := 0; i < 60; i++ {
		fi := float32(i)
		center := types.XYZ(1+0.3*math32.Sin(fi*(3.14/16)), 0.075+fi*0.025, 1+0.3*math32.Cos(fi*(3.14/16)))
		world = append(world, NewSphere(m7, center, 0.025))
	}
	for i := 0; i < 60; i++ {
		fi := float32(i)
		center := types.XYZ(1+0.3*math32.Sin(fi*(3.14/16)), 0.075+(fi+8)*0.025, 1+0.3*math32.Cos(fi*(3.14/16)))
		world = append(world, NewSphere(m8, center, 0.025))
	}

	return &Stage{
		Surfaces:   world,
		Eye:        types.XYZ(0.5, 0.75, 5),
		Light:      types.XYZ(vp.Left-1, vp.Top, 2),
		Background: MidnightBlue,
	}
}

// Get the bounds of all stage surfaces.
func (s *Stage) Bounds() Bounds {
	return ComputeBounds(s.Surfaces)
}
