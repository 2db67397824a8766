package scene

import (
	"fmt"

	"github.com/achilleasa/go-raybench/types"
	"github.com/chewxy/math32"
)

// Sentinel is used as "infinitely far" for ray parameters.
const Sentinel float32 = 1e32

type SurfaceType uint8

const (
	SphereSurface SurfaceType = iota
	TriangleSurface
	VolumeSurface
	JumbleSurface
)

func (t SurfaceType) String() string {
	switch t {
	case SphereSurface:
		return "sphere"
	case TriangleSurface:
		return "triangle"
	case VolumeSurface:
		return "volume"
	case JumbleSurface:
		return "jumble"
	}
	return fmt.Sprintf("surface(%d)", uint8(t))
}

// Surface is implemented by the leaf primitives (Sphere, Triangle) and by the
// composite nodes (Volume, Jumble) that group them. The set is closed; only
// this package can add variants.
type Surface interface {
	// Find the nearest intersection of the ray eye + t*ray for t in
	// [min, max]. Returns the leaf primitive that was hit and t, or a nil
	// Surface if nothing was hit.
	Intersect(eye, ray types.Vec3, min, max float32) (Surface, float32)

	// Outward unit normal at a point on the surface. Leaf only.
	Normal(p types.Vec3) types.Vec3

	// Representative point used for partitioning. Leaf only.
	Center() types.Vec3

	// Tight axis aligned bounds. Not available for Jumble.
	Bounds() Bounds

	// The surface material. Leaf only.
	Material() *Material

	// The surface variant.
	Type() SurfaceType

	sealed()
}

// ContractError is the panic value raised when an operation is invoked on a
// surface variant that does not support it. It indicates a logic defect and
// is never recovered by the tracing kernel.
type ContractError struct {
	Surface   SurfaceType
	Operation string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("scene: %s not implemented for %s", e.Operation, e.Surface)
}

func unsupported(t SurfaceType, op string) {
	panic(&ContractError{Surface: t, Operation: op})
}

// A sphere primitive.
type Sphere struct {
	material Material
	center   types.Vec3
	radius   float32
}

// Create new sphere primitive. The radius must be positive.
func NewSphere(material Material, center types.Vec3, radius float32) *Sphere {
	return &Sphere{
		material: material,
		center:   center,
		radius:   radius,
	}
}

// Solve t^2(d.d) + 2t(d.(e-c)) + ((e-c).(e-c) - r^2) = 0 and keep the
// smallest root within [min, max].
func (s *Sphere) Intersect(eye, ray types.Vec3, min, max float32) (Surface, float32) {
	dDotD := ray.Dot(ray)
	eMinusC := eye.Sub(s.center)
	b := ray.Dot(eMinusC)
	disc := b*b - dDotD*(eMinusC.Dot(eMinusC)-s.radius*s.radius)
	if disc < 0 {
		return nil, 0
	}

	sqrtDisc := math32.Sqrt(disc)
	s1 := (-b + sqrtDisc) / dDotD
	s2 := (-b - sqrtDisc) / dDotD
	if s1 < min || s1 > max {
		s1 = Sentinel
	}
	if s2 < min || s2 > max {
		s2 = Sentinel
	}

	dist := s1
	if s2 < dist {
		dist = s2
	}
	if dist == Sentinel {
		return nil, 0
	}
	return s, dist
}

func (s *Sphere) Normal(p types.Vec3) types.Vec3 {
	return p.Sub(s.center).DivS(s.radius)
}

func (s *Sphere) Center() types.Vec3 {
	return s.center
}

func (s *Sphere) Bounds() Bounds {
	return Bounds{
		Min: s.center.SubS(s.radius),
		Max: s.center.AddS(s.radius),
	}
}

func (s *Sphere) Material() *Material {
	return &s.material
}

func (s *Sphere) Type() SurfaceType {
	return SphereSurface
}

func (s *Sphere) String() string {
	return fmt.Sprintf("(S c=(%g,%g,%g) r=%g)", s.center.X(), s.center.Y(), s.center.Z(), s.radius)
}

func (*Sphere) sealed() {}

// Rays whose direction makes an angle (in radians, roughly) smaller than this
// with a triangle's plane are treated as parallel to it.
const parallelTolerance float32 = 1e-5

// A triangle primitive. The normal is precomputed from the counter-clockwise
// vertex winding; triangles are assumed to be non-degenerate.
type Triangle struct {
	material   Material
	v1, v2, v3 types.Vec3
	normal     types.Vec3

	// parallelTolerance^2 * |v2-v1|^2 * |v3-v1|^2
	parallelLimit float32
}

// Create new triangle primitive.
func NewTriangle(material Material, v1, v2, v3 types.Vec3) *Triangle {
	e1 := v2.Sub(v1)
	e2 := v3.Sub(v1)
	return &Triangle{
		material:      material,
		v1:            v1,
		v2:            v2,
		v3:            v3,
		normal:        e1.Cross(e2).Normalize(),
		parallelLimit: parallelTolerance * parallelTolerance * e1.Dot(e1) * e2.Dot(e2),
	}
}

func (tr *Triangle) Intersect(eye, ray types.Vec3, min, max float32) (Surface, float32) {
	t, _, _, ok := tr.solve(eye, ray, min, max)
	if !ok {
		return nil, 0
	}
	return tr, t
}

// solve uses Cramer's rule to find t and the barycentric coordinates beta and
// gamma (Shirley & Marschner, 4.4.2) with hit = v1 + beta*(v2-v1) + gamma*(v3-v1).
// ok is false for misses.
func (tr *Triangle) solve(eye, ray types.Vec3, min, max float32) (t, beta, gamma float32, ok bool) {
	a := tr.v1.X() - tr.v2.X()
	b := tr.v1.Y() - tr.v2.Y()
	c := tr.v1.Z() - tr.v2.Z()
	d := tr.v1.X() - tr.v3.X()
	e := tr.v1.Y() - tr.v3.Y()
	f := tr.v1.Z() - tr.v3.Z()
	g := ray.X()
	h := ray.Y()
	i := ray.Z()
	j := tr.v1.X() - eye.X()
	k := tr.v1.Y() - eye.Y()
	l := tr.v1.Z() - eye.Z()

	eiMinusHf := e*i - h*f
	gfMinusDi := g*f - d*i
	dhMinusEg := d*h - e*g
	m := a*eiMinusHf + b*gfMinusDi + c*dhMinusEg

	// m is the triple product of the edges and the ray; near zero the ray
	// runs parallel to the triangle plane and t, beta and gamma are noise.
	if m*m <= tr.parallelLimit*ray.Dot(ray) {
		return 0, 0, 0, false
	}

	akMinusJb := a*k - j*b
	jcMinusAl := j*c - a*l
	blMinusKc := b*l - k*c

	t = -((f*akMinusJb + e*jcMinusAl + d*blMinusKc) / m)
	if t < min || t > max {
		return 0, 0, 0, false
	}
	gamma = (i*akMinusJb + h*jcMinusAl + g*blMinusKc) / m
	if gamma < 0 || gamma > 1 {
		return 0, 0, 0, false
	}
	beta = (j*eiMinusHf + k*gfMinusDi + l*dhMinusEg) / m
	if beta < 0 || beta > 1-gamma {
		return 0, 0, 0, false
	}
	return t, beta, gamma, true
}

func (tr *Triangle) Normal(_ types.Vec3) types.Vec3 {
	return tr.normal
}

// Get the triangle centroid.
func (tr *Triangle) Center() types.Vec3 {
	return tr.v1.Add(tr.v2.Add(tr.v3)).DivS(3)
}

func (tr *Triangle) Bounds() Bounds {
	return Bounds{
		Min: types.MinVec3(tr.v1, types.MinVec3(tr.v2, tr.v3)),
		Max: types.MaxVec3(tr.v1, types.MaxVec3(tr.v2, tr.v3)),
	}
}

func (tr *Triangle) Material() *Material {
	return &tr.material
}

func (tr *Triangle) Type() SurfaceType {
	return TriangleSurface
}

func (tr *Triangle) String() string {
	return fmt.Sprintf("[T (%g,%g,%g) (%g,%g,%g) (%g,%g,%g)]",
		tr.v1.X(), tr.v1.Y(), tr.v1.Z(),
		tr.v2.X(), tr.v2.Y(), tr.v2.Z(),
		tr.v3.X(), tr.v3.Y(), tr.v3.Z(),
	)
}

func (*Triangle) sealed() {}
