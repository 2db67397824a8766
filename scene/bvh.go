package scene

import (
	"github.com/achilleasa/go-raybench/types"
)

// Volume is a BVH interior node. It owns a left child and an optional right
// child and caches the bounds enclosing both.
type Volume struct {
	bounds Bounds
	left   Surface
	right  Surface
}

// Create a new BVH node. Right may be nil for single-member subtrees.
func NewVolume(bounds Bounds, left, right Surface) *Volume {
	return &Volume{
		bounds: bounds,
		left:   left,
		right:  right,
	}
}

// Intersect runs a slab test against the node bounds and, if the ray overlaps
// [min, max] inside the box, returns the nearer hit of the two children.
func (v *Volume) Intersect(eye, ray types.Vec3, min, max float32) (Surface, float32) {
	a := ray.Inv()
	aTimesMinsMinusEye := a.Mul(v.bounds.Min.Sub(eye))
	aTimesMaxsMinusEye := a.Mul(v.bounds.Max.Sub(eye))
	aGE0 := a.Positive()
	mins := aGE0.Select(aTimesMinsMinusEye, aTimesMaxsMinusEye)
	maxs := aGE0.Select(aTimesMaxsMinusEye, aTimesMinsMinusEye)

	tmin, tmax := mins.X(), maxs.X()
	tymin, tymax := mins.Y(), maxs.Y()
	if tmin > tymax || tymin > tmax {
		return nil, 0
	}
	if tymin > tmin {
		tmin = tymin
	}
	if tymax < tmax {
		tmax = tymax
	}

	tzmin, tzmax := mins.Z(), maxs.Z()
	if tmin > tzmax || tzmin > tmax {
		return nil, 0
	}
	if tzmin > tmin {
		tmin = tzmin
	}
	if tzmax < tmax {
		tmax = tzmax
	}

	if !(tmin < max && tmax > min) {
		return nil, 0
	}

	r1, d1 := v.left.Intersect(eye, ray, min, max)
	if v.right != nil {
		r2, d2 := v.right.Intersect(eye, ray, min, max)
		if r2 != nil && (r1 == nil || d2 < d1) {
			return r2, d2
		}
	}
	return r1, d1
}

func (v *Volume) Bounds() Bounds {
	return v.bounds
}

func (v *Volume) Left() Surface {
	return v.left
}

// Get the right child or nil.
func (v *Volume) Right() Surface {
	return v.right
}

func (v *Volume) Normal(_ types.Vec3) types.Vec3 {
	unsupported(VolumeSurface, "normal")
	return types.Vec3{}
}

func (v *Volume) Center() types.Vec3 {
	unsupported(VolumeSurface, "center")
	return types.Vec3{}
}

func (v *Volume) Material() *Material {
	unsupported(VolumeSurface, "material")
	return nil
}

func (v *Volume) Type() SurfaceType {
	return VolumeSurface
}

func (*Volume) sealed() {}

// Jumble is an unpartitioned list of surfaces. It is only used when spatial
// partitioning degenerates and trades traversal speed for correctness.
type Jumble struct {
	surfaces []Surface
}

// Create a new jumble owning a copy of the given surface list.
func NewJumble(surfaces []Surface) *Jumble {
	list := make([]Surface, len(surfaces))
	copy(list, surfaces)
	return &Jumble{surfaces: list}
}

// Intersect scans all members and returns the globally nearest hit.
func (j *Jumble) Intersect(eye, ray types.Vec3, min, max float32) (Surface, float32) {
	var minObj Surface
	var minDist float32 = Sentinel
	for _, s := range j.surfaces {
		obj, dist := s.Intersect(eye, ray, min, max)
		if obj != nil && (minObj == nil || dist < minDist) {
			minObj = obj
			minDist = dist
		}
	}
	if minObj == nil {
		return nil, 0
	}
	return minObj, minDist
}

// Get the jumble members.
func (j *Jumble) Surfaces() []Surface {
	return j.surfaces
}

func (j *Jumble) Normal(_ types.Vec3) types.Vec3 {
	unsupported(JumbleSurface, "normal")
	return types.Vec3{}
}

func (j *Jumble) Center() types.Vec3 {
	unsupported(JumbleSurface, "center")
	return types.Vec3{}
}

func (j *Jumble) Bounds() Bounds {
	unsupported(JumbleSurface, "bounds")
	return Bounds{}
}

func (j *Jumble) Material() *Material {
	unsupported(JumbleSurface, "material")
	return nil
}

func (j *Jumble) Type() SurfaceType {
	return JumbleSurface
}

func (*Jumble) sealed() {}

// Walk visits root and all of its descendants depth-first. Returning false
// from fn skips the children of the visited surface.
func Walk(root Surface, fn func(s Surface, depth int) bool) {
	walk(root, 0, fn)
}

func walk(s Surface, depth int, fn func(s Surface, depth int) bool) {
	if s == nil || !fn(s, depth) {
		return
	}
	switch node := s.(type) {
	case *Volume:
		walk(node.left, depth+1, fn)
		walk(node.right, depth+1, fn)
	case *Jumble:
		for _, child := range node.surfaces {
			walk(child, depth+1, fn)
		}
	}
}
