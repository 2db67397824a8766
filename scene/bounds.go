package scene

import (
	"math"

	"github.com/achilleasa/go-raybench/types"
)

// Bounds is an axis aligned bounding box. Each component of Min is <= the
// corresponding component of Max.
type Bounds struct {
	Min types.Vec3
	Max types.Vec3
}

// An empty box that acts as the identity element for Union.
func EmptyBounds() Bounds {
	return Bounds{
		Min: types.XYZ(math.MaxFloat32, math.MaxFloat32, math.MaxFloat32),
		Max: types.XYZ(-math.MaxFloat32, -math.MaxFloat32, -math.MaxFloat32),
	}
}

// Get the smallest box enclosing both b and other.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		Min: types.MinVec3(b.Min, other.Min),
		Max: types.MaxVec3(b.Max, other.Max),
	}
}

// Check whether other lies completely inside b.
func (b Bounds) Contains(other Bounds) bool {
	for axis := 0; axis < 3; axis++ {
		if other.Min.Axis(axis) < b.Min.Axis(axis) || other.Max.Axis(axis) > b.Max.Axis(axis) {
			return false
		}
	}
	return true
}

// Get the midpoint of the box along an axis.
func (b Bounds) Mid(axis int) float32 {
	return (b.Max.Axis(axis) + b.Min.Axis(axis)) / 2
}

// Compute the bounds of a set of surfaces. Calling this on a set containing
// a Jumble is a contract violation.
func ComputeBounds(surfaces []Surface) Bounds {
	bounds := EmptyBounds()
	for _, s := range surfaces {
		bounds = bounds.Union(s.Bounds())
	}
	return bounds
}
