package types

import (
	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// ScalarVec3 is the plain per-component vector backend.
type ScalarVec3 f32.Vec3

// ScalarBool3 holds one boolean per vector component.
type ScalarBool3 [3]bool

// Define a scalar vector.
func ScalarXYZ(x, y, z float32) ScalarVec3 {
	return ScalarVec3{x, y, z}
}

func (v ScalarVec3) X() float32 { return v[0] }
func (v ScalarVec3) Y() float32 { return v[1] }
func (v ScalarVec3) Z() float32 { return v[2] }

// Get the component for the given axis index (0=x, 1=y, 2=z).
func (v ScalarVec3) Axis(axis int) float32 {
	return v[axis]
}

// Add a vector.
func (v ScalarVec3) Add(v2 ScalarVec3) ScalarVec3 {
	return ScalarVec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2]}
}

// Add a scalar to every component.
func (v ScalarVec3) AddS(s float32) ScalarVec3 {
	return ScalarVec3{v[0] + s, v[1] + s, v[2] + s}
}

// Subtract a vector.
func (v ScalarVec3) Sub(v2 ScalarVec3) ScalarVec3 {
	return ScalarVec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2]}
}

// Subtract a scalar from every component.
func (v ScalarVec3) SubS(s float32) ScalarVec3 {
	return ScalarVec3{v[0] - s, v[1] - s, v[2] - s}
}

// Component-wise multiplication.
func (v ScalarVec3) Mul(v2 ScalarVec3) ScalarVec3 {
	return ScalarVec3{v[0] * v2[0], v[1] * v2[1], v[2] * v2[2]}
}

// Multiply with a scalar.
func (v ScalarVec3) MulS(s float32) ScalarVec3 {
	return ScalarVec3{v[0] * s, v[1] * s, v[2] * s}
}

// Divide by a scalar.
func (v ScalarVec3) DivS(s float32) ScalarVec3 {
	return ScalarVec3{v[0] / s, v[1] / s, v[2] / s}
}

// Component-wise reciprocal.
func (v ScalarVec3) Inv() ScalarVec3 {
	return ScalarVec3{1 / v[0], 1 / v[1], 1 / v[2]}
}

func (v ScalarVec3) Neg() ScalarVec3 {
	return ScalarVec3{-v[0], -v[1], -v[2]}
}

// Calculate dot product of 2 vectors. Products are rounded individually so
// that both backends agree bit for bit.
func (v ScalarVec3) Dot(v2 ScalarVec3) float32 {
	return float32(v[0]*v2[0]) + float32(v[1]*v2[1]) + float32(v[2]*v2[2])
}

// Calculate cross product of 2 vectors.
func (v ScalarVec3) Cross(v2 ScalarVec3) ScalarVec3 {
	return ScalarVec3{
		float32(v[1]*v2[2]) - float32(v[2]*v2[1]),
		float32(v[2]*v2[0]) - float32(v[0]*v2[2]),
		float32(v[0]*v2[1]) - float32(v[1]*v2[0]),
	}
}

// Get vector length.
func (v ScalarVec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize vector. The result is undefined for zero-length vectors.
func (v ScalarVec3) Normalize() ScalarVec3 {
	return v.DivS(v.Len())
}

// Component-wise minimum.
func (v ScalarVec3) Min(v2 ScalarVec3) ScalarVec3 {
	return ScalarVec3{min32(v[0], v2[0]), min32(v[1], v2[1]), min32(v[2], v2[2])}
}

// Component-wise maximum.
func (v ScalarVec3) Max(v2 ScalarVec3) ScalarVec3 {
	return ScalarVec3{max32(v[0], v2[0]), max32(v[1], v2[1]), max32(v[2], v2[2])}
}

// Positive returns a mask with a true lane for every component >= 0.
func (v ScalarVec3) Positive() ScalarBool3 {
	return ScalarBool3{v[0] >= 0, v[1] >= 0, v[2] >= 0}
}

// Select picks a's component for true lanes and b's component otherwise.
func (m ScalarBool3) Select(a, b ScalarVec3) ScalarVec3 {
	out := b
	for i := 0; i < 3; i++ {
		if m[i] {
			out[i] = a[i]
		}
	}
	return out
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}
