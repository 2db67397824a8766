package types

import (
	"math"

	"github.com/chewxy/math32"
	"golang.org/x/image/math/f32"
)

// PackedVec3 stores a vector in four lanes, the layout used by 128-bit SIMD
// registers. The w lane is unused; every operation keeps it at zero so that
// it can never leak into a dot product or a comparison.
type PackedVec3 f32.Vec4

// PackedBool3 is a four lane mask. True lanes are all-ones, false lanes are zero.
type PackedBool3 [4]uint32

const laneTrue uint32 = 0xffffffff

// Define a packed vector.
func PackedXYZ(x, y, z float32) PackedVec3 {
	return PackedVec3{x, y, z, 0}
}

func splat(s float32) PackedVec3 {
	return PackedVec3{s, s, s, s}
}

func (v PackedVec3) X() float32 { return v[0] }
func (v PackedVec3) Y() float32 { return v[1] }
func (v PackedVec3) Z() float32 { return v[2] }

// Get the component for the given axis index (0=x, 1=y, 2=z).
func (v PackedVec3) Axis(axis int) float32 {
	return v[axis]
}

func (v PackedVec3) Add(v2 PackedVec3) PackedVec3 {
	return PackedVec3{v[0] + v2[0], v[1] + v2[1], v[2] + v2[2], v[3] + v2[3]}
}

func (v PackedVec3) AddS(s float32) PackedVec3 {
	return v.Add(splat(s)).clearW()
}

func (v PackedVec3) Sub(v2 PackedVec3) PackedVec3 {
	return PackedVec3{v[0] - v2[0], v[1] - v2[1], v[2] - v2[2], v[3] - v2[3]}
}

func (v PackedVec3) SubS(s float32) PackedVec3 {
	return v.Sub(splat(s)).clearW()
}

// Lane-wise multiplication.
func (v PackedVec3) Mul(v2 PackedVec3) PackedVec3 {
	return PackedVec3{v[0] * v2[0], v[1] * v2[1], v[2] * v2[2], v[3] * v2[3]}
}

func (v PackedVec3) MulS(s float32) PackedVec3 {
	return v.Mul(splat(s)).clearW()
}

func (v PackedVec3) DivS(s float32) PackedVec3 {
	return PackedVec3{v[0] / s, v[1] / s, v[2] / s, 0}
}

// Lane-wise reciprocal; 1/0 in the w lane is discarded.
func (v PackedVec3) Inv() PackedVec3 {
	return PackedVec3{1 / v[0], 1 / v[1], 1 / v[2], 0}
}

func (v PackedVec3) Neg() PackedVec3 {
	return PackedVec3{-v[0], -v[1], -v[2], 0}
}

// Dot multiplies all lanes and sums x, y and z only.
func (v PackedVec3) Dot(v2 PackedVec3) float32 {
	tmp := v.Mul(v2)
	return float32(tmp[0]) + float32(tmp[1]) + float32(tmp[2])
}

// Cross computes (a.yzx * b.zxy) - (a.zxy * b.yzx) with lane shuffles.
func (v PackedVec3) Cross(v2 PackedVec3) PackedVec3 {
	tmp0 := v.shuffle(1, 2, 0, 3)
	tmp1 := v2.shuffle(2, 0, 1, 3)
	tmp2 := v.shuffle(2, 0, 1, 3)
	tmp3 := v2.shuffle(1, 2, 0, 3)
	lhs := tmp0.Mul(tmp1)
	rhs := tmp2.Mul(tmp3)
	return PackedVec3{
		float32(lhs[0]) - float32(rhs[0]),
		float32(lhs[1]) - float32(rhs[1]),
		float32(lhs[2]) - float32(rhs[2]),
		0,
	}
}

func (v PackedVec3) Len() float32 {
	return math32.Sqrt(v.Dot(v))
}

// Normalize vector. The result is undefined for zero-length vectors.
func (v PackedVec3) Normalize() PackedVec3 {
	return v.DivS(v.Len())
}

func (v PackedVec3) Min(v2 PackedVec3) PackedVec3 {
	return PackedVec3{min32(v[0], v2[0]), min32(v[1], v2[1]), min32(v[2], v2[2]), 0}
}

func (v PackedVec3) Max(v2 PackedVec3) PackedVec3 {
	return PackedVec3{max32(v[0], v2[0]), max32(v[1], v2[1]), max32(v[2], v2[2]), 0}
}

// Positive returns an all-ones lane for every component >= 0.
func (v PackedVec3) Positive() PackedBool3 {
	var m PackedBool3
	for i := 0; i < 3; i++ {
		if v[i] >= 0 {
			m[i] = laneTrue
		}
	}
	return m
}

// Select performs a bitwise select: bits set in the mask come from a, the
// rest from b.
func (m PackedBool3) Select(a, b PackedVec3) PackedVec3 {
	var out PackedVec3
	for i := 0; i < 3; i++ {
		bits := math.Float32bits(a[i])&m[i] | math.Float32bits(b[i])&^m[i]
		out[i] = math.Float32frombits(bits)
	}
	return out
}

func (v PackedVec3) shuffle(i0, i1, i2, i3 int) PackedVec3 {
	return PackedVec3{v[i0], v[i1], v[i2], v[i3]}
}

func (v PackedVec3) clearW() PackedVec3 {
	v[3] = 0
	return v
}
