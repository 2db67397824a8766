package types

import "math"

// Calc min component from two vectors
func MinVec3(v1, v2 Vec3) Vec3 {
	return v1.Min(v2)
}

// Calc max component from two vectors
func MaxVec3(v1, v2 Vec3) Vec3 {
	return v1.Max(v2)
}

// Check whether all components of two vectors are within epsilon of each other.
func ApproxEqual(v1, v2 Vec3, epsilon float32) bool {
	for axis := 0; axis < 3; axis++ {
		if math.Abs(float64(v1.Axis(axis)-v2.Axis(axis))) > float64(epsilon) {
			return false
		}
	}
	return true
}
