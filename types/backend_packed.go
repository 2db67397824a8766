//go:build packed

package types

// Vec3 is the vector type used by the renderer, here backed by four packed lanes.
type Vec3 = PackedVec3

// Bool3 is the mask type produced by Vec3.Positive.
type Bool3 = PackedBool3

// The name of the compiled vector backend.
const Backend = "packed"

// Define a 3 component vector.
func XYZ(x, y, z float32) Vec3 {
	return PackedXYZ(x, y, z)
}
