//go:build !packed

package types

// Vec3 is the vector type used by the renderer. The default build uses the
// per-component backend; build with -tags packed to switch to the four-lane one.
type Vec3 = ScalarVec3

// Bool3 is the mask type produced by Vec3.Positive.
type Bool3 = ScalarBool3

// The name of the compiled vector backend.
const Backend = "scalar"

// Define a 3 component vector.
func XYZ(x, y, z float32) Vec3 {
	return ScalarXYZ(x, y, z)
}
