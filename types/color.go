package types

// A color is a Vec3 holding r, g and b in the [0, 1] range. An RGBA value is a
// uint32 packing r, g, b and a as bytes, red in the lowest byte.

// Convert 8-bit color components to a color vector.
func ColorFromRGB(r, g, b uint32) Vec3 {
	return XYZ(float32(r)/256, float32(g)/256, float32(b)/256)
}

// Pack a color into an opaque RGBA value. Components are clamped to [0, 1].
func RGBAFromColor(c Vec3) uint32 {
	return 255<<24 | channel(c.Z())<<16 | channel(c.Y())<<8 | channel(c.X())
}

// Unpack an RGBA value.
func Components(rgba uint32) (r, g, b, a uint8) {
	return uint8(rgba), uint8(rgba >> 8), uint8(rgba >> 16), uint8(rgba >> 24)
}

func channel(v float32) uint32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 255
	}
	return uint32(255 * v)
}
