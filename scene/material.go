package scene

import "github.com/achilleasa/go-raybench/types"

// Defines a Phong-style surface material. Materials are copied into the
// primitives that use them and are never mutated afterwards.
type Material struct {
	// Diffuse color.
	Diffuse types.Vec3

	// Specular color and the exponent applied to the specular term.
	Specular  types.Vec3
	Shininess float32

	// Ambient color.
	Ambient types.Vec3

	// Fraction of the reflected ray color blended into the shaded color.
	// Must be in the [0, 1] range; 0 disables reflections.
	Mirror float32
}

// Create a new material.
func NewMaterial(diffuse, specular types.Vec3, shininess float32, ambient types.Vec3, mirror float32) Material {
	return Material{
		Diffuse:   diffuse,
		Specular:  specular,
		Shininess: shininess,
		Ambient:   ambient,
		Mirror:    mirror,
	}
}
