package texture

import (
	"math"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// A single color.
type Constant struct {
	Color types.Vec3
}

func (t *Constant) Value(_ scene.TextureSource, _, _ float32, _ types.Vec3) types.Vec3 {
	return t.Color
}

// A 3D checker pattern alternating between two textures.
type Checker struct {
	Odd, Even scene.TextureHandle
}

func (t *Checker) Value(textures scene.TextureSource, u, v float32, p types.Vec3) types.Vec3 {
	sines := math.Sin(10*float64(p[0])) * math.Sin(10*float64(p[1])) * math.Sin(10*float64(p[2]))
	if sines < 0 {
		return textures.Texture(t.Odd).Value(textures, u, v, p)
	}
	return textures.Texture(t.Even).Value(textures, u, v, p)
}

// Grayscale Perlin noise.
type Noise struct {
	Perlin *Perlin
	Scale  float32
}

func (t *Noise) Value(_ scene.TextureSource, _, _ float32, p types.Vec3) types.Vec3 {
	return types.Uniform(0.5 * (1 + t.Perlin.Noise(p.Mul(t.Scale))))
}

// Marble-like veins produced by phase shifting a sine wave with turbulence.
type Marble struct {
	Perlin *Perlin
	Scale  float32
}

func (t *Marble) Value(_ scene.TextureSource, _, _ float32, p types.Vec3) types.Vec3 {
	phase := float64(t.Scale*p[2] + 10*t.Perlin.Turbulence(p, 7))
	return types.Uniform(float32(0.5 * (1 + math.Sin(phase))))
}
