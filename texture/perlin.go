package texture

import (
	"math"
	"math/rand"

	"github.com/achilleasa/bvhtrace/types"
)

const perlinTableSize = 256

// Perlin generates gradient noise. Its lattice tables are filled once from
// the supplied generator and are read-only afterwards, so a single instance
// can be shared between all render workers.
type Perlin struct {
	gradients [perlinTableSize]types.Vec3
	permX     []int
	permY     []int
	permZ     []int
}

// Create a noise generator whose tables are drawn from rng.
func NewPerlin(rng *rand.Rand) *Perlin {
	p := &Perlin{}
	for i := range p.gradients {
		p.gradients[i] = types.XYZ(
			2*rng.Float32()-1,
			2*rng.Float32()-1,
			2*rng.Float32()-1,
		).Normalize()
	}
	p.permX = rng.Perm(perlinTableSize)
	p.permY = rng.Perm(perlinTableSize)
	p.permZ = rng.Perm(perlinTableSize)
	return p
}

// Sample the noise field at p. The result lies roughly in [-1, 1].
func (pn *Perlin) Noise(p types.Vec3) float32 {
	fx, fy, fz := math.Floor(float64(p[0])), math.Floor(float64(p[1])), math.Floor(float64(p[2]))
	u := p[0] - float32(fx)
	v := p[1] - float32(fy)
	w := p[2] - float32(fz)
	i, j, k := int(fx), int(fy), int(fz)

	var c [2][2][2]types.Vec3
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c[di][dj][dk] = pn.gradients[pn.permX[(i+di)&255]^pn.permY[(j+dj)&255]^pn.permZ[(k+dk)&255]]
			}
		}
	}

	return interpolate(c, u, v, w)
}

// Sum depth octaves of noise with halving weights.
func (pn *Perlin) Turbulence(p types.Vec3, depth int) float32 {
	var accum float32
	weight := float32(1)
	for i := 0; i < depth; i++ {
		accum += weight * pn.Noise(p)
		weight *= 0.5
		p = p.Mul(2)
	}
	return float32(math.Abs(float64(accum)))
}

// Trilinear interpolation of the gradient contributions with Hermite
// smoothing.
func interpolate(c [2][2][2]types.Vec3, u, v, w float32) float32 {
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	var accum float32
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			for k := 0; k < 2; k++ {
				fi, fj, fk := float32(i), float32(j), float32(k)
				weight := types.XYZ(u-fi, v-fj, w-fk)
				accum += (fi*uu + (1-fi)*(1-uu)) *
					(fj*vv + (1-fj)*(1-vv)) *
					(fk*ww + (1-fk)*(1-ww)) *
					c[i][j][k].Dot(weight)
			}
		}
	}
	return accum
}
