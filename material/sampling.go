package material

import (
	"math"
	"math/rand"

	"github.com/achilleasa/bvhtrace/types"
)

// Pick a random point inside the unit sphere using rejection sampling.
func RandomInUnitSphere(rng *rand.Rand) types.Vec3 {
	for {
		p := types.XYZ(
			2*rng.Float32()-1,
			2*rng.Float32()-1,
			2*rng.Float32()-1,
		)
		if p.LenSq() < 1 {
			return p
		}
	}
}

// Reflect v around normal n.
func Reflect(v, n types.Vec3) types.Vec3 {
	return v.Sub(n.Mul(2 * v.Dot(n)))
}

// Refract v through a surface with normal n. Returns false on total
// internal reflection.
func Refract(v, n types.Vec3, niOverNt float32) (types.Vec3, bool) {
	uv := v.Normalize()
	dt := uv.Dot(n)
	discriminant := 1 - niOverNt*niOverNt*(1-dt*dt)
	if discriminant <= 0 {
		return types.Vec3{}, false
	}

	return uv.Sub(n.Mul(dt)).Mul(niOverNt).Sub(n.Mul(float32(math.Sqrt(float64(discriminant))))), true
}

// Schlick's polynomial approximation of the reflectance at a dielectric
// boundary.
func Schlick(cosine, refIdx float32) float32 {
	r0 := (1 - refIdx) / (1 + refIdx)
	r0 = r0 * r0
	return r0 + (1-r0)*float32(math.Pow(float64(1-cosine), 5))
}
