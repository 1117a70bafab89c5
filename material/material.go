package material

import (
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// Surfaces that do not emit light embed this type.
type nonEmissive struct{}

func (nonEmissive) Emitted(scene.TextureSource, float32, float32, types.Vec3) types.Vec3 {
	return types.Vec3{}
}

// A diffuse material that scatters towards a random point on the unit sphere
// tangent to the hit point.
type Lambertian struct {
	nonEmissive

	Albedo scene.TextureHandle
}

func (m *Lambertian) Scatter(rayIn types.Ray, hit *scene.HitRecord, textures scene.TextureSource, rng *rand.Rand) (types.Vec3, types.Ray, bool) {
	target := hit.P.Add(hit.Normal).Add(RandomInUnitSphere(rng))
	scattered := types.NewRay(hit.P, target.Sub(hit.P), rayIn.Time)
	return textures.Texture(m.Albedo).Value(textures, hit.U, hit.V, hit.P), scattered, true
}

// A reflective material. Fuzz perturbs the reflected direction and is
// clamped to 1.
type Metal struct {
	nonEmissive

	Albedo types.Vec3
	Fuzz   float32
}

// Create a new metal material.
func NewMetal(albedo types.Vec3, fuzz float32) *Metal {
	if fuzz > 1 {
		fuzz = 1
	}
	return &Metal{Albedo: albedo, Fuzz: fuzz}
}

// The ray is absorbed if the fuzzed reflection points into the surface.
func (m *Metal) Scatter(rayIn types.Ray, hit *scene.HitRecord, _ scene.TextureSource, rng *rand.Rand) (types.Vec3, types.Ray, bool) {
	reflected := Reflect(rayIn.Direction.Normalize(), hit.Normal)
	scattered := types.NewRay(hit.P, reflected.Add(RandomInUnitSphere(rng).Mul(m.Fuzz)), rayIn.Time)
	return m.Albedo, scattered, scattered.Direction.Dot(hit.Normal) > 0
}

// A clear refractive material such as glass.
type Dielectric struct {
	nonEmissive

	RefIdx float32
}

func (m *Dielectric) Scatter(rayIn types.Ray, hit *scene.HitRecord, _ scene.TextureSource, rng *rand.Rand) (types.Vec3, types.Ray, bool) {
	var (
		outwardNormal types.Vec3
		niOverNt      float32
		cosine        float32
	)

	dirDotN := rayIn.Direction.Dot(hit.Normal)
	if dirDotN > 0 {
		// Exiting the material.
		outwardNormal = hit.Normal.Neg()
		niOverNt = m.RefIdx
		cosine = m.RefIdx * dirDotN / rayIn.Direction.Len()
	} else {
		outwardNormal = hit.Normal
		niOverNt = 1 / m.RefIdx
		cosine = -dirDotN / rayIn.Direction.Len()
	}

	reflectProb := float32(1)
	refracted, ok := Refract(rayIn.Direction, outwardNormal, niOverNt)
	if ok {
		reflectProb = Schlick(cosine, m.RefIdx)
	}

	attenuation := types.Uniform(1)
	if rng.Float32() < reflectProb {
		return attenuation, types.NewRay(hit.P, Reflect(rayIn.Direction, hit.Normal), rayIn.Time), true
	}
	return attenuation, types.NewRay(hit.P, refracted, rayIn.Time), true
}

// An area light. It emits the value of its texture and never scatters.
type DiffuseLight struct {
	Emit scene.TextureHandle
}

func (m *DiffuseLight) Scatter(types.Ray, *scene.HitRecord, scene.TextureSource, *rand.Rand) (types.Vec3, types.Ray, bool) {
	return types.Vec3{}, types.Ray{}, false
}

func (m *DiffuseLight) Emitted(textures scene.TextureSource, u, v float32, p types.Vec3) types.Vec3 {
	return textures.Texture(m.Emit).Value(textures, u, v, p)
}

// The phase function of a participating medium. Rays scatter uniformly in
// all directions.
type Isotropic struct {
	nonEmissive

	Albedo scene.TextureHandle
}

func (m *Isotropic) Scatter(rayIn types.Ray, hit *scene.HitRecord, textures scene.TextureSource, rng *rand.Rand) (types.Vec3, types.Ray, bool) {
	scattered := types.NewRay(hit.P, RandomInUnitSphere(rng), rayIn.Time)
	return textures.Texture(m.Albedo).Value(textures, hit.U, hit.V, hit.P), scattered, true
}
