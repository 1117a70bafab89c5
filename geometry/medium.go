package geometry

import (
	"math"
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// A participating medium of constant density bounded by a closed object.
// Rays travelling through the medium scatter at a random distance that
// follows an exponential distribution.
type ConstantMedium struct {
	Boundary scene.Intersectable
	Density  float32

	// Phase function material; normally an isotropic material.
	Phase scene.MaterialHandle
}

// Create a new constant medium.
func NewConstantMedium(boundary scene.Intersectable, density float32, phase scene.MaterialHandle) *ConstantMedium {
	return &ConstantMedium{
		Boundary: boundary,
		Density:  density,
		Phase:    phase,
	}
}

func (m *ConstantMedium) BBox() (types.AABB, bool) {
	return m.Boundary.BBox()
}

func (m *ConstantMedium) Hit(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	inf := float32(math.Inf(1))

	// Find the entry and exit points along the full ray line.
	enter, ok := m.Boundary.Hit(ray, -inf, inf, rng)
	if !ok {
		return scene.HitRecord{}, false
	}
	exit, ok := m.Boundary.Hit(ray, enter.T+0.0001, inf, rng)
	if !ok {
		return scene.HitRecord{}, false
	}

	t0, t1 := enter.T, exit.T
	if t0 < tMin {
		t0 = tMin
	}
	if t1 > tMax {
		t1 = tMax
	}
	if t0 >= t1 {
		return scene.HitRecord{}, false
	}
	if t0 < 0 {
		t0 = 0
	}

	dirLen := ray.Direction.Len()
	distInside := (t1 - t0) * dirLen
	hitDist := -(1 / m.Density) * float32(math.Log(float64(rng.Float32())))
	if hitDist >= distInside {
		return scene.HitRecord{}, false
	}

	t := t0 + hitDist/dirLen
	return scene.HitRecord{
		T: t,
		P: ray.PointAt(t),
		// Arbitrary; the phase function ignores it.
		Normal:   types.XYZ(1, 0, 0),
		Material: m.Phase,
	}, true
}
