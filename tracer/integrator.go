package tracer

import (
	"math"
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

const (
	// The maximum number of bounces evaluated for a single path.
	MaxDepth = 50

	// Minimum hit distance for scattered rays. It keeps a bounce from
	// re-hitting the surface it originated from.
	Epsilon float32 = 0.001
)

var infinity = float32(math.Inf(1))

// The Intersector interface is implemented by closest-hit query structures.
type Intersector interface {
	Query(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool)
}

// Evaluate the radiance arriving along ray. The depth argument is the number
// of bounces that produced ray; recursion stops once it reaches MaxDepth.
func Trace(ray types.Ray, depth int, accel Intersector, reg *scene.Registry, rng *rand.Rand) types.Vec3 {
	hit, ok := accel.Query(ray, Epsilon, infinity, rng)
	if !ok {
		return reg.Background
	}

	mat := reg.Material(hit.Material)
	emitted := mat.Emitted(reg, hit.U, hit.V, hit.P)
	if depth >= MaxDepth {
		return emitted
	}

	attenuation, scattered, ok := mat.Scatter(ray, &hit, reg, rng)
	if !ok {
		return emitted
	}

	return emitted.Add(attenuation.MulVec(Trace(scattered, depth+1, accel, reg, rng)))
}
