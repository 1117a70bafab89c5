package bvh

import (
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// Linear answers closest-hit queries by testing every registry object. It
// serves as a reference for the accelerator and for debugging renders.
type Linear struct {
	reg *scene.Registry
}

// Create a linear intersector for the objects in reg.
func NewLinear(reg *scene.Registry) *Linear {
	return &Linear{reg: reg}
}

// Find the closest object hit by ray inside [tMin, tMax].
func (l *Linear) Query(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	var closest scene.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for index := 0; index < l.reg.ObjectCount(); index++ {
		if hit, ok := l.reg.Object(scene.ObjectHandle(index)).Hit(ray, tMin, closestSoFar, rng); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}
