package geometry

import (
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// A list of objects that is intersected linearly and registered as a
// single object.
type List []scene.Intersectable

// The box is undefined if the list is empty or any member lacks a box.
func (l List) BBox() (types.AABB, bool) {
	if len(l) == 0 {
		return types.AABB{}, false
	}

	bbox, ok := l[0].BBox()
	if !ok {
		return types.AABB{}, false
	}
	for _, obj := range l[1:] {
		objBBox, ok := obj.BBox()
		if !ok {
			return types.AABB{}, false
		}
		bbox = types.Union(bbox, objBBox)
	}
	return bbox, true
}

func (l List) Hit(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	var closest scene.HitRecord
	hitAnything := false
	closestSoFar := tMax

	for _, obj := range l {
		if hit, ok := obj.Hit(ray, tMin, closestSoFar, rng); ok {
			hitAnything = true
			closestSoFar = hit.T
			closest = hit
		}
	}

	return closest, hitAnything
}
