package geometry

import (
	"math"
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
	"github.com/go-gl/mathgl/mgl32"
)

// Flips the normals reported by the wrapped object.
type FlipNormals struct {
	Object scene.Intersectable
}

func (f *FlipNormals) BBox() (types.AABB, bool) {
	return f.Object.BBox()
}

func (f *FlipNormals) Hit(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	hit, ok := f.Object.Hit(ray, tMin, tMax, rng)
	if ok {
		hit.Normal = hit.Normal.Neg()
	}
	return hit, ok
}

// Translates the wrapped object by Offset.
type Translate struct {
	Object scene.Intersectable
	Offset types.Vec3
}

func (tr *Translate) BBox() (types.AABB, bool) {
	bbox, ok := tr.Object.BBox()
	if !ok {
		return bbox, false
	}
	return types.NewAABB(bbox.Min.Add(tr.Offset), bbox.Max.Add(tr.Offset)), true
}

func (tr *Translate) Hit(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	moved := types.NewRay(ray.Origin.Sub(tr.Offset), ray.Direction, ray.Time)
	hit, ok := tr.Object.Hit(moved, tMin, tMax, rng)
	if ok {
		hit.P = hit.P.Add(tr.Offset)
	}
	return hit, ok
}

// Rotates the wrapped object around the Y axis.
type RotateY struct {
	Object scene.Intersectable

	// Object to world and world to object rotations.
	toWorld  mgl32.Mat4
	toObject mgl32.Mat4

	bbox    types.AABB
	hasBBox bool
}

// Wrap obj with a rotation of angle degrees around the Y axis.
func NewRotateY(obj scene.Intersectable, angle float32) *RotateY {
	rot := mgl32.HomogRotate3DY(mgl32.DegToRad(angle))
	r := &RotateY{
		Object:   obj,
		toWorld:  rot,
		toObject: rot.Transpose(),
	}

	objBBox, ok := obj.BBox()
	if !ok {
		return r
	}

	// Rotate the 8 box corners and fit a new box around them.
	inf := float32(math.Inf(1))
	min := types.Uniform(inf)
	max := types.Uniform(-inf)
	for corner := 0; corner < 8; corner++ {
		p := types.XYZ(
			pick(corner&1 != 0, objBBox.Max[0], objBBox.Min[0]),
			pick(corner&2 != 0, objBBox.Max[1], objBBox.Min[1]),
			pick(corner&4 != 0, objBBox.Max[2], objBBox.Min[2]),
		)
		rotated := r.rotate(r.toWorld, p, 1)
		min = types.MinVec3(min, rotated)
		max = types.MaxVec3(max, rotated)
	}
	r.bbox = types.NewAABB(min, max)
	r.hasBBox = true

	return r
}

func (r *RotateY) BBox() (types.AABB, bool) {
	return r.bbox, r.hasBBox
}

func (r *RotateY) Hit(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	rotated := types.NewRay(
		r.rotate(r.toObject, ray.Origin, 1),
		r.rotate(r.toObject, ray.Direction, 0),
		ray.Time,
	)

	hit, ok := r.Object.Hit(rotated, tMin, tMax, rng)
	if ok {
		hit.P = r.rotate(r.toWorld, hit.P, 1)
		hit.Normal = r.rotate(r.toWorld, hit.Normal, 0)
	}
	return hit, ok
}

// Apply rotation m to v. Points use w = 1 and directions w = 0.
func (r *RotateY) rotate(m mgl32.Mat4, v types.Vec3, w float32) types.Vec3 {
	return types.Vec3(m.Mul4x1(mgl32.Vec3(v).Vec4(w)).Vec3())
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}
