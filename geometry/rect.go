package geometry

import (
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// Rectangles are infinitely thin so their boxes get padded along the
// constant axis.
const rectPadding float32 = 1e-4

// An axis-aligned rectangle lying on the plane where the coordinate along
// axis Normal equals K. The rectangle spans [A0, A1] x [B0, B1] along the
// two remaining axes (in x, y, z order).
type AxisRect struct {
	A0, A1   float32
	B0, B1   float32
	K        float32
	Material scene.MaterialHandle

	// Index of the constant axis.
	normalAxis int
	aAxis      int
	bAxis      int
}

// Create a rectangle on the z = k plane.
func NewXYRect(x0, x1, y0, y1, k float32, mat scene.MaterialHandle) *AxisRect {
	return &AxisRect{A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: mat, normalAxis: 2, aAxis: 0, bAxis: 1}
}

// Create a rectangle on the y = k plane.
func NewXZRect(x0, x1, z0, z1, k float32, mat scene.MaterialHandle) *AxisRect {
	return &AxisRect{A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: mat, normalAxis: 1, aAxis: 0, bAxis: 2}
}

// Create a rectangle on the x = k plane.
func NewYZRect(y0, y1, z0, z1, k float32, mat scene.MaterialHandle) *AxisRect {
	return &AxisRect{A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: mat, normalAxis: 0, aAxis: 1, bAxis: 2}
}

func (r *AxisRect) BBox() (types.AABB, bool) {
	var bbox types.AABB
	bbox.Min[r.aAxis], bbox.Max[r.aAxis] = r.A0, r.A1
	bbox.Min[r.bAxis], bbox.Max[r.bAxis] = r.B0, r.B1
	bbox.Min[r.normalAxis], bbox.Max[r.normalAxis] = r.K-rectPadding, r.K+rectPadding
	return bbox, true
}

func (r *AxisRect) Hit(ray types.Ray, tMin, tMax float32, _ *rand.Rand) (scene.HitRecord, bool) {
	t := (r.K - ray.Origin[r.normalAxis]) / ray.Direction[r.normalAxis]
	// Also rejects the NaN produced by rays lying on the plane.
	if !(t > tMin && t < tMax) {
		return scene.HitRecord{}, false
	}

	p := ray.PointAt(t)
	a, b := p[r.aAxis], p[r.bAxis]
	if a < r.A0 || a > r.A1 || b < r.B0 || b > r.B1 {
		return scene.HitRecord{}, false
	}

	var normal types.Vec3
	normal[r.normalAxis] = 1
	return scene.HitRecord{
		T:        t,
		P:        p,
		U:        (a - r.A0) / (r.A1 - r.A0),
		V:        (b - r.B0) / (r.B1 - r.B0),
		Normal:   normal,
		Material: r.Material,
	}, true
}
