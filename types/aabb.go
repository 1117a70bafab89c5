package types

import "math"

var posInf = float32(math.Inf(1))

// An axis-aligned bounding box. A well-formed box has Min[i] <= Max[i] for
// every axis; zero-volume boxes are valid.
type AABB struct {
	Min Vec3
	Max Vec3
}

// Create a bounding box from its min and max extents.
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// Return the tightest box that contains both a and b.
func Union(a, b AABB) AABB {
	return AABB{
		Min: MinVec3(a.Min, b.Min),
		Max: MaxVec3(a.Max, b.Max),
	}
}

// Get the box center.
func (b AABB) Center() Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Get the box extent along each axis.
func (b AABB) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Returns true if other lies entirely inside this box.
func (b AABB) Contains(other AABB) bool {
	for axis := 0; axis < 3; axis++ {
		if other.Min[axis] < b.Min[axis] || other.Max[axis] > b.Max[axis] {
			return false
		}
	}
	return true
}

// Test whether a ray hits the box within [tMin, tMax] using the slab method.
//
// invDir is the component-wise reciprocal of the ray direction. A zero
// direction component produces an infinite inverse so the slab bounds for
// that axis become ±Inf when the origin lies outside the slab, and NaN
// (0 * Inf) when it lies exactly on a slab plane. A ray parallel to a slab
// plane it starts on is inside the closed slab, so NaN bounds skip the axis.
func (b AABB) Hit(origin, invDir Vec3, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		t0 := (b.Min[axis] - origin[axis]) * invDir[axis]
		t1 := (b.Max[axis] - origin[axis]) * invDir[axis]
		if t0 != t0 || t1 != t1 {
			continue
		}
		if t0 > t1 {
			t0, t1 = t1, t0
		}

		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}

		// An entry time of +Inf means the ray runs parallel to the slab but
		// outside it; this also covers unbounded intervals.
		if tMax < tMin || tMin == posInf {
			return false
		}
	}

	return true
}
