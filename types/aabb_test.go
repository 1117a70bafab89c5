package types

import (
	"math"
	"math/rand"
	"testing"
)

func TestUnion(t *testing.T) {
	a := NewAABB(XYZ(0, 0, 0), XYZ(1, 1, 1))
	b := NewAABB(XYZ(2, 2, 2), XYZ(3, 3, 3))

	u := Union(a, b)
	if u.Min != XYZ(0, 0, 0) || u.Max != XYZ(3, 3, 3) {
		t.Fatalf("expected union to be [(0,0,0), (3,3,3)]; got %v", u)
	}
}

func TestUnionProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	randomBox := func() AABB {
		p0 := XYZ(rng.Float32()*20-10, rng.Float32()*20-10, rng.Float32()*20-10)
		p1 := XYZ(rng.Float32()*20-10, rng.Float32()*20-10, rng.Float32()*20-10)
		return NewAABB(MinVec3(p0, p1), MaxVec3(p0, p1))
	}

	for i := 0; i < 1000; i++ {
		a, b := randomBox(), randomBox()
		u := Union(a, b)

		if u != Union(b, a) {
			t.Fatalf("expected union to be commutative for %v and %v", a, b)
		}
		if !u.Contains(a) || !u.Contains(b) {
			t.Fatalf("expected union %v to contain %v and %v", u, a, b)
		}
		if Union(a, a) != a {
			t.Fatalf("expected union to be idempotent for %v", a)
		}
	}
}

func TestSlabHit(t *testing.T) {
	box := NewAABB(XYZ(-1, -1, -1), XYZ(1, 1, 1))
	inf := float32(math.Inf(1))
	negZero := float32(math.Copysign(0, -1))

	specs := []struct {
		origin, dir Vec3
		tMin, tMax  float32
		exp         bool
	}{
		// Straight through.
		{XYZ(0, 0, -5), XYZ(0, 0, 1), 0, inf, true},
		// Pointing away.
		{XYZ(0, 0, -5), XYZ(0, 0, -1), 0, inf, false},
		// Interval ends before the box.
		{XYZ(0, 0, -5), XYZ(0, 0, 1), 0, 3.9, false},
		// Interval starts after the box.
		{XYZ(0, 0, -5), XYZ(0, 0, 1), 6.1, inf, false},
		// Origin inside.
		{XYZ(0, 0, 0), XYZ(1, 0, 0), 0, inf, true},
		// Parallel to a slab and outside it.
		{XYZ(0, 5, -5), XYZ(0, 0, 1), 0, inf, false},
		// Parallel to a slab and inside it.
		{XYZ(0, 0.5, -5), XYZ(0, 0, 1), 0, inf, true},
		// Parallel and exactly on a slab plane.
		{XYZ(0, 1, -5), XYZ(0, 0, 1), 0, inf, true},
		// Diagonal miss.
		{XYZ(-5, 0, -5), XYZ(1, 0, -1), 0, inf, false},
		// Negative zero component with the origin on the min plane.
		{XYZ(-1, 0, -5), XYZ(negZero, 0, 1), 0, inf, true},
		// Negative zero component with the origin on the max plane.
		{XYZ(1, 0, -5), XYZ(negZero, 0, 1), 0, inf, true},
		// Negative zero components on both planes of a bounded interval.
		{XYZ(1, -1, -5), XYZ(negZero, negZero, 1), 0, 10, true},
		// Negative zero component just outside the slab.
		{XYZ(1.001, 0, -5), XYZ(negZero, 0, 1), 0, inf, false},
	}

	for specIndex, spec := range specs {
		ray := NewRay(spec.origin, spec.dir, 0)
		if got := box.Hit(ray.Origin, ray.InvDirection(), spec.tMin, spec.tMax); got != spec.exp {
			t.Fatalf("[spec %d] expected hit to be %t; got %t", specIndex, spec.exp, got)
		}
	}
}

// A slab test that handles rays parallel to a slab explicitly.
func referenceHit(b AABB, origin, dir Vec3, tMin, tMax float32) bool {
	for axis := 0; axis < 3; axis++ {
		if dir[axis] == 0 {
			if origin[axis] < b.Min[axis] || origin[axis] > b.Max[axis] {
				return false
			}
			continue
		}

		t0 := (b.Min[axis] - origin[axis]) / dir[axis]
		t1 := (b.Max[axis] - origin[axis]) / dir[axis]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMax < tMin {
			return false
		}
	}
	return true
}

func TestSlabHitMatchesReference(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	// Power of two components keep the reciprocal exact so both tests see
	// identical slab bounds.
	negZero := float32(math.Copysign(0, -1))
	dirComponents := []float32{-2, -1, -0.5, negZero, 0, 0.5, 1, 2}
	inf := float32(math.Inf(1))

	hits := 0
	for i := 0; i < 20000; i++ {
		p0 := XYZ(rng.Float32()*4-2, rng.Float32()*4-2, rng.Float32()*4-2)
		p1 := XYZ(rng.Float32()*4-2, rng.Float32()*4-2, rng.Float32()*4-2)
		box := NewAABB(MinVec3(p0, p1), MaxVec3(p0, p1))

		origin := XYZ(rng.Float32()*10-5, rng.Float32()*10-5, rng.Float32()*10-5)
		// Snap some origin components onto a box plane.
		for axis := 0; axis < 3; axis++ {
			switch rng.Intn(4) {
			case 0:
				origin[axis] = box.Min[axis]
			case 1:
				origin[axis] = box.Max[axis]
			}
		}
		dir := XYZ(
			dirComponents[rng.Intn(len(dirComponents))],
			dirComponents[rng.Intn(len(dirComponents))],
			dirComponents[rng.Intn(len(dirComponents))],
		)
		if dir[0] == 0 && dir[1] == 0 && dir[2] == 0 {
			continue
		}

		tMax := inf
		if rng.Intn(2) == 0 {
			tMax = rng.Float32() * 10
		}

		exp := referenceHit(box, origin, dir, 0, tMax)
		if got := box.Hit(origin, dir.Recip(), 0, tMax); got != exp {
			t.Fatalf("[iteration %d] box %v, origin %v, dir %v, tMax %f: expected %t; got %t", i, box, origin, dir, tMax, exp, got)
		}
		if exp {
			hits++
		}
	}

	if hits == 0 {
		t.Fatal("expected some rays to hit")
	}
}
