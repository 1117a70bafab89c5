package bvh

import (
	"errors"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/achilleasa/bvhtrace/geometry"
	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

var inf = float32(math.Inf(1))

func randomSphereRegistry(rng *rand.Rand, count int) *scene.Registry {
	reg := scene.NewRegistry()
	for i := 0; i < count; i++ {
		center := types.XYZ(rng.Float32()*40-20, rng.Float32()*40-20, rng.Float32()*40-20)
		reg.AddObject(geometry.NewSphere(center, 0.2+rng.Float32()*2, scene.MaterialHandle(i)))
	}
	return reg
}

func TestBuildNodeCount(t *testing.T) {
	for _, count := range []int{1, 2, 3, 7, 64, 129} {
		items := ItemsFor(randomSphereRegistry(rand.New(rand.NewSource(int64(count))), count))

		nodes, stats, err := Build(items, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatal(err)
		}

		if len(nodes) != 2*count-1 {
			t.Fatalf("[%d items] expected %d nodes; got %d", count, 2*count-1, len(nodes))
		}
		if stats.Nodes != len(nodes) || stats.Leafs != count || stats.Items != count {
			t.Fatalf("[%d items] unexpected stats %+v", count, stats)
		}

		seen := make(map[scene.ObjectHandle]bool)
		for index := range nodes {
			node := &nodes[index]
			if node.IsLeaf() {
				if seen[node.Handle()] {
					t.Fatalf("[%d items] handle %d referenced by more than one leaf", count, node.Handle())
				}
				seen[node.Handle()] = true
				continue
			}

			left, right := node.Children()
			if int(left) <= index || int(right) <= index {
				t.Fatalf("[%d items] node %d: expected children to follow their parent; got %d, %d", count, index, left, right)
			}
			if !node.BBox.Contains(nodes[left].BBox) || !node.BBox.Contains(nodes[right].BBox) {
				t.Fatalf("[%d items] node %d: expected box to enclose both children", count, index)
			}
		}

		if len(seen) != count {
			t.Fatalf("[%d items] expected %d distinct leaf handles; got %d", count, count, len(seen))
		}
	}
}

func TestBuildWithoutItems(t *testing.T) {
	_, _, err := Build(nil, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected to get ErrNoItems; got %v", err)
	}

	_, err = New(scene.NewRegistry(), rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoItems) {
		t.Fatalf("expected to get ErrNoItems; got %v", err)
	}
}

func TestSingleSphereQuery(t *testing.T) {
	reg := scene.NewRegistry()
	reg.AddObject(geometry.NewSphere(types.XYZ(0, 0, 0), 1, 0))

	accel, err := New(reg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	if len(accel.Nodes()) != 1 || !accel.Nodes()[0].IsLeaf() {
		t.Fatalf("expected a single leaf node; got %v", accel.Nodes())
	}

	ray := types.NewRay(types.XYZ(0, 0, -5), types.XYZ(0, 0, 1), 0)
	hit, ok := accel.Query(ray, 0.001, inf, nil)
	if !ok {
		t.Fatal("expected ray to hit the sphere")
	}

	if abs(hit.T-4) > 1e-5 {
		t.Fatalf("expected hit at t=4; got %f", hit.T)
	}
	if !approxEqual(hit.P, types.XYZ(0, 0, -1)) {
		t.Fatalf("expected hit point (0, 0, -1); got %v", hit.P)
	}
	if !approxEqual(hit.Normal, types.XYZ(0, 0, -1)) {
		t.Fatalf("expected normal (0, 0, -1); got %v", hit.Normal)
	}

	if _, ok = accel.Query(types.NewRay(types.XYZ(0, 5, -5), types.XYZ(0, 0, 1), 0), 0.001, inf, nil); ok {
		t.Fatal("expected ray to miss the sphere")
	}
}

func TestQueryFindsClosestInRow(t *testing.T) {
	reg := scene.NewRegistry()
	for i := 0; i < 5; i++ {
		reg.AddObject(geometry.NewSphere(types.XYZ(float32(i)*10, 0, 0), 1, scene.MaterialHandle(i)))
	}

	ray := types.NewRay(types.XYZ(20, 0, -10), types.XYZ(0, 0, 1), 0)
	for seed := int64(0); seed < 50; seed++ {
		accel, err := New(reg, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatal(err)
		}

		hit, ok := accel.Query(ray, 0.001, inf, nil)
		if !ok {
			t.Fatalf("[seed %d] expected ray to hit", seed)
		}
		if hit.Material != 2 {
			t.Fatalf("[seed %d] expected to hit the sphere with material 2; got %d", seed, hit.Material)
		}
		if abs(hit.T-9) > 1e-5 {
			t.Fatalf("[seed %d] expected hit at t=9; got %f", seed, hit.T)
		}
	}
}

func TestQueryMatchesLinear(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	checkMatchesLinear(t, randomSphereRegistry(rng, 200), rng)
}

func TestQueryMatchesLinearForBoxesAndInstances(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	checkMatchesLinear(t, randomMixedRegistry(rng, 150), rng)
}

// Scenes with thin rect boxes, cubes, instanced cubes and an object
// without a box.
func randomMixedRegistry(rng *rand.Rand, count int) *scene.Registry {
	randomPoint := func(extent float32) types.Vec3 {
		return types.XYZ(rng.Float32()*2*extent-extent, rng.Float32()*2*extent-extent, rng.Float32()*2*extent-extent)
	}

	reg := scene.NewRegistry()
	reg.AddObject(geometry.List{})
	for i := 1; i < count; i++ {
		mat := scene.MaterialHandle(i)
		p := randomPoint(20)
		w, h := 0.5+rng.Float32()*3, 0.5+rng.Float32()*3

		var obj scene.Intersectable
		switch i % 6 {
		case 0:
			obj = geometry.NewXYRect(p[0], p[0]+w, p[1], p[1]+h, p[2], mat)
		case 1:
			obj = geometry.NewXZRect(p[0], p[0]+w, p[2], p[2]+h, p[1], mat)
		case 2:
			obj = &geometry.FlipNormals{Object: geometry.NewYZRect(p[1], p[1]+w, p[2], p[2]+h, p[0], mat)}
		case 3:
			obj = geometry.NewCube(p, p.Add(types.XYZ(w, h, w)), mat)
		case 4:
			cube := geometry.NewCube(types.XYZ(0, 0, 0), types.XYZ(w, h, w), mat)
			obj = &geometry.Translate{
				Object: geometry.NewRotateY(cube, rng.Float32()*360),
				Offset: p,
			}
		default:
			obj = geometry.NewSphere(p, 0.2+rng.Float32()*2, mat)
		}
		reg.AddObject(obj)
	}
	return reg
}

// Compare accelerator queries against brute force for random rays. Every
// third ray gets a zero direction component so it runs parallel to the
// slabs of one axis.
func checkMatchesLinear(t *testing.T, reg *scene.Registry, rng *rand.Rand) {
	accel, err := New(reg, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}
	linear := NewLinear(reg)
	negZero := float32(math.Copysign(0, -1))

	hits := 0
	for i := 0; i < 5000; i++ {
		origin := types.XYZ(rng.Float32()*80-40, rng.Float32()*80-40, rng.Float32()*80-40)
		target := types.XYZ(rng.Float32()*40-20, rng.Float32()*40-20, rng.Float32()*40-20)
		dir := target.Sub(origin)
		if i%3 == 0 {
			axis := rng.Intn(3)
			dir[axis] = 0
			if rng.Intn(2) == 0 {
				dir[axis] = negZero
			}
			// Keep the ray in the target's slab so it still has something
			// to hit.
			origin[axis] = target[axis]
		}
		ray := types.NewRay(origin, dir, 0)

		tMax := inf
		if i%4 == 0 {
			tMax = rng.Float32() * 2
		}

		expHit, expOk := linear.Query(ray, 0.001, tMax, nil)
		gotHit, gotOk := accel.Query(ray, 0.001, tMax, nil)
		if expOk != gotOk {
			t.Fatalf("[ray %d] expected hit to be %t; got %t", i, expOk, gotOk)
		}
		if !expOk {
			continue
		}

		hits++
		if gotHit.T != expHit.T || gotHit.Material != expHit.Material {
			t.Fatalf("[ray %d] expected hit at t=%f with material %d; got t=%f with material %d", i, expHit.T, expHit.Material, gotHit.T, gotHit.Material)
		}
	}

	if hits == 0 {
		t.Fatal("expected some rays to hit")
	}
}

func TestBuildRejectsUnencodableHandles(t *testing.T) {
	items := []Item{
		{Handle: 0},
		{Handle: MaxHandle + 1},
	}

	_, _, err := Build(items, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrHandleOverflow) {
		t.Fatalf("expected to get ErrHandleOverflow; got %v", err)
	}

	var node Node
	node.SetHandle(MaxHandle)
	if !node.IsLeaf() || node.Handle() != MaxHandle {
		t.Fatalf("expected leaf with handle %d; got %+v", MaxHandle, node)
	}
}

func TestItemsForObjectWithoutBBox(t *testing.T) {
	reg := scene.NewRegistry()
	reg.AddObject(geometry.List{})
	reg.AddObject(geometry.NewSphere(types.XYZ(5, 0, 0), 1, 1))

	items := ItemsFor(reg)
	if len(items) != 2 {
		t.Fatalf("expected 2 items; got %d", len(items))
	}
	if items[0].BBox != (types.AABB{}) {
		t.Fatalf("expected a zero box for an object without extent; got %v", items[0].BBox)
	}

	accel, err := New(reg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	hit, ok := accel.Query(types.NewRay(types.XYZ(5, 0, -5), types.XYZ(0, 0, 1), 0), 0.001, inf, nil)
	if !ok || hit.Material != 1 {
		t.Fatalf("expected to hit the sphere; got %v, %t", hit, ok)
	}
}

func TestStatsString(t *testing.T) {
	reg := randomSphereRegistry(rand.New(rand.NewSource(1)), 10)
	accel, err := New(reg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatal(err)
	}

	out := accel.Stats().String()
	for _, exp := range []string{"Items", "Nodes", "Leafs", "Max depth", "Node data", "608 bytes"} {
		if !strings.Contains(out, exp) {
			t.Fatalf("expected stats output to contain %q; got:\n%s", exp, out)
		}
	}
}

func TestNodeEncoding(t *testing.T) {
	var node Node

	node.SetHandle(0)
	if !node.IsLeaf() || node.Handle() != 0 {
		t.Fatalf("expected leaf with handle 0; got %+v", node)
	}

	node.SetHandle(17)
	if !node.IsLeaf() || node.Handle() != 17 {
		t.Fatalf("expected leaf with handle 17; got %+v", node)
	}

	node.SetChildNodes(3, 9)
	left, right := node.Children()
	if node.IsLeaf() || left != 3 || right != 9 {
		t.Fatalf("expected aggregate node with children 3, 9; got %+v", node)
	}
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func approxEqual(a, b types.Vec3) bool {
	return abs(a[0]-b[0]) < 1e-5 && abs(a[1]-b[1]) < 1e-5 && abs(a[2]-b[2]) < 1e-5
}
