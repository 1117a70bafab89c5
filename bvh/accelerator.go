package bvh

import (
	"math/rand"

	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// The ObjectSource interface resolves object handles. It is implemented by
// scene.Registry.
type ObjectSource interface {
	Object(handle scene.ObjectHandle) scene.Intersectable
}

// Accelerator answers closest-hit queries against a BVH built over the
// objects of a registry. It never mutates its state after construction so a
// single instance can be queried by any number of goroutines.
type Accelerator struct {
	nodes   []Node
	objects ObjectSource
	stats   Stats
}

// Build an accelerator for all objects in reg. The rng is only used while
// building to select partition axes.
func New(reg *scene.Registry, rng *rand.Rand) (*Accelerator, error) {
	nodes, stats, err := Build(ItemsFor(reg), rng)
	if err != nil {
		return nil, err
	}

	return &Accelerator{
		nodes:   nodes,
		objects: reg,
		stats:   stats,
	}, nil
}

// Get the tree nodes. The returned slice must not be modified.
func (a *Accelerator) Nodes() []Node {
	return a.nodes
}

// Get the statistics collected while building the tree.
func (a *Accelerator) Stats() Stats {
	return a.stats
}

// Find the closest object hit by ray inside [tMin, tMax].
func (a *Accelerator) Query(ray types.Ray, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	return a.hitNode(0, &ray, ray.InvDirection(), tMin, tMax, rng)
}

func (a *Accelerator) hitNode(nodeIndex uint32, ray *types.Ray, invDir types.Vec3, tMin, tMax float32, rng *rand.Rand) (scene.HitRecord, bool) {
	node := &a.nodes[nodeIndex]
	if !node.BBox.Hit(ray.Origin, invDir, tMin, tMax) {
		return scene.HitRecord{}, false
	}

	if node.IsLeaf() {
		return a.objects.Object(node.Handle()).Hit(*ray, tMin, tMax, rng)
	}

	left, right := node.Children()
	leftHit, hitLeft := a.hitNode(left, ray, invDir, tMin, tMax, rng)
	if hitLeft {
		// Anything in the right subtree must be closer than the left hit
		// to matter.
		tMax = leftHit.T
	}

	rightHit, hitRight := a.hitNode(right, ray, invDir, tMin, tMax, rng)
	if hitRight {
		return rightHit, true
	}

	return leftHit, hitLeft
}
