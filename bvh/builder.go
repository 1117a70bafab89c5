package bvh

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sort"
	"time"

	"github.com/achilleasa/bvhtrace/log"
	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

// Child indices and negated leaf handles are stored in int32 words, which
// bounds the item count (2n-1 nodes) and the handle range.
const (
	MaxItems  = (math.MaxInt32 + 1) / 2
	MaxHandle = math.MaxInt32
)

var (
	ErrNoItems        = errors.New("bvh: at least one item is required to build a tree")
	ErrTooManyItems   = errors.New("bvh: item count exceeds the node index range")
	ErrHandleOverflow = errors.New("bvh: object handle exceeds the leaf encoding range")
)

// A scene object handle together with its precomputed bounding box.
type Item struct {
	Handle scene.ObjectHandle
	BBox   types.AABB
}

// Tree statistics collected while building.
type Stats struct {
	Items     int
	Nodes     int
	Leafs     int
	MaxDepth  int
	BuildTime time.Duration
}

type builder struct {
	logger log.Logger

	// Bvh nodes stored as a contiguous list
	nodes []Node

	// Source of partition axis choices.
	rng *rand.Rand

	stats Stats
}

// Construct a BVH from a list of items and return its nodes. The root is
// always stored at index 0.
//
// Each level picks a random axis, sorts its items by the minimum box extent
// along that axis and splits them at the median. A list with n items
// produces exactly 2n-1 nodes. The items slice is reordered in place.
func Build(items []Item, rng *rand.Rand) ([]Node, Stats, error) {
	if len(items) == 0 {
		return nil, Stats{}, ErrNoItems
	}
	if len(items) > MaxItems {
		return nil, Stats{}, fmt.Errorf("%w: %d items", ErrTooManyItems, len(items))
	}
	for _, item := range items {
		if item.Handle > MaxHandle {
			return nil, Stats{}, fmt.Errorf("%w: %d", ErrHandleOverflow, item.Handle)
		}
	}

	b := &builder{
		logger: log.New("bvh builder"),
		nodes:  make([]Node, 0, 2*len(items)-1),
		rng:    rng,
		stats: Stats{
			Items: len(items),
		},
	}

	start := time.Now()
	b.partition(items, 0)
	b.stats.BuildTime = time.Since(start)
	b.logger.Debugf(
		"BVH tree build time: %d ms, maxDepth: %d, nodes: %d, leafs: %d",
		b.stats.BuildTime.Nanoseconds()/1e6,
		b.stats.MaxDepth, b.stats.Nodes, b.stats.Leafs,
	)
	return b.nodes, b.stats, nil
}

// Partition work list and return node index.
func (b *builder) partition(workList []Item, depth int) uint32 {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	if len(workList) == 1 {
		return b.createLeaf(workList[0])
	}

	axis := Axis(b.rng.Intn(3))
	sort.Slice(workList, func(i, j int) bool {
		return workList[i].BBox.Min[axis] < workList[j].BBox.Min[axis]
	})

	// Reserve the node slot before recursing so that parents always
	// precede their children.
	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, Node{})
	b.stats.Nodes++

	mid := len(workList) / 2
	leftNodeIndex := b.partition(workList[:mid], depth+1)
	rightNodeIndex := b.partition(workList[mid:], depth+1)

	node := &b.nodes[nodeIndex]
	node.BBox = types.Union(b.nodes[leftNodeIndex].BBox, b.nodes[rightNodeIndex].BBox)
	node.SetChildNodes(leftNodeIndex, rightNodeIndex)

	return uint32(nodeIndex)
}

// Append a leaf node for item and return its index.
func (b *builder) createLeaf(item Item) uint32 {
	node := Node{BBox: item.BBox}
	node.SetHandle(item.Handle)

	nodeIndex := len(b.nodes)
	b.nodes = append(b.nodes, node)

	b.stats.Nodes++
	b.stats.Leafs++

	return uint32(nodeIndex)
}

// Collect the bounding boxes for all registry objects. Objects that cannot
// report a bounding box are assigned a zero-volume box at the origin.
func ItemsFor(reg *scene.Registry) []Item {
	logger := log.New("bvh builder")
	items := make([]Item, reg.ObjectCount())
	for index := range items {
		handle := scene.ObjectHandle(index)
		bbox, ok := reg.Object(handle).BBox()
		if !ok {
			logger.Warningf("object %d has no bounding box; using a zero-volume box", handle)
			bbox = types.AABB{}
		}
		items[index] = Item{Handle: handle, BBox: bbox}
	}
	return items
}
