package bvh

import (
	"github.com/achilleasa/bvhtrace/scene"
	"github.com/achilleasa/bvhtrace/types"
)

// Bvh nodes are comprised of a bounding box and two multipurpose int32 words
// whose value depends on the node type:
//
// - For aggregate nodes both words are > 0 and point to the L/R child nodes.
// Children are always appended after their parent so a child index can
// never be 0 (the root).
// - For leaf nodes the left word is <= 0 and holds the negated object
// handle; the right word is unused.
type Node struct {
	BBox types.AABB

	LData int32
	RData int32
}

// Returns true if this is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.LData <= 0
}

// Set left and right child node indices.
func (n *Node) SetChildNodes(left, right uint32) {
	n.LData = int32(left)
	n.RData = int32(right)
}

// Get left and right child node indices.
func (n *Node) Children() (left, right uint32) {
	return uint32(n.LData), uint32(n.RData)
}

// Set the object handle for a leaf. Handles above MaxHandle cannot be
// encoded; Build rejects them.
func (n *Node) SetHandle(handle scene.ObjectHandle) {
	n.LData = -int32(handle)
	n.RData = 0
}

// Get the object handle for a leaf.
func (n *Node) Handle() scene.ObjectHandle {
	return scene.ObjectHandle(-n.LData)
}
