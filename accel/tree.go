// Package accel implements the octree acceleration structure shared by the
// per-mesh triangle BVH and the per-scene object BVH. Both trees have
// identical topology and traversal; only the leaf payload type and the
// per-item intersection test differ, so the structure is generic over the
// item type.
package accel

import (
	"github.com/solstice-render/pathtrace/types"
)

// Params bounds how deep and how eagerly a tree subdivides. A node with at
// most Capacity items becomes a leaf; a node at MaxDepth, or one whose split
// would not separate its items, also becomes a leaf and then keeps all of
// its items, which may be more than Capacity.
type Params struct {
	Capacity int
	MaxDepth int
}

type node struct {
	bounds   types.Bounds
	center   types.Vec3
	children [8]*node
	leaf     []int
}

func (n *node) isLeaf() bool {
	return n.children == [8]*node{}
}

// Tree is an octree over a fixed slice of items, addressed by index.
type Tree[T any] struct {
	items  []T
	bounds []types.Bounds
	root   *node
	full   types.Bounds
}

// Build partitions items into an octree. boundsOf computes each item's own
// bounding box once, up front; the tree never calls it again.
func Build[T any](items []T, boundsOf func(T) types.Bounds, p Params) *Tree[T] {
	t := &Tree[T]{
		items:  items,
		bounds: make([]types.Bounds, len(items)),
		full:   types.EmptyBounds(),
	}
	indices := make([]int, len(items))
	for i, it := range items {
		b := boundsOf(it)
		t.bounds[i] = b
		t.full = t.full.UnionBounds(b)
		indices[i] = i
	}
	if len(items) == 0 {
		return t
	}
	t.root = t.build(indices, t.full, 0, p)
	return t
}

// octant returns the bounds of child index c (0..7) of a node split at
// center, using the bit encoding bit0=x>=cx, bit1=z>=cz, bit2=y>=cy.
func octant(b types.Bounds, center types.Vec3, c int) types.Bounds {
	out := b
	if c&1 == 0 {
		out.Max[0] = center[0]
	} else {
		out.Min[0] = center[0]
	}
	if c&2 == 0 {
		out.Max[2] = center[2]
	} else {
		out.Min[2] = center[2]
	}
	if c&4 == 0 {
		out.Max[1] = center[1]
	} else {
		out.Min[1] = center[1]
	}
	return out
}

func overlaps(a, b types.Bounds) bool {
	return a.Min[0] <= b.Max[0] && a.Max[0] >= b.Min[0] &&
		a.Min[1] <= b.Max[1] && a.Max[1] >= b.Min[1] &&
		a.Min[2] <= b.Max[2] && a.Max[2] >= b.Min[2]
}

func (t *Tree[T]) build(indices []int, bounds types.Bounds, depth int, p Params) *node {
	if len(indices) <= p.Capacity || depth >= p.MaxDepth {
		return &node{bounds: bounds, leaf: indices}
	}

	center := bounds.Center()
	var childBounds [8]types.Bounds
	for c := 0; c < 8; c++ {
		childBounds[c] = octant(bounds, center, c)
	}

	buckets := make([][]int, 8)
	for _, idx := range indices {
		ib := t.bounds[idx]
		for c := 0; c < 8; c++ {
			if overlaps(ib, childBounds[c]) {
				buckets[c] = append(buckets[c], idx)
			}
		}
	}

	// A degenerate split (every item overlaps every octant, e.g. a cluster
	// of items all centered exactly on the split point) would recurse
	// forever; stop subdividing rather than loop to MaxDepth uselessly.
	noProgress := true
	for c := 0; c < 8; c++ {
		if len(buckets[c]) > 0 && len(buckets[c]) < len(indices) {
			noProgress = false
			break
		}
	}
	if noProgress {
		return &node{bounds: bounds, leaf: indices}
	}

	n := &node{bounds: bounds, center: center}
	for c := 0; c < 8; c++ {
		if len(buckets[c]) > 0 {
			n.children[c] = t.build(buckets[c], childBounds[c], depth+1, p)
		}
	}
	return n
}

// Enabled reports whether the tree has any structure at all. It is false
// only for a tree built over zero items, which the call site replaces with a
// linear scan; a tree that collapsed to a single leaf still reports true.
func (t *Tree[T]) Enabled() bool {
	return t.root != nil
}

// Test is the per-leaf-item intersection callback. It should check item
// against r and, if it improves on the current best distance (tracked by
// the caller via its own closure state), record the hit and return the new
// closest distance.
type Test[T any] func(item T) (t float32, hit bool)

// Trace walks the octree along r, visiting leaf items in roughly front-to-
// back order and calling test on each. It returns the smallest t reported
// by test across every call where hit was true.
func (t *Tree[T]) Trace(r types.Ray, maxT float32, test Test[T]) (bestT float32, found bool) {
	if t.root == nil {
		return 0, false
	}
	tMin, tMax, ok := t.full.IntersectRay(r)
	if !ok {
		return 0, false
	}
	if tMax > maxT {
		tMax = maxT
	}
	bestT = maxT
	found = false
	t.traverse(t.root, r, tMin, tMax, test, &bestT, &found)
	return bestT, found
}

func (t *Tree[T]) traverse(n *node, r types.Ray, tMin, tMax float32, test Test[T], bestT *float32, found *bool) {
	if n == nil || tMin > tMax {
		return
	}
	if n.isLeaf() {
		for _, idx := range n.leaf {
			if tt, hit := test(t.items[idx]); hit && tt < *bestT {
				*bestT = tt
				*found = true
			}
		}
		return
	}

	const eps = 1e-4
	entry := r.At(tMin + eps)
	childIdx := 0
	if entry[0] >= n.center[0] {
		childIdx |= 1
	}
	if entry[2] >= n.center[2] {
		childIdx |= 2
	}
	if entry[1] >= n.center[1] {
		childIdx |= 4
	}

	// centerT[axis] is the ray parameter at which it crosses this node's
	// split plane on that axis; crossings at or before tMin have already
	// happened and don't flip the child index again.
	centerT := [3]float32{infIfZero(n.center[0]-r.Origin[0], r.Direction[0]),
		infIfZero(n.center[2]-r.Origin[2], r.Direction[2]),
		infIfZero(n.center[1]-r.Origin[1], r.Direction[1])}

	// crossings visits at most 3 plane crossings (x, z, y tie-broken in
	// that order), i.e. up to 4 children total including the entry child.
	for step := 0; step < 4; step++ {
		nextT := tMax
		axis := -1
		for a := 0; a < 3; a++ {
			ct := centerT[a]
			if ct > tMin && ct < nextT {
				nextT = ct
				axis = a
			}
		}

		t.traverse(n.children[childIdx], r, tMin, nextT, test, bestT, found)

		if axis == -1 || nextT >= tMax {
			return
		}
		switch axis {
		case 0:
			childIdx ^= 1
		case 1:
			childIdx ^= 2
		case 2:
			childIdx ^= 4
		}
		tMin = nextT
	}
}

func infIfZero(diff, dir float32) float32 {
	if dir == 0 {
		if diff == 0 {
			return 0
		}
		return float32(1e30) // never crossed on this axis
	}
	return diff / dir
}
