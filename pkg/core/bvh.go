package core

import (
	"sort"
)

// Bounded is anything that can be stored in a BVH
type Bounded interface {
	BoundingBox() AABB
}

// Intersecter is a primitive that rays can hit.
// Intersect records the hit in hr only when it is nearer than hr.T.
type Intersecter interface {
	Bounded
	Intersect(ray Ray, hr *HitRecord) bool
}

// Volume is a primitive that can contain points
type Volume interface {
	Bounded
	Contains(p Vec3) bool
}

// BVHNode is either an inner node with two (box, child) pairs or a leaf
// holding exactly two items. A leaf built from a single item pads the
// second slot with the zero value of T, which must never hit or contain.
type BVHNode[T Bounded] struct {
	Leaf     bool
	Boxes    [2]AABB
	Children [2]*BVHNode[T]
	Items    [2]T
}

// BuildBVH constructs a BVH over items. The input slice is not modified.
// An empty input yields a nil root, on which every query reports nothing.
func BuildBVH[T Bounded](items []T) *BVHNode[T] {
	if len(items) == 0 {
		return nil
	}

	// Work on a copy so concurrent builders can share the input
	itemsCopy := make([]T, len(items))
	copy(itemsCopy, items)

	return buildBVH(itemsCopy)
}

// buildBVH splits at the median of the longest axis until two items remain
func buildBVH[T Bounded](items []T) *BVHNode[T] {
	if len(items) <= 2 {
		leaf := &BVHNode[T]{Leaf: true}
		copy(leaf.Items[:], items)
		return leaf
	}

	bounds := items[0].BoundingBox()
	for i := 1; i < len(items); i++ {
		bounds = bounds.Union(items[i].BoundingBox())
	}

	axis := bounds.LongestAxis()
	sortByAxis(items, axis)

	mid := len(items) / 2
	left := items[:mid]
	right := items[mid:]

	return &BVHNode[T]{
		Boxes:    [2]AABB{boundsOf(left), boundsOf(right)},
		Children: [2]*BVHNode[T]{buildBVH(left), buildBVH(right)},
	}
}

func boundsOf[T Bounded](items []T) AABB {
	bounds := items[0].BoundingBox()
	for i := 1; i < len(items); i++ {
		bounds = bounds.Union(items[i].BoundingBox())
	}
	return bounds
}

// sortByAxis sorts items by their bounding box center along the specified axis
func sortByAxis[T Bounded](items []T, axis int) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].BoundingBox().Center().Axis(axis) < items[j].BoundingBox().Center().Axis(axis)
	})
}

// Intersect finds the nearest hit along the ray and stores it in hr.
// It returns true if this traversal improved hr.
func Intersect[T Intersecter](node *BVHNode[T], ray Ray, hr *HitRecord) bool {
	if node == nil {
		return false
	}

	if node.Leaf {
		hitA := node.Items[0].Intersect(ray, hr)
		hitB := node.Items[1].Intersect(ray, hr)
		return hitA || hitB
	}

	hitAnything := false
	for i := 0; i < 2; i++ {
		if node.Boxes[i].Hit(ray, 0, hr.T) && Intersect(node.Children[i], ray, hr) {
			hitAnything = true
		}
	}
	return hitAnything
}

// Occluded reports whether the ray hits anything at all. It stops at the first hit.
func Occluded[T Intersecter](node *BVHNode[T], ray Ray) bool {
	hr := NewHitRecord()
	return occluded(node, ray, &hr)
}

func occluded[T Intersecter](node *BVHNode[T], ray Ray, hr *HitRecord) bool {
	if node == nil {
		return false
	}

	if node.Leaf {
		return node.Items[0].Intersect(ray, hr) || node.Items[1].Intersect(ray, hr)
	}

	for i := 0; i < 2; i++ {
		if node.Boxes[i].Hit(ray, 0, hr.T) && occluded(node.Children[i], ray, hr) {
			return true
		}
	}
	return false
}

// ContainsPoint reports whether any item contains p
func ContainsPoint[T Volume](node *BVHNode[T], p Vec3) bool {
	if node == nil {
		return false
	}

	if node.Leaf {
		return node.Items[0].Contains(p) || node.Items[1].Contains(p)
	}

	for i := 0; i < 2; i++ {
		if node.Boxes[i].Contains(p) && ContainsPoint(node.Children[i], p) {
			return true
		}
	}
	return false
}

// bvhStats contains statistics about the BVH structure
type bvhStats struct {
	totalNodes int
	leafNodes  int
	maxDepth   int
}

// getStats walks the tree and collects node counts
func getStats[T Bounded](node *BVHNode[T]) bvhStats {
	stats := bvhStats{}
	if node != nil {
		collectStats(node, 0, &stats)
	}
	return stats
}

func collectStats[T Bounded](node *BVHNode[T], depth int, stats *bvhStats) {
	stats.totalNodes++
	if depth > stats.maxDepth {
		stats.maxDepth = depth
	}

	if node.Leaf {
		stats.leafNodes++
		return
	}
	collectStats(node.Children[0], depth+1, stats)
	collectStats(node.Children[1], depth+1, stats)
}
