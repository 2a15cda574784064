package geometry

import (
	"github.com/df07/go-lightmap-baker/pkg/core"
)

// IndexedFace is a face tagged with its position in the scene's face list.
// Hits on it report that position as the hit ID.
type IndexedFace struct {
	Face Face
	ID   int
}

func (f IndexedFace) BoundingBox() core.AABB {
	return f.Face.BoundingBox()
}

func (f IndexedFace) Intersect(ray core.Ray, hr *core.HitRecord) bool {
	return f.Face.Hit(ray, hr, f.ID)
}

// FaceTree answers ray queries against all faces of a scene
type FaceTree struct {
	root *core.BVHNode[IndexedFace]
}

// NewFaceTree indexes faces by their slice position
func NewFaceTree(faces []Face) *FaceTree {
	indexed := make([]IndexedFace, len(faces))
	for i, f := range faces {
		indexed[i] = IndexedFace{Face: f, ID: i}
	}
	return &FaceTree{root: core.BuildBVH(indexed)}
}

// Intersect returns the nearest hit; hr.Hit is false on a miss
func (t *FaceTree) Intersect(ray core.Ray) core.HitRecord {
	hr := core.NewHitRecord()
	core.Intersect(t.root, ray, &hr)
	return hr
}

// Occluded reports whether the ray hits any face
func (t *FaceTree) Occluded(ray core.Ray) bool {
	return core.Occluded(t.root, ray)
}

// BlockTree answers point containment queries against solid blocks
type BlockTree struct {
	root *core.BVHNode[Block]
}

// NewBlockTree builds the tree
func NewBlockTree(blocks []Block) *BlockTree {
	return &BlockTree{root: core.BuildBVH(blocks)}
}

// Contains reports whether p is strictly inside any block
func (t *BlockTree) Contains(p core.Vec3) bool {
	return core.ContainsPoint(t.root, p)
}
