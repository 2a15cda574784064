package geometry

import (
	"sort"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

// faceKey is the sorted vertex set of a face. Faces with the same shape and
// position share a key regardless of their vertex order.
type faceKey [4]core.IVec3

func keyOf(f Face) faceKey {
	verts := f.Vertices()
	sort.Slice(verts, func(i, j int) bool { return verts[i].Less(verts[j]) })

	var key faceKey
	copy(key[:], verts)
	if len(verts) == 3 {
		// Triangles and rectangles never collide: mark the unused slot
		key[3] = core.IVec3{X: -1 << 31, Y: -1 << 31, Z: -1 << 31}
	}
	return key
}

// OptimizeFaces removes coincident faces. Two blocks touching along a full
// face produce two identical faces, neither of which can ever be seen, so
// every face whose vertex set occurs more than once is dropped.
// Survivors keep their input order.
//
//	+------+------+
//	|      |      |
//	|      x      |
//	|      |      |
//	+------+------+
func OptimizeFaces(faces []Face) []Face {
	counts := make(map[faceKey]int, len(faces))
	keys := make([]faceKey, len(faces))
	for i, f := range faces {
		keys[i] = keyOf(f)
		counts[keys[i]]++
	}

	optimized := make([]Face, 0, len(faces))
	for i, f := range faces {
		if counts[keys[i]] == 1 {
			optimized = append(optimized, f)
		}
	}
	return optimized
}
