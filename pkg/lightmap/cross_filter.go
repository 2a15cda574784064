package lightmap

import (
	"image"
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
)

// crossKey identifies a texel center in world space, in 1/1024 fixed point
type crossKey struct {
	pos    core.IVec3
	normal core.IVec3
}

// crossEntry is one texel claiming a key
type crossEntry struct {
	face int
	pix  image.Point
}

// CrossFilter stitches and blurs face images across face boundaries.
// Texels within dist of a face edge are indexed by world position and
// normal, so texels from neighboring faces that land on the same spot can
// share their values.
//
// E.g. position a is at the center of a texel shared by faces 0 and 1:
//
//	+---+---a---+
//	|       |   |
//	+   0   +   +
//	|       | 1 |
//	+---+---+   +
//	        |   |
//	        +---+
type CrossFilter struct {
	dist    int
	mapping map[crossKey][]crossEntry
	faces   []geometry.Face
	sizes   []image.Point
}

// NewCrossFilter indexes the border texels of every face. Face IDs are
// slice positions; sizes are inner lightmap sizes.
func NewCrossFilter(dist int, faces []geometry.Face, sizes []image.Point) *CrossFilter {
	f := &CrossFilter{
		dist:    dist,
		mapping: make(map[crossKey][]crossEntry),
		faces:   faces,
		sizes:   sizes,
	}
	for id := range faces {
		f.addFace(id)
	}
	return f
}

func (f *CrossFilter) addFace(id int) {
	size := f.sizes[id]
	// Degenerate faces are never produced by a valid map, but must not crash
	if size.X < 2 || size.Y < 2 {
		return
	}

	d := f.dist
	w, h := size.X, size.Y
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x < d || x >= w-d || y < d || y >= h-d {
				pix := image.Pt(x, y)
				key := f.keyFor(id, pix)
				f.mapping[key] = append(f.mapping[key], crossEntry{face: id, pix: pix})
			}
		}
	}
}

func (f *CrossFilter) keyFor(id int, pix image.Point) crossKey {
	face := f.faces[id]
	return crossKey{
		pos:    fixedPoint(PixelCenterToPos(face, f.sizes[id], pix)),
		normal: fixedPoint(face.Normal()),
	}
}

func fixedPoint(v core.Vec3) core.IVec3 {
	return core.IVec3{
		X: int(math.Round(v.X * 1024)),
		Y: int(math.Round(v.Y * 1024)),
		Z: int(math.Round(v.Z * 1024)),
	}
}

// Entries returns the number of distinct keys
func (f *CrossFilter) Entries() int {
	return len(f.mapping)
}

// lookupOverlapping returns every texel sharing the position of (id, pix),
// or just (id, pix) itself if it is not indexed
func (f *CrossFilter) lookupOverlapping(id int, pix image.Point) []crossEntry {
	if entries, ok := f.mapping[f.keyFor(id, pix)]; ok {
		return entries
	}
	return []crossEntry{{face: id, pix: pix}}
}

// lookupOutOfBounds resolves a possibly out-of-bounds texel index. Inside
// the image it is the texel itself; outside, the first neighbor claiming
// the position, if any.
func (f *CrossFilter) lookupOutOfBounds(id int, pix image.Point) (crossEntry, bool) {
	size := f.sizes[id]
	if pix.X >= 0 && pix.X < size.X && pix.Y >= 0 && pix.Y < size.Y {
		return crossEntry{face: id, pix: pix}, true
	}
	entries, ok := f.mapping[f.keyFor(id, pix)]
	if !ok || len(entries) == 0 {
		return crossEntry{}, false
	}
	return entries[0], true
}

// Stitch replaces every texel by the average of all texels at the same position
func (f *CrossFilter) Stitch(imgs []*BorderedImage) []*BorderedImage {
	out := make([]*BorderedImage, len(imgs))
	for id := range imgs {
		out[id] = f.stitch1(imgs, id)
	}
	return out
}

func (f *CrossFilter) stitch1(imgs []*BorderedImage, id int) *BorderedImage {
	size := imgs[id].InnerSize()
	dst := NewBorderedImage(size)

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			pix := image.Pt(x, y)
			var sum core.Vec3
			entries := f.lookupOverlapping(id, pix)
			for _, e := range entries {
				sum = sum.Add(imgs[e.face].At(e.pix))
			}
			dst.Set(pix, sum.Multiply(1/float64(len(entries))))
		}
	}
	return dst
}

// gauss3x3 is a 3x3 binomial kernel
var gauss3x3 = []struct {
	dx, dy int
	w      float64
}{
	{0, 0, 1.0 / 4.0},
	{-1, 0, 1.0 / 8.0},
	{1, 0, 1.0 / 8.0},
	{0, -1, 1.0 / 8.0},
	{0, 1, 1.0 / 8.0},
	{1, 1, 1.0 / 16.0},
	{1, -1, 1.0 / 16.0},
	{-1, 1, 1.0 / 16.0},
	{-1, -1, 1.0 / 16.0},
}

// Blur applies one 3x3 blur. Taps falling off a face are read from the
// neighboring face at that position, or dropped (renormalizing the kernel).
// Requires an index distance of at least 2.
func (f *CrossFilter) Blur(imgs []*BorderedImage) []*BorderedImage {
	out := make([]*BorderedImage, len(imgs))
	for id := range imgs {
		out[id] = f.blur1(imgs, id)
	}
	return out
}

func (f *CrossFilter) blur1(imgs []*BorderedImage, id int) *BorderedImage {
	size := imgs[id].InnerSize()
	dst := NewBorderedImage(size)

	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			var sum core.Vec3
			sumW := 0.0
			for _, k := range gauss3x3 {
				e, ok := f.lookupOutOfBounds(id, image.Pt(x+k.dx, y+k.dy))
				if !ok {
					continue
				}
				sum = sum.Add(imgs[e.face].At(e.pix).Multiply(k.w))
				sumW += k.w
			}
			dst.Set(image.Pt(x, y), sum.Multiply(1/sumW))
		}
	}
	return dst
}

// BlurN applies Blur n times
func (f *CrossFilter) BlurN(imgs []*BorderedImage, n int) []*BorderedImage {
	for i := 0; i < n; i++ {
		imgs = f.Blur(imgs)
	}
	return imgs
}
