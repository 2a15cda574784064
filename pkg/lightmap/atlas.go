package lightmap

import (
	"errors"
	"image"
	"image/draw"
	"sort"
)

// ErrAtlasTooSmall is returned when snippets do not fit the largest atlas
var ErrAtlasTooSmall = errors.New("lightmap atlas too small")

const (
	minLogAtlasSize = 5  // 32
	maxLogAtlasSize = 11 // 2048

	// AtlasMargin separates islands on the atlas. One texel is the
	// minimum that avoids light bleeding between islands.
	AtlasMargin = 1
)

// Pack finds the smallest square atlas (32 to 2048, doubling) that holds
// all sizes and returns the top-left offset of each, in input order.
func Pack(sizes []image.Point) (int, []image.Point, error) {
	for n := minLogAtlasSize; n <= maxLogAtlasSize; n++ {
		atlasSize := 1 << n
		if offsets, err := newAllocator(atlasSize, AtlasMargin).allocAll(sizes); err == nil {
			return atlasSize, offsets, nil
		}
	}
	return 0, nil, ErrAtlasTooSmall
}

// allocator is a shelf packer: islands are placed left to right and a new
// row starts below the tallest island of the previous row
type allocator struct {
	size   int
	margin int
	curr   image.Point
	nextY  int
}

func newAllocator(size, margin int) *allocator {
	return &allocator{
		size:   size,
		margin: margin,
		curr:   image.Pt(margin, margin),
		nextY:  margin,
	}
}

func (a *allocator) allocAll(sizes []image.Point) ([]image.Point, error) {
	order := make([]int, len(sizes))
	for i := range order {
		order[i] = i
	}
	// Tallest first fills rows evenly
	sort.SliceStable(order, func(i, j int) bool { return sizes[order[i]].Y > sizes[order[j]].Y })

	offsets := make([]image.Point, len(sizes))
	for _, i := range order {
		pos, err := a.alloc(sizes[i])
		if err != nil {
			return nil, err
		}
		offsets[i] = pos
	}
	return offsets, nil
}

// alloc reserves a (W+margin)x(H+margin) island for a WxH image
func (a *allocator) alloc(size image.Point) (image.Point, error) {
	size = size.Add(image.Pt(a.margin, a.margin))

	if a.curr.X+size.X >= a.size {
		a.curr.X = a.margin
		a.curr.Y = a.nextY
	}

	a.nextY = max(a.nextY, a.curr.Y+size.Y+a.margin)

	result := a.curr
	a.curr.X += size.X + a.margin

	end := result.Add(size)
	if end.X >= a.size || end.Y >= a.size {
		return image.Point{}, ErrAtlasTooSmall
	}
	return result, nil
}

// CopyToAtlas draws images onto a new square atlas at their offsets
func CopyToAtlas(atlasSize int, imgs []image.Image, offsets []image.Point) *image.RGBA {
	atlas := image.NewRGBA(image.Rect(0, 0, atlasSize, atlasSize))
	for i, img := range imgs {
		b := img.Bounds()
		dst := image.Rectangle{Min: offsets[i], Max: offsets[i].Add(b.Size())}
		draw.Draw(atlas, dst, img, b.Min, draw.Src)
	}
	return atlas
}
