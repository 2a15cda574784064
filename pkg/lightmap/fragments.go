package lightmap

import (
	"image"
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
)

// LightmapSize is the inner image size of a face: texels per unit times
// the tangent length, plus one so a 1x1 face maps each vertex to its own texel.
//
//	. . . ... . . .
//	.      .      .
//	.  +-------+  .
//	.  |   .   |  .
//	. .|. ... .|. .
//	.  |   .   |  .
//	.  +-------+  .
//	.      .      .
//	. . . ... . . .
func LightmapSize(face geometry.Face, resolution int) image.Point {
	t := face.SizedTangents()
	return image.Pt(
		int(math.Round(t[0].ToVec3().Multiply(float64(resolution)).Length()))+1,
		int(math.Round(t[1].ToVec3().Multiply(float64(resolution)).Length()))+1,
	)
}

// PixelCenterToUV maps a texel index to face coordinates: pix/(size-1).
// Indices outside the image extrapolate beyond [0,1].
func PixelCenterToUV(size image.Point, pix image.Point) core.Vec2 {
	return core.NewVec2(
		float64(pix.X)/float64(max(size.X-1, 1)),
		float64(pix.Y)/float64(max(size.Y-1, 1)),
	)
}

// PixelCenterToPos maps a texel index to its world position on the face plane
func PixelCenterToPos(face geometry.Face, size image.Point, pix image.Point) core.Vec3 {
	return face.PosForUV(PixelCenterToUV(size, pix))
}

// Fragment is the part of a face covered by one texel, in face coordinates
type Fragment struct {
	Pix      image.Point
	Min, Max core.Vec2
}

// Size returns the extent of the fragment
func (f Fragment) Size() core.Vec2 {
	return core.NewVec2(f.Max.X-f.Min.X, f.Max.Y-f.Min.Y)
}

// ClampedFragments lists the UV range of every texel. Faces sit on the
// image with a half-texel offset, so corner texels keep a quarter of
// their area and edge texels half:
//
//	.   .   .   .
//	  +-------+
//	. | .   . | .
//	  b   c   |
//	. | .   . | .
//	  a-------+
//	.   .   .   .
//
// Here a covers (0,0)-(0.25,0.25) and c the full (0.25,0.25)-(0.75,0.75).
func ClampedFragments(size image.Point) []Fragment {
	fragW := 1 / float64(max(size.X-1, 1))
	fragH := 1 / float64(max(size.Y-1, 1))

	fragments := make([]Fragment, 0, size.X*size.Y)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			pix := image.Pt(x, y)
			center := PixelCenterToUV(size, pix)
			fragments = append(fragments, Fragment{
				Pix: pix,
				Min: core.NewVec2(clamp01(center.X-fragW/2), clamp01(center.Y-fragH/2)),
				Max: core.NewVec2(clamp01(center.X+fragW/2), clamp01(center.Y+fragH/2)),
			})
		}
	}
	return fragments
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
