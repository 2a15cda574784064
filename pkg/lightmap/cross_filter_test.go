package lightmap

import (
	"image"
	"math"
	"testing"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
)

// Two coplanar faces sharing the edge x=2:
//
//	A: 2x2, texels at x=2,1,0 and y=0,1,2
//	B: 1x3, texels at x=2,3 and y=0,1,2,3
func twoFaces() ([]geometry.Face, []image.Point) {
	faces := []geometry.Face{
		geometry.NewRectangle(0, v(0, 0, 0), v(2, 0, 0), v(2, 2, 0)),
		geometry.NewRectangle(0, v(2, 0, 0), v(3, 0, 0), v(3, 3, 0)),
	}
	sizes := []image.Point{LightmapSize(faces[0], 1), LightmapSize(faces[1], 1)}
	return faces, sizes
}

func constantImages(sizes []image.Point, colors ...core.Vec3) []*BorderedImage {
	imgs := make([]*BorderedImage, len(sizes))
	for i, size := range sizes {
		imgs[i] = NewBorderedImage(size)
		for y := 0; y < size.Y; y++ {
			for x := 0; x < size.X; x++ {
				imgs[i].Set(image.Pt(x, y), colors[i])
			}
		}
	}
	return imgs
}

func TestCrossFilter_Entries(t *testing.T) {
	faces, sizes := twoFaces()
	if sizes[0] != image.Pt(3, 3) || sizes[1] != image.Pt(2, 4) {
		t.Fatalf("Expected sizes (3,3) and (2,4), got %v", sizes)
	}

	// 8 border texels of A, all 8 texels of B, 3 shared positions
	f := NewCrossFilter(1, faces, sizes)
	if f.Entries() != 13 {
		t.Errorf("Expected 13 keys, got %d", f.Entries())
	}
}

func TestCrossFilter_SkipsTinyFaces(t *testing.T) {
	faces := []geometry.Face{geometry.NewRectangle(0, v(0, 0, 0), v(1, 0, 0), v(1, 1, 0))}
	f := NewCrossFilter(1, faces, []image.Point{image.Pt(1, 1)})
	if f.Entries() != 0 {
		t.Errorf("Expected no keys for a face below 2x2, got %d", f.Entries())
	}
}

func TestCrossFilter_Stitch(t *testing.T) {
	faces, sizes := twoFaces()
	f := NewCrossFilter(1, faces, sizes)
	imgs := constantImages(sizes, core.NewVec3(1, 1, 1), core.NewVec3(3, 3, 3))

	out := f.Stitch(imgs)

	tests := []struct {
		name string
		face int
		pix  image.Point
		want float64
	}{
		{"A shared edge", 0, image.Pt(0, 1), 2},
		{"A interior", 0, image.Pt(1, 1), 1},
		{"A far edge", 0, image.Pt(2, 1), 1},
		{"B shared edge", 1, image.Pt(1, 0), 2},
		{"B beyond shared edge", 1, image.Pt(1, 3), 3},
		{"B far edge", 1, image.Pt(0, 2), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := out[tt.face].At(tt.pix)
			if math.Abs(got.X-tt.want) > 1e-12 {
				t.Errorf("Expected %f, got %f", tt.want, got.X)
			}
		})
	}

	// Stitching is idempotent
	again := f.Stitch(out)
	for i := range out {
		for j := range out[i].Pixels {
			if math.Abs(out[i].Pixels[j].X-again[i].Pixels[j].X) > 1e-12 {
				t.Fatalf("Expected second stitch to be a no-op on face %d", i)
			}
		}
	}
}

func TestCrossFilter_StitchDoesNotModifyInput(t *testing.T) {
	faces, sizes := twoFaces()
	f := NewCrossFilter(1, faces, sizes)
	imgs := constantImages(sizes, core.NewVec3(1, 1, 1), core.NewVec3(3, 3, 3))

	f.Stitch(imgs)
	if imgs[0].At(image.Pt(0, 0)).X != 1 {
		t.Errorf("Expected input images to be unchanged")
	}
}

func TestCrossFilter_BlurKeepsConstant(t *testing.T) {
	faces, sizes := twoFaces()
	f := NewCrossFilter(2, faces, sizes)
	c := core.NewVec3(0.5, 0.25, 1)
	imgs := constantImages(sizes, c, c)

	out := f.BlurN(imgs, 3)
	for i, img := range out {
		for y := 0; y < sizes[i].Y; y++ {
			for x := 0; x < sizes[i].X; x++ {
				got := img.At(image.Pt(x, y))
				if got.Subtract(c).Length() > 1e-12 {
					t.Errorf("Expected constant %v on face %d at (%d,%d), got %v", c, i, x, y, got)
				}
			}
		}
	}
}

func TestCrossFilter_BlurReadsAcrossEdge(t *testing.T) {
	faces, sizes := twoFaces()
	f := NewCrossFilter(2, faces, sizes)
	imgs := constantImages(sizes, core.NewVec3(0, 0, 0), core.NewVec3(1, 1, 1))

	out := f.Blur(imgs)

	// A's texels at x=2 see B's column at x=3 through the out-of-bounds lookup
	if got := out[0].At(image.Pt(0, 1)).X; got <= 0 {
		t.Errorf("Expected light to bleed across the shared edge, got %f", got)
	}
	// A's far edge is out of reach
	if got := out[0].At(image.Pt(2, 1)).X; got != 0 {
		t.Errorf("Expected no light at the far edge, got %f", got)
	}
}
