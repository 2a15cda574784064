package lightmap

import (
	"image"
	"math"
	"testing"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
)

func v(x, y, z int) core.IVec3 { return core.NewIVec3(x, y, z) }

func near2(a, b core.Vec2) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestLightmapSize(t *testing.T) {
	face := geometry.NewRectangle(0, v(0, 0, 0), v(2, 0, 0), v(2, 3, 0))

	tests := []struct {
		resolution int
		want       image.Point
	}{
		{1, image.Pt(3, 4)},
		{2, image.Pt(5, 7)},
		{4, image.Pt(9, 13)},
	}
	for _, tt := range tests {
		if got := LightmapSize(face, tt.resolution); got != tt.want {
			t.Errorf("Expected size %v at resolution %d, got %v", tt.want, tt.resolution, got)
		}
	}
}

func TestPixelCenterToUV(t *testing.T) {
	size := image.Pt(5, 3)
	tests := []struct {
		pix  image.Point
		want core.Vec2
	}{
		{image.Pt(0, 0), core.NewVec2(0, 0)},
		{image.Pt(4, 2), core.NewVec2(1, 1)},
		{image.Pt(1, 1), core.NewVec2(0.25, 0.5)},
		{image.Pt(-1, 3), core.NewVec2(-0.25, 1.5)},
	}
	for _, tt := range tests {
		if got := PixelCenterToUV(size, tt.pix); !near2(got, tt.want) {
			t.Errorf("Expected uv %v for %v, got %v", tt.want, tt.pix, got)
		}
	}
}

func TestPixelCenterToPos(t *testing.T) {
	face := geometry.NewRectangle(0, v(0, 0, 0), v(2, 0, 0), v(2, 2, 0))
	size := LightmapSize(face, 1)

	// Origin is v1 = (2,0,0); the first tangent points to -x
	got := PixelCenterToPos(face, size, image.Pt(2, 1))
	want := core.NewVec3(0, 1, 0)
	if got.Subtract(want).Length() > 1e-9 {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestClampedFragments(t *testing.T) {
	frags := ClampedFragments(image.Pt(4, 3))
	if len(frags) != 12 {
		t.Fatalf("Expected 12 fragments, got %d", len(frags))
	}

	first := frags[0]
	if first.Pix != image.Pt(0, 0) {
		t.Errorf("Expected first fragment at (0,0), got %v", first.Pix)
	}
	if !near2(first.Min, core.NewVec2(0, 0)) || !near2(first.Max, core.NewVec2(0.5/3, 0.5/2)) {
		t.Errorf("Expected corner fragment (0,0)-(%f,%f), got %v-%v", 0.5/3, 0.5/2, first.Min, first.Max)
	}

	last := frags[11]
	if last.Pix != image.Pt(3, 2) {
		t.Errorf("Expected last fragment at (3,2), got %v", last.Pix)
	}
	if !near2(last.Min, core.NewVec2(2.5/3, 1.5/2)) || !near2(last.Max, core.NewVec2(1, 1)) {
		t.Errorf("Expected corner fragment (%f,%f)-(1,1), got %v-%v", 2.5/3, 1.5/2, last.Min, last.Max)
	}

	// Row-major order
	if frags[5].Pix != image.Pt(1, 1) {
		t.Errorf("Expected fragment 5 at (1,1), got %v", frags[5].Pix)
	}
	interior := frags[5].Size()
	if !near2(interior, core.NewVec2(1.0/3, 0.5)) {
		t.Errorf("Expected interior fragment size (1/3, 1/2), got %v", interior)
	}
}

func TestClampedFragments_CoverFace(t *testing.T) {
	frags := ClampedFragments(image.Pt(5, 4))
	area := 0.0
	for _, f := range frags {
		s := f.Size()
		area += s.X * s.Y
	}
	if math.Abs(area-1) > 1e-9 {
		t.Errorf("Expected fragments to cover unit area, got %f", area)
	}
}
