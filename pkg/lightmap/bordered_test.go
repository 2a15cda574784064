package lightmap

import (
	"image"
	"testing"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

func TestBorderedImage_Sizes(t *testing.T) {
	img := NewBorderedImage(image.Pt(3, 2))
	if img.OuterSize() != image.Pt(7, 6) {
		t.Errorf("Expected outer size (7,6), got %v", img.OuterSize())
	}
	if img.InnerSize() != image.Pt(3, 2) {
		t.Errorf("Expected inner size (3,2), got %v", img.InnerSize())
	}
	if len(img.Pixels) != 42 {
		t.Errorf("Expected 42 pixels, got %d", len(img.Pixels))
	}
}

func TestBorderedImage_SetUsesInnerCoordinates(t *testing.T) {
	img := NewBorderedImage(image.Pt(3, 2))
	c := core.NewVec3(1, 2, 3)
	img.Set(image.Pt(0, 0), c)

	if img.At(image.Pt(0, 0)) != c {
		t.Errorf("Expected %v at inner (0,0), got %v", c, img.At(image.Pt(0, 0)))
	}
	// Inner (0,0) is outer (2,2)
	if img.Pixels[2*7+2] != c {
		t.Errorf("Expected inner origin at outer (2,2)")
	}
}

func TestBorderedImage_AtUV(t *testing.T) {
	img := NewBorderedImage(image.Pt(3, 2))
	for y := 0; y < 2; y++ {
		for x := 0; x < 3; x++ {
			img.Set(image.Pt(x, y), core.NewVec3(float64(x), float64(y), 0))
		}
	}

	tests := []struct {
		name string
		uv   core.Vec2
		want image.Point
	}{
		{"origin", core.NewVec2(0, 0), image.Pt(0, 0)},
		{"far corner", core.NewVec2(1, 1), image.Pt(2, 1)},
		{"rounds to nearest center", core.NewVec2(0.49, 0.2), image.Pt(1, 0)},
		{"below half", core.NewVec2(0.2, 0.6), image.Pt(0, 1)},
		{"clamped", core.NewVec2(-1, 2), image.Pt(0, 1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := img.AtUV(tt.uv)
			want := core.NewVec3(float64(tt.want.X), float64(tt.want.Y), 0)
			if got != want {
				t.Errorf("Expected texel %v, got color %v", tt.want, got)
			}
		})
	}
}

func TestBorderedImage_DrawMargin(t *testing.T) {
	img := NewBorderedImage(image.Pt(4, 4))
	img.DrawMargin()

	tests := []struct {
		x, y int
		want core.Vec3
	}{
		{0, 0, red},
		{7, 3, red},
		{1, 1, blue},
		{6, 4, blue},
		{2, 2, yellow},
		{5, 3, yellow},
		{3, 3, green},
		{4, 4, green},
	}
	for _, tt := range tests {
		if got := img.Pixels[tt.y*8+tt.x]; got != tt.want {
			t.Errorf("Expected %v at outer (%d,%d), got %v", tt.want, tt.x, tt.y, got)
		}
	}
}

func TestBorderedImage_AverageAndSmudge(t *testing.T) {
	img := NewBorderedImage(image.Pt(2, 1))
	img.Set(image.Pt(0, 0), core.NewVec3(1, 0, 0))
	img.Set(image.Pt(1, 0), core.NewVec3(0, 0, 1))

	want := core.NewVec3(0.5, 0, 0.5)
	if avg := img.Average(); avg != want {
		t.Errorf("Expected average %v, got %v", want, avg)
	}

	img.Smudge()
	for x := 0; x < 2; x++ {
		if got := img.At(image.Pt(x, 0)); got != want {
			t.Errorf("Expected smudged texel %v, got %v", want, got)
		}
	}
}

func TestBorderedImage_CloneIsDeep(t *testing.T) {
	img := NewBorderedImage(image.Pt(2, 2))
	clone := img.Clone()
	clone.Set(image.Pt(1, 1), core.NewVec3(1, 1, 1))

	if img.At(image.Pt(1, 1)) != (core.Vec3{}) {
		t.Errorf("Expected original to be unchanged by writes to clone")
	}
}

func TestSumAndScale(t *testing.T) {
	a := NewBorderedImage(image.Pt(2, 2))
	b := NewBorderedImage(image.Pt(2, 2))
	a.Set(image.Pt(0, 1), core.NewVec3(1, 2, 3))
	b.Set(image.Pt(0, 1), core.NewVec3(1, 1, 1))

	sum := SumAll([]*BorderedImage{a}, []*BorderedImage{b})
	if len(sum) != 1 {
		t.Fatalf("Expected 1 image, got %d", len(sum))
	}
	if got := sum[0].At(image.Pt(0, 1)); got != core.NewVec3(2, 3, 4) {
		t.Errorf("Expected (2,3,4), got %v", got)
	}

	sum[0].Scale(core.NewVec3(0.5, 0, 1))
	if got := sum[0].At(image.Pt(0, 1)); got != core.NewVec3(1, 0, 4) {
		t.Errorf("Expected (1,0,4) after scaling, got %v", got)
	}
}

func TestBorderedImage_ToRGBA(t *testing.T) {
	img := NewBorderedImage(image.Pt(1, 1))
	img.Set(image.Pt(0, 0), core.NewVec3(1, 0, 2))

	rgba := img.ToRGBA()
	if rgba.Bounds().Size() != image.Pt(5, 5) {
		t.Fatalf("Expected 5x5 image, got %v", rgba.Bounds().Size())
	}
	c := rgba.RGBAAt(2, 2)
	if c.R != 255 || c.G != 0 || c.B != 255 || c.A != 255 {
		t.Errorf("Expected clamped sRGB (255,0,255,255), got %v", c)
	}
	if m := rgba.RGBAAt(0, 0); m.R != 0 || m.A != 255 {
		t.Errorf("Expected opaque black margin, got %v", m)
	}
}

func TestBorderedImage_ToRGBAClamps(t *testing.T) {
	img := NewBorderedImage(image.Pt(1, 1))
	img.Set(image.Pt(0, 0), core.NewVec3(-0.5, 0.5, 7))

	// Linear 0.5 encodes to sRGB 0.7354
	c := img.ToRGBA().RGBAAt(2, 2)
	if c.R != 0 || c.G != 188 || c.B != 255 {
		t.Errorf("Expected (0,188,255), got %v", c)
	}
}
