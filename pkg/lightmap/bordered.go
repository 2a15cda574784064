package lightmap

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-lightmap-baker/pkg/core"
)

// Margin is the number of border texels around every face image
const Margin = 2

// BorderedImage is a linear RGB image with a Margin-texel border.
// Accessors take inner coordinates; the border is only written by DrawMargin.
type BorderedImage struct {
	outer  image.Point
	Pixels []core.Vec3 // row-major, outer size
}

// NewBorderedImage allocates a black image for an inner size
func NewBorderedImage(inner image.Point) *BorderedImage {
	outer := inner.Add(image.Pt(2*Margin, 2*Margin))
	return &BorderedImage{
		outer:  outer,
		Pixels: make([]core.Vec3, outer.X*outer.Y),
	}
}

// OuterSize includes the margin
func (b *BorderedImage) OuterSize() image.Point {
	return b.outer
}

// InnerSize excludes the margin
func (b *BorderedImage) InnerSize() image.Point {
	return b.outer.Sub(image.Pt(2*Margin, 2*Margin))
}

func (b *BorderedImage) outerIndex(x, y int) int {
	return y*b.outer.X + x
}

// At returns the inner texel at p
func (b *BorderedImage) At(p image.Point) core.Vec3 {
	return b.Pixels[b.outerIndex(p.X+Margin, p.Y+Margin)]
}

// Set writes the inner texel at p
func (b *BorderedImage) Set(p image.Point, c core.Vec3) {
	b.Pixels[b.outerIndex(p.X+Margin, p.Y+Margin)] = c
}

// AtUV returns the inner texel covering uv. Texel centers sit at
// uv = pix/(size-1), so the lookup rounds to the nearest center.
func (b *BorderedImage) AtUV(uv core.Vec2) core.Vec3 {
	inner := b.InnerSize()
	x := int(math.Floor(0.5 + uv.X*float64(inner.X-1)))
	y := int(math.Floor(0.5 + uv.Y*float64(inner.Y-1)))
	x = max(0, min(inner.X-1, x))
	y = max(0, min(inner.Y-1, y))
	return b.At(image.Pt(x, y))
}

// Clone returns a deep copy
func (b *BorderedImage) Clone() *BorderedImage {
	pixels := make([]core.Vec3, len(b.Pixels))
	copy(pixels, b.Pixels)
	return &BorderedImage{outer: b.outer, Pixels: pixels}
}

// Average returns the mean color of the inner texels
func (b *BorderedImage) Average() core.Vec3 {
	inner := b.InnerSize()
	if inner.X <= 0 || inner.Y <= 0 {
		return core.Vec3{}
	}
	var sum core.Vec3
	for y := 0; y < inner.Y; y++ {
		for x := 0; x < inner.X; x++ {
			sum = sum.Add(b.At(image.Pt(x, y)))
		}
	}
	return sum.Multiply(1 / float64(inner.X*inner.Y))
}

// Smudge fills the inner texels with their average color.
// Used for fast, very low quality debug bakes.
func (b *BorderedImage) Smudge() {
	avg := b.Average()
	inner := b.InnerSize()
	for y := 0; y < inner.Y; y++ {
		for x := 0; x < inner.X; x++ {
			b.Set(image.Pt(x, y), avg)
		}
	}
}

// Outline colors
var (
	green  = core.NewVec3(0, 1, 0)
	yellow = core.NewVec3(1, 1, 0)
	blue   = core.NewVec3(0, 0, 1)
	red    = core.NewVec3(1, 0, 0)
)

// DrawMargin paints the image so that accidental reads from the margin
// stand out: inner texels green, the face edge yellow, the first margin
// ring blue and the outer ring red.
func (b *BorderedImage) DrawMargin() {
	for i := range b.Pixels {
		b.Pixels[i] = green
	}
	w, h := b.outer.X, b.outer.Y
	b.drawRect(2, w-3, 2, h-3, yellow)
	b.drawRect(1, w-2, 1, h-2, blue)
	b.drawRect(0, w-1, 0, h-1, red)
}

func (b *BorderedImage) drawRect(x1, x2, y1, y2 int, c core.Vec3) {
	for x := x1; x <= x2; x++ {
		b.Pixels[b.outerIndex(x, y1)] = c
		b.Pixels[b.outerIndex(x, y2)] = c
	}
	for y := y1; y <= y2; y++ {
		b.Pixels[b.outerIndex(x1, y)] = c
		b.Pixels[b.outerIndex(x2, y)] = c
	}
}

// Sum adds images texel by texel, margin included. All images must share a size.
func Sum(imgs ...*BorderedImage) *BorderedImage {
	out := &BorderedImage{outer: imgs[0].outer, Pixels: make([]core.Vec3, len(imgs[0].Pixels))}
	for _, img := range imgs {
		for i, c := range img.Pixels {
			out.Pixels[i] = out.Pixels[i].Add(c)
		}
	}
	return out
}

// SumAll adds per-face image lists element-wise
func SumAll(lists ...[]*BorderedImage) []*BorderedImage {
	out := make([]*BorderedImage, len(lists[0]))
	for i := range out {
		imgs := make([]*BorderedImage, len(lists))
		for j, list := range lists {
			imgs[j] = list[i]
		}
		out[i] = Sum(imgs...)
	}
	return out
}

// Scale multiplies every texel by the color c
func (b *BorderedImage) Scale(c core.Vec3) {
	for i := range b.Pixels {
		b.Pixels[i] = b.Pixels[i].MultiplyVec(c)
	}
}

// ToRGBA converts to 8-bit sRGB for storage, margin included
func (b *BorderedImage) ToRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, b.outer.X, b.outer.Y))
	for y := 0; y < b.outer.Y; y++ {
		for x := 0; x < b.outer.X; x++ {
			c := b.Pixels[b.outerIndex(x, y)].Clamp(0, 1)
			img.SetRGBA(x, y, color.RGBA{
				R: toByte(c.X),
				G: toByte(c.Y),
				B: toByte(c.Z),
				A: 255,
			})
		}
	}
	return img
}

func toByte(linear float64) uint8 {
	v := core.LinearToSRGB(linear)
	return uint8(math.Round(v * 255))
}
