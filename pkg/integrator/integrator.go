package integrator

import (
	"image"
	"math"
	"math/rand"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
)

// Scene is the part of a scene the integrator needs besides the sample function
type Scene interface {
	// IsValidSamplingPoint reports whether pos is outside every solid block
	IsValidSamplingPoint(pos core.Vec3) bool
}

// SampleFunc computes one light sample at pos. It may read rnd.Point() but
// must not advance it; the integrator advances the sequence after each call.
type SampleFunc func(rnd *core.HaltonSeq, pos, normal core.Vec3) core.Vec3

// Options are the bake options the integrator depends on
type Options struct {
	Resolution int     // texels per world unit
	Offset     float64 // sample positions are lifted this far along the face normal
}

const (
	initialSamples = 10
	areaRadius     = 2 // area statistics cover a 5x5 neighborhood
)

// pixelState tracks one texel across refinement passes
type pixelState struct {
	halton *core.HaltonSeq
	local  lightmap.Stats
	area   lightmap.Stats
}

// Integrator bakes one face with adaptive sampling: a fixed seed pass, then
// two passes that spend samples where the estimated sRGB error is high.
type Integrator struct {
	face        geometry.Face
	size        image.Point
	opts        Options
	random      *rand.Rand
	pixels      []pixelState // row-major
	maxSamples  int
	targetError float64
	samples     int
}

// New prepares an integrator for face. All randomness is drawn from seed,
// so equal seeds produce equal images.
func New(face geometry.Face, opts Options, maxSamples int, targetError float64, seed int64) *Integrator {
	size := lightmap.LightmapSize(face, opts.Resolution)
	random := rand.New(rand.NewSource(seed))

	pixels := make([]pixelState, size.X*size.Y)
	for i := range pixels {
		pixels[i].halton = core.NewHaltonSeq(core.NewVec2(random.Float64(), random.Float64()))
	}

	return &Integrator{
		face:        face,
		size:        size,
		opts:        opts,
		random:      random,
		pixels:      pixels,
		maxSamples:  maxSamples,
		targetError: targetError,
	}
}

// Size returns the inner image size
func (in *Integrator) Size() image.Point {
	return in.size
}

// Samples returns the number of valid samples taken so far
func (in *Integrator) Samples() int {
	return in.samples
}

// Bake runs the three refinement passes and returns the mean per texel.
// Texels without a single valid sample stay black.
func (in *Integrator) Bake(scene Scene, sample SampleFunc) *lightmap.BorderedImage {
	in.refine(scene, sample, func(*pixelState) int { return initialSamples })

	in.updateAreaStats()
	in.refine(scene, sample, func(ps *pixelState) int { return in.numSamples(ps) / 4 })

	in.updateAreaStats()
	in.refine(scene, sample, in.numSamples)

	return in.convert()
}

func (in *Integrator) refine(scene Scene, sample SampleFunc, numSamples func(*pixelState) int) {
	normal := in.face.Normal()
	lift := normal.Multiply(in.opts.Offset)

	for _, frag := range lightmap.ClampedFragments(in.size) {
		ps := &in.pixels[frag.Pix.Y*in.size.X+frag.Pix.X]
		extent := frag.Size()
		n := numSamples(ps)

		for i := 0; i < n; i++ {
			uv := core.NewVec2(
				frag.Min.X+extent.X*in.random.Float64(),
				frag.Min.Y+extent.Y*in.random.Float64(),
			)
			pos := in.face.PosForUV(uv).Add(lift)

			if !scene.IsValidSamplingPoint(pos) {
				continue
			}
			color := sample(ps.halton, pos, normal)
			ps.halton.Advance()
			ps.local.AddSample(color)
			in.samples++
		}
	}
}

// numSamples estimates how many more samples a texel needs to reach the
// target error: n_want = n * e / e_target, minus what it already has.
func (in *Integrator) numSamples(ps *pixelState) int {
	nHave := float64(ps.local.N)
	nWant := nHave * bitError(ps) / in.targetError
	extra := math.Max(0, math.Min(nWant-nHave, float64(in.maxSamples)))
	if math.IsNaN(extra) {
		return 0
	}
	return int(extra)
}

// bitError is the sRGB width of the standard error around the area mean.
// For quasi-random samples the error falls off as stddev/n rather than
// stddev/sqrt(n).
func bitError(ps *pixelState) float64 {
	if ps.local.N == 0 {
		return 0
	}
	stderr := ps.area.StdDev() / float64(ps.local.N)
	avg := ps.area.Mean().Average()
	return core.SRGBDelta(avg, stderr)
}

func (in *Integrator) updateAreaStats() {
	w, h := in.size.X, in.size.Y
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var area lightmap.Stats
			for dy := -areaRadius; dy <= areaRadius; dy++ {
				for dx := -areaRadius; dx <= areaRadius; dx++ {
					nx, ny := x+dx, y+dy
					if nx < 0 || nx >= w || ny < 0 || ny >= h {
						continue
					}
					area.Add(in.pixels[ny*w+nx].local)
				}
			}
			in.pixels[y*w+x].area = area
		}
	}
}

func (in *Integrator) convert() *lightmap.BorderedImage {
	img := lightmap.NewBorderedImage(in.size)
	for y := 0; y < in.size.Y; y++ {
		for x := 0; x < in.size.X; x++ {
			img.Set(image.Pt(x, y), in.pixels[y*in.size.X+x].local.Mean())
		}
	}
	return img
}
