package baking

import (
	"context"
	"image"
	"math"
	"time"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/integrator"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
)

const (
	// Target errors that always (best) or never (worst) ask for refinement
	bestError  = 1e-6
	worstError = 1e6

	indirect1Samples = 10
	indirect2Samples = 20

	// Applied to average emissive material colors
	emissionScale = 10 * 8
)

// bakeRun is the mutable state of one Bake call
type bakeRun struct {
	scene    *Scene
	cancel   *Cancel
	progress ProgressFunc
	stats    []StageStats
	canceled bool
}

// Bake runs the light transport pipeline: sun, sky and emission make up the
// direct light, followed by three indirect bounces. Stages run in order;
// faces within a stage run on a worker pool.
func (s *Scene) Bake(cancel *Cancel, progress ProgressFunc) Result {
	run := &bakeRun{scene: s, cancel: cancel, progress: progress}
	start := time.Now()

	visibility, ambient := run.bake()
	if run.canceled {
		s.logger.Notice("bake canceled")
		return Result{Canceled: true, Stats: run.stats}
	}

	s.logger.Infof("baked %d faces in %v", len(s.faces), time.Since(start).Round(time.Millisecond))
	return Result{Snippets: s.makeSnippets(visibility, ambient), Stats: run.stats}
}

// BakeAsync runs Bake on a new goroutine. Canceling ctx cancels the bake
// between faces. The channel receives exactly one Result.
func (s *Scene) BakeAsync(ctx context.Context, progress ProgressFunc) <-chan Result {
	resultChan := make(chan Result, 1)
	cancel := NewCancel()
	if ctx.Err() != nil {
		cancel.Cancel()
	}
	done := make(chan struct{})

	go func() {
		select {
		case <-ctx.Done():
			cancel.Cancel()
		case <-done:
		}
	}()

	go func() {
		defer close(resultChan)
		defer close(done)
		resultChan <- s.Bake(cancel, progress)
	}()

	return resultChan
}

func (r *bakeRun) bake() (visibility, ambient []*lightmap.BorderedImage) {
	s := r.scene
	opts := s.opts

	if opts.ShowValidity {
		validity := r.direct(StageValidity, s.validityImage)
		return validity, validity
	}

	if opts.ActiveIsolate() == IsolateEmission {
		emission := r.direct(StageEmission, s.emissionImage)
		return s.black(), emission
	}

	sunVisibility := r.bakeFaces(StageSun, s.sampleSunVisibility, opts.SunSamples, bestError)
	if r.canceled {
		return nil, nil
	}
	sunVisibility = s.filter.BlurN(s.stitch(sunVisibility), opts.BlurSun)
	sunLight := s.visibilityToLight(sunVisibility)
	if opts.ActiveIsolate() == IsolateSun {
		return s.black(), sunLight
	}

	skyLight := r.bakeFaces(StageSky, s.sampleSky, opts.SkySamples, opts.TargetError)
	if r.canceled {
		return nil, nil
	}
	if opts.Smudge {
		smudge(skyLight)
	}
	if opts.ActiveIsolate() == IsolateSky {
		return s.black(), s.stitch(skyLight)
	}

	emission := r.direct(StageEmission, s.emissionImage)
	if r.canceled {
		return nil, nil
	}
	direct := lightmap.SumAll(sunLight, skyLight, emission)

	indirect1 := r.bakeFaces(StageIndirect1, s.sampleIndirect(direct), indirect1Samples, worstError)
	if r.canceled {
		return nil, nil
	}
	if opts.Smudge {
		smudge(indirect1)
	}
	withIndirect1 := lightmap.SumAll(direct, indirect1)

	indirect2 := r.bakeFaces(StageIndirect2, s.sampleIndirect(withIndirect1), indirect2Samples, worstError)
	if r.canceled {
		return nil, nil
	}
	withIndirect2 := lightmap.SumAll(direct, indirect2)

	indirect3 := r.bakeFaces(StageIndirect3, s.sampleIndirect(withIndirect2), opts.IndirectSamples, opts.TargetError)
	if r.canceled {
		return nil, nil
	}
	if opts.ActiveIsolate() == IsolateIndirect {
		return s.black(), s.stitch(indirect3)
	}

	final := s.filter.BlurN(s.stitch(lightmap.SumAll(direct, indirect3)), opts.BlurAll)
	return sunVisibility, final
}

// bakeFaces integrates sample over every face on a worker pool
func (r *bakeRun) bakeFaces(stage Stage, sample integrator.SampleFunc, maxSamples int, targetError float64) []*lightmap.BorderedImage {
	s := r.scene
	start := time.Now()
	total := len(s.faces)
	s.logger.Debugf("baking %s: %d faces, up to %d samples per texel", stage, total, maxSamples)

	stageIndex := len(r.stats)
	bake := func(faceID int) (*lightmap.BorderedImage, int) {
		in := integrator.New(s.faces[faceID], s.integratorOptions(), maxSamples, targetError, s.faceSeed(stageIndex, faceID))
		img := in.Bake(s, sample)
		return img, in.Samples()
	}

	pool := NewWorkerPool(bake, r.cancel, total, s.opts.NumWorkers)
	pool.Start()
	for id := 0; id < total; id++ {
		pool.SubmitTask(FaceTask{FaceID: id})
	}

	imgs := make([]*lightmap.BorderedImage, total)
	samples := 0
	for done := 1; done <= total; done++ {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		imgs[result.FaceID] = result.Image
		samples += result.Samples
		if result.Canceled {
			r.canceled = true
		}
		r.report(stage, done, total)
	}
	pool.Stop()

	r.stats = append(r.stats, StageStats{Stage: stage, Faces: total, Samples: samples, Duration: time.Since(start)})
	return imgs
}

// direct fills every face image without sampling
func (r *bakeRun) direct(stage Stage, render func(faceID int) *lightmap.BorderedImage) []*lightmap.BorderedImage {
	s := r.scene
	start := time.Now()
	total := len(s.faces)

	imgs := make([]*lightmap.BorderedImage, total)
	for id := range imgs {
		if r.cancel.IsCanceled() {
			r.canceled = true
			return nil
		}
		imgs[id] = render(id)
		r.report(stage, id+1, total)
	}

	r.stats = append(r.stats, StageStats{Stage: stage, Faces: total, Duration: time.Since(start)})
	return imgs
}

func (r *bakeRun) report(stage Stage, done, total int) {
	if r.progress != nil {
		r.progress(Progress{Stage: stage, Done: done, Total: total})
	}
}

func (s *Scene) integratorOptions() integrator.Options {
	return integrator.Options{Resolution: s.opts.Resolution, Offset: s.opts.Offset}
}

// faceSeed gives every (stage, face) pair its own random stream
func (s *Scene) faceSeed(stage, faceID int) int64 {
	return s.opts.Seed*0x9E3779B1 + int64(stage)<<32 + int64(faceID)
}

func (s *Scene) stitch(imgs []*lightmap.BorderedImage) []*lightmap.BorderedImage {
	if !s.opts.Stitch {
		return imgs
	}
	return s.filter.Stitch(imgs)
}

func smudge(imgs []*lightmap.BorderedImage) {
	for _, img := range imgs {
		img.Smudge()
	}
}

// newFaceImage returns a black image for a face, with the margin painted
// when outlines are enabled
func (s *Scene) newFaceImage(faceID int) *lightmap.BorderedImage {
	img := lightmap.NewBorderedImage(s.sizes[faceID])
	if s.opts.Outline {
		img.DrawMargin()
		fill(img, core.Vec3{})
	}
	return img
}

func fill(img *lightmap.BorderedImage, c core.Vec3) {
	inner := img.InnerSize()
	for y := 0; y < inner.Y; y++ {
		for x := 0; x < inner.X; x++ {
			img.Set(image.Pt(x, y), c)
		}
	}
}

func (s *Scene) black() []*lightmap.BorderedImage {
	imgs := make([]*lightmap.BorderedImage, len(s.faces))
	for id := range imgs {
		imgs[id] = lightmap.NewBorderedImage(s.sizes[id])
	}
	return imgs
}

func (s *Scene) emissionImage(faceID int) *lightmap.BorderedImage {
	img := s.newFaceImage(faceID)
	fill(img, s.emissionFor(faceID).Multiply(emissionScale))
	return img
}

// validityImage is white where a texel center is a valid sampling point
// and red where it lies inside a solid
func (s *Scene) validityImage(faceID int) *lightmap.BorderedImage {
	face := s.faces[faceID]
	size := s.sizes[faceID]
	lift := face.Normal().Multiply(s.opts.Offset)

	img := s.newFaceImage(faceID)
	for y := 0; y < size.Y; y++ {
		for x := 0; x < size.X; x++ {
			pix := image.Pt(x, y)
			pos := lightmap.PixelCenterToPos(face, size, pix).Add(lift)
			if s.IsValidSamplingPoint(pos) {
				img.Set(pix, core.NewVec3(1, 1, 1))
			} else {
				img.Set(pix, core.NewVec3(1, 0, 0))
			}
		}
	}
	return img
}

// sampleSunVisibility is the sun color where the sun is visible. It is not
// weighted by the angle of incidence.
func (s *Scene) sampleSunVisibility(_ *core.HaltonSeq, pos, normal core.Vec3) core.Vec3 {
	toSun := s.sunDir.Negate()
	if toSun.Dot(normal) <= 0 {
		return core.Vec3{}
	}
	if s.faceTree.Occluded(core.NewRay(pos, toSun)) {
		return core.Vec3{}
	}
	return s.sunColor
}

func (s *Scene) sampleSky(rnd *core.HaltonSeq, pos, normal core.Vec3) core.Vec3 {
	dir := core.SampleCosineHemisphere(normal, rnd.Point())
	if s.faceTree.Occluded(core.NewRay(pos, dir)) {
		return core.Vec3{}
	}
	return s.skyColor
}

// sampleIndirect gathers light reflected by the faces lit in prev.
// Misses are black because sky light is already part of the direct light.
func (s *Scene) sampleIndirect(prev []*lightmap.BorderedImage) integrator.SampleFunc {
	return func(rnd *core.HaltonSeq, pos, normal core.Vec3) core.Vec3 {
		dir := core.SampleCosineHemisphere(normal, rnd.Point())
		hr := s.faceTree.Intersect(core.NewRay(pos, dir))
		if !hr.Hit {
			return core.Vec3{}
		}
		// Back faces are not lit
		if hr.Normal.Dot(dir) >= 0 {
			return core.Vec3{}
		}
		reflected := s.albedoFor(hr.ID).MultiplyVec(prev[hr.ID].AtUV(hr.UV))
		return reflected.Multiply(s.opts.Reflectivity)
	}
}

// visibilityToLight weighs sun visibility by the cosine of the sun angle
func (s *Scene) visibilityToLight(vis []*lightmap.BorderedImage) []*lightmap.BorderedImage {
	light := make([]*lightmap.BorderedImage, len(vis))
	for id, img := range vis {
		cos := math.Max(0, s.faces[id].Normal().Dot(s.sunDir.Negate()))
		light[id] = img.Clone()
		light[id].Scale(core.NewVec3(cos, cos, cos))
	}
	return light
}

func (s *Scene) makeSnippets(visibility, ambient []*lightmap.BorderedImage) []lightmap.Snippet {
	snippets := make([]lightmap.Snippet, len(s.faces))
	for id, face := range s.faces {
		snippets[id] = lightmap.Snippet{Face: face, Visibility: visibility[id], Ambient: ambient[id]}
	}
	return snippets
}
