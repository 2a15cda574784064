package baking

import (
	"errors"
	"fmt"
	"image"

	"github.com/df07/go-lightmap-baker/pkg/core"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/log"
)

// ErrDegenerateFace is returned for faces with zero area
var ErrDegenerateFace = errors.New("degenerate face")

// crossFilterDist is the border width indexed for stitching and blurring.
// Blur needs at least 2.
const crossFilterDist = 2

// DefaultSunDir is the direction sun light travels when a map does not set one
var DefaultSunDir = core.NewVec3(0.304855, 0.609711, 0.731653).Normalize()

// Material holds the average colors of a material
type Material struct {
	Diffuse  core.Vec3
	Emissive core.Vec3
}

// Palette maps the material IDs stored on faces to material names
type Palette map[geometry.MatID]string

// Input is everything a bake reads besides its options
type Input struct {
	Faces     []geometry.Face // before visibility optimization
	Blocks    []geometry.Block
	SunDir    core.Vec3 // direction sun light travels; zero uses DefaultSunDir
	SunColor  core.Vec3
	SkyColor  core.Vec3
	Palette   Palette
	Materials map[string]Material
}

// Scene owns the spatial indices and material lookups of one bake.
// It is read-only once built and shared by all workers.
type Scene struct {
	opts      BakeOptions
	faces     []geometry.Face
	sizes     []image.Point
	faceTree  *geometry.FaceTree
	blockTree *geometry.BlockTree
	filter    *lightmap.CrossFilter

	sunDir   core.Vec3
	sunColor core.Vec3
	skyColor core.Vec3

	palette   Palette
	materials map[string]Material

	logger log.Logger
}

// NewScene validates opts, removes hidden faces and builds the indices.
// A nil logger logs to the "baking" module.
func NewScene(opts BakeOptions, input Input, logger log.Logger) (*Scene, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New("baking")
	}

	faces := geometry.OptimizeFaces(input.Faces)
	logger.Infof("optimized %d faces down to %d", len(input.Faces), len(faces))

	sizes := make([]image.Point, len(faces))
	for i, f := range faces {
		if f.IsDegenerate() {
			return nil, fmt.Errorf("%w: face %d at %v", ErrDegenerateFace, i, f.Vert)
		}
		sizes[i] = lightmap.LightmapSize(f, opts.Resolution)
	}

	sunDir := input.SunDir
	if sunDir.LengthSquared() == 0 {
		sunDir = DefaultSunDir
	}

	s := &Scene{
		opts:      opts,
		faces:     faces,
		sizes:     sizes,
		faceTree:  geometry.NewFaceTree(faces),
		blockTree: geometry.NewBlockTree(input.Blocks),
		filter:    lightmap.NewCrossFilter(crossFilterDist, faces, sizes),
		sunDir:    sunDir.Normalize(),
		sunColor:  input.SunColor,
		skyColor:  input.SkyColor,
		palette:   input.Palette,
		materials: input.Materials,
		logger:    logger,
	}
	logger.Debugf("cross filter indexed %d border positions", s.filter.Entries())
	return s, nil
}

// Faces returns the faces being baked, indexed by face ID
func (s *Scene) Faces() []geometry.Face {
	return s.faces
}

// Sizes returns the inner lightmap size of every face
func (s *Scene) Sizes() []image.Point {
	return s.sizes
}

// Options returns the validated bake options
func (s *Scene) Options() BakeOptions {
	return s.opts
}

// IsValidSamplingPoint reports whether pos lies outside every solid block
func (s *Scene) IsValidSamplingPoint(pos core.Vec3) bool {
	return !s.blockTree.Contains(pos)
}

func (s *Scene) materialFor(faceID int) (Material, bool) {
	name, ok := s.palette[s.faces[faceID].Mat]
	if !ok {
		return Material{}, false
	}
	m, ok := s.materials[name]
	return m, ok
}

// emissionFor is black for unknown materials
func (s *Scene) emissionFor(faceID int) core.Vec3 {
	m, _ := s.materialFor(faceID)
	return m.Emissive
}

// albedoFor is black for unknown materials
func (s *Scene) albedoFor(faceID int) core.Vec3 {
	m, _ := s.materialFor(faceID)
	return m.Diffuse
}
