package baking

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by every BakeOptions validation failure
var ErrInvalidOptions = errors.New("invalid bake options")

// BakeOptions controls lightmap quality and debug output
type BakeOptions struct {
	Resolution      int     // texels per world unit
	SunSamples      int     // max extra samples per texel for sun visibility
	SkySamples      int     // max extra samples per texel for sky light
	IndirectSamples int     // max extra samples per texel for the last bounce
	TargetError     float64 // target sRGB error per texel
	Reflectivity    float64 // global multiplier on material albedo
	Offset          float64 // sample positions are lifted this far off the face
	BlurSun         int     // 3x3 blur iterations on sun visibility
	BlurAll         int     // 3x3 blur iterations on the final ambient light
	Stitch          bool    // average coincident texels across face edges

	// Debug isolates. At most one is honored, see ActiveIsolate.
	SunOnly      bool
	SkyOnly      bool
	EmissionOnly bool
	IndirectOnly bool

	// Debug visualizations
	ShowValidity bool // red where sample points are inside solids
	Outline      bool // paint image margins
	Smudge       bool // replace sky and first bounce by their face average

	Seed       int64
	NumWorkers int // 0 uses all CPUs
}

// LowQuality is a fast preview preset
func LowQuality() BakeOptions {
	return BakeOptions{
		Resolution:      1,
		SunSamples:      1,
		SkySamples:      1,
		IndirectSamples: 1,
		TargetError:     0.01,
		Reflectivity:    0.8,
		Offset:          1.0 / 1024.0,
		BlurSun:         1,
		BlurAll:         2,
		Stitch:          true,
		Outline:         true,
	}
}

// MediumQuality is the default preset
func MediumQuality() BakeOptions {
	opts := LowQuality()
	opts.SunSamples = 10
	opts.SkySamples = 16
	opts.IndirectSamples = 20
	opts.TargetError = 0.03
	return opts
}

// HighQuality is the release preset
func HighQuality() BakeOptions {
	opts := MediumQuality()
	opts.SunSamples = 64
	opts.SkySamples = 3000
	opts.IndirectSamples = 3000
	opts.TargetError = 0.0005
	return opts
}

// Preset is a named BakeOptions constructor
type Preset struct {
	Name    string
	Options BakeOptions
}

// Presets lists the built-in presets from fastest to best
func Presets() []Preset {
	return []Preset{
		{"low", LowQuality()},
		{"medium", MediumQuality()},
		{"high", HighQuality()},
	}
}

// PresetByName looks up a built-in preset
func PresetByName(name string) (BakeOptions, error) {
	for _, p := range Presets() {
		if p.Name == name {
			return p.Options, nil
		}
	}
	return BakeOptions{}, fmt.Errorf("%w: unknown preset %q", ErrInvalidOptions, name)
}

// Validate rejects options that cannot produce a bake
func (o BakeOptions) Validate() error {
	switch {
	case o.Resolution <= 0:
		return fmt.Errorf("%w: resolution must be positive, got %d", ErrInvalidOptions, o.Resolution)
	case o.SunSamples < 0 || o.SkySamples < 0 || o.IndirectSamples < 0:
		return fmt.Errorf("%w: sample budgets must not be negative", ErrInvalidOptions)
	case o.BlurSun < 0 || o.BlurAll < 0:
		return fmt.Errorf("%w: blur radii must not be negative", ErrInvalidOptions)
	case o.TargetError <= 0:
		return fmt.Errorf("%w: target error must be positive, got %g", ErrInvalidOptions, o.TargetError)
	case o.NumWorkers < 0:
		return fmt.Errorf("%w: worker count must not be negative", ErrInvalidOptions)
	}
	return nil
}

// Isolate selects a partial pipeline for debugging
type Isolate int

const (
	IsolateNone Isolate = iota
	IsolateSun
	IsolateSky
	IsolateEmission
	IsolateIndirect
)

func (i Isolate) String() string {
	switch i {
	case IsolateSun:
		return "sun"
	case IsolateSky:
		return "sky"
	case IsolateEmission:
		return "emission"
	case IsolateIndirect:
		return "indirect"
	}
	return "none"
}

// ActiveIsolate returns the honored isolate flag.
// When several are set, Sun wins over Sky, Sky over Emission and
// Emission over Indirect.
func (o BakeOptions) ActiveIsolate() Isolate {
	switch {
	case o.SunOnly:
		return IsolateSun
	case o.SkyOnly:
		return IsolateSky
	case o.EmissionOnly:
		return IsolateEmission
	case o.IndirectOnly:
		return IsolateIndirect
	}
	return IsolateNone
}
