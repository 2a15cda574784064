package cmd

import (
	"github.com/df07/go-lightmap-baker/pkg/baking"
	"github.com/urfave/cli"
)

// BakeFlags select a preset and override its fields
var BakeFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "preset, p",
		Value: "medium",
		Usage: "quality preset: low, medium or high",
	},
	cli.IntFlag{
		Name:  "resolution, r",
		Usage: "lightmap texels per world unit",
	},
	cli.IntFlag{
		Name:  "sun-samples",
		Usage: "max extra samples per texel for sun visibility",
	},
	cli.IntFlag{
		Name:  "sky-samples",
		Usage: "max extra samples per texel for sky light",
	},
	cli.IntFlag{
		Name:  "indirect-samples",
		Usage: "max extra samples per texel for the last indirect bounce",
	},
	cli.Float64Flag{
		Name:  "target-error",
		Usage: "target sRGB error per texel",
	},
	cli.Float64Flag{
		Name:  "reflectivity",
		Usage: "global multiplier on material albedo",
	},
	cli.Float64Flag{
		Name:  "offset",
		Usage: "distance sample points are lifted off their face",
	},
	cli.IntFlag{
		Name:  "blur-sun",
		Usage: "blur iterations on sun visibility",
	},
	cli.IntFlag{
		Name:  "blur-all",
		Usage: "blur iterations on the final light",
	},
	cli.BoolTFlag{
		Name:  "stitch",
		Usage: "average texels shared by adjacent faces (use --stitch=false to disable)",
	},
	cli.BoolTFlag{
		Name:  "outline",
		Usage: "paint lightmap margins (use --outline=false to disable)",
	},
	cli.BoolFlag{
		Name:  "smudge",
		Usage: "replace sky and first bounce by their face average",
	},
	cli.BoolFlag{
		Name:  "sun-only",
		Usage: "bake only sun light",
	},
	cli.BoolFlag{
		Name:  "sky-only",
		Usage: "bake only sky light",
	},
	cli.BoolFlag{
		Name:  "emission-only",
		Usage: "bake only emissive materials",
	},
	cli.BoolFlag{
		Name:  "indirect-only",
		Usage: "bake only indirect light",
	},
	cli.BoolFlag{
		Name:  "show-validity",
		Usage: "paint texels red where their sample point is inside a solid",
	},
	cli.Int64Flag{
		Name:  "seed",
		Usage: "random seed",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Usage: "number of bake workers (default: number of CPU cores)",
	},
}

// optionsFromContext starts from the selected preset and applies every flag
// that was set explicitly
func optionsFromContext(ctx *cli.Context) (baking.BakeOptions, error) {
	opts, err := baking.PresetByName(ctx.String("preset"))
	if err != nil {
		return opts, err
	}

	setInt := func(name string, dst *int) {
		if ctx.IsSet(name) {
			*dst = ctx.Int(name)
		}
	}
	setFloat := func(name string, dst *float64) {
		if ctx.IsSet(name) {
			*dst = ctx.Float64(name)
		}
	}
	setBool := func(name string, dst *bool) {
		if ctx.IsSet(name) {
			*dst = ctx.Bool(name)
		}
	}

	setInt("resolution", &opts.Resolution)
	setInt("sun-samples", &opts.SunSamples)
	setInt("sky-samples", &opts.SkySamples)
	setInt("indirect-samples", &opts.IndirectSamples)
	setFloat("target-error", &opts.TargetError)
	setFloat("reflectivity", &opts.Reflectivity)
	setFloat("offset", &opts.Offset)
	setInt("blur-sun", &opts.BlurSun)
	setInt("blur-all", &opts.BlurAll)
	setInt("workers", &opts.NumWorkers)

	if ctx.IsSet("stitch") {
		opts.Stitch = ctx.BoolT("stitch")
	}
	if ctx.IsSet("outline") {
		opts.Outline = ctx.BoolT("outline")
	}
	setBool("smudge", &opts.Smudge)
	setBool("sun-only", &opts.SunOnly)
	setBool("sky-only", &opts.SkyOnly)
	setBool("emission-only", &opts.EmissionOnly)
	setBool("indirect-only", &opts.IndirectOnly)
	setBool("show-validity", &opts.ShowValidity)

	if ctx.IsSet("seed") {
		opts.Seed = ctx.Int64("seed")
	}

	return opts, opts.Validate()
}
