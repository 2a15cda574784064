package cmd

import (
	"bytes"
	"fmt"
	"io"

	"github.com/df07/go-lightmap-baker/pkg/baking"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// List the built-in quality presets.
func ListPresets(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	writePresetTable(&buf, baking.Presets())
	logger.Noticef("bake presets\n%s", buf.String())
	return nil
}

func writePresetTable(w io.Writer, presets []baking.Preset) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Preset", "Resolution", "Sun", "Sky", "Indirect", "Target error", "Blur sun", "Blur all"})
	for _, p := range presets {
		o := p.Options
		table.Append([]string{
			p.Name,
			fmt.Sprintf("%d", o.Resolution),
			fmt.Sprintf("%d", o.SunSamples),
			fmt.Sprintf("%d", o.SkySamples),
			fmt.Sprintf("%d", o.IndirectSamples),
			fmt.Sprintf("%g", o.TargetError),
			fmt.Sprintf("%d", o.BlurSun),
			fmt.Sprintf("%d", o.BlurAll),
		})
	}
	table.Render()
}
