package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/df07/go-lightmap-baker/pkg/baking"
	"github.com/df07/go-lightmap-baker/pkg/geometry"
	"github.com/df07/go-lightmap-baker/pkg/lightmap"
	"github.com/df07/go-lightmap-baker/pkg/loaders"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
	"github.com/urfave/cli"
)

// MapStats describes the work a map represents
type MapStats struct {
	Blocks         int
	Faces          int
	VisibleFaces   int
	Zones          int
	Texels         int
	Resolution     int
	EmissiveFaces  int
	UnknownMatIDs  int
	MaterialsInUse int
}

// CollectMapStats optimizes the faces of input and counts lightmap texels at resolution
func CollectMapStats(input baking.Input, resolution int) MapStats {
	faces := geometry.OptimizeFaces(input.Faces)
	_, zones := geometry.GroupByZone(faces)

	stats := MapStats{
		Blocks:       len(input.Blocks),
		Faces:        len(input.Faces),
		VisibleFaces: len(faces),
		Zones:        len(zones),
		Resolution:   resolution,
	}

	unknown := map[geometry.MatID]bool{}
	used := map[string]bool{}
	for _, f := range faces {
		size := lightmap.LightmapSize(f, resolution)
		stats.Texels += size.X * size.Y

		name, ok := input.Palette[f.Mat]
		if !ok {
			unknown[f.Mat] = true
			continue
		}
		used[name] = true
		if m, ok := input.Materials[name]; ok && m.Emissive.LengthSquared() > 0 {
			stats.EmissiveFaces++
		}
	}
	stats.UnknownMatIDs = len(unknown)
	stats.MaterialsInUse = len(used)
	return stats
}

// Print host and map information.
func Info(ctx *cli.Context) error {
	setupLogging(ctx)

	var buf bytes.Buffer
	if err := writeHostTable(&buf); err != nil {
		logger.Warningf("could not read host info: %v", err)
	}

	if ctx.NArg() > 0 {
		mapFile := ctx.Args().First()
		m, err := loaders.LoadMapFile(mapFile)
		if err != nil {
			return err
		}
		input, err := m.BuildInput(filepath.Dir(mapFile))
		if err != nil {
			return err
		}
		opts, err := baking.PresetByName(ctx.String("preset"))
		if err != nil {
			return err
		}
		resolution := opts.Resolution
		if ctx.IsSet("resolution") {
			resolution = ctx.Int("resolution")
		}
		if resolution <= 0 {
			return errors.New("resolution must be positive")
		}
		writeMapTable(&buf, CollectMapStats(input, resolution))
	}

	logger.Noticef("system info\n%s", buf.String())
	return nil
}

func writeHostTable(w io.Writer) error {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return err
	}
	if len(cpuInfo) == 0 {
		return errors.New("no CPU information available")
	}
	cores, err := cpu.Counts(true)
	if err != nil {
		return err
	}
	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"CPU", "Clock", "Logical cores", "RAM total", "RAM available"})
	table.Append([]string{
		cpuInfo[0].ModelName,
		fmt.Sprintf("%.2f GHz", cpuInfo[0].Mhz/1000),
		fmt.Sprintf("%d", cores),
		fmt.Sprintf("%.1f GiB", float64(memInfo.Total)/(1<<30)),
		fmt.Sprintf("%.1f GiB", float64(memInfo.Available)/(1<<30)),
	})
	table.Render()
	return nil
}

func writeMapTable(w io.Writer, stats MapStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Map", "Count"})
	table.AppendBulk([][]string{
		{"blocks", fmt.Sprintf("%d", stats.Blocks)},
		{"faces", fmt.Sprintf("%d", stats.Faces)},
		{"visible faces", fmt.Sprintf("%d", stats.VisibleFaces)},
		{"emissive faces", fmt.Sprintf("%d", stats.EmissiveFaces)},
		{"materials in use", fmt.Sprintf("%d", stats.MaterialsInUse)},
		{"unknown material ids", fmt.Sprintf("%d", stats.UnknownMatIDs)},
		{"zones", fmt.Sprintf("%d", stats.Zones)},
		{fmt.Sprintf("texels at resolution %d", stats.Resolution), fmt.Sprintf("%d", stats.Texels)},
	})
	table.Render()
}
