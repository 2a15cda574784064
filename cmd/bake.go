package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/df07/go-lightmap-baker/pkg/baking"
	"github.com/df07/go-lightmap-baker/pkg/loaders"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/cpu"
	"github.com/urfave/cli"
)

// Bake a map file and write lightmap atlases and mesh.
func BakeMap(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing map file argument")
	}
	mapFile := ctx.Args().First()

	opts, err := optionsFromContext(ctx)
	if err != nil {
		return err
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = defaultWorkers()
	}

	m, err := loaders.LoadMapFile(mapFile)
	if err != nil {
		return err
	}
	input, err := m.BuildInput(filepath.Dir(mapFile))
	if err != nil {
		return err
	}

	scene, err := baking.NewScene(opts, input, logger)
	if err != nil {
		return err
	}
	logger.Noticef("baking %d faces with %d workers (isolate: %s)", len(scene.Faces()), opts.NumWorkers, opts.ActiveIsolate())

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	result := <-scene.BakeAsync(sigCtx, progressLogger())
	if result.Canceled {
		return errors.New("bake canceled")
	}
	displayStageStats(result.Stats, time.Since(start))

	out := ctx.String("out")
	zones, err := loaders.SaveOutput(out, result.Snippets, logger)
	if err != nil {
		return err
	}
	logger.Noticef("wrote %d zones to %s", len(zones), out)
	return nil
}

// defaultWorkers is the number of logical cores, or 0 to let the baker decide
func defaultWorkers() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		logger.Warningf("could not count CPU cores: %v", err)
		return 0
	}
	return n
}

// progressLogger logs every stage start and every 10% within a stage
func progressLogger() baking.ProgressFunc {
	var stage baking.Stage
	lastPercent := -1
	return func(p baking.Progress) {
		if p.Stage != stage {
			stage = p.Stage
			lastPercent = -1
			logger.Infof("stage %s: %d faces", p.Stage, p.Total)
		}
		percent := p.Percent() / 10 * 10
		if percent != lastPercent {
			lastPercent = percent
			logger.Debugf("stage %s: %d%%", p.Stage, percent)
		}
	}
}

func displayStageStats(stats []baking.StageStats, total time.Duration) {
	var buf bytes.Buffer
	writeStageTable(&buf, stats, total)
	logger.Noticef("bake statistics\n%s", buf.String())
}

func writeStageTable(w io.Writer, stats []baking.StageStats, total time.Duration) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Stage", "Faces", "Samples", "Samples/face", "Time"})

	samples := 0
	for _, stat := range stats {
		perFace := 0
		if stat.Faces > 0 {
			perFace = stat.Samples / stat.Faces
		}
		table.Append([]string{
			string(stat.Stage),
			fmt.Sprintf("%d", stat.Faces),
			fmt.Sprintf("%d", stat.Samples),
			fmt.Sprintf("%d", perFace),
			stat.Duration.Round(time.Millisecond).String(),
		})
		samples += stat.Samples
	}
	table.SetFooter([]string{"", "", fmt.Sprintf("%d", samples), "TOTAL", total.Round(time.Millisecond).String()})

	table.Render()
}
