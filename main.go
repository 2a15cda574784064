package main

import (
	"fmt"
	"os"

	"github.com/df07/go-lightmap-baker/cmd"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "lightbake"
	app.Usage = "bake static lightmaps for block maps"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "bake",
			Usage: "bake lightmaps for a map file",
			Description: `
Load a JSON map, remove hidden faces and bake sun, sky, emission and three
bounces of indirect light into per-face lightmaps.

The lightmaps are packed into one indirect and one visibility atlas per zone
and written to the output directory together with mesh.zip, which holds the
zone meshes with their lightmap coordinates.`,
			ArgsUsage: "map.json",
			Flags: append([]cli.Flag{
				cli.StringFlag{
					Name:  "out, o",
					Value: "lightmaps",
					Usage: "output directory",
				},
			}, cmd.BakeFlags...),
			Action: cmd.BakeMap,
		},
		{
			Name:      "info",
			Usage:     "show host information and statistics for a map file",
			ArgsUsage: "[map.json]",
			Flags: []cli.Flag{
				cli.StringFlag{
					Name:  "preset, p",
					Value: "medium",
					Usage: "preset whose resolution is used for texel counts",
				},
				cli.IntFlag{
					Name:  "resolution, r",
					Usage: "override the preset resolution",
				},
			},
			Action: cmd.Info,
		},
		{
			Name:   "presets",
			Usage:  "list quality presets",
			Action: cmd.ListPresets,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
