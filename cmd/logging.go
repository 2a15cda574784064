package cmd

import (
	"github.com/df07/go-lightmap-baker/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("lightbake")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
