package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "auction-clear",
		Usage: "Run commodity auction scenarios through the clearing engine",
		Commands: []*cli.Command{
			runCmd,
			digestCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var runCmd = &cli.Command{
	Name:    "run",
	Usage:   "Clear one auction scenario and print the result",
	Aliases: []string{"r"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "scenario",
			Required: true,
			Usage:    "specify the input scenario.yaml",
		},
		&cli.StringFlag{
			Name:     "config",
			Required: false,
			Usage:    "specify an engine config.yaml (defaults apply when omitted)",
		},
		&cli.StringFlag{
			Name:     "receipt",
			Required: false,
			Usage:    "write a signed result receipt to this file",
		},
	},
	Action: func(ctx *cli.Context) error {
		return doRun(ctx.String("scenario"), ctx.String("config"), ctx.String("receipt"))
	},
}

var digestCmd = &cli.Command{
	Name:  "digest",
	Usage: "Print the canonical result digest for a scenario",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "scenario",
			Required: true,
			Usage:    "specify the input scenario.yaml",
		},
		&cli.StringFlag{
			Name:     "config",
			Required: false,
			Usage:    "specify an engine config.yaml (defaults apply when omitted)",
		},
	},
	Action: func(ctx *cli.Context) error {
		return doDigest(ctx.String("scenario"), ctx.String("config"))
	},
}
