package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := rootApp().Run(os.Args); err != nil {
		log.Fatalf("FATAL: %v", err)
	}
}

func rootApp() *cli.App {
	return &cli.App{
		Name:  "feedview",
		Usage: "Paginated RSS/Atom feed viewer with favorites",
		Description: `Loads an RSS 2.0 or Atom feed, normalizes its entries and shows
		them ten per page with all/favorites/search filters.

		Flags can be set via environment variables, e.g.:

		--config => FEEDVIEW_CONFIG=config.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   "config.json",
				Usage:   "JSON config file location",
				EnvVars: []string{"FEEDVIEW_CONFIG"},
			},
		},
		Commands: []*cli.Command{
			serveCmd(),
			showCmd(),
		},
		Action: func(ctx *cli.Context) error {
			return ctx.App.Run([]string{"", "help"})
		},
	}
}
