package main

import (
	"fmt"
	"os"

	"feedview/internal/app"
	"feedview/internal/config"
	"feedview/internal/domain"
	"feedview/internal/logger"
	"feedview/internal/transport/console"
	"feedview/internal/usecase"

	"github.com/urfave/cli/v2"
)

func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(ctx.String("config"), true)
	if err != nil {
		return nil, fmt.Errorf("could not load config: %w", err)
	}
	if addr := ctx.String("address"); addr != "" {
		cfg.Server.Address = addr
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func serveCmd() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the feed viewer JSON API",
		Description: `Starts the HTTP API. Every request becomes an event handled
		one at a time by the viewer. If app.default_feed_url is set the feed
		is loaded on startup.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "address",
				Aliases: []string{"a"},
				Usage:   "Listen address, overrides server.address",
				EnvVars: []string{"FEEDVIEW_ADDRESS"},
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			application, err := app.New(cfg)
			if err != nil {
				return fmt.Errorf("could not start application: %w", err)
			}
			return application.Run()
		},
	}
}

func showCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Load a feed once and print one page",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "url",
				Aliases:  []string{"u"},
				Usage:    "Feed URL",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "filter",
				Value: string(domain.FilterAll),
				Usage: "Filter: all, favorites or search",
			},
			&cli.StringFlag{
				Name:  "query",
				Usage: "Search text for --filter search",
			},
			&cli.IntFlag{
				Name:  "page",
				Value: 1,
				Usage: "Page number to print",
			},
		},
		Action: func(ctx *cli.Context) error {
			cfg, err := loadConfig(ctx)
			if err != nil {
				return err
			}
			kind, ok := domain.ParseFilterKind(ctx.String("filter"))
			if !ok {
				return fmt.Errorf("unknown filter %q", ctx.String("filter"))
			}
			log, err := logger.New(cfg.Logger)
			if err != nil {
				return fmt.Errorf("could not setup logger: %w", err)
			}
			components, err := app.Build(ctx.Context, cfg, log)
			if err != nil {
				return err
			}
			defer components.KV.Close()

			events := []usecase.Event{
				usecase.LoadFeed{URL: ctx.String("url")},
				usecase.SetFilter{Filter: domain.Filter{Kind: kind, Query: ctx.String("query")}},
			}
			for i := 1; i < ctx.Int("page"); i++ {
				events = append(events, usecase.Navigate{Direction: usecase.Next})
			}
			var page usecase.Page
			for _, ev := range events {
				if page, err = components.Viewer.Handle(ctx.Context, ev); err != nil {
					return err
				}
			}
			return console.NewRenderer(os.Stdout).Render(page)
		},
	}
}
