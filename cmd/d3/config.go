package main

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/renderer"
)

// loadConfig merges command flags over the config file over the defaults.
func loadConfig(ctx *cli.Context) (d3.Config, error) {
	cfg := d3.DefaultConfig()
	if path := ctx.GlobalString("config"); path != "" {
		var err error
		if cfg, err = d3.LoadConfig(path); err != nil {
			return cfg, err
		}
	}

	if ctx.IsSet("width") || ctx.IsSet("height") {
		width, height := cfg.Width, cfg.Height
		if ctx.IsSet("width") {
			width = ctx.Int("width")
		}
		if ctx.IsSet("height") {
			height = ctx.Int("height")
		}
		cfg = cfg.WithSize(width, height)
	}
	if ctx.IsSet("title") {
		cfg = cfg.WithTitle(ctx.String("title"))
	}
	if ctx.IsSet("present-mode") {
		cfg = cfg.WithPresentMode(ctx.String("present-mode"))
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	if _, err := renderer.ParsePresentMode(cfg.PresentMode); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
