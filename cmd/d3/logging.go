package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/gogpu/d3"
)

func setupLogging(ctx *cli.Context) {
	var level slog.Level
	switch {
	case ctx.GlobalBool("vv"):
		level = slog.LevelDebug
	case ctx.GlobalBool("v"):
		level = slog.LevelInfo
	default:
		return
	}
	d3.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
