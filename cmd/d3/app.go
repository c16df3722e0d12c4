package main

import (
	"github.com/urfave/cli"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/renderer"
)

// newApp builds the command line. run hosts the window for a final
// configuration; backend is the GPU backend listed by "devices" (nil
// means the preferred registered backend).
func newApp(run func(d3.Config) error, backend renderer.InstanceFactory) *cli.App {
	a := cli.NewApp()
	a.Name = "d3"
	a.Usage = "minimal real-time 3D rendering harness"
	a.Version = "0.1.0"
	a.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "config, c",
			Usage: "YAML config file applied over the defaults",
		},
	}

	runCmd := func(ctx *cli.Context) error {
		setupLogging(ctx)
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		return run(cfg)
	}

	a.Action = runCmd
	a.Commands = []cli.Command{
		{
			Name:  "run",
			Usage: "open the window (default)",
			Description: `
Open a window and render the scene until it is closed.

Flags override the config file, which overrides the built-in defaults.
Click into the window to capture the pointer; Escape releases it.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "width",
					Value: d3.DefaultWidth,
					Usage: "window width",
				},
				cli.IntFlag{
					Name:  "height",
					Value: d3.DefaultHeight,
					Usage: "window height",
				},
				cli.StringFlag{
					Name:  "title",
					Value: d3.DefaultTitle,
					Usage: "window title",
				},
				cli.StringFlag{
					Name:  "present-mode",
					Value: "vsync",
					Usage: "vsync, immediate or mailbox",
				},
			},
			Action: runCmd,
		},
		{
			Name:  "devices",
			Usage: "list available GPU adapters",
			Action: func(ctx *cli.Context) error {
				setupLogging(ctx)
				return listDevices(ctx.App.Writer, backend)
			},
		},
	}
	return a
}
