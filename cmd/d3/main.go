// Command d3 opens a window and flies a first-person camera around a
// colored triangle.
//
// Usage:
//
//	d3 [-v|-vv] [--config d3.yaml] [run [--width W] [--height H] [--title T] [--present-mode M]]
//	d3 devices
package main

import (
	"fmt"
	"os"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/app"
	"github.com/gogpu/d3/internal/platform"
)

func main() {
	a := newApp(runWindow, nil)
	if err := a.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "d3:", err)
		os.Exit(1)
	}
}

// runWindow hosts the application until the window closes.
func runWindow(cfg d3.Config) error {
	return platform.Run(cfg, app.NewLoadState(cfg))
}
