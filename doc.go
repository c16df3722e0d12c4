// Package d3 is a minimal real-time 3D rendering harness built on gogpu/wgpu.
//
// # Overview
//
// d3 opens a window, acquires a GPU device through the wgpu HAL, and redraws
// a scene every frame from the point of view of a first-person camera driven
// by keyboard and mouse input. The scene is a single colored triangle; the
// interesting part is the plumbing around it.
//
// # Quick Start
//
//	go run ./cmd/d3            # 1920x1080 window, vsync
//	go run ./cmd/d3 -v run --width 1280 --height 720 --present-mode mailbox
//	go run ./cmd/d3 devices    # list GPU adapters
//
// Settings can also come from a YAML file (see Config and LoadConfig):
//
//	go run ./cmd/d3 --config d3.yaml
//
// Embedding the harness means handing an app.LoadState to a host loop
// that implements app.EventLoop; cmd/d3 uses the gogpu loop in
// internal/platform, which shares its GPU device with the renderer:
//
//	cfg := d3.DefaultConfig()
//	err := platform.Run(cfg, app.NewLoadState(cfg))
//
// # Architecture
//
// The harness is organized into:
//   - camera: eye position, yaw/pitch orientation, view-projection math
//   - mesh: vertex layout and GPU-resident vertex/index buffers
//   - renderer: device or hosted device, surface, pipeline, camera uniform, frames in flight
//   - app: input state, the per-frame protocol and the Unloaded/Loaded state machine
//   - internal/platform: gogpu window, gpucontext input and the event loop
//
// Control flows one way:
//
//	platform loop → app.LoadState → app.Application → renderer.Renderer → GPU
//
// # Controls
//
// Click inside the window to capture the pointer. While captured, W/A/S/D
// move on the horizontal plane, Space and Left Shift move up and down, and
// mouse motion looks around. Escape releases the pointer.
//
// # Logging
//
// d3 is silent by default. Call SetLogger to route diagnostics to any
// slog.Logger.
package d3
