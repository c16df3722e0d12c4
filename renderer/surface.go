package renderer

import (
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// frameLatency is the maximum number of frames queued for presentation.
const frameLatency = 2

// SurfaceSource is a window the renderer can present to.
type SurfaceSource interface {
	// NativeHandles returns the platform display and window handles
	// (for example the X11 display and window, or 0 and an HWND).
	NativeHandles() (display, window uintptr)
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
}

// SurfaceConfig is the configuration applied to the presentation surface.
type SurfaceConfig struct {
	Format       gputypes.TextureFormat
	Width        uint32
	Height       uint32
	PresentMode  PresentMode
	AlphaMode    gputypes.CompositeAlphaMode
	FrameLatency uint32
}

// SurfaceCapabilities lists what a surface supports on the chosen adapter.
type SurfaceCapabilities struct {
	Formats      []gputypes.TextureFormat
	PresentModes []PresentMode
	AlphaModes   []gputypes.CompositeAlphaMode
}

// surfaceFrame is one acquired presentable texture. A frame either carries
// a texture the renderer views and releases itself, or a view borrowed
// from a host that owns it.
type surfaceFrame struct {
	texture    hal.Texture
	view       hal.TextureView
	suboptimal bool

	// native is the backend handle handed back on present or discard.
	native any
}

// surfaceTarget is the presentation surface as the renderer uses it.
// The hal surface implements it in production; tests substitute a fake.
type surfaceTarget interface {
	capabilities() SurfaceCapabilities
	configure(device hal.Device, cfg SurfaceConfig) error
	acquire() (*surfaceFrame, error)
	present(queue hal.Queue, frame *surfaceFrame) error
	discard(frame *surfaceFrame)
	destroy(device hal.Device)
}

// chooseSurfaceConfig picks the first sRGB format (or the first format),
// the requested present mode when supported (or Vsync), the first alpha
// mode the surface lists (or opaque), and the given size.
func chooseSurfaceConfig(caps SurfaceCapabilities, mode PresentMode, width, height uint32) SurfaceConfig {
	cfg := SurfaceConfig{
		Format:       gputypes.TextureFormatBGRA8UnormSrgb,
		Width:        width,
		Height:       height,
		PresentMode:  PresentModeVsync,
		AlphaMode:    gputypes.CompositeAlphaModeOpaque,
		FrameLatency: frameLatency,
	}

	if len(caps.Formats) > 0 {
		cfg.Format = caps.Formats[0]
		if i := slices.IndexFunc(caps.Formats, isSRGB); i >= 0 {
			cfg.Format = caps.Formats[i]
		}
	}

	if len(caps.AlphaModes) > 0 {
		cfg.AlphaMode = caps.AlphaModes[0]
	}
	if slices.Contains(caps.PresentModes, mode) {
		cfg.PresentMode = mode
	}
	return cfg
}

func isSRGB(f gputypes.TextureFormat) bool {
	switch f {
	case gputypes.TextureFormatBGRA8UnormSrgb, gputypes.TextureFormatRGBA8UnormSrgb:
		return true
	}
	return false
}
