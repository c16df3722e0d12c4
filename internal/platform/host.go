package platform

import (
	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu"
	"github.com/gogpu/wgpu/hal"
)

// windowHost is the part of the gogpu application the window drives.
type windowHost interface {
	Size() (width, height int)
	PhysicalSize() (width, height int)
	SetCursorMode(mode gpucontext.CursorMode)
	SetCursor(cursor gpucontext.CursorShape)
	RequestRedraw()
	Quit()
}

var _ windowHost = (*gogpu.App)(nil)

// deviceSource exposes the host's GPU once it is running.
type deviceSource interface {
	HalDevice() any
	HalQueue() any
	SurfaceFormat() gputypes.TextureFormat
}

// frameSource is the frame gogpu is drawing.
type frameSource interface {
	SurfaceView() hal.TextureView
}

// gogpuDevices reaches the HAL device behind a running gogpu application.
type gogpuDevices struct {
	app *gogpu.App
}

func (d gogpuDevices) device() *wgpu.Device {
	provider := d.app.GPUContextProvider()
	if provider == nil {
		return nil
	}
	dev, _ := provider.Device().(*wgpu.Device)
	return dev
}

func (d gogpuDevices) HalDevice() any {
	if dev := d.device(); dev != nil {
		if hd := dev.HalDevice(); hd != nil {
			return hd
		}
	}
	return nil
}

func (d gogpuDevices) HalQueue() any {
	if dev := d.device(); dev != nil {
		if hq := dev.HalQueue(); hq != nil {
			return hq
		}
	}
	return nil
}

// SurfaceFormat reads gogpu's own provider: the gpucontext one reports
// sRGB formats as undefined.
func (d gogpuDevices) SurfaceFormat() gputypes.TextureFormat {
	if p := d.app.DeviceProvider(); p != nil {
		return p.SurfaceFormat()
	}
	return gputypes.TextureFormatUndefined
}

// gogpuFrame acquires the surface lazily, as gogpu does for any drawing.
type gogpuFrame struct {
	dc *gogpu.Context
}

func (f gogpuFrame) SurfaceView() hal.TextureView {
	view := f.dc.SurfaceView()
	if view == nil {
		return nil
	}
	return view.HalTextureView()
}
