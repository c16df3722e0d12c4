package app

import (
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/renderer"
)

// hostedWindow is a fake window that lends a noop device, as the gogpu
// platform window does.
type hostedWindow struct {
	*fakeWindow
	device hal.Device
	queue  hal.Queue
}

func (w *hostedWindow) HalDevice() any                        { return w.device }
func (w *hostedWindow) HalQueue() any                         { return w.queue }
func (w *hostedWindow) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (w *hostedWindow) CurrentView() hal.TextureView          { return nil }

func newHostedWindow(t *testing.T) *hostedWindow {
	t.Helper()
	instance, err := noop.API{}.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance: %v", err)
	}
	openDev, err := instance.EnumerateAdapters(nil)[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return &hostedWindow{fakeWindow: newFakeWindow(320, 240), device: openDev.Device, queue: openDev.Queue}
}

func TestNewRendererOnHostDevice(t *testing.T) {
	w := newHostedWindow(t)

	fr, err := NewRenderer(w, nil, d3.DefaultConfig())
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	defer fr.Destroy()

	r, ok := fr.(*renderer.Renderer)
	if !ok {
		t.Fatalf("NewRenderer returned %T", fr)
	}
	if cfg := r.SurfaceConfig(); cfg.Format != gputypes.TextureFormatBGRA8Unorm || cfg.Width != 320 {
		t.Errorf("SurfaceConfig() = %+v, want the host's format and size", cfg)
	}
	// Outside a host frame there is nothing to draw into.
	if err := r.Render(); !renderer.IsRecoverable(err) {
		t.Errorf("Render() = %v, want a recoverable error", err)
	}
}

func TestNewRendererRejects(t *testing.T) {
	if _, err := NewRenderer(newFakeWindow(320, 240), nil, d3.DefaultConfig()); err == nil {
		t.Error("NewRenderer accepted a window with no GPU target")
	}
	cfg := d3.DefaultConfig().WithPresentMode("sometimes")
	if _, err := NewRenderer(newHostedWindow(t), nil, cfg); err == nil {
		t.Error("NewRenderer accepted an unknown present mode")
	}
}
