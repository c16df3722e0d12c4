package renderer

import (
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/d3/camera"
)

// createNoopDevice creates a noop device and queue for testing.
// Returns the device, queue, and a cleanup function.
func createNoopDevice(t *testing.T) (hal.Device, hal.Queue, func()) {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	cleanup := func() {
		openDev.Device.Destroy()
		instance.Destroy()
	}
	return openDev.Device, openDev.Queue, cleanup
}

// fakeSurface hands out noop textures and records what the renderer asks
// of it. acquireErr, presentErr and configureErr are returned once.
type fakeSurface struct {
	device hal.Device
	caps   SurfaceCapabilities

	acquireErr   error
	presentErr   error
	configureErr error
	suboptimal   bool

	configured []SurfaceConfig
	acquired   int
	presented  int
	discarded  int
	destroyed  bool

	textures []hal.Texture
}

func newFakeSurface(device hal.Device) *fakeSurface {
	return &fakeSurface{
		device: device,
		caps: SurfaceCapabilities{
			Formats:      []gputypes.TextureFormat{gputypes.TextureFormatBGRA8Unorm, gputypes.TextureFormatBGRA8UnormSrgb},
			PresentModes: []PresentMode{PresentModeVsync, PresentModeImmediate},
		},
	}
}

func (f *fakeSurface) capabilities() SurfaceCapabilities { return f.caps }

func (f *fakeSurface) configure(_ hal.Device, cfg SurfaceConfig) error {
	if err := f.configureErr; err != nil {
		f.configureErr = nil
		return err
	}
	f.configured = append(f.configured, cfg)
	return nil
}

func (f *fakeSurface) acquire() (*surfaceFrame, error) {
	if err := f.acquireErr; err != nil {
		f.acquireErr = nil
		return nil, err
	}
	cfg := f.configured[len(f.configured)-1]
	tex, err := f.device.CreateTexture(&hal.TextureDescriptor{
		Label:         "fake_surface_texture",
		Size:          hal.Extent3D{Width: cfg.Width, Height: cfg.Height, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cfg.Format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return nil, err
	}
	f.textures = append(f.textures, tex)
	f.acquired++
	return &surfaceFrame{texture: tex, suboptimal: f.suboptimal, native: tex}, nil
}

func (f *fakeSurface) present(_ hal.Queue, _ *surfaceFrame) error {
	if err := f.presentErr; err != nil {
		f.presentErr = nil
		return err
	}
	f.presented++
	return nil
}

func (f *fakeSurface) discard(_ *surfaceFrame) { f.discarded++ }

func (f *fakeSurface) destroy(device hal.Device) {
	for _, tex := range f.textures {
		device.DestroyTexture(tex)
	}
	f.textures = nil
	f.destroyed = true
}

func newTestCamera() *camera.Camera {
	return camera.New(mgl32.Vec3{0, 0, 3}, -math.Pi/2, 0, 800, 600)
}

// newTestRenderer builds a renderer on a noop device and a fake surface.
func newTestRenderer(t *testing.T, cam *camera.Camera, opts ...Option) (*Renderer, *fakeSurface) {
	t.Helper()
	device, queue, cleanup := createNoopDevice(t)
	t.Cleanup(cleanup)

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	surface := newFakeSurface(device)
	r, err := newRenderer(device, queue, surface, cam, o, 800, 600)
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	t.Cleanup(r.Destroy)
	return r, surface
}

func TestNewRendererConfiguresSurface(t *testing.T) {
	r, surface := newTestRenderer(t, newTestCamera())

	if len(surface.configured) != 1 {
		t.Fatalf("configure called %d times, want 1", len(surface.configured))
	}
	cfg := r.SurfaceConfig()
	if cfg != surface.configured[0] {
		t.Errorf("SurfaceConfig() = %+v, surface got %+v", cfg, surface.configured[0])
	}
	if cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("size = %dx%d, want 800x600", cfg.Width, cfg.Height)
	}
	if cfg.Format != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("Format = %v, want the sRGB format", cfg.Format)
	}
	if cfg.PresentMode != PresentModeVsync || cfg.FrameLatency != 2 {
		t.Errorf("PresentMode = %v, FrameLatency = %d", cfg.PresentMode, cfg.FrameLatency)
	}
}

func TestNewRendererZeroSize(t *testing.T) {
	device, queue, cleanup := createNoopDevice(t)
	defer cleanup()

	_, err := newRenderer(device, queue, newFakeSurface(device), nil, defaultOptions(), 0, 600)
	if !errors.Is(err, ErrZeroSize) {
		t.Errorf("err = %v, want ErrZeroSize", err)
	}
}

func TestInitialUniformIsCameraViewProjection(t *testing.T) {
	cam := newTestCamera()
	r, _ := newTestRenderer(t, cam)

	got, ok := r.UploadedMatrix()
	if !ok {
		t.Fatal("no camera uniform")
	}
	if got != cam.ViewProjection() {
		t.Errorf("uploaded %v, want %v", got, cam.ViewProjection())
	}
}

func TestUpdateCameraUniform(t *testing.T) {
	r, _ := newTestRenderer(t, newTestCamera())

	m := mgl32.Translate3D(1, 2, 3)
	r.UpdateCameraUniform(m)
	if got, _ := r.UploadedMatrix(); got != m {
		t.Errorf("uploaded %v, want %v", got, m)
	}
}

func TestWithoutCamera(t *testing.T) {
	r, surface := newTestRenderer(t, nil)

	if _, ok := r.UploadedMatrix(); ok {
		t.Error("UploadedMatrix() reported a uniform without a camera")
	}
	if r.pipeline.bindLayout != nil {
		t.Error("pipeline has a bind group layout without a camera")
	}
	r.UpdateCameraUniform(mgl32.Ident4()) // no-op

	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if surface.presented != 1 {
		t.Errorf("presented = %d, want 1", surface.presented)
	}
}

func TestRender(t *testing.T) {
	r, surface := newTestRenderer(t, newTestCamera())

	for i := range 3 {
		if err := r.Render(); err != nil {
			t.Fatalf("Render #%d: %v", i, err)
		}
	}
	if surface.acquired != 3 || surface.presented != 3 {
		t.Errorf("acquired %d, presented %d; want 3, 3", surface.acquired, surface.presented)
	}
	if surface.discarded != 0 {
		t.Errorf("discarded = %d, want 0", surface.discarded)
	}
}

func TestRenderRecoverableErrors(t *testing.T) {
	tests := []struct {
		name       string
		acquireErr error
		presentErr error
	}{
		{"acquire outdated", fmt.Errorf("backend: %w", ErrSurfaceOutdated), nil},
		{"acquire lost", ErrSurfaceLost, nil},
		{"acquire timeout", ErrSurfaceTimeout, nil},
		{"present outdated", nil, ErrSurfaceOutdated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, surface := newTestRenderer(t, newTestCamera())
			surface.acquireErr = tt.acquireErr
			surface.presentErr = tt.presentErr

			err := r.Render()
			if !IsRecoverable(err) {
				t.Fatalf("Render() = %v, want a recoverable error", err)
			}
			if err := r.Reconfigure(); err != nil {
				t.Fatalf("Reconfigure: %v", err)
			}
			if len(surface.configured) != 2 {
				t.Errorf("configure called %d times, want 2", len(surface.configured))
			}

			// The next frame goes through.
			if err := r.Render(); err != nil {
				t.Fatalf("Render after reconfigure: %v", err)
			}
		})
	}
}

func TestRenderFatalError(t *testing.T) {
	r, surface := newTestRenderer(t, newTestCamera())
	surface.acquireErr = errors.New("device removed")

	err := r.Render()
	if err == nil || IsRecoverable(err) {
		t.Errorf("Render() = %v, want a fatal error", err)
	}
}

func TestRenderSuboptimalReconfigures(t *testing.T) {
	r, surface := newTestRenderer(t, newTestCamera())
	surface.suboptimal = true

	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if surface.presented != 1 || len(surface.configured) != 2 {
		t.Errorf("presented %d, configured %d; want 1, 2", surface.presented, len(surface.configured))
	}
}

func TestResize(t *testing.T) {
	r, surface := newTestRenderer(t, newTestCamera())

	if err := r.Resize(1024, 768); err != nil {
		t.Fatalf("Resize: %v", err)
	}
	cfg := r.SurfaceConfig()
	if cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("size = %dx%d, want 1024x768", cfg.Width, cfg.Height)
	}
	if last := surface.configured[len(surface.configured)-1]; last != cfg {
		t.Errorf("surface configured with %+v, want %+v", last, cfg)
	}
}

func TestResizeFailureKeepsConfig(t *testing.T) {
	r, surface := newTestRenderer(t, newTestCamera())
	surface.configureErr = errors.New("out of memory")

	if err := r.Resize(1024, 768); err == nil {
		t.Fatal("Resize succeeded although configure failed")
	}
	if cfg := r.SurfaceConfig(); cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("failed resize changed the size to %dx%d", cfg.Width, cfg.Height)
	}

	// Reconfigure goes back to the size the surface last accepted.
	if err := r.Reconfigure(); err != nil {
		t.Fatalf("Reconfigure: %v", err)
	}
	if last := surface.configured[len(surface.configured)-1]; last.Width != 800 || last.Height != 600 {
		t.Errorf("reconfigured to %dx%d, want 800x600", last.Width, last.Height)
	}
}

func TestResizeZero(t *testing.T) {
	r, surface := newTestRenderer(t, newTestCamera())

	for _, size := range [][2]uint32{{0, 600}, {800, 0}, {0, 0}} {
		if err := r.Resize(size[0], size[1]); !errors.Is(err, ErrZeroSize) {
			t.Errorf("Resize(%d, %d) = %v, want ErrZeroSize", size[0], size[1], err)
		}
	}
	if len(surface.configured) != 1 {
		t.Errorf("zero resize reconfigured the surface")
	}
	if cfg := r.SurfaceConfig(); cfg.Width != 800 || cfg.Height != 600 {
		t.Errorf("zero resize changed the size to %dx%d", cfg.Width, cfg.Height)
	}
}

func TestDestroy(t *testing.T) {
	r, surface := newTestRenderer(t, newTestCamera())
	if err := r.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}

	r.Destroy()
	r.Destroy()

	if !surface.destroyed {
		t.Error("surface not destroyed")
	}
	if err := r.Render(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Render after Destroy = %v, want ErrNotInitialized", err)
	}
	if err := r.Reconfigure(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Reconfigure after Destroy = %v, want ErrNotInitialized", err)
	}
}

func TestPresentModeOption(t *testing.T) {
	r, _ := newTestRenderer(t, nil, WithPresentMode(PresentModeImmediate), WithLabel("test"))
	if got := r.SurfaceConfig().PresentMode; got != PresentModeImmediate {
		t.Errorf("PresentMode = %v, want immediate", got)
	}
	if r.label != "test" {
		t.Errorf("label = %q, want test", r.label)
	}

	// Mailbox is not in the fake's capabilities.
	r, _ = newTestRenderer(t, nil, WithPresentMode(PresentModeMailbox))
	if got := r.SurfaceConfig().PresentMode; got != PresentModeVsync {
		t.Errorf("PresentMode = %v, want vsync fallback", got)
	}
}

type fakeWindow struct{}

func (fakeWindow) NativeHandles() (uintptr, uintptr) { return 1, 1 }
func (fakeWindow) FramebufferSize() (int, int)       { return 320, 240 }

func TestNewWithNoopBackend(t *testing.T) {
	r, err := New(fakeWindow{}, newTestCamera(), WithBackend(noop.API{}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer r.Destroy()

	if r.Info().Name == "" {
		t.Error("Info().Name is empty")
	}
	cfg := r.SurfaceConfig()
	if cfg.Width != 320 || cfg.Height != 240 {
		t.Errorf("size = %dx%d, want 320x240", cfg.Width, cfg.Height)
	}
	// The noop surface lists BGRA8Unorm first and no sRGB format.
	if cfg.Format != gputypes.TextureFormatBGRA8Unorm {
		t.Errorf("Format = %v, want BGRA8Unorm", cfg.Format)
	}
	if cfg.AlphaMode != gputypes.CompositeAlphaModeOpaque {
		t.Errorf("AlphaMode = %v, want the surface's first mode", cfg.AlphaMode)
	}
	if err := r.Render(); err != nil {
		t.Errorf("Render: %v", err)
	}
}

func TestNewInvalidWindow(t *testing.T) {
	_, err := New(zeroWindow{}, nil, WithBackend(noop.API{}))
	if !errors.Is(err, ErrInvalidWindow) {
		t.Errorf("err = %v, want ErrInvalidWindow", err)
	}
}

type zeroWindow struct{}

func (zeroWindow) NativeHandles() (uintptr, uintptr) { return 0, 0 }
func (zeroWindow) FramebufferSize() (int, int)       { return 320, 240 }

// stallingQueue completes submissions only up to completed.
type stallingQueue struct {
	hal.Queue
	submitted uint64
	completed uint64
}

func (q *stallingQueue) Submit([]hal.CommandBuffer) (uint64, error) {
	q.submitted++
	return q.submitted, nil
}

func (q *stallingQueue) PollCompleted() uint64 { return q.completed }

// countingDevice counts what the renderer releases.
type countingDevice struct {
	hal.Device
	freed          int
	viewsDestroyed int
	waitIdle       int
}

func (d *countingDevice) FreeCommandBuffer(cb hal.CommandBuffer) {
	d.freed++
	d.Device.FreeCommandBuffer(cb)
}

func (d *countingDevice) DestroyTextureView(v hal.TextureView) {
	d.viewsDestroyed++
	d.Device.DestroyTextureView(v)
}

func (d *countingDevice) WaitIdle() error {
	d.waitIdle++
	return d.Device.WaitIdle()
}

func TestRenderKeepsFramesInFlight(t *testing.T) {
	base, baseQueue, cleanup := createNoopDevice(t)
	defer cleanup()
	device := &countingDevice{Device: base}
	queue := &stallingQueue{Queue: baseQueue}
	surface := newFakeSurface(base)

	r, err := newRenderer(device, queue, surface, newTestCamera(), defaultOptions(), 800, 600)
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	defer r.Destroy()
	r.waitTimeout = 20 * time.Millisecond

	// Nothing completes, yet FrameLatency frames go through.
	for i := range 2 {
		if err := r.Render(); err != nil {
			t.Fatalf("Render #%d: %v", i, err)
		}
	}
	if device.freed != 0 || device.viewsDestroyed != 0 {
		t.Errorf("released %d command buffers and %d views still in flight", device.freed, device.viewsDestroyed)
	}
	if r.inflight.len() != 2 || surface.presented != 2 {
		t.Errorf("in flight %d, presented %d; want 2, 2", r.inflight.len(), surface.presented)
	}

	// The ring is full and the GPU is stuck.
	err = r.Render()
	if !errors.Is(err, ErrGPUTimeout) || IsRecoverable(err) {
		t.Fatalf("Render() = %v, want a fatal ErrGPUTimeout", err)
	}
	if surface.acquired != 2 {
		t.Errorf("acquired a surface texture with no free slot")
	}

	// The oldest frame finishes; its slot is reused.
	queue.completed = 1
	if err := r.Render(); err != nil {
		t.Fatalf("Render after completion: %v", err)
	}
	if device.freed != 1 || device.viewsDestroyed != 1 || r.inflight.len() != 2 {
		t.Errorf("freed %d, views destroyed %d, in flight %d; want 1, 1, 2",
			device.freed, device.viewsDestroyed, r.inflight.len())
	}

	r.Destroy()
	if device.waitIdle != 1 || device.freed != 3 || device.viewsDestroyed != 3 {
		t.Errorf("Destroy: waitIdle %d, freed %d, views destroyed %d; want 1, 3, 3",
			device.waitIdle, device.freed, device.viewsDestroyed)
	}
}

func TestSubmitFailureReleasesFrame(t *testing.T) {
	base, baseQueue, cleanup := createNoopDevice(t)
	defer cleanup()
	device := &countingDevice{Device: base}
	surface := newFakeSurface(base)

	r, err := newRenderer(device, failingQueue{baseQueue}, surface, nil, defaultOptions(), 800, 600)
	if err != nil {
		t.Fatalf("newRenderer: %v", err)
	}
	defer r.Destroy()

	if err := r.Render(); err == nil {
		t.Fatal("Render succeeded although submit failed")
	}
	if device.freed != 1 || device.viewsDestroyed != 1 || r.inflight.len() != 0 {
		t.Errorf("freed %d, views destroyed %d, in flight %d; want 1, 1, 0",
			device.freed, device.viewsDestroyed, r.inflight.len())
	}
	if surface.discarded != 1 || surface.presented != 0 {
		t.Errorf("discarded %d, presented %d; want 1, 0", surface.discarded, surface.presented)
	}
}

type failingQueue struct{ hal.Queue }

func (failingQueue) Submit([]hal.CommandBuffer) (uint64, error) {
	return 0, errors.New("device lost")
}
