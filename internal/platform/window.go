package platform

import (
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/app"
	"github.com/gogpu/d3/renderer"
)

// window is the gogpu window as the application sees it. Input callbacks
// arrive on the main thread and are queued as app events for the next
// frame. Cursor changes requested during a frame are applied on the main
// thread by applyCursor.
type window struct {
	host    windowHost
	devices deviceSource

	mu      sync.Mutex
	events  []app.Event
	redraw  bool
	grabbed bool
	cursor  *cursorState // pending, applied by applyCursor

	frame frameSource // set while a frame is drawn
}

// cursorState is the cursor mode and shape to apply on the main thread.
type cursorState struct {
	mode  gpucontext.CursorMode
	shape gpucontext.CursorShape
}

var (
	_ app.Window    = (*window)(nil)
	_ renderer.Host = (*window)(nil)
)

func newWindow(host windowHost, devices deviceSource) *window {
	return &window{host: host, devices: devices}
}

// push queues ev and wakes the loop so a frame delivers it.
func (w *window) push(ev app.Event) {
	w.mu.Lock()
	w.events = append(w.events, ev)
	w.mu.Unlock()
	w.host.RequestRedraw()
}

// drain returns the queued events and empties the queue.
func (w *window) drain() []app.Event {
	w.mu.Lock()
	defer w.mu.Unlock()
	events := w.events
	w.events = nil
	return events
}

// takeRedraw reports and clears a pending redraw request.
func (w *window) takeRedraw() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	r := w.redraw
	w.redraw = false
	return r
}

func (w *window) key(k gpucontext.Key, pressed bool) {
	code, ok := translateKey(k)
	w.push(app.KeyboardInput{
		Key:     code,
		Known:   ok,
		Raw:     int(k),
		Pressed: pressed,
	})
}

func (w *window) mousePressed(b gpucontext.MouseButton) {
	w.push(app.MouseButtonPressed{Button: int(b)})
}

// pointer turns relative motion into PointerMotion while the cursor is
// locked. gogpu reports the motion as DeltaX and DeltaY in that mode.
func (w *window) pointer(ev gpucontext.PointerEvent) {
	if ev.Type != gpucontext.PointerMove {
		return
	}
	w.mu.Lock()
	grabbed := w.grabbed
	w.mu.Unlock()
	if !grabbed || (ev.DeltaX == 0 && ev.DeltaY == 0) {
		return
	}
	w.push(app.PointerMotion{DX: ev.DeltaX, DY: ev.DeltaY})
}

func (w *window) resized(width, height int) {
	if width <= 0 || height <= 0 {
		// Minimized. The surface keeps its last size until restored.
		d3.Logger().Debug("zero framebuffer size ignored")
		return
	}
	w.push(app.Resized{Width: width, Height: height})
}

// applyCursor hands a pending cursor change to gogpu. It runs on the main
// thread, where platform cursor calls are valid.
func (w *window) applyCursor() {
	w.mu.Lock()
	c := w.cursor
	w.cursor = nil
	w.mu.Unlock()
	if c == nil {
		return
	}
	w.host.SetCursorMode(c.mode)
	w.host.SetCursor(c.shape)
}

// setCursor records the cursor for the next applyCursor. Callers hold w.mu.
func (w *window) setCursor(mode gpucontext.CursorMode, shape gpucontext.CursorShape) {
	w.cursor = &cursorState{mode: mode, shape: shape}
}

// Size returns the window size in logical points.
func (w *window) Size() (int, int) {
	return w.host.Size()
}

// FramebufferSize returns the drawable size in pixels.
func (w *window) FramebufferSize() (int, int) {
	return w.host.PhysicalSize()
}

// SetCursorGrab locks the cursor to the window, hidden, with relative
// motion reporting, or releases it.
func (w *window) SetCursorGrab(grab bool) error {
	w.mu.Lock()
	w.grabbed = grab
	if grab {
		w.setCursor(gpucontext.CursorModeLocked, gpucontext.CursorNone)
	} else {
		w.setCursor(gpucontext.CursorModeNormal, gpucontext.CursorDefault)
	}
	w.mu.Unlock()
	w.host.RequestRedraw()
	return nil
}

// SetCursorVisible hides or shows the cursor. A grabbed cursor is always
// hidden.
func (w *window) SetCursorVisible(visible bool) {
	w.mu.Lock()
	if w.grabbed {
		w.mu.Unlock()
		return
	}
	shape := gpucontext.CursorDefault
	if !visible {
		shape = gpucontext.CursorNone
	}
	w.setCursor(gpucontext.CursorModeNormal, shape)
	w.mu.Unlock()
	w.host.RequestRedraw()
}

// RequestRedraw schedules a RedrawRequested event for the next frame.
func (w *window) RequestRedraw() {
	w.mu.Lock()
	w.redraw = true
	w.mu.Unlock()
	w.host.RequestRedraw()
}

func (w *window) setFrame(f frameSource) {
	w.frame = f
}

// HalDevice returns the host's HAL device, or nil before the GPU is up.
func (w *window) HalDevice() any { return w.devices.HalDevice() }

// HalQueue returns the host's HAL queue, or nil before the GPU is up.
func (w *window) HalQueue() any { return w.devices.HalQueue() }

// SurfaceFormat returns the format of the window's frames.
func (w *window) SurfaceFormat() gputypes.TextureFormat { return w.devices.SurfaceFormat() }

// CurrentView returns the view of the frame being drawn, acquiring it on
// first use. It is nil outside a frame.
func (w *window) CurrentView() hal.TextureView {
	if w.frame == nil {
		return nil
	}
	return w.frame.SurfaceView()
}
