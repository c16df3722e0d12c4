// Package platform hosts the application in a gogpu window.
//
// gogpu pumps window events on the main OS thread and draws frames on a
// render thread that owns the GPU device, blocking the main thread while a
// frame runs. The handler is resumed inside the first frame, once the
// device exists, and receives every later event inside a frame as well,
// so it never runs concurrently with itself.
//
// Call Run from main and do not call it concurrently.
package platform

import (
	"errors"
	"fmt"

	"github.com/gogpu/gogpu"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/app"
	"github.com/gogpu/d3/renderer"
)

// ErrWindowExists is returned when a second window is requested.
var ErrWindowExists = errors.New("platform: only one window is supported")

// Run opens the window described by cfg and drives handler until the
// window closes, the handler exits the loop, or the handler fails. The
// handler's error is returned.
func Run(cfg d3.Config, handler app.Handler) error {
	mode, err := renderer.ParsePresentMode(cfg.PresentMode)
	if err != nil {
		return err
	}

	ga := gogpu.NewApp(gogpu.DefaultConfig().
		WithTitle(cfg.Title).
		WithSize(cfg.Width, cfg.Height).
		WithVSync(mode == renderer.PresentModeVsync).
		WithContinuousRender(false))

	l := newLoop(ga, gogpuDevices{app: ga}, handler)
	l.bind(ga)

	d3.Logger().Info("event loop started", "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	if err := ga.Run(); err != nil {
		return fmt.Errorf("run window: %w", err)
	}
	return l.err
}

// loop implements app.EventLoop on top of a gogpu application.
type loop struct {
	host    windowHost
	handler app.Handler
	window  *window

	created bool
	resumed bool
	done    bool
	err     error
}

var _ app.EventLoop = (*loop)(nil)

func newLoop(host windowHost, devices deviceSource, handler app.Handler) *loop {
	return &loop{
		host:    host,
		handler: handler,
		window:  newWindow(host, devices),
	}
}

// bind registers the loop's callbacks with ga.
func (l *loop) bind(ga *gogpu.App) {
	ga.OnDraw(func(dc *gogpu.Context) { l.frame(gogpuFrame{dc: dc}) })
	ga.OnUpdate(func(float64) { l.window.applyCursor() })
	ga.OnResize(func(int, int) { l.window.resized(ga.PhysicalSize()) })
	ga.OnClose(l.close)

	events := ga.EventSource()
	events.OnKeyPress(func(k gpucontext.Key, _ gpucontext.Modifiers) { l.window.key(k, true) })
	events.OnKeyRelease(func(k gpucontext.Key, _ gpucontext.Modifiers) { l.window.key(k, false) })
	events.OnMousePress(func(b gpucontext.MouseButton, _, _ float64) { l.window.mousePressed(b) })
	if pointers, ok := events.(gpucontext.PointerEventSource); ok {
		pointers.OnPointer(l.window.pointer)
	} else {
		d3.Logger().Warn("host reports no pointer events, mouse look disabled")
	}
}

// CreateWindow hands out the application window. gogpu opens it before
// the loop starts, so title and size are already applied.
func (l *loop) CreateWindow(title string, width, height int) (app.Window, error) {
	if l.created {
		return nil, ErrWindowExists
	}
	l.created = true
	d3.Logger().Debug("window attached", "title", title, "width", width, "height", height)
	return l.window, nil
}

// Exit stops the loop after the current frame.
func (l *loop) Exit() {
	l.done = true
	l.host.Quit()
}

// fail records the first handler error and stops the loop.
func (l *loop) fail(err error) {
	if l.err == nil {
		l.err = err
	}
	l.Exit()
}

// frame runs on the render thread for every frame gogpu draws. It resumes
// the handler on the first one, then delivers queued events followed by a
// pending redraw.
func (l *loop) frame(f frameSource) {
	if l.done {
		return
	}
	l.window.setFrame(f)
	defer l.window.setFrame(nil)

	if !l.resumed {
		l.resumed = true
		if err := l.handler.Resumed(l); err != nil {
			l.fail(err)
			return
		}
	}

	for _, ev := range l.window.drain() {
		if err := l.handler.WindowEvent(l, ev); err != nil {
			l.fail(err)
			return
		}
		if l.done {
			return
		}
	}
	if l.window.takeRedraw() {
		if err := l.handler.WindowEvent(l, app.RedrawRequested{}); err != nil {
			l.fail(err)
		}
	}
}

// close runs on the render thread before gogpu destroys the device. A
// window closed by the user is reported as CloseRequested first.
func (l *loop) close() {
	if l.resumed && !l.done {
		if err := l.handler.WindowEvent(l, app.CloseRequested{}); err != nil && l.err == nil {
			l.err = err
		}
	}
	l.done = true
	l.handler.Exiting()
}
