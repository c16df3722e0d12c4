package app

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/camera"
	"github.com/gogpu/d3/renderer"
)

// Window is the host window as the application sees it.
//
// A window that also implements renderer.Host or renderer.SurfaceSource
// can be rendered to by NewRenderer.
type Window interface {
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
	// Size returns the window size in screen coordinates.
	Size() (width, height int)
	// SetCursorGrab confines (true) or releases (false) the pointer.
	SetCursorGrab(grab bool) error
	// SetCursorVisible shows or hides the pointer.
	SetCursorVisible(visible bool)
	// RequestRedraw schedules a RedrawRequested event.
	RequestRedraw()
}

// EventLoop is the host loop driving a Handler.
type EventLoop interface {
	CreateWindow(title string, width, height int) (Window, error)
	Exit()
}

// Handler receives host loop callbacks. LoadState implements it.
type Handler interface {
	// Resumed is called once the loop can create windows. An error stops
	// the loop.
	Resumed(loop EventLoop) error
	// WindowEvent delivers one event. An error stops the loop.
	WindowEvent(loop EventLoop, ev Event) error
	// Exiting is called once before the loop returns.
	Exiting()
}

// FrameRenderer is the part of the renderer the application drives.
type FrameRenderer interface {
	Render() error
	Resize(width, height uint32) error
	Reconfigure() error
	UpdateCameraUniform(m mgl32.Mat4)
	Destroy()
}

var _ FrameRenderer = (*renderer.Renderer)(nil)

// RendererFactory creates the renderer for a freshly created window.
type RendererFactory func(w Window, cam *camera.Camera, cfg d3.Config) (FrameRenderer, error)

// NewRenderer is the default RendererFactory. It draws on the host's
// device when w is a renderer.Host, and opens its own device and surface
// when w is a renderer.SurfaceSource.
func NewRenderer(w Window, cam *camera.Camera, cfg d3.Config) (FrameRenderer, error) {
	mode, err := renderer.ParsePresentMode(cfg.PresentMode)
	if err != nil {
		return nil, err
	}

	var r *renderer.Renderer
	switch target := w.(type) {
	case renderer.Host:
		r, err = renderer.NewHosted(target, cam, renderer.WithPresentMode(mode))
	case renderer.SurfaceSource:
		r, err = renderer.New(target, cam, renderer.WithPresentMode(mode))
	default:
		return nil, fmt.Errorf("window %T exposes neither a GPU host nor native handles", w)
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}
