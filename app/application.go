// Package app ties a window, a camera and a renderer together: it turns
// window events into camera movement and drives one frame per redraw.
//
// LoadState is the entry point. It starts Unloaded, builds everything
// when the host loop resumes and stays Loaded until exit.
package app

import (
	"fmt"
	"time"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/camera"
	"github.com/gogpu/d3/renderer"
)

// InputState is the keyboard and pointer state between frames.
type InputState struct {
	// KeysDown holds the keys currently pressed.
	KeysDown camera.KeySet
	// HasFocus is true while the pointer is captured.
	HasFocus bool
	// LastFrame is the time of the last update.
	LastFrame time.Time
	// LastDelta is the duration of the last update step. Pointer motion
	// between frames is scaled by it.
	LastDelta time.Duration
}

// Application owns the renderer, the camera and the input state.
type Application struct {
	window   Window
	renderer FrameRenderer
	camera   *camera.Camera
	input    InputState
}

// NewApplication returns an application whose first frame step is
// measured from now.
func NewApplication(window Window, r FrameRenderer, cam *camera.Camera, now time.Time) *Application {
	return &Application{
		window:   window,
		renderer: r,
		camera:   cam,
		input:    InputState{LastFrame: now},
	}
}

// Camera returns the camera the application moves.
func (a *Application) Camera() *camera.Camera { return a.camera }

// Input returns a snapshot of the input state.
func (a *Application) Input() InputState { return a.input }

// HandleEvent applies a window event. A Resized event with a zero
// dimension panics.
func (a *Application) HandleEvent(ev Event) {
	switch ev := ev.(type) {
	case Resized:
		a.resize(ev.Width, ev.Height)
	case KeyboardInput:
		a.handleKey(ev)
	case MouseButtonPressed:
		a.captureCursor()
	case PointerMotion:
		if a.input.HasFocus {
			a.camera.UpdateRotation(float32(ev.DX), float32(ev.DY), float32(a.input.LastDelta.Seconds()))
		}
	}
}

func (a *Application) resize(width, height int) {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("app: resize to %dx%d", width, height))
	}
	if err := a.renderer.Resize(uint32(width), uint32(height)); err != nil { //nolint:gosec // checked positive above
		panic(fmt.Sprintf("app: %v", err))
	}
	a.camera.Resize(width, height)
}

func (a *Application) handleKey(ev KeyboardInput) {
	if !ev.Known {
		d3.Logger().Debug("dropped key", "raw", ev.Raw, "pressed", ev.Pressed)
		return
	}
	switch {
	case ev.Key == camera.KeyEscape && ev.Pressed:
		a.releaseCursor()
	case ev.Pressed:
		a.input.KeysDown.Press(ev.Key)
	default:
		a.input.KeysDown.Release(ev.Key)
	}
}

func (a *Application) captureCursor() {
	if err := a.window.SetCursorGrab(true); err != nil {
		d3.Logger().Warn("cursor grab failed", "error", err)
	}
	a.window.SetCursorVisible(false)
	a.input.HasFocus = true
}

// releaseCursor gives the pointer back and forgets held keys, whose
// releases will not be seen once focus moves elsewhere.
func (a *Application) releaseCursor() {
	if err := a.window.SetCursorGrab(false); err != nil {
		d3.Logger().Warn("cursor release failed", "error", err)
	}
	a.window.SetCursorVisible(true)
	a.input.HasFocus = false
	a.input.KeysDown.Clear()
}

// Update advances the simulation to now and uploads the resulting
// view-projection.
func (a *Application) Update(now time.Time) {
	dt := now.Sub(a.input.LastFrame)
	a.input.LastFrame = now
	a.input.LastDelta = dt

	if a.input.HasFocus {
		a.camera.UpdatePosition(a.input.KeysDown, float32(dt.Seconds()))
	}
	a.renderer.UpdateCameraUniform(a.camera.ViewProjection())
}

// Frame renders with the uniform uploaded by the previous Update, then
// updates for the next frame. A frame lost to a recoverable surface error
// reconfigures the surface and skips the update. Other errors are returned.
func (a *Application) Frame(now time.Time) error {
	if err := a.renderer.Render(); err != nil {
		if !renderer.IsRecoverable(err) {
			return fmt.Errorf("render: %w", err)
		}
		d3.Logger().Warn("frame skipped", "error", err)
		if err := a.renderer.Reconfigure(); err != nil {
			return fmt.Errorf("reconfigure: %w", err)
		}
		return nil
	}
	a.Update(now)
	return nil
}

// Close destroys the renderer.
func (a *Application) Close() {
	a.renderer.Destroy()
}
