package app

import "github.com/gogpu/d3/camera"

// Event is a window event delivered by the host loop.
type Event interface {
	event()
}

// CloseRequested is sent when the user asks to close the window.
type CloseRequested struct{}

// RedrawRequested is sent once per requested redraw.
type RedrawRequested struct{}

// Resized carries the new framebuffer size in pixels.
type Resized struct {
	Width, Height int
}

// KeyboardInput is a physical key press or release. Known is false when
// the platform could not translate the key; Raw then holds its native code.
type KeyboardInput struct {
	Key     camera.KeyCode
	Known   bool
	Raw     int
	Pressed bool
}

// MouseButtonPressed is sent when any mouse button goes down.
type MouseButtonPressed struct {
	Button int
}

// PointerMotion is relative pointer movement in pixels.
type PointerMotion struct {
	DX, DY float64
}

func (CloseRequested) event()     {}
func (RedrawRequested) event()    {}
func (Resized) event()            {}
func (KeyboardInput) event()      {}
func (MouseButtonPressed) event() {}
func (PointerMotion) event()      {}
