package app

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/d3/renderer"
)

type fakeWindow struct {
	width, height int

	grabbed   bool
	visible   bool
	grabErr   error
	redraws   int
	grabCalls int
}

func newFakeWindow(width, height int) *fakeWindow {
	return &fakeWindow{width: width, height: height, visible: true}
}

func (w *fakeWindow) FramebufferSize() (int, int)   { return w.width, w.height }
func (w *fakeWindow) Size() (int, int)              { return w.width, w.height }
func (w *fakeWindow) SetCursorVisible(visible bool) { w.visible = visible }
func (w *fakeWindow) RequestRedraw()                { w.redraws++ }

func (w *fakeWindow) SetCursorGrab(grab bool) error {
	w.grabCalls++
	if w.grabErr != nil {
		return w.grabErr
	}
	w.grabbed = grab
	return nil
}

// fakeRenderer records calls. "rendered" captures the uniform that was
// current when each frame was drawn.
type fakeRenderer struct {
	uniform  mgl32.Mat4
	rendered []mgl32.Mat4
	uploads  int

	renderErrs   []error // consumed one per Render
	resizes      [][2]uint32
	reconfigures int
	destroyed    int
}

func (r *fakeRenderer) Render() error {
	if len(r.renderErrs) > 0 {
		err := r.renderErrs[0]
		r.renderErrs = r.renderErrs[1:]
		if err != nil {
			return err
		}
	}
	r.rendered = append(r.rendered, r.uniform)
	return nil
}

func (r *fakeRenderer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return renderer.ErrZeroSize
	}
	r.resizes = append(r.resizes, [2]uint32{width, height})
	return nil
}

func (r *fakeRenderer) Reconfigure() error {
	r.reconfigures++
	return nil
}

func (r *fakeRenderer) UpdateCameraUniform(m mgl32.Mat4) {
	r.uniform = m
	r.uploads++
}

func (r *fakeRenderer) Destroy() { r.destroyed++ }

type fakeLoop struct {
	window    *fakeWindow
	createErr error
	created   int
	exited    bool
}

func (l *fakeLoop) CreateWindow(_ string, width, height int) (Window, error) {
	if l.createErr != nil {
		return nil, l.createErr
	}
	l.created++
	l.window = newFakeWindow(width, height)
	return l.window, nil
}

func (l *fakeLoop) Exit() { l.exited = true }

var errDeviceRemoved = errors.New("device removed")
