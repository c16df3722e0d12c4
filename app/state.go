package app

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/camera"
)

// Loaded is the state after the window and renderer exist.
type Loaded struct {
	Window Window
	App    *Application
}

// LoadState is the application lifecycle: Unloaded until the first
// Resumed, then Loaded for good.
type LoadState struct {
	cfg     d3.Config
	factory RendererFactory
	clock   func() time.Time

	loaded *Loaded
	closed bool
}

// StateOption configures a LoadState.
type StateOption func(*LoadState)

// WithRendererFactory replaces the GPU renderer, typically with a fake.
func WithRendererFactory(f RendererFactory) StateOption {
	return func(s *LoadState) {
		s.factory = f
	}
}

// WithClock replaces time.Now as the frame clock.
func WithClock(clock func() time.Time) StateOption {
	return func(s *LoadState) {
		s.clock = clock
	}
}

// NewLoadState returns an Unloaded state for cfg.
func NewLoadState(cfg d3.Config, opts ...StateOption) *LoadState {
	s := &LoadState{
		cfg:     cfg,
		factory: NewRenderer,
		clock:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Loaded returns the loaded state, or false while Unloaded.
func (s *LoadState) Loaded() (*Loaded, bool) {
	return s.loaded, s.loaded != nil
}

// Resumed creates the window, camera and renderer and moves to Loaded.
// It does nothing when already Loaded.
func (s *LoadState) Resumed(loop EventLoop) error {
	if s.loaded != nil {
		return nil
	}

	window, err := loop.CreateWindow(s.cfg.Title, s.cfg.Width, s.cfg.Height)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.RequestRedraw()

	ww, wh := window.Size()
	fw, fh := window.FramebufferSize()
	d3.Logger().Info("window created", "title", s.cfg.Title,
		"width", ww, "height", wh, "framebuffer_width", fw, "framebuffer_height", fh)

	cam := camera.New(mgl32.Vec3(s.cfg.Eye), s.cfg.Yaw, s.cfg.Pitch, fw, fh)

	r, err := s.factory(window, cam, s.cfg)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	s.loaded = &Loaded{
		Window: window,
		App:    NewApplication(window, r, cam, s.clock()),
	}
	return nil
}

// WindowEvent routes ev to the application. Events before Resumed are
// ignored.
func (s *LoadState) WindowEvent(loop EventLoop, ev Event) error {
	if s.loaded == nil {
		return nil
	}
	switch ev.(type) {
	case CloseRequested:
		loop.Exit()
	case RedrawRequested:
		if err := s.loaded.App.Frame(s.clock()); err != nil {
			return err
		}
		s.loaded.Window.RequestRedraw()
	default:
		s.loaded.App.HandleEvent(ev)
	}
	return nil
}

// Exiting releases the renderer.
func (s *LoadState) Exiting() {
	if s.loaded == nil || s.closed {
		return
	}
	s.closed = true
	s.loaded.App.Close()
	d3.Logger().Info("exiting")
}
