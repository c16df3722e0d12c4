package renderer

import (
	"github.com/gogpu/wgpu/hal"
)

// InstanceFactory creates GPU instances. hal.Backend implementations
// satisfy it, as does the noop API used in tests.
type InstanceFactory interface {
	CreateInstance(desc *hal.InstanceDescriptor) (hal.Instance, error)
}

// Option configures a Renderer during creation.
//
// Example:
//
//	r, err := renderer.New(window, cam,
//		renderer.WithPresentMode(renderer.PresentModeMailbox),
//		renderer.WithLabel("viewer"))
type Option func(*options)

type options struct {
	backend     InstanceFactory
	presentMode PresentMode
	label       string
}

func defaultOptions() options {
	return options{
		backend:     nil, // resolved in New
		presentMode: PresentModeVsync,
		label:       "d3",
	}
}

// WithBackend overrides the GPU backend. The default is the first
// registered one of Vulkan, Metal, DX12 and GL.
func WithBackend(b InstanceFactory) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithPresentMode requests a present mode. Modes the surface does not
// support fall back to PresentModeVsync.
func WithPresentMode(m PresentMode) Option {
	return func(o *options) {
		o.presentMode = m
	}
}

// WithLabel sets the prefix of GPU object labels, visible in graphics
// debuggers.
func WithLabel(label string) Option {
	return func(o *options) {
		o.label = label
	}
}
