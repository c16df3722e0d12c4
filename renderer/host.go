// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderer

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/d3/camera"
)

// Host is a window whose owner has already opened the GPU device and
// presents frames itself, as a gogpu application does.
//
// HalDevice and HalQueue must return hal.Device and hal.Queue.
type Host interface {
	HalDevice() any
	HalQueue() any
	// SurfaceFormat is the format of the views CurrentView returns.
	SurfaceFormat() gputypes.TextureFormat
	// CurrentView returns the view of the frame being drawn, or nil when
	// no frame is in progress.
	CurrentView() hal.TextureView
	// FramebufferSize returns the drawable size in pixels.
	FramebufferSize() (width, height int)
}

// NewHosted prepares everything needed to draw into host's frames on
// host's device. The renderer never destroys that device and never
// presents; Destroy only releases what the renderer created.
//
// NewHosted fails with ErrNoDevice when the host exposes no HAL device or
// queue.
func NewHosted(host Host, cam *camera.Camera, opts ...Option) (*Renderer, error) {
	device, ok := host.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: device is %T", ErrNoDevice, host.HalDevice())
	}
	queue, ok := host.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: queue is %T", ErrNoDevice, host.HalQueue())
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	width, height := host.FramebufferSize()
	return newRenderer(device, queue, &hostSurface{host: host}, cam, o, width, height)
}

// hostSurface adapts a Host to surfaceTarget. The host owns acquire,
// present and the surface configuration, so those are bookkeeping only.
type hostSurface struct {
	host Host
	cfg  SurfaceConfig
}

// capabilities offers every present mode since the host applies its own.
func (s *hostSurface) capabilities() SurfaceCapabilities {
	return SurfaceCapabilities{
		Formats:      []gputypes.TextureFormat{s.host.SurfaceFormat()},
		PresentModes: []PresentMode{PresentModeVsync, PresentModeImmediate, PresentModeMailbox},
		AlphaModes:   []gputypes.CompositeAlphaMode{gputypes.CompositeAlphaModeOpaque},
	}
}

func (s *hostSurface) configure(_ hal.Device, cfg SurfaceConfig) error {
	s.cfg = cfg
	return nil
}

func (s *hostSurface) acquire() (*surfaceFrame, error) {
	view := s.host.CurrentView()
	if view == nil {
		return nil, fmt.Errorf("host has no frame in progress: %w", ErrSurfaceTimeout)
	}
	return &surfaceFrame{view: view}, nil
}

func (s *hostSurface) present(hal.Queue, *surfaceFrame) error { return nil }

func (s *hostSurface) discard(*surfaceFrame) {}

func (s *hostSurface) destroy(hal.Device) {}
