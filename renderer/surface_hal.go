// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package renderer

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// halSurface adapts a hal.Surface to surfaceTarget.
type halSurface struct {
	surface hal.Surface
	adapter hal.Adapter
}

func newHalSurface(instance hal.Instance, display, window uintptr) (*halSurface, error) {
	if window == 0 {
		return nil, ErrInvalidWindow
	}
	surface, err := instance.CreateSurface(display, window)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWindow, err)
	}
	return &halSurface{surface: surface}, nil
}

func (s *halSurface) capabilities() SurfaceCapabilities {
	var caps SurfaceCapabilities
	if s.adapter == nil {
		return caps
	}
	hc := s.adapter.SurfaceCapabilities(s.surface)
	if hc == nil {
		return caps
	}
	caps.Formats = append(caps.Formats, hc.Formats...)
	caps.AlphaModes = append(caps.AlphaModes, hc.AlphaModes...)
	for _, m := range hc.PresentModes {
		if mode, ok := fromHalPresentMode(m); ok {
			caps.PresentModes = append(caps.PresentModes, mode)
		}
	}
	return caps
}

func (s *halSurface) configure(device hal.Device, cfg SurfaceConfig) error {
	return s.surface.Configure(device, &hal.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: toHalPresentMode(cfg.PresentMode),
		AlphaMode:   cfg.AlphaMode,
	})
}

func (s *halSurface) acquire() (*surfaceFrame, error) {
	acquired, err := s.surface.AcquireTexture(nil)
	if err != nil {
		return nil, translateSurfaceError(err)
	}
	return &surfaceFrame{
		texture:    acquired.Texture,
		suboptimal: acquired.Suboptimal,
		native:     acquired.Texture,
	}, nil
}

func (s *halSurface) present(queue hal.Queue, frame *surfaceFrame) error {
	tex, ok := frame.native.(hal.SurfaceTexture)
	if !ok {
		return fmt.Errorf("renderer: frame was not acquired from this surface")
	}
	if err := queue.Present(s.surface, tex, nil); err != nil {
		return translateSurfaceError(err)
	}
	return nil
}

func (s *halSurface) discard(frame *surfaceFrame) {
	if tex, ok := frame.native.(hal.SurfaceTexture); ok {
		s.surface.DiscardTexture(tex)
	}
}

func (s *halSurface) destroy(device hal.Device) {
	if device != nil {
		s.surface.Unconfigure(device)
	}
	s.surface.Destroy()
}

// translateSurfaceError maps backend surface errors onto the renderer's
// recoverable sentinels. Other errors pass through unchanged.
func translateSurfaceError(err error) error {
	switch {
	case errors.Is(err, hal.ErrSurfaceLost):
		return fmt.Errorf("%w: %w", ErrSurfaceLost, err)
	case errors.Is(err, hal.ErrSurfaceOutdated):
		return fmt.Errorf("%w: %w", ErrSurfaceOutdated, err)
	case errors.Is(err, hal.ErrTimeout):
		return fmt.Errorf("%w: %w", ErrSurfaceTimeout, err)
	}
	return err
}

func toHalPresentMode(m PresentMode) hal.PresentMode {
	switch m {
	case PresentModeImmediate:
		return hal.PresentModeImmediate
	case PresentModeMailbox:
		return hal.PresentModeMailbox
	}
	return hal.PresentModeFifo
}

func fromHalPresentMode(m hal.PresentMode) (PresentMode, bool) {
	switch m {
	case hal.PresentModeFifo:
		return PresentModeVsync, true
	case hal.PresentModeImmediate:
		return PresentModeImmediate, true
	case hal.PresentModeMailbox:
		return PresentModeMailbox, true
	}
	return 0, false
}
