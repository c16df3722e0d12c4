// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package renderer draws a mesh through a camera onto a window surface
// using the gogpu/wgpu HAL.
//
// A Renderer created by New owns the GPU device and queue and the
// presentation surface. One created by NewHosted draws on a host's device
// into the host's frames and leaves device and presentation to the host.
// Either way it owns its surface configuration, one render pipeline, the
// camera uniform, the placeholder mesh and the frames in flight. All
// methods must be called from the thread that draws.
//
// Render returns errors for which IsRecoverable reports true when the
// surface went away or fell out of date. Callers skip the frame and call
// Reconfigure; any other error is fatal.
package renderer

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/d3"
	"github.com/gogpu/d3/camera"
	"github.com/gogpu/d3/mesh"
)

// frameWaitTimeout bounds the wait for a slot in the frame ring.
const frameWaitTimeout = 5 * time.Second

// clearColor is the background of every frame.
var clearColor = gputypes.Color{R: 0.01, G: 0.01, B: 0.01, A: 1.0}

// Renderer presents a mesh to a window surface.
type Renderer struct {
	instance hal.Instance // nil when the device belongs to a host
	device   hal.Device
	queue    hal.Queue
	surface  surfaceTarget
	config   SurfaceConfig
	info     AdapterInfo
	label    string

	pipeline *meshPipeline
	camera   *cameraUniform // nil without a camera
	mesh     *mesh.Mesh

	inflight    *frameRing
	waitTimeout time.Duration
}

// New connects to the GPU and prepares everything needed to draw into
// target. When cam is nil the mesh is drawn without a view-projection.
//
// New blocks until the device is open. It fails with ErrNoBackend,
// ErrInvalidWindow or ErrNoAdapter, or a wrapped device error.
func New(target SurfaceSource, cam *camera.Camera, opts ...Option) (*Renderer, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	factory, err := resolveBackend(o.backend)
	if err != nil {
		return nil, err
	}
	instance, err := factory.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("create instance: %w", err)
	}

	display, window := target.NativeHandles()
	surface, err := newHalSurface(instance, display, window)
	if err != nil {
		instance.Destroy()
		return nil, err
	}

	selected := selectAdapter(instance.EnumerateAdapters(surface.surface))
	if selected == nil {
		surface.destroy(nil)
		instance.Destroy()
		return nil, ErrNoAdapter
	}
	surface.adapter = selected.Adapter

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		surface.destroy(nil)
		instance.Destroy()
		return nil, fmt.Errorf("open device: %w", err)
	}

	info := adapterInfo(selected)
	d3.Logger().Info("GPU adapter selected", "adapter", info.String(), "driver", info.Driver)

	width, height := target.FramebufferSize()
	r, err := newRenderer(openDev.Device, openDev.Queue, surface, cam, o, width, height)
	if err != nil {
		surface.destroy(openDev.Device)
		openDev.Device.Destroy()
		instance.Destroy()
		return nil, err
	}
	r.instance = instance
	r.info = info
	return r, nil
}

// newRenderer configures surface and builds the GPU objects on an open
// device. On failure everything it created is released; device and
// surface stay with the caller.
func newRenderer(device hal.Device, queue hal.Queue, surface surfaceTarget, cam *camera.Camera, o options, width, height int) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("initial size %dx%d: %w", width, height, ErrZeroSize)
	}

	r := &Renderer{
		device:      device,
		queue:       queue,
		surface:     surface,
		label:       o.label,
		config:      chooseSurfaceConfig(surface.capabilities(), o.presentMode, uint32(width), uint32(height)), //nolint:gosec // checked positive above
		waitTimeout: frameWaitTimeout,
	}
	if r.config.PresentMode != o.presentMode {
		d3.Logger().Warn("present mode not supported, using vsync", "requested", o.presentMode.String())
	}

	if err := r.surface.configure(device, r.config); err != nil {
		return nil, fmt.Errorf("configure surface: %w", err)
	}
	d3.Logger().Info("surface configured",
		"width", r.config.Width, "height", r.config.Height,
		"format", r.config.Format, "present_mode", r.config.PresentMode.String(),
		"alpha_mode", r.config.AlphaMode, "frame_latency", r.config.FrameLatency)
	r.inflight = newFrameRing(r.config.FrameLatency)

	pipeline, err := createMeshPipeline(device, r.config.Format, cam != nil, r.label)
	if err != nil {
		return nil, err
	}
	r.pipeline = pipeline

	if cam != nil {
		u, err := newCameraUniform(device, queue, pipeline.bindLayout, cam.ViewProjection(), r.label)
		if err != nil {
			r.release()
			return nil, err
		}
		r.camera = u
	}

	vertices, indices := mesh.Triangle()
	m, err := mesh.New(device, queue, vertices, indices)
	if err != nil {
		r.release()
		return nil, fmt.Errorf("create mesh: %w", err)
	}
	r.mesh = m

	return r, nil
}

// UpdateCameraUniform queues an upload of the view-projection matrix.
// It does nothing when the renderer was created without a camera. A failed
// upload is logged and the previous matrix stays in place.
func (r *Renderer) UpdateCameraUniform(m mgl32.Mat4) {
	if r.camera == nil || r.queue == nil {
		return
	}
	if err := r.camera.write(r.queue, m); err != nil {
		d3.Logger().Warn("camera uniform upload failed", "error", err)
	}
}

// UploadedMatrix returns the matrix most recently queued for the camera
// uniform, and false when there is no camera uniform.
func (r *Renderer) UploadedMatrix() (mgl32.Mat4, bool) {
	if r.camera == nil {
		return mgl32.Mat4{}, false
	}
	return r.camera.uploaded, true
}

// Resize reconfigures the surface for a new framebuffer size.
// A zero dimension returns ErrZeroSize and leaves the surface untouched.
// The stored configuration changes only when the surface accepts it.
func (r *Renderer) Resize(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, ErrZeroSize)
	}
	cfg := r.config
	cfg.Width = width
	cfg.Height = height
	return r.apply(cfg)
}

// Reconfigure re-applies the current surface configuration, as needed
// after the surface was lost or outdated.
func (r *Renderer) Reconfigure() error {
	return r.apply(r.config)
}

func (r *Renderer) apply(cfg SurfaceConfig) error {
	if r.device == nil {
		return ErrNotInitialized
	}
	if err := r.surface.configure(r.device, cfg); err != nil {
		return fmt.Errorf("configure surface: %w", err)
	}
	r.config = cfg
	d3.Logger().Debug("surface reconfigured", "width", cfg.Width, "height", cfg.Height)
	return nil
}

// Render draws one frame and presents it without waiting for the GPU.
// Up to FrameLatency frames stay in flight; once the ring is full Render
// first waits for the oldest one, failing with ErrGPUTimeout when it does
// not complete in time.
func (r *Renderer) Render() error {
	if r.device == nil {
		return ErrNotInitialized
	}
	if err := r.inflight.reserve(r.queue, r.device, r.waitTimeout); err != nil {
		return err
	}

	frame, err := r.surface.acquire()
	if err != nil {
		return fmt.Errorf("acquire surface texture: %w", err)
	}
	presented := false
	defer func() {
		if !presented {
			r.surface.discard(frame)
		}
	}()

	// A borrowed view belongs to the host; one created here lives until
	// its submission completes.
	view, owned := frame.view, hal.TextureView(nil)
	if view == nil {
		view, err = r.device.CreateTextureView(frame.texture, &hal.TextureViewDescriptor{
			Label: r.label + "_frame_view",
		})
		if err != nil {
			return fmt.Errorf("create frame view: %w", err)
		}
		owned = view
	}

	cmdBuf, err := r.encodeFrame(view)
	if err != nil {
		if owned != nil {
			r.device.DestroyTextureView(owned)
		}
		return err
	}

	index, err := r.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		r.device.FreeCommandBuffer(cmdBuf)
		if owned != nil {
			r.device.DestroyTextureView(owned)
		}
		return fmt.Errorf("submit: %w", err)
	}
	r.inflight.track(index, cmdBuf, owned)

	presented = true
	if err := r.surface.present(r.queue, frame); err != nil {
		return fmt.Errorf("present: %w", err)
	}

	if frame.suboptimal {
		d3.Logger().Debug("surface suboptimal, reconfiguring")
		return r.Reconfigure()
	}
	return nil
}

// encodeFrame records the single render pass of a frame into view.
func (r *Renderer) encodeFrame(view hal.TextureView) (hal.CommandBuffer, error) {
	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: r.label + "_encoder",
	})
	if err != nil {
		return nil, fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding(r.label + "_frame"); err != nil {
		return nil, fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: r.label + "_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: clearColor,
		}},
	})
	r.recordDraw(rp)
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("end encoding: %w", err)
	}
	return cmdBuf, nil
}

// recordDraw binds the pipeline, camera and mesh and draws every index once.
func (r *Renderer) recordDraw(rp hal.RenderPassEncoder) {
	rp.SetPipeline(r.pipeline.pipeline)
	if r.camera != nil {
		rp.SetBindGroup(0, r.camera.bindGroup, nil)
	}
	rp.SetVertexBuffer(0, r.mesh.VertexBuffer, 0)
	rp.SetIndexBuffer(r.mesh.IndexBuffer, gputypes.IndexFormatUint32, 0)
	rp.DrawIndexed(r.mesh.IndexCount, 1, 0, 0, 0)
}

// SurfaceConfig returns the current surface configuration.
func (r *Renderer) SurfaceConfig() SurfaceConfig { return r.config }

// Info returns the selected adapter. It is zero for hosted renderers.
func (r *Renderer) Info() AdapterInfo { return r.info }

// Destroy waits for the frames in flight and releases every GPU object.
// Safe to call more than once.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	if r.inflight != nil {
		if err := r.inflight.drain(r.device); err != nil {
			d3.Logger().Warn("GPU did not go idle before destroy", "error", err)
		}
	}
	r.release()

	if r.surface != nil {
		r.surface.destroy(r.device)
		r.surface = nil
	}
	if r.instance != nil {
		r.device.Destroy()
		r.instance.Destroy()
		r.instance = nil
	}
	r.device = nil
	r.queue = nil
	d3.Logger().Info("renderer destroyed")
}

// release frees the objects newRenderer created, in reverse order.
func (r *Renderer) release() {
	if r.mesh != nil {
		r.mesh.Destroy(r.device)
		r.mesh = nil
	}
	if r.camera != nil {
		r.camera.destroy(r.device)
		r.camera = nil
	}
	if r.pipeline != nil {
		r.pipeline.destroy(r.device)
		r.pipeline = nil
	}
}
