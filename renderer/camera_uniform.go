package renderer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/d3/camera"
)

// cameraUniform is the GPU copy of the view-projection matrix and the bind
// group that exposes it to the vertex stage.
type cameraUniform struct {
	buffer    hal.Buffer
	bindGroup hal.BindGroup

	// uploaded mirrors the last matrix written to buffer.
	uploaded mgl32.Mat4
}

func newCameraUniform(device hal.Device, queue hal.Queue, layout hal.BindGroupLayout, initial mgl32.Mat4, label string) (*cameraUniform, error) {
	buffer, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label + "_camera_uniform",
		Size:  camera.UniformSize,
		Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("create camera uniform: %w", err)
	}

	bindGroup, err := device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_camera_bind",
		Layout: layout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: buffer.NativeHandle(), Offset: 0, Size: camera.UniformSize,
			}},
		},
	})
	if err != nil {
		device.DestroyBuffer(buffer)
		return nil, fmt.Errorf("create camera bind group: %w", err)
	}

	u := &cameraUniform{buffer: buffer, bindGroup: bindGroup}
	if err := u.write(queue, initial); err != nil {
		u.destroy(device)
		return nil, err
	}
	return u, nil
}

// write queues an upload of m. It does not block.
func (u *cameraUniform) write(queue hal.Queue, m mgl32.Mat4) error {
	if err := queue.WriteBuffer(u.buffer, 0, camera.UniformBytes(m)); err != nil {
		return fmt.Errorf("write camera uniform: %w", err)
	}
	u.uploaded = m
	return nil
}

func (u *cameraUniform) destroy(device hal.Device) {
	if u.bindGroup != nil {
		device.DestroyBindGroup(u.bindGroup)
		u.bindGroup = nil
	}
	if u.buffer != nil {
		device.DestroyBuffer(u.buffer)
		u.buffer = nil
	}
}
