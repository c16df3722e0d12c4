package renderer

import (
	_ "embed"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/d3/mesh"
)

// WGSL sources, validated with naga before module creation.
var (
	//go:embed shaders/camera.wgsl
	cameraShaderSource string

	//go:embed shaders/flat.wgsl
	flatShaderSource string
)

const (
	vertexEntryPoint   = "vs_main"
	fragmentEntryPoint = "fs_main"
)

// validateShader compiles src with naga so syntax and type errors surface
// with source positions instead of an opaque driver failure.
func validateShader(src string) error {
	if _, err := naga.Compile(src); err != nil {
		return fmt.Errorf("validate shader: %w", err)
	}
	return nil
}

// meshPipeline is the render pipeline and the objects it was built from.
type meshPipeline struct {
	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout // nil without a camera uniform
	layout     hal.PipelineLayout
	pipeline   hal.RenderPipeline
}

// createMeshPipeline builds the pipeline that draws a mesh.Vertex triangle
// list into a target of the given format. withCamera selects the shader
// that reads the view-projection uniform at group 0, binding 0.
func createMeshPipeline(device hal.Device, format gputypes.TextureFormat, withCamera bool, label string) (*meshPipeline, error) {
	src := flatShaderSource
	if withCamera {
		src = cameraShaderSource
	}
	if err := validateShader(src); err != nil {
		return nil, err
	}

	p := &meshPipeline{}

	shader, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  label + "_shader",
		Source: hal.ShaderSource{WGSL: src},
	})
	if err != nil {
		return nil, fmt.Errorf("create shader module: %w", err)
	}
	p.shader = shader

	var bindLayouts []hal.BindGroupLayout
	if withCamera {
		bindLayout, err := device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: label + "_camera_layout",
			Entries: []gputypes.BindGroupLayoutEntry{
				{
					Binding:    0,
					Visibility: gputypes.ShaderStageVertex,
					Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
				},
			},
		})
		if err != nil {
			p.destroy(device)
			return nil, fmt.Errorf("create camera bind group layout: %w", err)
		}
		p.bindLayout = bindLayout
		bindLayouts = append(bindLayouts, bindLayout)
	}

	layout, err := device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            label + "_pipeline_layout",
		BindGroupLayouts: bindLayouts,
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create pipeline layout: %w", err)
	}
	p.layout = layout

	pipeline, err := device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  label + "_pipeline",
		Layout: layout,
		Vertex: hal.VertexState{
			Module:     shader,
			EntryPoint: vertexEntryPoint,
			Buffers:    []gputypes.VertexBufferLayout{mesh.Layout()},
		},
		Fragment: &hal.FragmentState{
			Module:     shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					Blend:     nil,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology:  gputypes.PrimitiveTopologyTriangleList,
			FrontFace: gputypes.FrontFaceCCW,
			CullMode:  gputypes.CullModeBack,
		},
		Multisample: gputypes.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		p.destroy(device)
		return nil, fmt.Errorf("create render pipeline: %w", err)
	}
	p.pipeline = pipeline

	return p, nil
}

// destroy releases the pipeline objects in reverse creation order.
func (p *meshPipeline) destroy(device hal.Device) {
	if p.pipeline != nil {
		device.DestroyRenderPipeline(p.pipeline)
		p.pipeline = nil
	}
	if p.layout != nil {
		device.DestroyPipelineLayout(p.layout)
		p.layout = nil
	}
	if p.bindLayout != nil {
		device.DestroyBindGroupLayout(p.bindLayout)
		p.bindLayout = nil
	}
	if p.shader != nil {
		device.DestroyShaderModule(p.shader)
		p.shader = nil
	}
}
