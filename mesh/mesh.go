// Package mesh holds GPU-resident geometry: a vertex buffer, a uint32 index
// buffer, and the layout the render pipeline uses to read them.
//
// Meshes are immutable once created. The placeholder scene is Triangle.
package mesh

import (
	"errors"
	"fmt"

	"github.com/docker/go-units"
	"github.com/gogpu/d3"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// ErrEmptyMesh is returned when a mesh is created without vertices or indices.
var ErrEmptyMesh = errors.New("mesh: vertices and indices must not be empty")

// Mesh is a set of vertices connected into triangles by its indices.
type Mesh struct {
	// VertexBuffer holds the encoded vertices.
	VertexBuffer hal.Buffer
	// IndexBuffer holds the uint32 indices.
	IndexBuffer hal.Buffer

	// IndexCount is the number of indices to draw.
	IndexCount uint32
	// VertexCount is the number of vertices in VertexBuffer.
	VertexCount uint32
}

// New uploads vertices and indices to the device.
// The buffers are written through queue and are ready for the next submission.
func New(device hal.Device, queue hal.Queue, vertices []Vertex, indices []uint32) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, ErrEmptyMesh
	}

	vertexData := VertexBytes(vertices)
	vertexBuf, err := createAndUpload(device, queue, "mesh_vertices", vertexData,
		gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, fmt.Errorf("create vertex buffer: %w", err)
	}

	indexData := IndexBytes(indices)
	indexBuf, err := createAndUpload(device, queue, "mesh_indices", indexData,
		gputypes.BufferUsageIndex|gputypes.BufferUsageCopyDst)
	if err != nil {
		device.DestroyBuffer(vertexBuf)
		return nil, fmt.Errorf("create index buffer: %w", err)
	}

	d3.Logger().Debug("mesh uploaded",
		"vertices", len(vertices),
		"indices", len(indices),
		"size", units.BytesSize(float64(len(vertexData)+len(indexData))))

	return &Mesh{
		VertexBuffer: vertexBuf,
		IndexBuffer:  indexBuf,
		IndexCount:   uint32(len(indices)),  //nolint:gosec // index count fits uint32
		VertexCount:  uint32(len(vertices)), //nolint:gosec // vertex count fits uint32
	}, nil
}

func createAndUpload(device hal.Device, queue hal.Queue, label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
	buf, err := device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  uint64(len(data)),
		Usage: usage,
	})
	if err != nil {
		return nil, err
	}
	if err := queue.WriteBuffer(buf, 0, data); err != nil {
		device.DestroyBuffer(buf)
		return nil, fmt.Errorf("upload %s: %w", label, err)
	}
	return buf, nil
}

// Destroy releases the mesh buffers. Safe to call more than once.
func (m *Mesh) Destroy(device hal.Device) {
	if m == nil || device == nil {
		return
	}
	if m.IndexBuffer != nil {
		device.DestroyBuffer(m.IndexBuffer)
		m.IndexBuffer = nil
	}
	if m.VertexBuffer != nil {
		device.DestroyBuffer(m.VertexBuffer)
		m.VertexBuffer = nil
	}
}

// Triangle returns the placeholder geometry: one triangle with a red top,
// green bottom-left and blue bottom-right corner, wound counter-clockwise.
func Triangle() ([]Vertex, []uint32) {
	vertices := []Vertex{
		{Position: [3]float32{0.0, 0.5, 0.0}, Color: [3]float32{1.0, 0.0, 0.0}},
		{Position: [3]float32{-0.5, -0.5, 0.0}, Color: [3]float32{0.0, 1.0, 0.0}},
		{Position: [3]float32{0.5, -0.5, 0.0}, Color: [3]float32{0.0, 0.0, 1.0}},
	}
	return vertices, []uint32{0, 1, 2}
}
