package mesh

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/f32"
)

// VertexSize is the byte stride of an encoded Vertex:
// position (3 x float32) followed by color (3 x float32).
const VertexSize = 24

// Vertex is a single triangle corner as the vertex shader consumes it.
type Vertex struct {
	Position f32.Vec3
	Color    f32.Vec3
}

// Layout returns the vertex buffer layout matching Vertex:
// location 0 is the position, location 1 the color.
func Layout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{
				Format:         gputypes.VertexFormatFloat32x3,
				Offset:         0,
				ShaderLocation: 0,
			},
			{
				Format:         gputypes.VertexFormatFloat32x3,
				Offset:         12,
				ShaderLocation: 1,
			},
		},
	}
}

// VertexBytes encodes vertices as tightly packed little-endian float32s.
func VertexBytes(vertices []Vertex) []byte {
	buf := make([]byte, len(vertices)*VertexSize)
	off := 0
	for i := range vertices {
		for _, v := range vertices[i].Position {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
		for _, v := range vertices[i].Color {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}
	return buf
}

// IndexBytes encodes indices as little-endian uint32s.
func IndexBytes(indices []uint32) []byte {
	buf := make([]byte, len(indices)*4)
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*4:], idx)
	}
	return buf
}
