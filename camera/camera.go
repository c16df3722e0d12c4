// Package camera implements a first-person camera: an eye position with
// yaw/pitch orientation, its view-projection matrix, and key- and
// pointer-driven movement.
//
// All angles are radians. The coordinate system is right-handed with +Y up.
package camera

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Speed is the movement speed in world units per second.
	Speed float32 = 5.0

	// Sensitivity converts pointer deltas (pixels) into radians per second of dt.
	Sensitivity float32 = 0.1

	// FovY is the vertical field of view.
	FovY = 45.0 * math.Pi / 180.0

	// ZNear is the near clipping plane. The far plane is at infinity.
	ZNear float32 = 0.01

	// MaxPitch keeps the forward vector away from the poles, where the
	// look-at basis degenerates and the view flips.
	MaxPitch = 89.9 * math.Pi / 180.0

	// UniformSize is the byte size of an encoded view-projection matrix.
	UniformSize = 16 * 4
)

// Camera represents a camera in 3D space.
type Camera struct {
	// Eye is the position of the camera.
	Eye mgl32.Vec3
	// Up is the up vector, world +Y unless roll is introduced.
	Up mgl32.Vec3

	// Yaw is the rotation around Up.
	Yaw float32
	// Pitch is the elevation above the horizontal plane.
	Pitch float32

	aspectRatio float32
}

// New creates a camera at eye with the given orientation, for a surface of
// width x height pixels. Angles are taken as-is.
func New(eye mgl32.Vec3, yaw, pitch float32, width, height int) *Camera {
	return &Camera{
		Eye:         eye,
		Up:          mgl32.Vec3{0, 1, 0},
		Yaw:         yaw,
		Pitch:       pitch,
		aspectRatio: aspectRatio(width, height),
	}
}

func aspectRatio(width, height int) float32 {
	return float32(width) / float32(height)
}

// AspectRatio returns the width/height ratio used for projection.
func (c *Camera) AspectRatio() float32 { return c.aspectRatio }

// Forward returns the unit view direction derived from Yaw and Pitch.
func (c *Camera) Forward() mgl32.Vec3 {
	yaw, pitch := float64(c.Yaw), float64(c.Pitch)
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}
}

// Right returns Forward × Up. It is not normalized.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Forward().Cross(c.Up)
}

// ViewProjection returns the combined view and projection matrix.
// The result depends only on the camera state.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	view := mgl32.LookAtV(c.Eye, c.Eye.Add(c.Forward()), c.Up)
	proj := PerspectiveInfinite(FovY, c.aspectRatio, ZNear)
	return proj.Mul4(view)
}

// PerspectiveInfinite returns a right-handed perspective projection with
// an infinite far plane that maps depth to [0, 1], as WebGPU expects.
func PerspectiveInfinite(fovY, aspect, near float32) mgl32.Mat4 {
	f := float32(1 / math.Tan(float64(fovY)/2))
	return mgl32.Mat4{
		f / aspect, 0, 0, 0,
		0, f, 0, 0,
		0, 0, -1, -1,
		0, 0, -near, 0,
	}
}

// Resize recomputes the aspect ratio for a surface of width x height pixels.
func (c *Camera) Resize(width, height int) {
	c.aspectRatio = aspectRatio(width, height)
}

// UpdatePosition moves the eye according to the held keys.
// W/S move along Forward, D/A along Right, Space/Left Shift along Up.
// Opposing keys cancel; diagonal movement is not faster than straight
// movement. With no effective direction the eye does not move.
func (c *Camera) UpdatePosition(keys KeySet, dt float32) {
	var delta mgl32.Vec3

	forward := c.Forward()
	right := forward.Cross(c.Up)

	if keys.Contains(KeyW) {
		delta = delta.Add(forward)
	}
	if keys.Contains(KeyS) {
		delta = delta.Sub(forward)
	}
	if keys.Contains(KeyD) {
		delta = delta.Add(right)
	}
	if keys.Contains(KeyA) {
		delta = delta.Sub(right)
	}
	if keys.Contains(KeySpace) {
		delta = delta.Add(c.Up)
	}
	if keys.Contains(KeyShiftLeft) {
		delta = delta.Sub(c.Up)
	}

	c.Eye = c.Eye.Add(normalizeOrZero(delta).Mul(Speed * dt))
}

// UpdateRotation turns the camera by a pointer delta in pixels.
// Pitch is clamped to ±MaxPitch.
func (c *Camera) UpdateRotation(dx, dy, dt float32) {
	c.Yaw += dx * Sensitivity * dt
	c.Pitch -= dy * Sensitivity * dt
	c.Pitch = mgl32.Clamp(c.Pitch, -MaxPitch, MaxPitch)
}

// normalizeOrZero returns v scaled to unit length, or the zero vector
// when v has no usable length.
func normalizeOrZero(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l == 0 || math.IsNaN(float64(l)) || math.IsInf(float64(l), 0) {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// UniformBytes encodes m as 16 little-endian float32 values in
// column-major order, the layout of a WGSL mat4x4<f32>.
func UniformBytes(m mgl32.Mat4) []byte {
	buf := make([]byte, UniformSize)
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
	return buf
}
