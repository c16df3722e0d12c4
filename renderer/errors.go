package renderer

import "errors"

// Sentinel errors returned by the renderer.
var (
	// ErrNoBackend is returned when no GPU backend is registered.
	ErrNoBackend = errors.New("renderer: GPU backend not available")

	// ErrInvalidWindow is returned when a surface cannot be created from
	// the target's native handles.
	ErrInvalidWindow = errors.New("renderer: invalid window handles")

	// ErrNoAdapter is returned when no adapter can present to the surface.
	ErrNoAdapter = errors.New("renderer: no compatible GPU adapter")

	// ErrZeroSize is returned by Resize for a zero width or height.
	ErrZeroSize = errors.New("renderer: surface size must be positive")

	// ErrSurfaceLost means the surface must be reconfigured before the
	// next frame. The current frame is skipped.
	ErrSurfaceLost = errors.New("renderer: surface lost")

	// ErrSurfaceOutdated means the surface no longer matches the window.
	// The current frame is skipped.
	ErrSurfaceOutdated = errors.New("renderer: surface outdated")

	// ErrSurfaceTimeout means no surface texture became available in time.
	// The current frame is skipped.
	ErrSurfaceTimeout = errors.New("renderer: surface acquire timed out")

	// ErrGPUTimeout is returned by Render when the oldest frame in flight
	// did not complete in time. It is fatal.
	ErrGPUTimeout = errors.New("renderer: GPU did not finish a frame in time")

	// ErrNoDevice is returned by NewHosted when the host exposes no HAL
	// device or queue.
	ErrNoDevice = errors.New("renderer: host has no HAL device")

	// ErrNotInitialized is returned by operations on a destroyed renderer.
	ErrNotInitialized = errors.New("renderer: not initialized")
)

// IsRecoverable reports whether err only costs the current frame.
// Callers reconfigure and carry on; every other render error is fatal.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrSurfaceLost) ||
		errors.Is(err, ErrSurfaceOutdated) ||
		errors.Is(err, ErrSurfaceTimeout)
}
