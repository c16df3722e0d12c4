package platform

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/d3/camera"
)

var keyMap = map[gpucontext.Key]camera.KeyCode{
	gpucontext.KeyW:           camera.KeyW,
	gpucontext.KeyA:           camera.KeyA,
	gpucontext.KeyS:           camera.KeyS,
	gpucontext.KeyD:           camera.KeyD,
	gpucontext.KeyQ:           camera.KeyQ,
	gpucontext.KeyE:           camera.KeyE,
	gpucontext.KeySpace:       camera.KeySpace,
	gpucontext.KeyLeftShift:   camera.KeyShiftLeft,
	gpucontext.KeyRightShift:  camera.KeyShiftRight,
	gpucontext.KeyLeftControl: camera.KeyControlLeft,
	gpucontext.KeyEscape:      camera.KeyEscape,
	gpucontext.KeyEnter:       camera.KeyEnter,
	gpucontext.KeyTab:         camera.KeyTab,
	gpucontext.KeyUp:          camera.KeyArrowUp,
	gpucontext.KeyDown:        camera.KeyArrowDown,
	gpucontext.KeyLeft:        camera.KeyArrowLeft,
	gpucontext.KeyRight:       camera.KeyArrowRight,
}

// translateKey maps a gogpu key to a camera key code. Keys the camera
// does not name report false.
func translateKey(k gpucontext.Key) (camera.KeyCode, bool) {
	code, ok := keyMap[k]
	return code, ok
}
