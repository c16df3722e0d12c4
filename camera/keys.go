package camera

// KeyCode identifies a physical key, independent of keyboard layout.
// The platform layer translates toolkit key codes into KeyCode values;
// codes it cannot translate never reach the camera.
type KeyCode uint16

// Physical keys known to the harness.
const (
	KeyUnknown KeyCode = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeySpace
	KeyShiftLeft
	KeyShiftRight
	KeyControlLeft
	KeyEscape
	KeyEnter
	KeyTab
	KeyArrowUp
	KeyArrowDown
	KeyArrowLeft
	KeyArrowRight
)

var keyNames = [...]string{
	KeyUnknown:     "Unknown",
	KeyW:           "KeyW",
	KeyA:           "KeyA",
	KeyS:           "KeyS",
	KeyD:           "KeyD",
	KeyQ:           "KeyQ",
	KeyE:           "KeyE",
	KeySpace:       "Space",
	KeyShiftLeft:   "ShiftLeft",
	KeyShiftRight:  "ShiftRight",
	KeyControlLeft: "ControlLeft",
	KeyEscape:      "Escape",
	KeyEnter:       "Enter",
	KeyTab:         "Tab",
	KeyArrowUp:     "ArrowUp",
	KeyArrowDown:   "ArrowDown",
	KeyArrowLeft:   "ArrowLeft",
	KeyArrowRight:  "ArrowRight",
}

// String returns the key name.
func (k KeyCode) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return "Unknown"
}

// KeySet is the set of keys currently held down.
// The zero value is an empty set ready for use.
type KeySet struct {
	held map[KeyCode]struct{}
}

// NewKeySet returns a set holding the given keys.
func NewKeySet(keys ...KeyCode) KeySet {
	var s KeySet
	for _, k := range keys {
		s.Press(k)
	}
	return s
}

// Press marks k as held.
func (s *KeySet) Press(k KeyCode) {
	if s.held == nil {
		s.held = make(map[KeyCode]struct{})
	}
	s.held[k] = struct{}{}
}

// Release marks k as no longer held.
func (s *KeySet) Release(k KeyCode) {
	delete(s.held, k)
}

// Contains reports whether k is held.
func (s KeySet) Contains(k KeyCode) bool {
	_, ok := s.held[k]
	return ok
}

// Len returns the number of held keys.
func (s KeySet) Len() int { return len(s.held) }

// Clear releases every key.
func (s *KeySet) Clear() {
	clear(s.held)
}
