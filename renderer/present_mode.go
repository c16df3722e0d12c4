package renderer

import (
	"fmt"
	"strings"
)

// PresentMode controls how rendered frames are queued for display.
type PresentMode uint8

const (
	// PresentModeVsync waits for vertical blank (FIFO). Always supported.
	PresentModeVsync PresentMode = iota
	// PresentModeImmediate presents without waiting and may tear.
	PresentModeImmediate
	// PresentModeMailbox replaces the queued frame with the newest one.
	PresentModeMailbox
)

var presentModeNames = [...]string{
	PresentModeVsync:     "vsync",
	PresentModeImmediate: "immediate",
	PresentModeMailbox:   "mailbox",
}

// String returns the config-file name of the mode.
func (m PresentMode) String() string {
	if int(m) < len(presentModeNames) {
		return presentModeNames[m]
	}
	return fmt.Sprintf("PresentMode(%d)", m)
}

// ParsePresentMode parses a mode name. The empty string and "fifo" mean
// PresentModeVsync.
func ParsePresentMode(s string) (PresentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "vsync", "fifo":
		return PresentModeVsync, nil
	case "immediate":
		return PresentModeImmediate, nil
	case "mailbox":
		return PresentModeMailbox, nil
	}
	return PresentModeVsync, fmt.Errorf("renderer: unknown present mode %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (m PresentMode) MarshalText() ([]byte, error) {
	if int(m) >= len(presentModeNames) {
		return nil, fmt.Errorf("renderer: invalid present mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PresentMode) UnmarshalText(text []byte) error {
	mode, err := ParsePresentMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}
