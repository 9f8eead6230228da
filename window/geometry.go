// Package window manages the overlay's fullscreen and windowed geometry.
// The geometry logic is pure over the Display interface so it tests without
// a real window; EbitenDisplay binds it to the live window.
package window

import "math"

const (
	defaultWindowedW = 1280
	defaultWindowedH = 720
	defaultWindowedX = 100
	defaultWindowedY = 100
)

// Display is the subset of window operations the manager needs.
type Display interface {
	SetSize(w, h int)
	SetPosition(x, y int)
	SetDecorated(decorated bool)
	SetFloating(floating bool)
	SetResizable(resizable bool)
	Size() (int, int)
	MonitorSize() (int, int)
}

// Manager tracks the fullscreen flag and applies geometry transitions.
type Manager struct {
	display    Display
	fullscreen bool
}

func NewManager(d Display) *Manager {
	return &Manager{display: d}
}

func (m *Manager) Fullscreen() bool { return m.fullscreen }

// SetFullscreen switches between borderless-fullscreen and the default
// windowed geometry. Fullscreen pins the window topmost at the origin, sized
// to the resolution override when one is configured, else the monitor.
func (m *Manager) SetFullscreen(on bool, overrideW, overrideH float64) {
	m.fullscreen = on
	if !on {
		m.display.SetDecorated(true)
		m.display.SetFloating(false)
		m.display.SetResizable(true)
		m.display.SetSize(defaultWindowedW, defaultWindowedH)
		m.display.SetPosition(defaultWindowedX, defaultWindowedY)
		return
	}

	w, h := m.display.MonitorSize()
	if overrideW > 0 && overrideH > 0 {
		w, h = int(overrideW), int(overrideH)
	}
	m.display.SetDecorated(false)
	m.display.SetFloating(true)
	m.display.SetResizable(false)
	m.display.SetSize(w, h)
	m.display.SetPosition(0, 0)
}

// Toggle flips between fullscreen and windowed.
func (m *Manager) Toggle(overrideW, overrideH float64) {
	m.SetFullscreen(!m.fullscreen, overrideW, overrideH)
}

// ApplyResolutionOverride resizes a fullscreen overlay when the configured
// override drifts from the current geometry, enabling live resolution
// changes without re-toggling fullscreen. A no-op while windowed or without
// an override.
func (m *Manager) ApplyResolutionOverride(overrideW, overrideH float64) {
	if !m.fullscreen || overrideW <= 0 || overrideH <= 0 {
		return
	}
	w, h := m.display.Size()
	if math.Abs(float64(w)-overrideW) <= 0.5 && math.Abs(float64(h)-overrideH) <= 0.5 {
		return
	}
	m.display.SetSize(int(overrideW), int(overrideH))
	m.display.SetPosition(0, 0)
}
