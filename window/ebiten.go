package window

import "github.com/hajimehoshi/ebiten/v2"

// EbitenDisplay drives the real window.
type EbitenDisplay struct{}

func (EbitenDisplay) SetSize(w, h int)      { ebiten.SetWindowSize(w, h) }
func (EbitenDisplay) SetPosition(x, y int)  { ebiten.SetWindowPosition(x, y) }
func (EbitenDisplay) SetDecorated(on bool)  { ebiten.SetWindowDecorated(on) }
func (EbitenDisplay) SetFloating(on bool)   { ebiten.SetWindowFloating(on) }
func (EbitenDisplay) Size() (int, int)      { return ebiten.WindowSize() }
func (EbitenDisplay) MonitorSize() (int, int) {
	return ebiten.Monitor().Size()
}

func (EbitenDisplay) SetResizable(on bool) {
	mode := ebiten.WindowResizingModeDisabled
	if on {
		mode = ebiten.WindowResizingModeEnabled
	}
	ebiten.SetWindowResizingMode(mode)
}
