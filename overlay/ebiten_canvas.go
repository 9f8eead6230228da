package overlay

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	etext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// EbitenCanvas draws the overlay primitives onto an ebiten image.
type EbitenCanvas struct {
	dst  *ebiten.Image
	face etext.Face
}

func NewEbitenCanvas(dst *ebiten.Image) *EbitenCanvas {
	return &EbitenCanvas{
		dst:  dst,
		face: etext.NewGoXFace(basicfont.Face7x13),
	}
}

// Retarget points the canvas at a new destination image, reusing the face.
func (c *EbitenCanvas) Retarget(dst *ebiten.Image) {
	c.dst = dst
}

func (c *EbitenCanvas) Line(x1, y1, x2, y2 float64, width float32, clr color.Color) {
	vector.StrokeLine(c.dst, float32(x1), float32(y1), float32(x2), float32(y2), width, clr, true)
}

func (c *EbitenCanvas) StrokeRect(x, y, w, h float64, width float32, clr color.Color) {
	vector.StrokeRect(c.dst, float32(x), float32(y), float32(w), float32(h), width, clr, true)
}

func (c *EbitenCanvas) FillRect(x, y, w, h float64, clr color.Color) {
	vector.FillRect(c.dst, float32(x), float32(y), float32(w), float32(h), clr, false)
}

func (c *EbitenCanvas) FillCircle(x, y float64, r float32, clr color.Color) {
	vector.FillCircle(c.dst, float32(x), float32(y), r, clr, true)
}

func (c *EbitenCanvas) Text(s string, x, y float64, clr color.Color) {
	op := &etext.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	etext.Draw(c.dst, s, c.face, op)
}

func (c *EbitenCanvas) MeasureText(s string) (float64, float64) {
	return etext.Measure(s, c.face, c.face.Metrics().HLineGap)
}
