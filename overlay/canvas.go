// Package overlay turns camera state and entity snapshots into 2D draw
// calls, once per accepted frame.
package overlay

import "image/color"

// Canvas is the outbound drawing surface. Everything the renderer emits
// goes through these primitives, which keeps frame composition testable
// against a recording implementation.
type Canvas interface {
	Line(x1, y1, x2, y2 float64, width float32, clr color.Color)
	StrokeRect(x, y, w, h float64, width float32, clr color.Color)
	FillRect(x, y, w, h float64, clr color.Color)
	FillCircle(x, y float64, r float32, clr color.Color)
	Text(s string, x, y float64, clr color.Color)
	MeasureText(s string) (w, h float64)
}
