// Package projection maps world-space points through a camera view matrix to
// 2D canvas coordinates. All functions are pure; callers pass the matrix for
// the frame being drawn and never share state with this package.
package projection

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// minClipW rejects points behind or on the camera plane before the
	// perspective divide becomes numerically unstable.
	minClipW = 0.1

	// canvasMargin admits points slightly outside the canvas so bounding
	// boxes of partially visible entities still close correctly.
	canvasMargin = 200.0
)

// ScreenPoint is a canvas-space coordinate with a top-left origin.
type ScreenPoint struct {
	X float64
	Y float64
}

// Project transforms a world point by the view matrix and maps the result to
// canvas pixels. It reports false when the point is behind the camera
// (clip W below the epsilon) or its depth leaves the [0,1] range.
func Project(world mgl32.Vec3, view mgl32.Mat4, width, height float64) (ScreenPoint, bool) {
	clip := view.Mul4x1(mgl32.Vec4{world.X(), world.Y(), world.Z(), 1})

	w := float64(clip.W())
	if w < minClipW {
		return ScreenPoint{}, false
	}

	ndcX := float64(clip.X()) / w
	ndcY := float64(clip.Y()) / w
	ndcZ := float64(clip.Z()) / w
	if ndcZ < 0 || ndcZ > 1 {
		return ScreenPoint{}, false
	}

	// NDC X/Y are [-1,1]; the canvas origin is top-left so Y flips.
	return ScreenPoint{
		X: (ndcX + 1) * 0.5 * width,
		Y: (1 - ndcY) * 0.5 * height,
	}, true
}

// TryProject is Project plus the rejections draw code wants: the zero vector
// is the "position not read yet" sentinel, non-finite outputs are dropped,
// and anything further than canvasMargin outside the canvas is culled.
func TryProject(world mgl32.Vec3, view mgl32.Mat4, width, height float64) (ScreenPoint, bool) {
	if world.X() == 0 && world.Y() == 0 && world.Z() == 0 {
		return ScreenPoint{}, false
	}

	pt, ok := Project(world, view, width, height)
	if !ok {
		return ScreenPoint{}, false
	}
	if !finite(pt.X) || !finite(pt.Y) {
		return ScreenPoint{}, false
	}
	if pt.X < -canvasMargin || pt.X > width+canvasMargin ||
		pt.Y < -canvasMargin || pt.Y > height+canvasMargin {
		return ScreenPoint{}, false
	}
	return pt, true
}

// CameraPosition extracts the camera translation from a view matrix. The
// camera provider stores matrices so the translation sits in the fourth
// column; the renderer re-derives this every frame instead of caching it.
func CameraPosition(view mgl32.Mat4) mgl32.Vec3 {
	return view.Col(3).Vec3()
}

// CameraForward returns the normalized camera forward axis, the view
// matrix's third row: the direction whose points land on the canvas center.
// Falls back to +Z when the row is degenerate.
func CameraForward(view mgl32.Mat4) mgl32.Vec3 {
	fwd := view.Row(2).Vec3()
	if fwd.Len() == 0 {
		return mgl32.Vec3{0, 0, 1}
	}
	return fwd.Normalize()
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
