package projection

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestProjectRejectsLowClipW(t *testing.T) {
	// Matrix with a zero W row: every point lands at clip W = 0.
	var m mgl32.Mat4
	m[0] = 1
	m[5] = 1
	m[10] = 1

	cases := []mgl32.Vec3{
		{1, 2, 3},
		{-100, 0, 0.5},
		{0, 0, 1},
	}
	for _, p := range cases {
		if _, ok := Project(p, m, 800, 600); ok {
			t.Fatalf("Project(%v) should be invalid with clip W below threshold", p)
		}
	}

	// W barely under the 0.1 epsilon.
	under := mgl32.Ident4()
	under[15] = 0.0999
	if _, ok := Project(mgl32.Vec3{0, 0, 0.05}, under, 800, 600); ok {
		t.Fatal("clip W just under epsilon should be invalid")
	}
}

func TestProjectDepthRange(t *testing.T) {
	view := mgl32.Ident4()
	cases := []struct {
		name string
		z    float32
		ok   bool
	}{
		{"in_range", 0.5, true},
		{"at_near", 0, true},
		{"at_far", 1, true},
		{"behind_near", -0.25, false},
		{"beyond_far", 1.5, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ok := Project(mgl32.Vec3{0.2, 0.1, c.z}, view, 800, 600)
			if ok != c.ok {
				t.Fatalf("z=%v: got valid=%v, want %v", c.z, ok, c.ok)
			}
		})
	}
}

func TestProjectCenterMapping(t *testing.T) {
	// Identity view, point on the camera axis: must land in the exact
	// canvas center with the documented NDC-to-pixel mapping.
	pt, ok := Project(mgl32.Vec3{0, 0, 0.5}, mgl32.Ident4(), 800, 600)
	if !ok {
		t.Fatal("center point should project")
	}
	if pt.X != 400 || pt.Y != 300 {
		t.Fatalf("got (%v,%v), want (400,300)", pt.X, pt.Y)
	}
}

func TestProjectYInversion(t *testing.T) {
	// NDC +Y is up; canvas Y grows down, so a positive NDC Y must land in
	// the top half.
	pt, ok := Project(mgl32.Vec3{0, 0.5, 0.5}, mgl32.Ident4(), 800, 600)
	if !ok {
		t.Fatal("point should project")
	}
	if pt.Y >= 300 {
		t.Fatalf("positive NDC Y should map above center, got Y=%v", pt.Y)
	}
}

func TestProjectIsPure(t *testing.T) {
	view := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100)
	p := mgl32.Vec3{1.25, -0.75, -3}
	first, okFirst := Project(p, view, 1920, 1080)
	for i := 0; i < 10; i++ {
		got, ok := Project(p, view, 1920, 1080)
		if ok != okFirst || got != first {
			t.Fatalf("call %d: got (%v,%v), want (%v,%v)", i, got, ok, first, okFirst)
		}
	}
}

func TestTryProjectZeroVectorSentinel(t *testing.T) {
	views := []mgl32.Mat4{
		mgl32.Ident4(),
		mgl32.Translate3D(5, 5, 5),
		mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 10),
	}
	for _, v := range views {
		if _, ok := TryProject(mgl32.Vec3{}, v, 800, 600); ok {
			t.Fatal("zero vector must be rejected regardless of matrix")
		}
	}
}

func TestTryProjectNonFinite(t *testing.T) {
	var m mgl32.Mat4
	m[0] = float32(math.NaN())
	m[15] = 1
	if _, ok := TryProject(mgl32.Vec3{1, 1, 0.5}, m, 800, 600); ok {
		t.Fatal("NaN output must be rejected")
	}
}

func TestTryProjectCanvasMargin(t *testing.T) {
	view := mgl32.Ident4()
	cases := []struct {
		name string
		p    mgl32.Vec3
		ok   bool
	}{
		// x NDC 1.4 -> 960px on an 800px canvas, inside the 200px margin.
		{"within_margin", mgl32.Vec3{1.4, 0, 0.5}, true},
		// x NDC 1.6 -> 1040px, past 800+200.
		{"past_margin", mgl32.Vec3{1.6, 0, 0.5}, false},
		// y NDC 1.8 -> -240px, past -200.
		{"past_top_margin", mgl32.Vec3{0, 1.8, 0.5}, false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, ok := TryProject(c.p, view, 800, 600)
			if ok != c.ok {
				t.Fatalf("got valid=%v, want %v", ok, c.ok)
			}
		})
	}
}

func TestCameraAxes(t *testing.T) {
	fwd := CameraForward(mgl32.Ident4())
	if fwd != (mgl32.Vec3{0, 0, 1}) {
		t.Fatalf("identity forward = %v, want +Z", fwd)
	}
	if pos := CameraPosition(mgl32.Ident4()); pos != (mgl32.Vec3{}) {
		t.Fatalf("identity position = %v, want origin", pos)
	}
}

// A point that projects to the canvas center must sit on the forward axis,
// for rotated cameras too, not just identity.
func TestCameraForwardRotated(t *testing.T) {
	view := mgl32.HomogRotate3DY(mgl32.DegToRad(90))
	world := mgl32.Vec3{-0.5, 0, 0}

	pt, ok := Project(world, view, 800, 600)
	if !ok {
		t.Fatal("point ahead of rotated camera did not project")
	}
	if math.Abs(pt.X-400) > 0.01 || math.Abs(pt.Y-300) > 0.01 {
		t.Fatalf("projected to (%v, %v), want canvas center", pt.X, pt.Y)
	}

	dir := world.Sub(CameraPosition(view)).Normalize()
	if dot := CameraForward(view).Dot(dir); dot < 0.999 {
		t.Fatalf("forward·dir = %v, want ~1 for an on-axis point", dot)
	}
}
