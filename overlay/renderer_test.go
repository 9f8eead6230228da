package overlay

import (
	"image/color"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/varkas/overlens/camera"
	"github.com/varkas/overlens/config"
	"github.com/varkas/overlens/memread"
	"github.com/varkas/overlens/projection"
	"github.com/varkas/overlens/snapshot"
)

// recordCanvas captures draw calls for assertions.
type recordCanvas struct {
	lines   []lineOp
	rects   []rectOp
	fills   []rectOp
	circles []circleOp
	texts   []textOp
}

type lineOp struct{ x1, y1, x2, y2 float64 }

type rectOp struct{ x, y, w, h float64 }

type circleOp struct{ x, y float64 }

type textOp struct {
	s    string
	x, y float64
}

func (c *recordCanvas) Line(x1, y1, x2, y2 float64, _ float32, _ color.Color) {
	c.lines = append(c.lines, lineOp{x1, y1, x2, y2})
}

func (c *recordCanvas) StrokeRect(x, y, w, h float64, _ float32, _ color.Color) {
	c.rects = append(c.rects, rectOp{x, y, w, h})
}

func (c *recordCanvas) FillRect(x, y, w, h float64, _ color.Color) {
	c.fills = append(c.fills, rectOp{x, y, w, h})
}

func (c *recordCanvas) FillCircle(x, y float64, _ float32, _ color.Color) {
	c.circles = append(c.circles, circleOp{x, y})
}

func (c *recordCanvas) Text(s string, x, y float64, _ color.Color) {
	c.texts = append(c.texts, textOp{s, x, y})
}

func (c *recordCanvas) MeasureText(s string) (float64, float64) {
	return float64(len(s)) * 7, 13
}

func (c *recordCanvas) hasText(sub string) bool {
	for _, t := range c.texts {
		if strings.Contains(t.s, sub) {
			return true
		}
	}
	return false
}

// identityProvider returns a camera provider that never discovers a target,
// leaving the view matrix at identity with default FOV and aspect.
func identityProvider() *camera.Provider {
	return camera.NewProvider(memread.NewMockReader(), camera.Layout{ManagerChain: []uint64{0x1}}, nil)
}

// boneAtPixel places a bone so the identity view projects it to the given
// canvas pixel on an 800x600 canvas at depth 0.5.
func boneAtPixel(px, py float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(px/400 - 1), float32(1 - py/300), 0.5}
}

func hostileAt(bones map[snapshot.BoneID]mgl32.Vec3) snapshot.Player {
	return snapshot.Player{
		ID:             "p1",
		Name:           "raider",
		Position:       mgl32.Vec3{0, 0, 10},
		Bones:          bones,
		IsAlive:        true,
		IsActive:       true,
		Classification: snapshot.ClassHostile,
	}
}

func boxOnlyConfig() config.Config {
	cfg := config.Default()
	cfg.ShowLoot = false
	cfg.ShowExits = false
	cfg.ShowCrosshair = false
	cfg.ShowFPS = false
	cfg.ShowSkeletonHuman = false
	cfg.ShowLabelHuman = false
	cfg.ShowBoxHuman = true
	return cfg
}

func frame(t *testing.T, src snapshot.Source, cfg config.Config) *recordCanvas {
	t.Helper()
	c := &recordCanvas{}
	r := NewRenderer(identityProvider(), src, nil)
	r.Frame(c, cfg, 800, 600, time.Unix(0, 0))
	return c
}

func TestFrameInactiveSessionDrawsNothing(t *testing.T) {
	c := frame(t, &snapshot.Static{SessionActive: false}, config.Default())
	if len(c.lines)+len(c.rects)+len(c.fills)+len(c.circles)+len(c.texts) != 0 {
		t.Fatal("inactive session must not draw")
	}
}

func TestFrameHiddenPlaceholder(t *testing.T) {
	cfg := config.Default()
	cfg.Hidden = true
	src := &snapshot.Static{
		SessionActive: true,
		AllPlayers:    []snapshot.Player{hostileAt(map[snapshot.BoneID]mgl32.Vec3{snapshot.BoneHead: boneAtPixel(400, 300)})},
	}
	c := frame(t, src, cfg)
	if !c.hasText("hidden") {
		t.Fatal("hidden overlay must draw the placeholder")
	}
	if len(c.rects) != 0 || len(c.lines) != 0 || len(c.circles) != 0 {
		t.Fatal("hidden overlay must draw nothing else")
	}

	// No session outranks the placeholder: nothing at all is drawn.
	c = frame(t, &snapshot.Static{SessionActive: false}, cfg)
	if len(c.texts) != 0 {
		t.Fatal("inactive session must suppress the placeholder too")
	}
}

func TestBoundingBoxDegenerateSkipped(t *testing.T) {
	// 0.5px spread: below the 1px minimum in both dimensions.
	src := &snapshot.Static{
		SessionActive: true,
		AllPlayers: []snapshot.Player{hostileAt(map[snapshot.BoneID]mgl32.Vec3{
			snapshot.BoneHead:   boneAtPixel(399.75, 300),
			snapshot.BonePelvis: boneAtPixel(400.25, 300),
		})},
	}
	c := frame(t, src, boxOnlyConfig())
	if len(c.rects) != 0 {
		t.Fatalf("degenerate box must be skipped, got %v", c.rects)
	}
}

func TestBoundingBoxInflatedByPadding(t *testing.T) {
	// 3px spread in both dimensions around the canvas center.
	src := &snapshot.Static{
		SessionActive: true,
		AllPlayers: []snapshot.Player{hostileAt(map[snapshot.BoneID]mgl32.Vec3{
			snapshot.BoneHead:   boneAtPixel(398.5, 298.5),
			snapshot.BonePelvis: boneAtPixel(401.5, 301.5),
		})},
	}
	c := frame(t, src, boxOnlyConfig())
	if len(c.rects) != 1 {
		t.Fatalf("want exactly one box, got %d", len(c.rects))
	}
	b := c.rects[0]
	const eps = 0.01
	if math.Abs(b.x-396.5) > eps || math.Abs(b.y-296.5) > eps {
		t.Fatalf("box origin (%v,%v), want (396.5,296.5)", b.x, b.y)
	}
	if math.Abs(b.w-7) > eps || math.Abs(b.h-7) > eps {
		t.Fatalf("box size (%v,%v), want (7,7) after 2px padding per side", b.w, b.h)
	}
}

func TestBoundingBoxNeedsTwoPoints(t *testing.T) {
	src := &snapshot.Static{
		SessionActive: true,
		AllPlayers: []snapshot.Player{hostileAt(map[snapshot.BoneID]mgl32.Vec3{
			snapshot.BoneHead: boneAtPixel(380, 290),
		})},
	}
	c := frame(t, src, boxOnlyConfig())
	if len(c.rects) != 0 {
		t.Fatal("a single projected bone must not produce a box")
	}
}

func TestPlayerCulling(t *testing.T) {
	base := hostileAt(map[snapshot.BoneID]mgl32.Vec3{
		snapshot.BoneHead:   boneAtPixel(390, 290),
		snapshot.BonePelvis: boneAtPixel(410, 330),
	})

	cases := []struct {
		name   string
		mutate func(*snapshot.Player)
	}{
		{"dead", func(p *snapshot.Player) { p.IsAlive = false }},
		{"inactive", func(p *snapshot.Player) { p.IsActive = false }},
		{"local_flag", func(p *snapshot.Player) { p.IsLocal = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := base
			tc.mutate(&p)
			src := &snapshot.Static{SessionActive: true, AllPlayers: []snapshot.Player{p}}
			c := frame(t, src, boxOnlyConfig())
			if len(c.rects) != 0 {
				t.Fatal("culled player must not draw")
			}
		})
	}
}

func TestPlayerDistanceCull(t *testing.T) {
	p := hostileAt(map[snapshot.BoneID]mgl32.Vec3{
		snapshot.BoneHead:   boneAtPixel(390, 290),
		snapshot.BonePelvis: boneAtPixel(410, 330),
	})
	p.Position = mgl32.Vec3{0, 0, 500}
	local := snapshot.Player{ID: "me", IsLocal: true, Position: mgl32.Vec3{0, 0, 0}}

	cfg := boxOnlyConfig()
	cfg.MaxDistance = 400
	src := &snapshot.Static{SessionActive: true, Local: &local, AllPlayers: []snapshot.Player{p}}
	if c := frame(t, src, cfg); len(c.rects) != 0 {
		t.Fatal("player beyond max distance must be culled")
	}

	cfg.MaxDistance = 0
	if c := frame(t, src, cfg); len(c.rects) != 1 {
		t.Fatal("distance cull disabled: player must draw")
	}
}

func TestSkeletonDrawsOnlyValidEdges(t *testing.T) {
	cfg := boxOnlyConfig()
	cfg.ShowBoxHuman = false
	cfg.ShowSkeletonHuman = true

	src := &snapshot.Static{
		SessionActive: true,
		AllPlayers: []snapshot.Player{hostileAt(map[snapshot.BoneID]mgl32.Vec3{
			snapshot.BoneHead: boneAtPixel(400, 200),
			snapshot.BoneNeck: boneAtPixel(400, 220),
			// spine_top missing: neck-spine edge cannot draw
			snapshot.BonePelvis: boneAtPixel(400, 320),
		})},
	}
	c := frame(t, src, cfg)
	if len(c.lines) != 1 {
		t.Fatalf("only the head-neck edge should draw, got %d lines", len(c.lines))
	}
}

func TestLootConeGatesLabels(t *testing.T) {
	cfg := config.Default()
	cfg.ShowExits = false
	cfg.ShowCrosshair = false
	cfg.ShowFPS = false
	cfg.ShowSkeletonHuman = false
	cfg.ShowBoxHuman = false
	cfg.ShowLabelHuman = false
	cfg.LootConeDeg = 30

	// On-axis item: 0 degrees from camera forward. Off-axis item projects
	// inside the canvas margin but sits ~67 degrees off forward.
	src := &snapshot.Static{
		SessionActive: true,
		AllLoot: []snapshot.LootItem{
			{Name: "keycard", Price: 1_500_000, Position: mgl32.Vec3{0, 0, 0.5}},
			{Name: "screws", Position: mgl32.Vec3{1.2, 0, 0.5}},
		},
	}
	c := frame(t, src, cfg)

	if len(c.circles) != 2 {
		t.Fatalf("both items project: want 2 markers, got %d", len(c.circles))
	}
	if !c.hasText("keycard") {
		t.Fatal("item inside the cone must be labelled")
	}
	if !c.hasText("1.5M") {
		t.Fatal("label must carry the abbreviated price")
	}
	if c.hasText("screws") {
		t.Fatal("item outside the cone must not be labelled")
	}

	// Important items bypass the cone.
	src.AllLoot[1].Important = true
	if c := frame(t, src, cfg); !c.hasText("screws") {
		t.Fatal("important item must be labelled regardless of the cone")
	}

	// Cone disabled labels everything.
	src.AllLoot[1].Important = false
	cfg.LootConeDeg = 0
	if c := frame(t, src, cfg); !c.hasText("screws") {
		t.Fatal("disabled cone must label every item")
	}
}

// The cone must follow the camera's forward axis, not a world axis: with the
// camera rotated 90 degrees about Y, forward is -X and a target straight
// ahead sits at 0 degrees.
func TestLootConeFollowsRotatedCamera(t *testing.T) {
	view := mgl32.HomogRotate3DY(mgl32.DegToRad(90))
	camPos := projection.CameraPosition(view)
	forward := projection.CameraForward(view)

	if !withinCone(camPos, forward, mgl32.Vec3{-5, 0, 0}, 15) {
		t.Fatal("target on the rotated forward axis must be inside the cone")
	}
	if withinCone(camPos, forward, mgl32.Vec3{5, 0, 0}, 15) {
		t.Fatal("target behind the rotated camera must be outside the cone")
	}
}

func TestPlayerLabelAnchorsToHead(t *testing.T) {
	cfg := boxOnlyConfig()
	cfg.ShowBoxHuman = false
	cfg.ShowLabelHuman = true

	t.Run("with_head", func(t *testing.T) {
		src := &snapshot.Static{
			SessionActive: true,
			AllPlayers: []snapshot.Player{hostileAt(map[snapshot.BoneID]mgl32.Vec3{
				snapshot.BoneHead: boneAtPixel(400, 200),
			})},
		}
		c := frame(t, src, cfg)
		if !c.hasText("raider") {
			t.Fatal("label should draw when the head projects")
		}
	})

	t.Run("without_head", func(t *testing.T) {
		src := &snapshot.Static{
			SessionActive: true,
			AllPlayers: []snapshot.Player{hostileAt(map[snapshot.BoneID]mgl32.Vec3{
				snapshot.BonePelvis: boneAtPixel(400, 320),
			})},
		}
		c := frame(t, src, cfg)
		if c.hasText("raider") {
			t.Fatal("label must not draw without a head projection")
		}
	})
}

type panicCanvas struct {
	recordCanvas
}

func (c *panicCanvas) Line(x1, y1, x2, y2 float64, w float32, clr color.Color) {
	panic("canvas backend fault")
}

func TestFrameRecoversFromPanic(t *testing.T) {
	cfg := config.Default()
	cfg.ShowCrosshair = true

	src := &snapshot.Static{SessionActive: true}
	r := NewRenderer(identityProvider(), src, nil)

	c := &panicCanvas{}
	// Must not panic; the frame keeps whatever was emitted before the fault.
	r.Frame(c, cfg, 800, 600, time.Unix(0, 0))
}

func TestFPSCounterSlidingWindow(t *testing.T) {
	var c fpsCounter
	start := time.Unix(10, 0)
	for i := 0; i < 60; i++ {
		if got := c.frame(start.Add(time.Duration(i) * 16 * time.Millisecond)); got != 0 {
			t.Fatalf("value must stay 0 until a full second elapsed, got %d", got)
		}
	}
	// 63rd frame crosses the one-second boundary.
	got := c.frame(start.Add(1001 * time.Millisecond))
	if got != 61 {
		t.Fatalf("window value = %d, want 61", got)
	}
	if next := c.frame(start.Add(1017 * time.Millisecond)); next != 61 {
		t.Fatalf("value must hold between windows, got %d", next)
	}
}
