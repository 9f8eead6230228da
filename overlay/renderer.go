package overlay

import (
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/varkas/overlens/camera"
	"github.com/varkas/overlens/config"
	"github.com/varkas/overlens/projection"
	"github.com/varkas/overlens/snapshot"
)

const (
	lootMarkerRadius = 3
	exitMarkerRadius = 4

	// boxEdgeSlack tolerates boxes that spill slightly off-canvas.
	boxEdgeSlack = 50
	boxPadding   = 2

	labelOffsetY = 18
)

// Renderer composes one overlay frame from the camera state and the current
// entity snapshot. It holds no per-frame state besides the FPS window;
// projection results are recomputed from scratch every frame.
type Renderer struct {
	provider *camera.Provider
	source   snapshot.Source
	palette  Palette
	log      *slog.Logger
	fps      fpsCounter
}

func NewRenderer(provider *camera.Provider, source snapshot.Source, log *slog.Logger) *Renderer {
	if log == nil {
		log = slog.Default()
	}
	return &Renderer{
		provider: provider,
		source:   source,
		palette:  DefaultPalette(),
		log:      log,
	}
}

func (r *Renderer) SetPalette(p Palette) {
	r.palette = p
}

// Frame draws one overlay frame in fixed z-order: loot, exits, players,
// crosshair, HUD. A panic anywhere degrades to whatever was drawn before the
// fault; nothing propagates into the render loop or the next frame.
func (r *Renderer) Frame(c Canvas, cfg config.Config, width, height float64, now time.Time) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("overlay frame aborted", "panic", rec)
		}
	}()

	if !r.source.Active() {
		return
	}
	if cfg.Hidden {
		c.Text("hidden", 4, height-16, r.palette.HUD)
		return
	}

	view := r.provider.State().View

	if cfg.ShowLoot {
		r.drawLoot(c, cfg, view, width, height)
	}
	if cfg.ShowExits {
		r.drawExits(c, view, width, height)
	}
	r.drawPlayers(c, cfg, view, width, height)
	if cfg.ShowCrosshair && cfg.CrosshairLength > 0 {
		r.drawCrosshair(c, cfg.CrosshairLength, width, height)
	}
	if cfg.ShowFPS {
		c.Text(fmt.Sprintf("FPS %d", r.fps.frame(now)), 4, 4, r.palette.HUD)
	}
}

func (r *Renderer) drawLoot(c Canvas, cfg config.Config, view mgl32.Mat4, width, height float64) {
	camPos := projection.CameraPosition(view)
	forward := projection.CameraForward(view)

	for _, item := range r.source.Loot() {
		pt, ok := projection.TryProject(item.Position, view, width, height)
		if !ok {
			continue
		}

		clr := r.palette.Loot
		if item.Important {
			clr = r.palette.LootMarked
		}
		c.FillCircle(pt.X, pt.Y, lootMarkerRadius, clr)

		if !item.Important && !withinCone(camPos, forward, item.Position, cfg.LootConeDeg) {
			continue
		}
		label := item.Name
		if item.Price > 0 {
			label = fmt.Sprintf("%s %s", item.Name, abbrevPrice(item.Price))
		}
		r.drawLabel(c, label, pt.X, pt.Y-labelOffsetY, clr)
	}
}

// withinCone reports whether the target sits inside the camera-forward cone.
// A non-positive half-angle disables the cone, labelling everything.
func withinCone(camPos, forward, target mgl32.Vec3, halfAngleDeg float64) bool {
	if halfAngleDeg <= 0 {
		return true
	}
	dir := target.Sub(camPos)
	if dir.Len() == 0 {
		return true
	}
	cos := float64(forward.Dot(dir.Normalize()))
	// float drift can push the dot product a hair outside [-1,1], which
	// would NaN the arccosine.
	cos = math.Max(-1, math.Min(1, cos))
	angle := math.Acos(cos) * 180 / math.Pi
	return angle <= halfAngleDeg
}

func abbrevPrice(price int64) string {
	switch {
	case price >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(price)/1_000_000)
	case price >= 1_000:
		return fmt.Sprintf("%.0fk", float64(price)/1_000)
	default:
		return fmt.Sprintf("%d", price)
	}
}

func (r *Renderer) drawExits(c Canvas, view mgl32.Mat4, width, height float64) {
	for _, exit := range r.source.Exits() {
		pt, ok := projection.TryProject(exit.Position, view, width, height)
		if !ok {
			continue
		}
		c.FillCircle(pt.X, pt.Y, exitMarkerRadius, r.palette.Exit)
		r.drawLabel(c, exit.Name, pt.X, pt.Y-labelOffsetY, r.palette.Exit)
	}
}

func (r *Renderer) drawPlayers(c Canvas, cfg config.Config, view mgl32.Mat4, width, height float64) {
	viewerPos := projection.CameraPosition(view)
	local, hasLocal := r.source.LocalPlayer()
	if hasLocal {
		viewerPos = local.Position
	}

	for _, p := range r.source.Players() {
		if p.IsLocal || (hasLocal && p.ID == local.ID) {
			continue
		}
		if !p.IsAlive || !p.IsActive {
			continue
		}

		// Cheap range cull before any per-bone projection work.
		dist := float64(p.Position.Sub(viewerPos).Len())
		if cfg.MaxDistance > 0 && dist > cfg.MaxDistance {
			continue
		}

		if !p.Watchlisted && onWatchlist(cfg.Watchlist, p.Name) {
			p.Watchlisted = true
		}
		clr := r.palette.PlayerColor(p)

		isBot := p.Classification == snapshot.ClassBot
		showSkeleton := cfg.ShowSkeletonHuman
		showBox := cfg.ShowBoxHuman
		showLabel := cfg.ShowLabelHuman
		if isBot {
			showSkeleton = cfg.ShowSkeletonBot
			showBox = cfg.ShowBoxBot
			showLabel = cfg.ShowLabelBot
		}

		if showSkeleton {
			r.drawSkeleton(c, p, view, width, height, clr)
		}
		if showBox {
			r.drawBoundingBox(c, p, view, width, height, clr)
		}
		if showLabel {
			r.drawPlayerLabel(c, p, view, width, height, dist, clr)
		}
	}
}

func onWatchlist(watchlist []string, name string) bool {
	for _, w := range watchlist {
		if w == name {
			return true
		}
	}
	return false
}

func (r *Renderer) drawSkeleton(c Canvas, p snapshot.Player, view mgl32.Mat4, width, height float64, clr color.RGBA) {
	for _, edge := range snapshot.SkeletonEdges {
		from, okFrom := p.Bone(edge.From)
		to, okTo := p.Bone(edge.To)
		if !okFrom || !okTo {
			continue
		}
		a, ok := projection.TryProject(from, view, width, height)
		if !ok {
			continue
		}
		b, ok := projection.TryProject(to, view, width, height)
		if !ok {
			continue
		}
		c.Line(a.X, a.Y, b.X, b.Y, 1, clr)
	}
}

// drawBoundingBox reconstructs the entity's screen box from every bone that
// projects this frame. Too few points, a sub-pixel box, or a box larger than
// twice the canvas (a corrupted read) all skip the draw.
func (r *Renderer) drawBoundingBox(c Canvas, p snapshot.Player, view mgl32.Mat4, width, height float64, clr color.RGBA) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	valid := 0
	for _, pos := range p.Bones {
		pt, ok := projection.TryProject(pos, view, width, height)
		if !ok {
			continue
		}
		valid++
		minX = math.Min(minX, pt.X)
		maxX = math.Max(maxX, pt.X)
		minY = math.Min(minY, pt.Y)
		maxY = math.Max(maxY, pt.Y)
	}
	if valid < 2 {
		return
	}

	w := maxX - minX
	h := maxY - minY
	if w < 1 || h < 1 {
		return
	}
	if w > 2*width || h > 2*height {
		return
	}

	minX = clamp(minX, -boxEdgeSlack, width+boxEdgeSlack)
	maxX = clamp(maxX, -boxEdgeSlack, width+boxEdgeSlack)
	minY = clamp(minY, -boxEdgeSlack, height+boxEdgeSlack)
	maxY = clamp(maxY, -boxEdgeSlack, height+boxEdgeSlack)

	minX -= boxPadding
	minY -= boxPadding
	maxX += boxPadding
	maxY += boxPadding

	c.StrokeRect(minX, minY, maxX-minX, maxY-minY, 1, clr)
}

func (r *Renderer) drawPlayerLabel(c Canvas, p snapshot.Player, view mgl32.Mat4, width, height float64, dist float64, clr color.RGBA) {
	head, ok := p.Bone(snapshot.BoneHead)
	if !ok {
		return
	}
	pt, ok := projection.TryProject(head, view, width, height)
	if !ok {
		return
	}
	label := fmt.Sprintf("%s %dm", p.Name, int(math.Round(dist)))
	tw, _ := c.MeasureText(label)
	r.drawLabel(c, label, pt.X-tw/2, pt.Y-labelOffsetY, clr)
}

func (r *Renderer) drawLabel(c Canvas, s string, x, y float64, clr color.RGBA) {
	tw, th := c.MeasureText(s)
	c.FillRect(x-2, y-1, tw+4, th+2, r.palette.LabelBG)
	c.Text(s, x, y, clr)
}

func (r *Renderer) drawCrosshair(c Canvas, length, width, height float64) {
	cx := width / 2
	cy := height / 2
	c.Line(cx-length, cy, cx+length, cy, 1, r.palette.Crosshair)
	c.Line(cx, cy-length, cx, cy+length, 1, r.palette.Crosshair)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
