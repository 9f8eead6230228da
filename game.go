package main

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.design/x/clipboard"

	"github.com/varkas/overlens/camera"
	"github.com/varkas/overlens/config"
	"github.com/varkas/overlens/frameloop"
	"github.com/varkas/overlens/memread"
	"github.com/varkas/overlens/overlay"
	"github.com/varkas/overlens/snapshot"
	"github.com/varkas/overlens/window"
)

// Game wires the overlay pipeline into ebiten's loop: Update handles input,
// config reloads, and the camera/scheduler tick; Draw blits the overlay
// image, redrawing it only on ticks the scheduler accepted.
type Game struct {
	configPath string
	cfg        config.Config

	provider *camera.Provider
	source   snapshot.Source
	renderer *overlay.Renderer
	sched    *frameloop.Scheduler
	clock    frameloop.Clock
	windows  *window.Manager
	watcher  *config.Watcher
	panel    *statusPanel

	canvas    *overlay.EbitenCanvas
	offscreen *ebiten.Image
	redraw    bool

	clipboardReady bool
	showPanel      bool
}

func NewGame(configPath string, cfg config.Config, layout camera.Layout, reader memread.Reader, source snapshot.Source, clipboardReady bool) (*Game, error) {
	provider := camera.NewProvider(reader, layout, nil)
	renderer := overlay.NewRenderer(provider, source, nil)

	palette := overlay.DefaultPalette()
	if cfg.StyleScript != "" {
		p, err := overlay.LoadPaletteScript(cfg.StyleScript, palette)
		if err != nil {
			return nil, err
		}
		palette = p
	}
	renderer.SetPalette(palette)

	watcher, err := config.NewWatcher(configPath, cfg.StyleScript, cfg.LayoutPath)
	if err != nil {
		return nil, fmt.Errorf("config watcher: %w", err)
	}

	windows := window.NewManager(window.EbitenDisplay{})
	if cfg.Fullscreen {
		windows.SetFullscreen(true, cfg.ResolutionW, cfg.ResolutionH)
	}

	return &Game{
		configPath:     configPath,
		cfg:            cfg,
		provider:       provider,
		source:         source,
		renderer:       renderer,
		sched:          frameloop.NewScheduler(nil),
		clock:          frameloop.SystemClock{},
		windows:        windows,
		watcher:        watcher,
		panel:          newStatusPanel(),
		canvas:         overlay.NewEbitenCanvas(nil),
		redraw:         true,
		clipboardReady: clipboardReady,
	}, nil
}

func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) Update() error {
	g.pollWatcher()
	g.handleHotkeys()

	g.windows.ApplyResolutionOverride(g.cfg.ResolutionW, g.cfg.ResolutionH)

	aiming := false
	if local, ok := g.source.LocalPlayer(); ok {
		aiming = local.IsAiming
	}
	g.provider.Update(aiming)

	if g.sched.OnTick(g.cfg.MaxFPS) {
		g.redraw = true
	}

	if g.showPanel {
		g.panel.ui.Update()
	}
	return nil
}

// pollWatcher drains pending file-change events and reloads whatever they
// touch. A broken reload keeps the previous config; the overlay must not go
// dark because of a half-saved file.
func (g *Game) pollWatcher() {
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				return
			}
			log.Printf("reloading after change to %s", path)
			cfg, err := config.Load(g.configPath)
			if err != nil {
				log.Printf("config reload failed: %v", err)
				continue
			}
			g.cfg = cfg
			if cfg.LayoutPath != "" && samePath(path, cfg.LayoutPath) {
				layout, err := camera.LoadLayout(cfg.LayoutPath)
				if err != nil {
					log.Printf("layout reload failed: %v", err)
				} else {
					g.provider.SetLayout(layout)
				}
			}
			palette := overlay.DefaultPalette()
			if cfg.StyleScript != "" {
				p, err := overlay.LoadPaletteScript(cfg.StyleScript, palette)
				if err != nil {
					log.Printf("style script reload failed: %v", err)
				} else {
					palette = p
				}
			}
			g.renderer.SetPalette(palette)
		case err, ok := <-g.watcher.Errors:
			if ok {
				log.Printf("config watcher: %v", err)
			}
		default:
			return
		}
	}
}

// samePath compares a watcher event path (already absolute) with a
// configured path that may be relative.
func samePath(event, configured string) bool {
	abs, err := filepath.Abs(configured)
	if err != nil {
		return false
	}
	return event == abs
}

func (g *Game) handleHotkeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		g.windows.Toggle(g.cfg.ResolutionW, g.cfg.ResolutionH)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		g.showPanel = !g.showPanel
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF8) && g.clipboardReady {
		clipboard.Write(clipboard.FmtText, []byte(g.diagnostics()))
	}
}

func (g *Game) diagnostics() string {
	state := g.provider.State()
	return fmt.Sprintf(
		"overlens: initialized=%v fov=%.1f aspect=%.3f aiming=%v session=%v players=%d loot=%d exits=%d",
		g.provider.Initialized(), state.FOV, state.AspectRatio, state.IsAiming,
		g.source.Active(), len(g.source.Players()), len(g.source.Loot()), len(g.source.Exits()),
	)
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()

	if g.offscreen == nil || g.offscreen.Bounds().Dx() != w || g.offscreen.Bounds().Dy() != h {
		g.offscreen = ebiten.NewImage(w, h)
		g.canvas.Retarget(g.offscreen)
		g.redraw = true
	}

	if g.redraw {
		g.offscreen.Clear()
		g.renderer.Frame(g.canvas, g.cfg, float64(w), float64(h), g.clock.Now())
		g.redraw = false
	}
	screen.DrawImage(g.offscreen, nil)

	if g.showPanel {
		g.panel.refresh(g.provider, g.source)
		g.panel.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return 1, 1
	}
	return outsideWidth, outsideHeight
}
