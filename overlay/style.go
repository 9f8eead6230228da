package overlay

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/varkas/overlens/snapshot"
)

// Palette maps entity roles to draw colors. Values are plain RGBA so the
// table can be overridden from configuration or a style script without
// touching the renderer.
type Palette struct {
	Teammate    color.RGBA
	Hostile     color.RGBA
	Bot         color.RGBA
	Watchlisted color.RGBA
	Focused     color.RGBA
	Local       color.RGBA
	Loot        color.RGBA
	LootMarked  color.RGBA
	Exit        color.RGBA
	Crosshair   color.RGBA
	HUD         color.RGBA
	LabelBG     color.RGBA
}

func DefaultPalette() Palette {
	return Palette{
		Teammate:    color.RGBA{R: 0x32, G: 0xC8, B: 0xFF, A: 0xFF},
		Hostile:     color.RGBA{R: 0xE6, G: 0x3C, B: 0x3C, A: 0xFF},
		Bot:         color.RGBA{R: 0xE6, G: 0xB4, B: 0x32, A: 0xFF},
		Watchlisted: color.RGBA{R: 0xFF, G: 0x00, B: 0xDC, A: 0xFF},
		Focused:     color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF},
		Local:       color.RGBA{R: 0x64, G: 0xFF, B: 0x64, A: 0xFF},
		Loot:        color.RGBA{R: 0xB4, G: 0xB4, B: 0xFF, A: 0xFF},
		LootMarked:  color.RGBA{R: 0xFF, G: 0x96, B: 0x00, A: 0xFF},
		Exit:        color.RGBA{R: 0x50, G: 0xDC, B: 0x78, A: 0xFF},
		Crosshair:   color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xC8},
		HUD:         color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
		LabelBG:     color.RGBA{A: 0xA0},
	}
}

// PlayerColor resolves the style for a tracked player. Priority: explicit
// focus, then the local viewer, then the classification bucket with the
// watchlist flag above regular classes.
func (p Palette) PlayerColor(pl snapshot.Player) color.RGBA {
	switch {
	case pl.Focused:
		return p.Focused
	case pl.IsLocal:
		return p.Local
	case pl.Watchlisted:
		return p.Watchlisted
	}
	switch pl.Classification {
	case snapshot.ClassTeammate:
		return p.Teammate
	case snapshot.ClassBot:
		return p.Bot
	default:
		return p.Hostile
	}
}

// ParseHexColor parses "#rrggbb" or "#rrggbbaa".
func ParseHexColor(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("overlay: invalid color %q", s)
	}
	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(h[start:start+2], 16, 8)
		return uint8(v), err
	}
	r, err := parse(0)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("overlay: invalid color %q: %w", s, err)
	}
	g, err := parse(2)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("overlay: invalid color %q: %w", s, err)
	}
	b, err := parse(4)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("overlay: invalid color %q: %w", s, err)
	}
	a := uint8(0xFF)
	if len(h) == 8 {
		a, err = parse(6)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("overlay: invalid color %q: %w", s, err)
		}
	}
	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}
