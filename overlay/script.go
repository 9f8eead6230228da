package overlay

import (
	"fmt"
	"os"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// LoadPaletteScript evaluates a tengo style script and applies its color
// overrides on top of base. The script assigns hex strings to a `colors`
// map, e.g.
//
//	colors := { hostile: "#ff3b30", focused: "#ffff00" }
//
// Unknown keys are an error so typos don't silently keep defaults.
func LoadPaletteScript(path string, base Palette) (Palette, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("overlay: read style script %s: %w", path, err)
	}

	script := tengo.NewScript(src)
	script.SetImports(stdlib.GetModuleMap("math", "text"))
	compiled, err := script.Run()
	if err != nil {
		return base, fmt.Errorf("overlay: run style script %s: %w", path, err)
	}

	v := compiled.Get("colors")
	if v == nil || v.IsUndefined() {
		return base, nil
	}

	out := base
	for key, raw := range v.Map() {
		hex, ok := raw.(string)
		if !ok {
			return base, fmt.Errorf("overlay: style script key %q is not a string", key)
		}
		clr, err := ParseHexColor(hex)
		if err != nil {
			return base, fmt.Errorf("overlay: style script key %q: %w", key, err)
		}
		switch key {
		case "teammate":
			out.Teammate = clr
		case "hostile":
			out.Hostile = clr
		case "bot":
			out.Bot = clr
		case "watchlisted":
			out.Watchlisted = clr
		case "focused":
			out.Focused = clr
		case "local":
			out.Local = clr
		case "loot":
			out.Loot = clr
		case "loot_marked":
			out.LootMarked = clr
		case "exit":
			out.Exit = clr
		case "crosshair":
			out.Crosshair = clr
		case "hud":
			out.HUD = clr
		case "label_bg":
			out.LabelBG = clr
		default:
			return base, fmt.Errorf("overlay: style script sets unknown color %q", key)
		}
	}
	return out, nil
}
