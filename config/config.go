// Package config loads the overlay configuration: a YAML file overlaid with
// environment variables. The render loop receives the struct by value each
// frame, so a reload never mutates a frame in progress.
package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is one immutable snapshot of every toggle and number the overlay
// reads. Env variables override the file.
type Config struct {
	BridgeAddr  string `yaml:"bridge_addr" env:"OVERLENS_BRIDGE_ADDR"`
	LayoutPath  string `yaml:"layout_path" env:"OVERLENS_LAYOUT"`
	StyleScript string `yaml:"style_script" env:"OVERLENS_STYLE_SCRIPT"`

	// MaxFPS caps overlay repaints; 0 disables the cap.
	MaxFPS int `yaml:"max_fps" env:"OVERLENS_MAX_FPS"`

	// MaxDistance culls players farther than this many meters; 0 disables.
	MaxDistance float64 `yaml:"max_distance" env:"OVERLENS_MAX_DISTANCE"`

	// LootConeDeg is the half-angle of the camera-forward cone inside
	// which loot labels show; 0 labels everything.
	LootConeDeg float64 `yaml:"loot_cone_deg" env:"OVERLENS_LOOT_CONE_DEG"`

	CrosshairLength float64 `yaml:"crosshair_length" env:"OVERLENS_CROSSHAIR_LENGTH"`

	// Hidden blanks the overlay, leaving only a small placeholder.
	Hidden bool `yaml:"hidden" env:"OVERLENS_HIDDEN"`

	ShowFPS       bool `yaml:"show_fps" env:"OVERLENS_SHOW_FPS"`
	ShowCrosshair bool `yaml:"show_crosshair" env:"OVERLENS_SHOW_CROSSHAIR"`
	ShowLoot      bool `yaml:"show_loot" env:"OVERLENS_SHOW_LOOT"`
	ShowExits     bool `yaml:"show_exits" env:"OVERLENS_SHOW_EXITS"`

	ShowSkeletonHuman bool `yaml:"show_skeleton_human" env:"OVERLENS_SHOW_SKELETON_HUMAN"`
	ShowSkeletonBot   bool `yaml:"show_skeleton_bot" env:"OVERLENS_SHOW_SKELETON_BOT"`
	ShowBoxHuman      bool `yaml:"show_box_human" env:"OVERLENS_SHOW_BOX_HUMAN"`
	ShowBoxBot        bool `yaml:"show_box_bot" env:"OVERLENS_SHOW_BOX_BOT"`
	ShowLabelHuman    bool `yaml:"show_label_human" env:"OVERLENS_SHOW_LABEL_HUMAN"`
	ShowLabelBot      bool `yaml:"show_label_bot" env:"OVERLENS_SHOW_LABEL_BOT"`

	Fullscreen bool `yaml:"fullscreen" env:"OVERLENS_FULLSCREEN"`

	// ResolutionW/H override the fullscreen geometry; 0 uses the monitor
	// resolution.
	ResolutionW float64 `yaml:"resolution_w" env:"OVERLENS_RESOLUTION_W"`
	ResolutionH float64 `yaml:"resolution_h" env:"OVERLENS_RESOLUTION_H"`

	// Watchlist names get the watchlist style regardless of class.
	Watchlist []string `yaml:"watchlist" env:"OVERLENS_WATCHLIST" envSeparator:","`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BridgeAddr:        "ws://127.0.0.1:7718",
		MaxFPS:            0,
		MaxDistance:       400,
		LootConeDeg:       15,
		CrosshairLength:   8,
		ShowFPS:           true,
		ShowCrosshair:     true,
		ShowLoot:          true,
		ShowExits:         true,
		ShowSkeletonHuman: true,
		ShowSkeletonBot:   false,
		ShowBoxHuman:      true,
		ShowBoxBot:        true,
		ShowLabelHuman:    true,
		ShowLabelBot:      true,
	}
}

// Load reads the YAML file (missing file is not an error) and applies env
// overrides on top.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// fall through to env overrides
		case err != nil:
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("config: unmarshal %s: %w", path, err)
			}
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.MaxFPS < 0 {
		return fmt.Errorf("config: max_fps must be >= 0, got %d", c.MaxFPS)
	}
	if c.MaxDistance < 0 {
		return fmt.Errorf("config: max_distance must be >= 0, got %v", c.MaxDistance)
	}
	if c.LootConeDeg < 0 || c.LootConeDeg > 180 {
		return fmt.Errorf("config: loot_cone_deg must be in [0,180], got %v", c.LootConeDeg)
	}
	return nil
}
