package config

// Emulator configuration, loaded from a TOML file with CLI flags layered
// on top by the frontends.

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Keys maps emulator buttons to SDL scancode names.
type Keys struct {
	Up     string `toml:"up"`
	Down   string `toml:"down"`
	Left   string `toml:"left"`
	Right  string `toml:"right"`
	A      string `toml:"a"`
	B      string `toml:"b"`
	X      string `toml:"x"`
	Y      string `toml:"y"`
	L      string `toml:"l"`
	R      string `toml:"r"`
	Start  string `toml:"start"`
	Select string `toml:"select"`
}

// Config is the emulator configuration.
type Config struct {
	// Scale is the integer display scale (1-6).
	Scale int `toml:"scale"`
	// FrameLimit paces emulation to 60 FPS.
	FrameLimit bool `toml:"frame_limit"`
	Fullscreen bool `toml:"fullscreen"`

	// OverflowResetAtVBlankEnd selects when the PPU's sprite overflow
	// flags reset; frame start is the default.
	OverflowResetAtVBlankEnd bool `toml:"overflow_reset_at_vblank_end"`

	// LogEnabled turns on the component log; LogLevel is one of error,
	// warning, info, debug, trace.
	LogEnabled bool   `toml:"log_enabled"`
	LogLevel   string `toml:"log_level"`

	Keys Keys `toml:"keys"`
}

// Default returns the configuration used when no file exists. The key
// layout loosely mirrors a real controller:
//
//	Q W           I O P
//	A S D   G H   K L
//	-------------------
//	L ↑           Y X R
//	< ↓ > Sel Sta B A
func Default() Config {
	return Config{
		Scale:      3,
		FrameLimit: true,
		LogLevel:   "info",
		Keys: Keys{
			Up:     "W",
			Left:   "A",
			Down:   "S",
			Right:  "D",
			Select: "G",
			Start:  "H",
			A:      "L",
			B:      "K",
			X:      "O",
			Y:      "I",
			R:      "P",
			L:      "Q",
		},
	}
}

// Load reads a config file; a missing file yields the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values the frontends cannot honor.
func (c Config) Validate() error {
	if c.Scale < 1 || c.Scale > 6 {
		return fmt.Errorf("config: scale %d out of range 1-6", c.Scale)
	}
	switch c.LogLevel {
	case "error", "warning", "info", "debug", "trace":
	default:
		return fmt.Errorf("config: unknown log level %q", c.LogLevel)
	}
	return nil
}
