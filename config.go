package gview

import (
	"fmt"
	"image/color"

	"github.com/BurntSushi/toml"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Config holds viewer defaults. Scene attributes (AttrAntialias,
// AttrQuality, AttrLog) override the corresponding fields per frame.
type Config struct {
	// Antialias enables anti-aliased drawing.
	Antialias bool `toml:"antialias"`

	// Quality enables the rendering-quality hint.
	Quality bool `toml:"quality"`

	// Background is the fallback background color (hex, e.g. "#ffffff")
	// used when the scene has no graph-level style group.
	Background string `toml:"background"`

	// Selection is the selection overlay color (hex).
	Selection string `toml:"selection"`

	// FPSLog names a file to receive per-frame timing lines. Empty
	// disables instrumentation unless the scene carries AttrLog.
	FPSLog string `toml:"fps_log"`
}

// DefaultConfig returns the built-in viewer defaults.
func DefaultConfig() Config {
	return Config{
		Antialias:  true,
		Quality:    true,
		Background: "#ffffff",
		Selection:  "#3c78c8",
	}
}

// LoadConfig reads a TOML config file. Missing fields keep their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("gview: load config: %w", err)
	}
	return cfg, nil
}

// BackgroundColor parses the Background field.
func (c Config) BackgroundColor() (color.Color, error) {
	return parseHex(c.Background)
}

// SelectionColor parses the Selection field.
func (c Config) SelectionColor() (color.Color, error) {
	return parseHex(c.Selection)
}

func parseHex(s string) (color.Color, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return nil, fmt.Errorf("gview: bad color %q: %w", s, err)
	}
	return col, nil
}
