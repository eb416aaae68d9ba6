// Package config reads the tool defaults shared by every sprites command
// from the environment. Command line flags override these values.
package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-sprites/render"
	"badc0de.net/pkg/go-sprites/sheet"
)

// Config holds environment-provided defaults.
type Config struct {
	// BaseDir is the asset root holding palettes/ and templates/. Empty
	// means search for one with paths.FindBaseDir.
	BaseDir   string `env:"SPRITES_BASE_DIR"`
	OutputDir string `env:"SPRITES_OUTPUT_DIR" envDefault:"output"`
	Scale     int    `env:"SPRITES_SCALE"      envDefault:"4"`
	// FPS overrides every request's playback speed when positive.
	FPS        int    `env:"SPRITES_FPS"`
	MarkerMode string `env:"SPRITES_MARKER_MODE" envDefault:"transparent"`
	Quantizer  string `env:"SPRITES_QUANTIZER"   envDefault:"gogif"`
}

// Load parses the environment into a Config and validates it.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, errors.Wrap(err, "parse env")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no command could use.
func (c *Config) Validate() error {
	if c.Scale < 1 {
		return errors.Errorf("scale %d is below 1", c.Scale)
	}
	if c.FPS < 0 {
		return errors.Errorf("fps %d is negative", c.FPS)
	}
	if _, ok := render.ParseMode(c.MarkerMode); !ok {
		return errors.Errorf("unknown marker mode %q", c.MarkerMode)
	}
	if _, ok := sheet.ParseQuantizer(c.Quantizer); !ok {
		return errors.Errorf("unknown quantizer %q", c.Quantizer)
	}
	return nil
}

// Renderer builds the layer renderer for mode, which is a marker mode name
// as accepted by render.ParseMode.
func Renderer(mode string) (render.Renderer, error) {
	m, ok := render.ParseMode(mode)
	if !ok {
		return render.Renderer{}, errors.Errorf("unknown marker mode %q", mode)
	}
	return render.Renderer{Mode: m, Marker: render.DefaultMarker}, nil
}
