// Package config loads board settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"WormBoard/internal/logging"
	"WormBoard/internal/state"
	"WormBoard/internal/tools"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Config struct {
	// DotSize is the drawn dot diameter; dot spacing is derived from it.
	DotSize      float64 `toml:"dot_size"`
	HistoryLimit int     `toml:"history_limit"`
	LogLevel     string  `toml:"log_level"`
	// Tool is the tool active at start: pencil, wand or line.
	Tool   string `toml:"tool"`
	Seed   Seed   `toml:"seed"`
	Share  Share  `toml:"share"`
	Export Export `toml:"export"`
}

// Seed is the point cloud committed as the first batch. File, when set,
// names a JSON snapshot and wins over Shape.
type Seed struct {
	Shape string  `toml:"shape"`
	X     float64 `toml:"x"`
	Y     float64 `toml:"y"`
	Size  float64 `toml:"size"`
	Angle float64 `toml:"angle"`
	File  string  `toml:"file"`
}

type Share struct {
	Enabled   bool `toml:"enabled"`
	Port      int  `toml:"port"`
	Advertise bool `toml:"advertise"`
}

type Export struct {
	PDFPath  string `toml:"pdf_path"`
	JSONPath string `toml:"json_path"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		DotSize:      30,
		HistoryLimit: state.DefaultLimit,
		LogLevel:     "info",
		Tool:         tools.Pencil.String(),
		Seed: Seed{
			Shape: "line",
			X:     15,
			Y:     240,
			Size:  10,
		},
		Share: Share{
			Port:      8888,
			Advertise: true,
		},
		Export: Export{
			PDFPath:  "worms.pdf",
			JSONPath: "worms.json",
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	md, err := toml.DecodeFile(path, &cfg)
	if errors.Is(err, os.ErrNotExist) {
		logging.Logger().Info("config file not found, using defaults", "path", path)
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("could not read config %s: %w", path, err)
	}
	for _, key := range md.Undecoded() {
		logging.Logger().Warn("ignoring unknown config key", "key", key.String())
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot be used.
func (c Config) Validate() error {
	if c.DotSize <= 0 {
		return fmt.Errorf("%w: dot_size must be positive, got %v", ErrInvalid, c.DotSize)
	}
	if c.HistoryLimit < 1 {
		return fmt.Errorf("%w: history_limit must be at least 1, got %d", ErrInvalid, c.HistoryLimit)
	}
	if _, err := tools.ParseKind(c.Tool); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Share.Port < 0 || c.Share.Port > 65535 {
		return fmt.Errorf("%w: share.port out of range: %d", ErrInvalid, c.Share.Port)
	}
	return nil
}

// Spacing is the gap kept between consecutive dots.
func (c Config) Spacing() float64 {
	return tools.Spacing(c.DotSize)
}

// ActiveTool parses Tool. Call Validate first.
func (c Config) ActiveTool() tools.Kind {
	k, err := tools.ParseKind(c.Tool)
	if err != nil {
		return tools.Pencil
	}
	return k
}
