// Package config loads the sketch board options from a TOML or YAML file.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"SketchBoard/internal/geom"
	"SketchBoard/internal/state"
)

// Config holds every recognised option. The zero value is not useful; start
// from Default.
type Config struct {
	SimplifyTolerance    float64         `toml:"simplify_tolerance" yaml:"simplify_tolerance"`
	MinMovementThreshold float64         `toml:"min_movement_threshold" yaml:"min_movement_threshold"`
	MaxHistoryDepth      int             `toml:"max_history_depth" yaml:"max_history_depth"` // 0 keeps everything
	AspectMode           geom.AspectMode `toml:"aspect_mode" yaml:"aspect_mode"`
	PressureWidth        bool            `toml:"pressure_width" yaml:"pressure_width"`

	Width      float64 `toml:"width" yaml:"width"`
	Height     float64 `toml:"height" yaml:"height"`
	Background string  `toml:"background" yaml:"background"`

	Pen    Pen    `toml:"pen" yaml:"pen"`
	Mirror Mirror `toml:"mirror" yaml:"mirror"`
}

// Pen is the style new strokes start with.
type Pen struct {
	Color   string  `toml:"color" yaml:"color"`
	Width   float64 `toml:"width" yaml:"width"`
	Opacity float64 `toml:"opacity" yaml:"opacity"`
}

// Mirror configures the read-only live view served to other machines.
type Mirror struct {
	Enabled   bool `toml:"enabled" yaml:"enabled"`
	Port      int  `toml:"port" yaml:"port"`
	Advertise bool `toml:"advertise" yaml:"advertise"`
}

// Default returns the built in configuration.
func Default() Config {
	return Config{
		SimplifyTolerance:    1.5,
		MinMovementThreshold: 1,
		AspectMode:           geom.Letterbox,
		Width:                state.DefaultSize.W,
		Height:               state.DefaultSize.H,
		Background:           "white",
		Pen:                  Pen{Color: "black", Width: 2, Opacity: 1},
		Mirror:               Mirror{Port: 8888, Advertise: true},
	}
}

// Load reads path over the defaults. Files ending in .yaml or .yml are YAML,
// anything else is TOML. Keys missing from the file keep their default
// value; unknown keys are an error.
func Load(path string) (Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return Default(), fmt.Errorf("loading config: %w", err)
		}
		defer f.Close()
		c, err := decodeYAML(f)
		if err != nil {
			return c, fmt.Errorf("loading config %s: %w", path, err)
		}
		return c, c.Validate()
	}
	c := Default()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return c, fmt.Errorf("loading config %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return c, fmt.Errorf("loading config %s: %w", path, err)
	}
	return c, c.Validate()
}

// ParseYAML is Load for in-memory YAML.
func ParseYAML(data string) (Config, error) {
	c, err := decodeYAML(strings.NewReader(data))
	if err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	return c, c.Validate()
}

func decodeYAML(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return c, err
	}
	return c, nil
}

// Parse is Load for in-memory TOML.
func Parse(data string) (Config, error) {
	c := Default()
	md, err := toml.Decode(data, &c)
	if err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return c, fmt.Errorf("parsing config: %w", err)
	}
	return c, c.Validate()
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
}

// Validate reports the first invalid option.
func (c Config) Validate() error {
	switch {
	case !finite(c.SimplifyTolerance) || c.SimplifyTolerance < 0:
		return errors.New("simplify_tolerance must be a non-negative number")
	case !finite(c.MinMovementThreshold) || c.MinMovementThreshold < 0:
		return errors.New("min_movement_threshold must be a non-negative number")
	case c.MaxHistoryDepth < 0:
		return errors.New("max_history_depth must not be negative")
	case !finite(c.Width) || !finite(c.Height) || c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("canvas size %gx%g must be positive", c.Width, c.Height)
	case !finite(c.Pen.Width) || c.Pen.Width <= 0:
		return errors.New("pen.width must be positive")
	case !finite(c.Pen.Opacity) || c.Pen.Opacity < 0 || c.Pen.Opacity > 1:
		return errors.New("pen.opacity must be within [0,1]")
	case c.Mirror.Port < 0 || c.Mirror.Port > 65535:
		return fmt.Errorf("mirror.port %d out of range", c.Mirror.Port)
	}
	if _, err := state.ParseColor(c.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if _, err := state.ParseColor(c.Pen.Color); err != nil {
		return fmt.Errorf("pen.color: %w", err)
	}
	return nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Size is the logical canvas size.
func (c Config) Size() geom.Size { return geom.Size{W: c.Width, H: c.Height} }

// BackgroundColor returns the parsed background. Call Validate first.
func (c Config) BackgroundColor() color.NRGBA { return mustColor(c.Background) }

// Style returns the parsed pen. Call Validate first.
func (c Config) Style() state.Style {
	return state.Style{Color: mustColor(c.Pen.Color), Width: c.Pen.Width, Opacity: c.Pen.Opacity}
}

func mustColor(s string) color.NRGBA {
	c, err := state.ParseColor(s)
	if err != nil {
		return color.NRGBA{A: 0xff}
	}
	return c
}
