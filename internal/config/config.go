// Package config holds the command-line configuration of the petal effect.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/sakura-go/internal/wind"
)

const (
	WindowWidth  = 800
	WindowHeight = 600
	WindowTitle  = "Sakura"

	BackendWindow   = "window"
	BackendTerminal = "terminal"

	DefaultBackground = "#14101e"
)

var (
	ErrInvalidBackend  = errors.New("invalid backend")
	ErrInvalidSize     = errors.New("invalid window size")
	ErrInvalidDensity  = errors.New("invalid density")
	ErrInvalidWind     = errors.New("invalid wind")
	ErrInvalidColor    = errors.New("invalid background color")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config is the full runtime configuration.
type Config struct {
	Backend    string
	Width      int
	Height     int
	Title      string
	Density    float64
	Seed       uint64 // 0 seeds from the clock
	Wind       float64
	Noise      string
	Background string
	HUD        bool
	LogLevel   string
	LogFile    string // terminal backend only; empty discards logs
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		Backend:    BackendWindow,
		Width:      WindowWidth,
		Height:     WindowHeight,
		Title:      WindowTitle,
		Density:    1,
		Noise:      wind.KindPerlin,
		Background: DefaultBackground,
		LogLevel:   "info",
	}
}

// Parse reads flags from args (without the program name) on top of the
// defaults and validates the result.
func Parse(name string, args []string, output io.Writer) (Config, error) {
	cfg := Default()
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "render backend: window or terminal")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "initial window width in logical pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "initial window height in logical pixels")
	fs.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	fs.Float64Var(&cfg.Density, "density", cfg.Density, "petal density multiplier")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time based)")
	fs.Float64Var(&cfg.Wind, "wind", cfg.Wind, "wind drift strength in pixels per frame (0 = calm)")
	fs.StringVar(&cfg.Noise, "noise", cfg.Noise, "wind noise: perlin or simplex")
	fs.StringVar(&cfg.Background, "background", cfg.Background, "background color as #rrggbb")
	fs.BoolVar(&cfg.HUD, "hud", cfg.HUD, "show the status overlay")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file for the terminal backend")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendWindow, BackendTerminal:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidBackend, c.Backend)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, c.Width, c.Height)
	}
	if !(c.Density > 0) || math.IsInf(c.Density, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDensity, c.Density)
	}
	if math.IsNaN(c.Wind) || math.IsInf(c.Wind, 0) || c.Wind < 0 {
		return fmt.Errorf("%w: strength %v", ErrInvalidWind, c.Wind)
	}
	if _, err := wind.New(c.Noise, 0); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidWind, err)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// BackgroundColor parses Background.
func (c Config) BackgroundColor() (colorful.Color, error) {
	bg, err := colorful.Hex(c.Background)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrInvalidColor, c.Background, err)
	}
	return bg, nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return lvl, nil
}
