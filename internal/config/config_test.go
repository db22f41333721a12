package config

import (
	"errors"
	"io"
	"log/slog"
	"testing"
)

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse("sakura", nil, io.Discard)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Parse(nil) = %+v, want defaults %+v", cfg, Default())
	}
	if cfg.Density != 1 {
		t.Errorf("Density = %v, want 1", cfg.Density)
	}
}

func TestParseFlags(t *testing.T) {
	cfg, err := Parse("sakura", []string{
		"-backend", "terminal",
		"-density", "2.5",
		"-seed", "42",
		"-wind", "0.3",
		"-noise", "simplex",
		"-hud",
		"-log-level", "DEBUG",
	}, io.Discard)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.Backend != BackendTerminal || cfg.Density != 2.5 || cfg.Seed != 42 ||
		cfg.Wind != 0.3 || cfg.Noise != "simplex" || !cfg.HUD {
		t.Errorf("Parse = %+v", cfg)
	}
	lvl, err := cfg.Level()
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("Level = %v, %v; want debug", lvl, err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Config)
		want error
	}{
		{"backend", func(c *Config) { c.Backend = "svg" }, ErrInvalidBackend},
		{"width", func(c *Config) { c.Width = 0 }, ErrInvalidSize},
		{"density zero", func(c *Config) { c.Density = 0 }, ErrInvalidDensity},
		{"density negative", func(c *Config) { c.Density = -1 }, ErrInvalidDensity},
		{"wind negative", func(c *Config) { c.Wind = -1 }, ErrInvalidWind},
		{"noise", func(c *Config) { c.Noise = "worley" }, ErrInvalidWind},
		{"background", func(c *Config) { c.Background = "pink" }, ErrInvalidColor},
		{"log level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidLogLevel},
	}
	for _, tt := range tests {
		cfg := Default()
		tt.edit(&cfg)
		if err := cfg.Validate(); !errors.Is(err, tt.want) {
			t.Errorf("%s: Validate = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func TestParseRejectsBadFlag(t *testing.T) {
	if _, err := Parse("sakura", []string{"-density", "abc"}, io.Discard); err == nil {
		t.Error("Parse accepted non-numeric density")
	}
	if _, err := Parse("sakura", []string{"-backend", "svg"}, io.Discard); !errors.Is(err, ErrInvalidBackend) {
		t.Errorf("Parse -backend svg = %v, want ErrInvalidBackend", err)
	}
}

func TestBackgroundColor(t *testing.T) {
	cfg := Default()
	cfg.Background = "#ff8fab"
	c, err := cfg.BackgroundColor()
	if err != nil {
		t.Fatalf("BackgroundColor: %v", err)
	}
	if c.Hex() != "#ff8fab" {
		t.Errorf("Hex = %s, want #ff8fab", c.Hex())
	}
}
