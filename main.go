package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/olivierh59500/sakura-go/internal/config"
	"github.com/olivierh59500/sakura-go/internal/driver"
	"github.com/olivierh59500/sakura-go/internal/wind"
)

// signals carries process signals to the host loop, which drains them on
// the simulation goroutine.
type signals struct {
	repopulate <-chan os.Signal
	quit       <-chan os.Signal
}

func main() {
	cfg, err := config.Parse(os.Args[0], os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	logOut, closeLog, err := logOutput(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer closeLog()

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(logOut, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	opts, err := driverOptions(cfg, logger)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	repop := make(chan os.Signal, 1)
	signal.Notify(repop, syscall.SIGHUP)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := signals{repopulate: repop, quit: quit}

	slog.Info("sakura starting",
		"backend", cfg.Backend,
		"density", cfg.Density,
		"wind", cfg.Wind,
		"noise", cfg.Noise,
	)

	var stats driver.Stats
	switch cfg.Backend {
	case config.BackendTerminal:
		stats, err = runTerminal(cfg, opts, sig)
	default:
		stats, err = runWindow(cfg, opts, sig)
	}
	if err != nil {
		slog.Error("sakura stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("sakura stopped",
		"frames", humanize.Comma(int64(stats.Frames)),
		"resets", stats.Resets,
		"petals", stats.Particles,
	)
}

// logOutput picks where logs go. The terminal backend owns stdout and
// stderr, so it logs to -log-file or nowhere.
func logOutput(cfg config.Config) (io.Writer, func(), error) {
	if cfg.Backend != config.BackendTerminal {
		return os.Stderr, func() {}, nil
	}
	if cfg.LogFile == "" {
		return io.Discard, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}

// driverOptions maps the configuration onto driver tuning.
func driverOptions(cfg config.Config, logger *slog.Logger) (driver.Options, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	field, err := wind.New(cfg.Noise, int64(seed))
	if err != nil {
		return driver.Options{}, fmt.Errorf("wind field: %w", err)
	}

	opts := driver.DefaultOptions()
	opts.Density = cfg.Density
	opts.Wind = cfg.Wind
	opts.Field = field
	opts.Rand = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	opts.Logger = logger
	return opts, nil
}
