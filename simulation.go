package main

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/olivierh59500/sakura-go/internal/config"
	"github.com/olivierh59500/sakura-go/internal/driver"
	"github.com/olivierh59500/sakura-go/internal/hud"
	"github.com/olivierh59500/sakura-go/internal/petal"
	"github.com/olivierh59500/sakura-go/internal/render"
	"github.com/olivierh59500/sakura-go/internal/sched"
)

// HUD placement, in backing pixels
const (
	hudMargin     = 8
	hudLineHeight = 16
	bannerWidth   = 360
)

// Simulation hosts the petal driver inside an Ebitengine window.
type Simulation struct {
	driver  *driver.Driver
	sched   *sched.Scheduler
	surface *render.EbitenSurface
	overlay *hud.Overlay // nil when the HUD is off
	banner  *ebiten.Image
	sig     signals

	start    time.Time
	viewport petal.Viewport
	started  bool
}

// NewSimulation creates a simulation. The driver starts on the first
// Layout call, once the window size and scale factor are known.
func NewSimulation(cfg config.Config, opts driver.Options, sig signals) *Simulation {
	bg, _ := cfg.BackgroundColor()
	surface := render.NewEbitenSurface(bg)
	s := sched.New()
	sim := &Simulation{
		driver:  driver.New(surface, s, opts),
		sched:   s,
		surface: surface,
		sig:     sig,
		start:   time.Now(),
	}
	if cfg.HUD {
		sim.overlay = hud.New()
		sim.banner = ebiten.NewImage(bannerWidth, hudLineHeight)
	}
	return sim
}

// Update is called each tick by Ebitengine. It advances timers and drains
// process signals.
func (s *Simulation) Update() error {
	if !s.started {
		return nil
	}

	select {
	case <-s.sig.quit:
		return ebiten.Termination
	case <-s.sig.repopulate:
		s.driver.Repopulate()
	default:
	}

	s.sched.Advance(time.Since(s.start))

	if s.overlay != nil {
		s.overlay.Update(s.driver.Stats(), float32(1/float64(ebiten.TPS())))
	}
	return nil
}

// Draw is called each frame by Ebitengine. The screen is not cleared
// between frames, so throttled frames keep the previous picture.
func (s *Simulation) Draw(screen *ebiten.Image) {
	if !s.started {
		return
	}
	s.surface.SetTarget(screen)
	if !s.driver.Frame(time.Since(s.start)) {
		return
	}
	if s.overlay != nil {
		s.drawHUD(screen)
	}
}

func (s *Simulation) drawHUD(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, s.overlay.Status(), hudMargin, hudMargin)

	text, alpha := s.overlay.Banner()
	if alpha <= 0 {
		return
	}
	s.banner.Clear()
	ebitenutil.DebugPrintAt(s.banner, text, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(hudMargin, hudMargin+hudLineHeight)
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(s.banner, op)
}

// Layout maps the window onto a backing store of window size times the
// device scale factor. A change of either starts a resize.
func (s *Simulation) Layout(outsideWidth, outsideHeight int) (int, int) {
	vp := petal.Viewport{
		Width:  float64(outsideWidth),
		Height: float64(outsideHeight),
		DPR:    ebiten.Monitor().DeviceScaleFactor(),
	}
	switch {
	case !s.started:
		s.driver.Start(vp)
		s.started = true
	case vp != s.viewport:
		s.driver.Resize(vp)
	}
	s.viewport = vp
	return s.surface.Size()
}

// runWindow opens the window and blocks until it is closed.
func runWindow(cfg config.Config, opts driver.Options, sig signals) (driver.Stats, error) {
	sim := NewSimulation(cfg, opts, sig)

	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetTPS(ebiten.DefaultTPS)

	if err := ebiten.RunGame(sim); err != nil {
		return sim.driver.Stats(), err
	}
	return sim.driver.Stats(), nil
}
