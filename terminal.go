package main

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/sakura-go/internal/config"
	"github.com/olivierh59500/sakura-go/internal/driver"
	"github.com/olivierh59500/sakura-go/internal/hud"
	"github.com/olivierh59500/sakura-go/internal/render"
	"github.com/olivierh59500/sakura-go/internal/sched"
)

var hudText = colorful.Color{R: 0.9, G: 0.9, B: 0.9}

// terminalHost runs the driver on a tcell screen.
type terminalHost struct {
	screen  tcell.Screen
	surface *render.TerminalSurface
	driver  *driver.Driver
	sched   *sched.Scheduler
	overlay *hud.Overlay
	start   time.Time
}

func newTerminalHost(screen tcell.Screen, cfg config.Config, opts driver.Options) *terminalHost {
	bg, _ := cfg.BackgroundColor()
	surface := render.NewTerminalSurface(screen, bg)
	s := sched.New()
	h := &terminalHost{
		screen:  screen,
		surface: surface,
		driver:  driver.New(surface, s, opts),
		sched:   s,
		start:   time.Now(),
	}
	if cfg.HUD {
		h.overlay = hud.New()
	}
	return h
}

// resize starts a driver resize when the grid actually changed.
func (h *terminalHost) resize(cols, rows int) {
	vp := render.TerminalViewport(cols, rows)
	if vp == h.driver.Viewport() {
		return
	}
	h.driver.Resize(vp)
	h.screen.Sync()
}

// tick advances timers and draws a frame if the throttle accepts it.
func (h *terminalHost) tick(dt time.Duration) {
	now := time.Since(h.start)
	h.sched.Advance(now)
	if h.overlay != nil {
		h.overlay.Update(h.driver.Stats(), float32(dt.Seconds()))
	}
	if !h.driver.Frame(now) {
		return
	}
	if h.overlay != nil {
		h.surface.DrawText(1, 0, h.overlay.Status(), hudText)
		if text, alpha := h.overlay.Banner(); alpha > 0.3 {
			h.surface.DrawText(1, 1, text, hudText)
		}
	}
	h.screen.Show()
}

// runTerminal draws petals in the terminal until Escape, Ctrl-C or a quit
// signal.
func runTerminal(cfg config.Config, opts driver.Options, sig signals) (driver.Stats, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return driver.Stats{}, fmt.Errorf("create terminal screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return driver.Stats{}, fmt.Errorf("init terminal screen: %w", err)
	}
	defer screen.Fini()
	screen.HideCursor()

	h := newTerminalHost(screen, cfg, opts)
	cols, rows := screen.Size()
	h.driver.Start(render.TerminalViewport(cols, rows))

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	// Tick at twice the frame rate; the driver's throttle drops the extras.
	period := opts.FrameInterval() / 2
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return h.driver.Stats(), nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				h.resize(ev.Size())
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					return h.driver.Stats(), nil
				}
			}
		case <-sig.repopulate:
			h.driver.Repopulate()
		case <-sig.quit:
			return h.driver.Stats(), nil
		case <-ticker.C:
			h.tick(period)
		}
	}
}
