// Package driver owns the petal population and paces it: surface sizing,
// batched growth, debounced resize handling and the throttled frame loop.
//
// A Driver is single-threaded. The host calls Frame on every animation tick
// and advances the shared scheduler from the same goroutine; growth batches
// and the resize debounce run as scheduler callbacks.
package driver

import (
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/olivierh59500/sakura-go/internal/petal"
	"github.com/olivierh59500/sakura-go/internal/sched"
	"github.com/olivierh59500/sakura-go/internal/wind"
)

// Surface is the render target a Driver draws on.
type Surface interface {
	petal.Canvas
	// Configure sizes the backing store to the viewport times its DPR and
	// scales drawing so callers stay in logical units.
	Configure(vp petal.Viewport)
}

// Stats is a snapshot of the driver's state.
type Stats struct {
	Particles int
	Target    int
	Density   float64
	Frames    uint64
	Resets    uint64
	Growing   bool
	Viewport  petal.Viewport
}

// Driver runs the petal simulation.
type Driver struct {
	opts    Options
	surface Surface
	sched   *sched.Scheduler
	rng     *rand.Rand
	field   wind.Field
	log     *slog.Logger

	viewport  petal.Viewport
	particles []petal.Particle
	target    int
	density   float64
	growing   bool

	lastFrame   time.Duration
	frames      uint64
	resets      uint64
	resizeTimer sched.TimerID
}

// New returns a driver drawing on surface and deferring work onto s.
func New(surface Surface, s *sched.Scheduler, opts Options) *Driver {
	opts = opts.withDefaults()
	return &Driver{
		opts:      opts,
		surface:   surface,
		sched:     s,
		rng:       opts.Rand,
		field:     opts.Field,
		log:       opts.Logger,
		particles: make([]petal.Particle, 0, opts.MaxParticles),
		density:   opts.Density,
	}
}

// Start configures the surface, seeds the population at the configured
// density and arms the startup fallback: if no batch has landed by
// FallbackDelay, a larger batch is requested.
func (d *Driver) Start(vp petal.Viewport) {
	d.Configure(vp)
	d.Reset(d.opts.Density)
	d.sched.After(d.opts.FallbackDelay, func() {
		if len(d.particles) == 0 {
			d.grow(d.opts.FallbackBatch)
		}
	})
	d.log.Info("petals started",
		"width", vp.Width,
		"height", vp.Height,
		"dpr", vp.Scale(),
		"target", d.target,
	)
}

// Configure records the viewport and resizes the surface to match.
func (d *Driver) Configure(vp petal.Viewport) {
	d.viewport = vp
	d.surface.Configure(vp)
}

// Reset sets the density, empties the population and starts regrowing it
// toward the new target.
func (d *Driver) Reset(density float64) {
	d.density = density
	d.particles = d.particles[:0]
	d.target = d.opts.TargetCount(d.viewport, density)
	d.resets++
	d.log.Debug("population reset", "density", density, "target", d.target)
	d.grow(d.opts.BatchSize)
}

// SetDensity repopulates at v. A zero or NaN v keeps the current density;
// a negative v empties the field and +Inf fills it to the cap.
func (d *Driver) SetDensity(v float64) {
	d.Reset(densityOr(v, d.density))
}

// Repopulate repopulates at the current density.
func (d *Driver) Repopulate() {
	d.Reset(d.density)
}

// Density returns the current density multiplier.
func (d *Driver) Density() float64 {
	return d.density
}

// Resize reconfigures the surface immediately and repopulates once resize
// events have been quiet for ResizeDebounce.
func (d *Driver) Resize(vp petal.Viewport) {
	d.Configure(vp)
	if d.resizeTimer != 0 {
		d.sched.Cancel(d.resizeTimer)
	}
	d.resizeTimer = d.sched.After(d.opts.ResizeDebounce, func() {
		d.resizeTimer = 0
		d.log.Debug("resize settled", "width", d.viewport.Width, "height", d.viewport.Height)
		d.Reset(d.density)
	})
}

// grow requests one batch. It is a no-op at target or while a batch is
// already in flight; each landed batch chains the next until the target
// is reached.
func (d *Driver) grow(batch int) {
	if len(d.particles) >= d.target || d.growing {
		return
	}
	d.growing = true
	d.sched.After(d.opts.BatchDelay, func() {
		d.landBatch(batch)
	})
}

func (d *Driver) landBatch(batch int) {
	n := min(batch, d.target-len(d.particles))
	for i := 0; i < n; i++ {
		d.particles = append(d.particles, petal.New(d.viewport, d.rng))
	}
	d.growing = false
	if len(d.particles) < d.target {
		d.grow(d.opts.BatchSize)
	}
}

// Frame runs one animation tick at timestamp ts. Ticks closer than the
// frame interval to the last accepted one are skipped. An accepted tick
// clears the surface and updates then renders every petal. It reports
// whether the tick was accepted.
func (d *Driver) Frame(ts time.Duration) bool {
	if ts-d.lastFrame < d.opts.FrameInterval() {
		return false
	}
	d.lastFrame = ts
	d.frames++

	d.surface.Clear()
	t := ts.Seconds()
	for i := range d.particles {
		d.step(i, t)
	}
	return true
}

// step updates and renders one petal. A panic is logged and confined to
// that petal.
func (d *Driver) step(i int, t float64) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Warn("petal step failed", "index", i, "panic", r)
		}
	}()

	p := &d.particles[i]
	var drift float64
	if d.opts.Wind != 0 {
		drift = d.opts.Wind * d.field.At(p.X, p.Y, t)
	}
	petal.Update(p, d.viewport, d.rng, drift)
	petal.Render(*p, d.surface)
}

// Len returns the current population size.
func (d *Driver) Len() int {
	return len(d.particles)
}

// Target returns the population the driver is growing toward.
func (d *Driver) Target() int {
	return d.target
}

// Viewport returns the last configured viewport.
func (d *Driver) Viewport() petal.Viewport {
	return d.viewport
}

// Stats returns a snapshot of the driver's state.
func (d *Driver) Stats() Stats {
	return Stats{
		Particles: len(d.particles),
		Target:    d.target,
		Density:   d.density,
		Frames:    d.frames,
		Resets:    d.resets,
		Growing:   d.growing,
		Viewport:  d.viewport,
	}
}
