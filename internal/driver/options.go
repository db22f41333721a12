package driver

import (
	"log/slog"
	"math"
	"math/rand/v2"
	"time"

	"github.com/olivierh59500/sakura-go/internal/petal"
	"github.com/olivierh59500/sakura-go/internal/wind"
)

// Defaults
const (
	DefaultMaxParticles    = 180
	DefaultAreaPerParticle = 5000.0
	DefaultBatchSize       = 15
	DefaultBatchDelay      = 20 * time.Millisecond
	DefaultFallbackDelay   = 100 * time.Millisecond
	DefaultFallbackBatch   = 20
	DefaultResizeDebounce  = 300 * time.Millisecond
	DefaultTargetFPS       = 60.0
	DefaultDensity         = 1.0
)

// Options controls population sizing, batching and frame pacing.
// Zero fields fall back to the defaults above.
type Options struct {
	// MaxParticles caps the population regardless of area and density.
	MaxParticles int
	// AreaPerParticle is the logical area, in square units, that earns one petal at density 1.
	AreaPerParticle float64
	// BatchSize is the number of petals added per growth step.
	BatchSize int
	// BatchDelay is the wait before each growth step lands.
	BatchDelay time.Duration
	// FallbackDelay is when startup checks for a still-empty population.
	FallbackDelay time.Duration
	// FallbackBatch is the batch size of the startup fallback.
	FallbackBatch int
	// ResizeDebounce is the quiet period after the last resize before repopulating.
	ResizeDebounce time.Duration
	// TargetFPS sets the frame throttle interval.
	TargetFPS float64
	// Density is the startup density multiplier.
	Density float64
	// Wind scales the drift field's output, in logical units per frame. 0 disables wind.
	Wind float64
	// Field is sampled when Wind is non-zero. Nil means wind.Still.
	Field wind.Field
	// Rand drives every random draw. Nil means a time-seeded source.
	Rand *rand.Rand
	// Logger receives lifecycle and recovery logs. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultOptions returns the stock tuning.
func DefaultOptions() Options {
	return Options{
		MaxParticles:    DefaultMaxParticles,
		AreaPerParticle: DefaultAreaPerParticle,
		BatchSize:       DefaultBatchSize,
		BatchDelay:      DefaultBatchDelay,
		FallbackDelay:   DefaultFallbackDelay,
		FallbackBatch:   DefaultFallbackBatch,
		ResizeDebounce:  DefaultResizeDebounce,
		TargetFPS:       DefaultTargetFPS,
		Density:         DefaultDensity,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.MaxParticles <= 0 {
		o.MaxParticles = d.MaxParticles
	}
	if o.AreaPerParticle <= 0 {
		o.AreaPerParticle = d.AreaPerParticle
	}
	if o.BatchSize <= 0 {
		o.BatchSize = d.BatchSize
	}
	if o.BatchDelay <= 0 {
		o.BatchDelay = d.BatchDelay
	}
	if o.FallbackDelay <= 0 {
		o.FallbackDelay = d.FallbackDelay
	}
	if o.FallbackBatch <= 0 {
		o.FallbackBatch = d.FallbackBatch
	}
	if o.ResizeDebounce <= 0 {
		o.ResizeDebounce = d.ResizeDebounce
	}
	if o.TargetFPS <= 0 {
		o.TargetFPS = d.TargetFPS
	}
	o.Density = densityOr(o.Density, d.Density)
	if o.Field == nil {
		o.Field = wind.Still{}
	}
	if o.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		o.Rand = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// FrameInterval is the minimum spacing between accepted frames.
func (o Options) FrameInterval() time.Duration {
	fps := o.TargetFPS
	if fps <= 0 {
		fps = DefaultTargetFPS
	}
	return time.Duration(float64(time.Second) / fps)
}

// TargetCount returns min(MaxParticles, floor(area/AreaPerParticle*density)),
// never negative.
func (o Options) TargetCount(vp petal.Viewport, density float64) int {
	o = o.withSizing()
	n := math.Floor(vp.Width * vp.Height / o.AreaPerParticle * density)
	if math.IsNaN(n) || n <= 0 {
		return 0
	}
	if n >= float64(o.MaxParticles) {
		return o.MaxParticles
	}
	return int(n)
}

func (o Options) withSizing() Options {
	if o.MaxParticles <= 0 {
		o.MaxParticles = DefaultMaxParticles
	}
	if o.AreaPerParticle <= 0 {
		o.AreaPerParticle = DefaultAreaPerParticle
	}
	return o
}

// TargetCount sizes the population with the default cap and area.
func TargetCount(vp petal.Viewport, density float64) int {
	return DefaultOptions().TargetCount(vp, density)
}

// densityOr returns v, or fallback when v is zero or NaN. Negative and
// infinite values pass through; TargetCount clamps them.
func densityOr(v, fallback float64) float64 {
	if v == 0 || math.IsNaN(v) {
		return fallback
	}
	return v
}
