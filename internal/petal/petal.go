// Package petal holds the state and per-frame rules of a single falling
// cherry petal, plus the geometry used to draw it.
package petal

import (
	"math"
	"math/rand/v2"
)

// Kinematic constants
const (
	Margin      = 20.0  // off-screen band a petal may occupy before it recycles
	SwingStep   = 0.015 // swing phase advance per update
	SwingAmp    = 0.3   // horizontal swing amplitude per update
	RotJitter   = 1.5   // full width of the per-update rotation jitter, degrees
	MinSize     = 2.0
	SizeSpread  = 5.0
	MinSpeedY   = 0.6
	SpeedYSpan  = 1.2
	SpeedXSpan  = 0.8
	MinOpacity  = 0.2
	OpacitySpan = 0.5
)

// Viewport is the visible area in logical (device-independent) units.
type Viewport struct {
	Width, Height float64
	DPR           float64 // device pixel ratio; <= 0 is treated as 1
}

// Scale returns the device pixel ratio, defaulting to 1.
func (v Viewport) Scale() float64 {
	if v.DPR <= 0 {
		return 1
	}
	return v.DPR
}

// Backing returns the physical pixel size of a surface covering the viewport.
func (v Viewport) Backing() (int, int) {
	s := v.Scale()
	return int(v.Width * s), int(v.Height * s)
}

// Particle is one falling petal.
type Particle struct {
	X, Y       float64 // logical position
	Size       float64
	SpeedX     float64
	SpeedY     float64
	SwingPhase float64 // radians
	Rotation   float64 // degrees
	Opacity    float64
	Color      Color
}

// Init gives p fresh random state, placed just above the top edge.
func Init(p *Particle, vp Viewport, rng *rand.Rand) {
	p.X = rng.Float64() * vp.Width
	p.Y = -Margin
	p.Size = rng.Float64()*SizeSpread + MinSize
	p.SpeedY = rng.Float64()*SpeedYSpan + MinSpeedY
	p.SpeedX = (rng.Float64() - 0.5) * SpeedXSpan
	p.SwingPhase = rng.Float64() * math.Pi * 2
	p.Rotation = rng.Float64() * 360
	p.Opacity = rng.Float64()*OpacitySpan + MinOpacity
	p.Color = Color(rng.IntN(int(numColors)))
}

// New returns an initialized particle.
func New(vp Viewport, rng *rand.Rand) Particle {
	var p Particle
	Init(&p, vp, rng)
	return p
}

// Update advances p by one frame. drift is an extra horizontal offset
// (wind); pass 0 for plain kinematics. A petal that leaves the viewport
// band is reinitialized in place.
func Update(p *Particle, vp Viewport, rng *rand.Rand, drift float64) {
	p.Y += p.SpeedY
	p.SwingPhase += SwingStep
	p.X += p.SpeedX + math.Sin(p.SwingPhase)*SwingAmp + drift
	p.Rotation += (rng.Float64() - 0.5) * RotJitter

	if OutOfBounds(*p, vp) {
		Init(p, vp, rng)
	}
}

// OutOfBounds reports whether p has left the band it is allowed to occupy:
// Y must stay below Height+Margin and X inside [-Margin, Width+Margin].
func OutOfBounds(p Particle, vp Viewport) bool {
	return p.Y >= vp.Height+Margin || p.X < -Margin || p.X > vp.Width+Margin
}
