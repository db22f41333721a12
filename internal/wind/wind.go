// Package wind provides optional horizontal drift fields for petals. A field
// is sampled once per petal per frame; its output is scaled by a strength and
// added to the petal's horizontal step.
package wind

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/ojrac/opensimplex-go"
)

// Noise kinds accepted by New.
const (
	KindPerlin  = "perlin"
	KindSimplex = "simplex"
)

// Sampling scales: petals a few hundred units apart feel different gusts,
// and a gust evolves over a few seconds.
const (
	spaceScale = 1.0 / 240
	timeScale  = 1.0 / 4
)

// Field returns a drift sample, roughly in [-1, 1], for a logical position
// and a time in seconds.
type Field interface {
	At(x, y, t float64) float64
}

// Still is a field with no wind.
type Still struct{}

// At always returns 0.
func (Still) At(x, y, t float64) float64 { return 0 }

// Perlin samples gradient noise from go-perlin.
type Perlin struct {
	noise *perlin.Perlin
}

// NewPerlin returns a Perlin field. Alpha 2 and beta 2 give a smooth
// field; three octaves keep some small-scale variation.
func NewPerlin(seed int64) *Perlin {
	return &Perlin{noise: perlin.NewPerlin(2, 2, 3, seed)}
}

// At samples the field.
func (p *Perlin) At(x, y, t float64) float64 {
	return clamp(p.noise.Noise2D(y*spaceScale+t*timeScale, x*spaceScale) * 2)
}

// Simplex samples OpenSimplex noise.
type Simplex struct {
	noise opensimplex.Noise
}

// NewSimplex returns a Simplex field.
func NewSimplex(seed int64) *Simplex {
	return &Simplex{noise: opensimplex.New(seed)}
}

// At samples the field.
func (s *Simplex) At(x, y, t float64) float64 {
	return clamp(s.noise.Eval3(x*spaceScale, y*spaceScale, t*timeScale))
}

// New returns the field named by kind.
func New(kind string, seed int64) (Field, error) {
	switch kind {
	case KindPerlin:
		return NewPerlin(seed), nil
	case KindSimplex:
		return NewSimplex(seed), nil
	}
	return nil, fmt.Errorf("unknown wind noise %q", kind)
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(-1, math.Min(1, v))
}
