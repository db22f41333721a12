package petal

import (
	"image/color"
	"math"
)

// Petal geometry, as multiples of Particle.Size.
const (
	discRadius   = 0.3
	petalOffset  = 0.8
	petalRadiusX = 0.4
	petalRadiusY = 0.6
	petalCount   = 5
)

// Ellipse is a filled ellipse in logical coordinates. RX lies along the
// ellipse's local x axis, which is rotated by Angle radians.
type Ellipse struct {
	CX, CY float64
	RX, RY float64
	Angle  float64
}

// Canvas is a drawing surface in logical coordinates.
type Canvas interface {
	Clear()
	FillEllipse(e Ellipse, fill color.NRGBA)
}

// ShapeLen is the number of ellipses Shape returns: one disc plus the petals.
const ShapeLen = petalCount + 1

// Shape returns the center disc followed by the five petals of p, already
// rotated by p.Rotation and translated to p's position.
func Shape(p Particle) [ShapeLen]Ellipse {
	var out [ShapeLen]Ellipse

	rot := p.Rotation * math.Pi / 180
	sin, cos := math.Sincos(rot)

	out[0] = Ellipse{
		CX:    p.X,
		CY:    p.Y,
		RX:    p.Size * discRadius,
		RY:    p.Size * discRadius,
		Angle: rot,
	}

	for i := 0; i < petalCount; i++ {
		angle := float64(i)*math.Pi*2/petalCount + math.Pi/2
		lx := math.Cos(angle) * p.Size * petalOffset
		ly := math.Sin(angle) * p.Size * petalOffset
		out[i+1] = Ellipse{
			CX:    p.X + lx*cos - ly*sin,
			CY:    p.Y + lx*sin + ly*cos,
			RX:    p.Size * petalRadiusX,
			RY:    p.Size * petalRadiusY,
			Angle: rot + angle,
		}
	}
	return out
}

// Render draws p onto c. It does not modify p.
func Render(p Particle, c Canvas) {
	fill := p.Color.NRGBA(p.Opacity)
	shape := Shape(p)
	for _, e := range shape {
		c.FillEllipse(e, fill)
	}
}
