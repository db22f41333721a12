// Package render provides the surfaces petals are drawn on: an Ebitengine
// image and a tcell terminal screen.
package render

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/olivierh59500/sakura-go/internal/petal"
)

// Segment limits for ellipse fans, in backing pixels of radius.
const (
	minSegments = 12
	maxSegments = 48
)

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// EbitenSurface draws petals onto an ebiten.Image whose size is the
// viewport's backing size. Coordinates are scaled by the DPR at draw time.
type EbitenSurface struct {
	target     *ebiten.Image
	background color.Color
	scale      float64
	width      int
	height     int

	verts []ebiten.Vertex
	inds  []uint16
}

// NewEbitenSurface returns a surface that clears to background.
// A nil background clears to transparent.
func NewEbitenSurface(background color.Color) *EbitenSurface {
	return &EbitenSurface{
		background: background,
		scale:      1,
	}
}

// Configure sets the backing size and DPR scale from vp.
func (s *EbitenSurface) Configure(vp petal.Viewport) {
	s.scale = vp.Scale()
	s.width, s.height = vp.Backing()
}

// Size returns the backing size in physical pixels.
func (s *EbitenSurface) Size() (int, int) {
	return s.width, s.height
}

// SetTarget sets the image subsequent draws go to.
func (s *EbitenSurface) SetTarget(img *ebiten.Image) {
	s.target = img
}

// Clear wipes the target to the background color.
func (s *EbitenSurface) Clear() {
	if s.target == nil {
		return
	}
	if s.background == nil {
		s.target.Clear()
		return
	}
	s.target.Fill(s.background)
}

// FillEllipse fills e with fill. Circles go through vector.DrawFilledCircle;
// other ellipses are drawn as a triangle fan.
func (s *EbitenSurface) FillEllipse(e petal.Ellipse, fill color.NRGBA) {
	if s.target == nil || fill.A == 0 {
		return
	}
	cx := e.CX * s.scale
	cy := e.CY * s.scale
	rx := e.RX * s.scale
	ry := e.RY * s.scale

	if rx == ry {
		vector.DrawFilledCircle(s.target, float32(cx), float32(cy), float32(rx), fill, true)
		return
	}

	n := segments(math.Max(rx, ry))
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]

	a := float32(fill.A) / 0xff
	r := float32(fill.R) / 0xff * a
	g := float32(fill.G) / 0xff * a
	b := float32(fill.B) / 0xff * a

	sin, cos := math.Sincos(e.Angle)
	s.verts = append(s.verts, vertex(cx, cy, r, g, b, a))
	for i := 0; i < n; i++ {
		t := float64(i) * 2 * math.Pi / float64(n)
		lx := math.Cos(t) * rx
		ly := math.Sin(t) * ry
		s.verts = append(s.verts, vertex(cx+lx*cos-ly*sin, cy+lx*sin+ly*cos, r, g, b, a))
	}
	for i := 1; i <= n; i++ {
		next := i + 1
		if next > n {
			next = 1
		}
		s.inds = append(s.inds, 0, uint16(i), uint16(next))
	}

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = true
	s.target.DrawTriangles(s.verts, s.inds, whiteSubImage, &op)
}

func vertex(x, y float64, r, g, b, a float32) ebiten.Vertex {
	return ebiten.Vertex{
		DstX:   float32(x),
		DstY:   float32(y),
		SrcX:   1,
		SrcY:   1,
		ColorR: r,
		ColorG: g,
		ColorB: b,
		ColorA: a,
	}
}

// segments picks a fan resolution for a radius in backing pixels.
func segments(radius float64) int {
	n := int(math.Ceil(radius * 4))
	if n < minSegments {
		return minSegments
	}
	if n > maxSegments {
		return maxSegments
	}
	return n
}
