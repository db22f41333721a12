package render

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/olivierh59500/sakura-go/internal/petal"
)

// Logical size of one terminal cell. Cells are about twice as tall as wide.
const (
	CellWidth  = 8.0
	CellHeight = 16.0
)

// Glyphs by shape size.
const (
	glyphDisc       = '·'
	glyphSmallPetal = '✿'
	glyphLargePetal = '❀'
	largePetalRY    = 2.4
)

// TerminalViewport returns the logical viewport covered by a cols×rows screen.
func TerminalViewport(cols, rows int) petal.Viewport {
	return petal.Viewport{
		Width:  float64(cols) * CellWidth,
		Height: float64(rows) * CellHeight,
		DPR:    1,
	}
}

// TerminalSurface draws petals as colored glyphs on a tcell screen. Each
// ellipse lands in the cell under its center; opacity is emulated by
// blending the tint toward the background.
type TerminalSurface struct {
	screen     tcell.Screen
	background colorful.Color
	style      tcell.Style
	cols, rows int
}

// NewTerminalSurface returns a surface drawing on screen.
func NewTerminalSurface(screen tcell.Screen, background colorful.Color) *TerminalSurface {
	s := &TerminalSurface{
		screen:     screen,
		background: background,
	}
	s.style = tcell.StyleDefault.Background(tcellColor(background))
	s.cols, s.rows = screen.Size()
	return s
}

// Configure records the cell grid that covers vp.
func (s *TerminalSurface) Configure(vp petal.Viewport) {
	s.cols = int(vp.Width / CellWidth)
	s.rows = int(vp.Height / CellHeight)
}

// Clear fills the screen with the background.
func (s *TerminalSurface) Clear() {
	s.screen.Fill(' ', s.style)
}

// FillEllipse marks the cell under e's center.
func (s *TerminalSurface) FillEllipse(e petal.Ellipse, fill color.NRGBA) {
	col := int(math.Floor(e.CX / CellWidth))
	row := int(math.Floor(e.CY / CellHeight))
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}

	tint, _ := colorful.MakeColor(color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: 0xff})
	fg := s.background.BlendRgb(tint, float64(fill.A)/0xff)

	s.screen.SetContent(col, row, glyphFor(e), nil, s.style.Foreground(tcellColor(fg)))
}

// DrawText writes text starting at (col, row), clipped to the grid.
func (s *TerminalSurface) DrawText(col, row int, text string, fg colorful.Color) {
	style := s.style.Foreground(tcellColor(fg))
	for _, r := range text {
		if col >= s.cols || row >= s.rows {
			return
		}
		s.screen.SetContent(col, row, r, nil, style)
		col++
	}
}

func glyphFor(e petal.Ellipse) rune {
	switch {
	case e.RX == e.RY:
		return glyphDisc
	case e.RY < largePetalRY:
		return glyphSmallPetal
	}
	return glyphLargePetal
}

func tcellColor(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
