package petal

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is one of the three petal tints.
type Color uint8

const (
	PinkLight Color = iota
	PinkMid
	PinkPale

	numColors
)

var palette = [numColors]string{
	PinkLight: "#ffc2d1",
	PinkMid:   "#ff8fab",
	PinkPale:  "#f9e5eb",
}

var paletteRGB [numColors]colorful.Color

func init() {
	for i, hex := range palette {
		c, err := colorful.Hex(hex)
		if err != nil {
			panic(fmt.Sprintf("petal: bad palette entry %q: %v", hex, err))
		}
		paletteRGB[i] = c
	}
}

// Colorful returns the tint as a colorful.Color.
func (c Color) Colorful() colorful.Color {
	if c >= numColors {
		return paletteRGB[PinkLight]
	}
	return paletteRGB[c]
}

// NRGBA returns the tint with the given opacity as straight alpha.
func (c Color) NRGBA(opacity float64) color.NRGBA {
	r, g, b := c.Colorful().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: alpha8(opacity)}
}

func (c Color) String() string {
	switch c {
	case PinkLight:
		return "pink-light"
	case PinkMid:
		return "pink-mid"
	case PinkPale:
		return "pink-pale"
	}
	return fmt.Sprintf("Color(%d)", uint8(c))
}

func alpha8(a float64) uint8 {
	switch {
	case a <= 0:
		return 0
	case a >= 1:
		return 255
	}
	return uint8(a*255 + 0.5)
}
