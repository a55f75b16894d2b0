package braimg

import (
	"image/color"

	"github.com/soniakeys/quant"
)

// cubeLevels are the channel values of the 6x6x6 color cube (indices 16-231)
var cubeLevels = [6]uint8{0, 95, 135, 175, 215, 255}

// legacyColors are the 16 standard and high-intensity colors (indices 0-15)
var legacyColors = [16]uint32{
	0x000000, 0x800000, 0x008000, 0x808000, 0x000080, 0x800080, 0x008080, 0xc0c0c0,
	0x808080, 0xff0000, 0x00ff00, 0xffff00, 0x0000ff, 0xff00ff, 0x00ffff, 0xffffff,
}

var (
	// Mono is the ink palette: index 0 is black (no dot), index 1 is white (dot).
	Mono = quant.LinearPalette{Palette: color.Palette{
		color.RGBA{0, 0, 0, 0xff},
		color.RGBA{0xff, 0xff, 0xff, 0xff},
	}}

	// ANSI256 is the xterm 256-color palette. A color's index is the value
	// used in the SGR sequence ESC[38;5;<index>m.
	ANSI256 = quant.LinearPalette{Palette: buildANSI256()}
)

func buildANSI256() color.Palette {
	p := make(color.Palette, 0, 256)
	for _, c := range legacyColors {
		p = append(p, color.RGBA{uint8(c >> 16), uint8(c >> 8), uint8(c), 0xff})
	}
	for _, r := range cubeLevels {
		for _, g := range cubeLevels {
			for _, b := range cubeLevels {
				p = append(p, color.RGBA{r, g, b, 0xff})
			}
		}
	}
	for i := range 24 {
		v := uint8(8 + 10*i)
		p = append(p, color.RGBA{v, v, v, 0xff})
	}
	return p
}

// CubeIndex returns the ANSI256 index of a color cube coordinate.
// r, g and b are clamped to [0,5].
func CubeIndex(r, g, b uint8) uint8 {
	r, g, b = min(r, 5), min(g, 5), min(b, 5)
	return 16 + 36*r + 6*g + b
}

// GrayIndex returns the ANSI256 index of a grayscale ramp step in [0,23].
func GrayIndex(step uint8) uint8 {
	return 232 + min(step, 23)
}

// Nearest returns the index of the palette entry closest to c.
// Ties resolve to the lowest index.
func Nearest(p quant.Palette, c color.Color) uint8 {
	return uint8(p.ColorPalette().Index(c))
}
