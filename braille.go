package braimg

import (
	"fmt"
	"image"
	"strings"
)

// BrailleBlank is the empty braille pattern; every pattern is BrailleBlank + an 8-bit dot mask
const BrailleBlank = '\u2800'

// dotOffsets lists the pixel offset of each braille dot within a 2x4 cell,
// in bit order. Dots 1-6 fill the left then right column of the top three
// rows and dots 7 and 8 were added later for the bottom row:
//
//	+------+
//	|(1)(4)|
//	|(2)(5)|
//	|(3)(6)|
//	|(7)(8)|
//	+------+
//
// See https://en.wikipedia.org/wiki/Braille_Patterns#Identifying,_naming_and_ordering
var dotOffsets = [8]image.Point{
	{0, 0}, {0, 1}, {0, 2},
	{1, 0}, {1, 1}, {1, 2},
	{0, 3}, {1, 3},
}

// BrailleRune packs a 2x4 dot matrix, indexed [x][y], into its braille code point
func BrailleRune(dots [2][4]bool) rune {
	var n rune
	for bit, off := range dotOffsets {
		if dots[off.X][off.Y] {
			n |= 1 << bit
		}
	}
	return BrailleBlank + n
}

// BrailleGrid holds one braille code point per character cell, row-major
type BrailleGrid struct {
	Cols  int
	Rows  int
	Cells []rune
}

// At returns the code point of the cell at column x, row y
func (g *BrailleGrid) At(x, y int) rune {
	return g.Cells[y*g.Cols+x]
}

// String returns the grid as plain text, one line per row
func (g *BrailleGrid) String() string {
	var sb strings.Builder
	for y := range g.Rows {
		for x := range g.Cols {
			sb.WriteRune(g.At(x, y))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Braillify packs every 2x4 block of a Mono ink image into a braille code point.
// A pixel carries ink when its palette index is 1 (white).
func Braillify(ink *image.Paletted) (*BrailleGrid, error) {
	if ink == nil {
		return nil, ErrEmptyImage
	}
	if len(ink.Palette) != len(Mono.Palette) {
		return nil, fmt.Errorf("%w: got %d colors, want %d", ErrPaletteMismatch, len(ink.Palette), len(Mono.Palette))
	}
	bounds := ink.Bounds()
	if !aligned(bounds) {
		return nil, fmt.Errorf("%w: %dx%d", ErrUnaligned, bounds.Dx(), bounds.Dy())
	}

	grid := &BrailleGrid{
		Cols: bounds.Dx() / CellWidth,
		Rows: bounds.Dy() / CellHeight,
	}
	grid.Cells = make([]rune, grid.Cols*grid.Rows)

	for by := range grid.Rows {
		for bx := range grid.Cols {
			px := bounds.Min.X + bx*CellWidth
			py := bounds.Min.Y + by*CellHeight

			var n rune
			for bit, off := range dotOffsets {
				switch ink.ColorIndexAt(px+off.X, py+off.Y) {
				case 0:
				case 1:
					n |= 1 << bit
				default:
					return nil, fmt.Errorf("%w: index out of range at (%d,%d)", ErrPaletteMismatch, px+off.X, py+off.Y)
				}
			}
			grid.Cells[by*grid.Cols+bx] = BrailleBlank + n
		}
	}

	return grid, nil
}
