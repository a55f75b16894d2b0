package braimg

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/soniakeys/quant/median"
)

// LumaMode defines how brightness is removed from the per-cell colors.
// Ink density already carries brightness, so cell colors only keep hue and chroma.
type LumaMode int

const (
	// LumaMaxChannel scales each color so its brightest channel is 255.
	// Black becomes white so dots stay visible on a black background.
	LumaMaxChannel LumaMode = iota
	// LumaHSV sets the HSV value of each color to 1
	LumaHSV
	// LumaNone keeps the sampled colors as they are
	LumaNone
)

var lumaNames = map[LumaMode]string{
	LumaMaxChannel: "max",
	LumaHSV:        "hsv",
	LumaNone:       "none",
}

func (m LumaMode) String() string {
	if name, ok := lumaNames[m]; ok {
		return name
	}
	return fmt.Sprintf("LumaMode(%d)", int(m))
}

// ParseLumaMode converts a luma mode name into a LumaMode
func ParseLumaMode(s string) (LumaMode, error) {
	for m, name := range lumaNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown luma mode %q", s)
}

// NormalizeLuma removes the brightness component of c according to mode
func NormalizeLuma(c color.RGBA, mode LumaMode) color.RGBA {
	switch mode {
	case LumaMaxChannel:
		m := uint32(max(c.R, c.G, c.B))
		if m == 0 {
			return color.RGBA{0xff, 0xff, 0xff, 0xff}
		}
		return color.RGBA{
			R: uint8(uint32(c.R) * 0xff / m),
			G: uint8(uint32(c.G) * 0xff / m),
			B: uint8(uint32(c.B) * 0xff / m),
			A: 0xff,
		}
	case LumaHSV:
		h, s, _ := colorful.Color{
			R: float64(c.R) / 255.0,
			G: float64(c.G) / 255.0,
			B: float64(c.B) / 255.0,
		}.Hsv()
		r, g, b := colorful.Hsv(h, s, 1).RGB255()
		return color.RGBA{r, g, b, 0xff}
	default:
		c.A = 0xff
		return c
	}
}

// NormalizeImage returns a copy of img with NormalizeLuma applied to every pixel
func NormalizeImage(img image.Image, mode LumaMode) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	for y := range bounds.Dy() {
		for x := range bounds.Dx() {
			c := color.RGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.RGBA)
			out.SetRGBA(x, y, NormalizeLuma(c, mode))
		}
	}
	return out
}

// SampleOptions configures the color sampler
type SampleOptions struct {
	// Resampler used to shrink the image to one pixel per cell
	Resampler Resampler
	// Luma selects the brightness normalization
	Luma LumaMode
	// MaxColors limits the number of distinct colors in the grid, 0 means no limit
	MaxColors int
}

// DefaultSampleOptions matches the behavior of the command line tool
var DefaultSampleOptions = SampleOptions{
	Resampler: ResampleCatmullRom,
	Luma:      LumaMaxChannel,
}

// ColorGrid holds one ANSI256 palette index per character cell, row-major
type ColorGrid struct {
	Cols  int
	Rows  int
	Cells []uint8
}

// At returns the palette index of the cell at column x, row y
func (g *ColorGrid) At(x, y int) uint8 {
	return g.Cells[y*g.Cols+x]
}

// Sample reduces a normalized image to one ANSI256 color per 2x4 cell
func Sample(img *image.RGBA, opts SampleOptions) (*ColorGrid, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, ErrEmptyImage
	}
	if !aligned(bounds) {
		return nil, fmt.Errorf("%w: %dx%d", ErrUnaligned, bounds.Dx(), bounds.Dy())
	}
	if err := opts.Resampler.validate(); err != nil {
		return nil, err
	}

	grid := &ColorGrid{
		Cols: bounds.Dx() / CellWidth,
		Rows: bounds.Dy() / CellHeight,
	}
	grid.Cells = make([]uint8, grid.Cols*grid.Rows)

	small := ResizeImage(img, uint(grid.Cols), uint(grid.Rows), opts.Resampler)
	cells := NormalizeImage(small, opts.Luma)

	var reduced color.Palette
	if opts.MaxColors > 0 && opts.MaxColors < len(ANSI256.Palette) {
		reduced = median.Quantizer(opts.MaxColors).Palette(cells).ColorPalette()
	}

	// cells usually repeat, so remember the palette lookups
	lookup := make(map[color.RGBA]uint8)
	for y := range grid.Rows {
		for x := range grid.Cols {
			c := cells.RGBAAt(x, y)
			idx, ok := lookup[c]
			if !ok {
				var target color.Color = c
				if len(reduced) > 0 {
					target = reduced.Convert(c)
				}
				idx = Nearest(ANSI256, target)
				lookup[c] = idx
			}
			grid.Cells[y*grid.Cols+x] = idx
		}
	}

	return grid, nil
}
