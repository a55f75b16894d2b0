package braimg

import (
	"fmt"
	"image"
	"image/draw"
	"strings"

	"github.com/makeworld-the-better-one/dither/v2"
)

// DitherMode defines the algorithm used to reduce the image to ink dots
type DitherMode int

const (
	// DitherNone thresholds each pixel to the nearest of black and white
	DitherNone DitherMode = iota
	// DitherFloydSteinberg uses Floyd-Steinberg error diffusion
	DitherFloydSteinberg
	// DitherStucki uses Stucki error diffusion
	DitherStucki
	// DitherAtkinson uses Atkinson error diffusion (partial error propagation, higher contrast)
	DitherAtkinson
	// DitherBayer uses 4x4 ordered Bayer dithering
	DitherBayer
)

var ditherNames = map[DitherMode]string{
	DitherNone:           "none",
	DitherFloydSteinberg: "floyd-steinberg",
	DitherStucki:         "stucki",
	DitherAtkinson:       "atkinson",
	DitherBayer:          "bayer",
}

func (m DitherMode) String() string {
	if name, ok := ditherNames[m]; ok {
		return name
	}
	return fmt.Sprintf("DitherMode(%d)", int(m))
}

// ParseDitherMode converts a dither mode name into a DitherMode
func ParseDitherMode(s string) (DitherMode, error) {
	for m, name := range ditherNames {
		if strings.EqualFold(s, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("unknown dither mode %q", s)
}

// Ink reduces img to a 1-bit image over the Mono palette. Pixels are
// converted to luma first so the black/white decision follows perceived
// brightness. When invert is set dark areas carry the ink instead of light ones.
func Ink(img image.Image, mode DitherMode, invert bool) (*image.Paletted, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	bounds := img.Bounds()
	rect := image.Rect(0, 0, bounds.Dx(), bounds.Dy())

	gray := image.NewGray(rect)
	draw.Draw(gray, rect, img, bounds.Min, draw.Src)
	if invert {
		for i, v := range gray.Pix {
			gray.Pix[i] = 0xff - v
		}
	}

	var out *image.Paletted
	switch mode {
	case DitherNone:
		out = image.NewPaletted(rect, Mono.Palette)
		draw.Draw(out, rect, gray, image.Point{}, draw.Src)
	case DitherFloydSteinberg:
		out = image.NewPaletted(rect, Mono.Palette)
		draw.FloydSteinberg.Draw(out, rect, gray, image.Point{})
	case DitherStucki, DitherAtkinson, DitherBayer:
		ditherer := dither.NewDitherer(Mono.Palette)
		switch mode {
		case DitherStucki:
			ditherer.Matrix = dither.Stucki
		case DitherAtkinson:
			ditherer.Matrix = dither.Atkinson
		default:
			ditherer.Mapper = dither.Bayer(4, 4, 1.0)
		}
		out = ditherer.DitherPaletted(gray)
	default:
		return nil, fmt.Errorf("unsupported dither mode: %s", mode)
	}

	return toMono(out)
}

// toMono rewrites p so that index 0 is black and index 1 is white,
// whatever palette order the ditherer produced.
func toMono(p *image.Paletted) (*image.Paletted, error) {
	if p == nil || len(p.Palette) == 0 || len(p.Palette) > len(Mono.Palette) {
		return nil, fmt.Errorf("%w: expected a 2 color palette", ErrPaletteMismatch)
	}

	remap := make([]uint8, len(p.Palette))
	for i, c := range p.Palette {
		remap[i] = Nearest(Mono, c)
	}

	bounds := p.Bounds()
	out := image.NewPaletted(image.Rect(0, 0, bounds.Dx(), bounds.Dy()), Mono.Palette)
	for y := range bounds.Dy() {
		src := p.Pix[y*p.Stride : y*p.Stride+bounds.Dx()]
		dst := out.Pix[y*out.Stride : y*out.Stride+bounds.Dx()]
		for x, v := range src {
			if int(v) >= len(remap) {
				return nil, fmt.Errorf("%w: index %d at (%d,%d)", ErrPaletteMismatch, v, x, y)
			}
			dst[x] = remap[v]
		}
	}
	return out, nil
}
