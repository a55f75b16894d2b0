package braimg

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// Braille cell geometry in source pixels
const (
	CellWidth  = 2
	CellHeight = 4
)

// Resampler selects the interpolation used when scaling images
type Resampler int

const (
	// ResampleLanczos uses a Lanczos3 kernel (nfnt/resize)
	ResampleLanczos Resampler = iota
	// ResampleCatmullRom uses a bicubic Catmull-Rom kernel (x/image/draw)
	ResampleCatmullRom
	// ResampleBilinear uses approximate bilinear filtering (x/image/draw)
	ResampleBilinear
	// ResampleNearest uses nearest neighbor sampling (nfnt/resize)
	ResampleNearest
)

var resamplerNames = map[Resampler]string{
	ResampleLanczos:    "lanczos",
	ResampleCatmullRom: "catmullrom",
	ResampleBilinear:   "bilinear",
	ResampleNearest:    "nearest",
}

func (r Resampler) String() string {
	if name, ok := resamplerNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Resampler(%d)", int(r))
}

func (r Resampler) validate() error {
	if _, ok := resamplerNames[r]; !ok {
		return fmt.Errorf("unsupported resampler: %s", r)
	}
	return nil
}

// ParseResampler converts a resampler name into a Resampler
func ParseResampler(s string) (Resampler, error) {
	for r, name := range resamplerNames {
		if strings.EqualFold(s, name) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("unknown resampler %q", s)
}

// ResizeImage scales img to exactly width x height using the given resampler.
// The result always has its origin at (0, 0). Unknown resamplers use Lanczos3,
// Normalize and Sample reject them before resizing.
func ResizeImage(img image.Image, width, height uint, r Resampler) image.Image {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()

	// Skip resize if already correct size
	if uint(bounds.Dx()) == width && uint(bounds.Dy()) == height && bounds.Min == (image.Point{}) {
		return img
	}

	switch r {
	case ResampleCatmullRom, ResampleBilinear:
		var interp draw.Interpolator = draw.CatmullRom
		if r == ResampleBilinear {
			interp = draw.ApproxBiLinear
		}
		dst := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
		interp.Scale(dst, dst.Bounds(), img, bounds, draw.Src, nil)
		return dst
	case ResampleNearest:
		return resize.Resize(width, height, img, resize.NearestNeighbor)
	case ResampleLanczos:
		return resize.Resize(width, height, img, resize.Lanczos3)
	default:
		return resize.Resize(width, height, img, resize.Lanczos3)
	}
}

// Normalize prepares img for braille rendering. Images wider than
// 2*maxChars pixels are scaled down proportionally, then the result is
// padded right and bottom with black so both dimensions tile into 2x4 cells.
// Transparent pixels are composited over black.
// The returned image is always a new buffer.
func Normalize(img image.Image, maxChars int, r Resampler) (*image.RGBA, error) {
	if maxChars <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWidth, maxChars)
	}
	if err := r.validate(); err != nil {
		return nil, err
	}
	if img == nil {
		return nil, ErrEmptyImage
	}
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, ErrEmptyImage
	}

	// compare in cells, maxChars*CellWidth overflows for huge bounds
	if (srcW+CellWidth-1)/CellWidth > maxChars {
		maxW := maxChars * CellWidth
		targetH := max((maxW*srcH)/srcW, 1)
		img = ResizeImage(img, uint(maxW), uint(targetH), r)
		bounds = img.Bounds()
		srcW, srcH = bounds.Dx(), bounds.Dy()
	}

	dst := image.NewRGBA(image.Rect(0, 0, ceilMultiple(srcW, CellWidth), ceilMultiple(srcH, CellHeight)))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, 0, srcW, srcH), img, bounds.Min, draw.Over)

	return dst, nil
}

// aligned reports whether r tiles exactly into braille cells
func aligned(r image.Rectangle) bool {
	return r.Dx()%CellWidth == 0 && r.Dy()%CellHeight == 0
}

func ceilMultiple(n, m int) int {
	return ((n + m - 1) / m) * m
}
