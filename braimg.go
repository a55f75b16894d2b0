package braimg

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// DefaultWidth is the default maximum output width in characters
const DefaultWidth = 160

// Image represents an image to be rendered as braille text with a fluent API for configuration
type Image struct {
	source image.Image
	reader io.Reader
	path   string

	// Configuration
	width      int
	ditherMode DitherMode
	invert     bool
	resampler  Resampler
	sample     SampleOptions
	background bool
}

// Frame holds the two grids produced for an image before they are combined
type Frame struct {
	Source     image.Rectangle // bounds of the decoded image
	Normalized image.Rectangle // bounds after scaling and padding
	Glyphs     *BrailleGrid
	Colors     *ColorGrid
}

func newImage() *Image {
	return &Image{
		width:      DefaultWidth,
		ditherMode: DitherFloydSteinberg,
		resampler:  ResampleLanczos,
		sample:     DefaultSampleOptions,
		background: true,
	}
}

// New creates a new Image from an image.Image. A nil img still returns a
// usable Image; rendering it fails with ErrNoSource.
func New(img image.Image) *Image {
	i := newImage()
	i.source = img
	return i
}

// Open creates a new Image from a file path. The file is read when the image is rendered.
func Open(path string) (*Image, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}
	i := newImage()
	i.path = path
	return i, nil
}

// From creates a new Image from an io.Reader. A nil r fails like New(nil).
func From(r io.Reader) *Image {
	i := newImage()
	i.reader = r
	return i
}

// Width sets the maximum output width in character cells. It must be positive.
func (i *Image) Width(w int) *Image {
	i.width = w
	return i
}

// Dither sets the algorithm used to place ink dots
func (i *Image) Dither(mode DitherMode) *Image {
	i.ditherMode = mode
	return i
}

// Invert puts ink on dark areas instead of light ones
func (i *Image) Invert(v bool) *Image {
	i.invert = v
	return i
}

// Resample sets the interpolation used when the image is wider than the width bound
func (i *Image) Resample(r Resampler) *Image {
	i.resampler = r
	return i
}

// SampleWith sets the interpolation used to reduce the image to one color per cell
func (i *Image) SampleWith(r Resampler) *Image {
	i.sample.Resampler = r
	return i
}

// Luma sets how brightness is removed from cell colors
func (i *Image) Luma(mode LumaMode) *Image {
	i.sample.Luma = mode
	return i
}

// Colors limits the number of distinct colors in the output, 0 means no limit
func (i *Image) Colors(n int) *Image {
	if n < 0 {
		n = 0
	}
	i.sample.MaxColors = n
	return i
}

// Background enables the black background escape at the start of the output
func (i *Image) Background(v bool) *Image {
	i.background = v
	return i
}

// Frame runs the pipeline up to, but not including, output composition
func (i *Image) Frame() (*Frame, error) {
	img, err := i.loadImage()
	if err != nil {
		return nil, err
	}

	normalized, err := Normalize(img, i.width, i.resampler)
	if err != nil {
		return nil, err
	}

	frame := &Frame{
		Source:     img.Bounds(),
		Normalized: normalized.Bounds(),
	}

	// ink and color branches only read the normalized image
	var g errgroup.Group
	g.Go(func() error {
		ink, err := Ink(normalized, i.ditherMode, i.invert)
		if err != nil {
			return fmt.Errorf("failed to dither image: %w", err)
		}
		frame.Glyphs, err = Braillify(ink)
		if err != nil {
			return fmt.Errorf("failed to pack braille cells: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		frame.Colors, err = Sample(normalized, i.sample)
		if err != nil {
			return fmt.Errorf("failed to sample colors: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return frame, nil
}

// Grids returns the braille and color grids of the image
func (i *Image) Grids() (*BrailleGrid, *ColorGrid, error) {
	frame, err := i.Frame()
	if err != nil {
		return nil, nil, err
	}
	return frame.Glyphs, frame.Colors, nil
}

// Compose renders the image and returns the output with its statistics
func (i *Image) Compose() (string, Stats, error) {
	frame, err := i.Frame()
	if err != nil {
		return "", Stats{}, err
	}
	return Compose(frame.Glyphs, frame.Colors, i.emitOptions())
}

// Render generates the escape-coded braille text for the image
func (i *Image) Render() (string, error) {
	out, _, err := i.Compose()
	return out, err
}

// Print outputs the image to stdout
func (i *Image) Print() error {
	return i.Fprint(os.Stdout)
}

// Fprint outputs the image to w. Nothing is written if rendering fails.
func (i *Image) Fprint(w io.Writer) error {
	out, err := i.Render()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (i *Image) emitOptions() EmitOptions {
	return EmitOptions{Background: i.background}
}

// loadImage loads the image from the configured source
func (i *Image) loadImage() (image.Image, error) {
	if i.source != nil {
		return i.source, nil
	}

	if i.path != "" {
		file, err := os.Open(i.path)
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}
		defer file.Close()

		img, _, err := image.Decode(file)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}

		i.source = img
		return img, nil
	}

	if i.reader != nil {
		img, _, err := image.Decode(i.reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}

		i.source = img
		return img, nil
	}

	return nil, ErrNoSource
}

// Convenience functions for quick rendering

// Render renders an image with default settings
func Render(img image.Image) (string, error) {
	return New(img).Render()
}

// RenderFile renders an image file with default settings
func RenderFile(path string) (string, error) {
	img, err := Open(path)
	if err != nil {
		return "", err
	}
	return img.Render()
}

// Print prints an image with default settings
func Print(img image.Image) error {
	return New(img).Print()
}

// PrintFile prints an image file with default settings
func PrintFile(path string) error {
	img, err := Open(path)
	if err != nil {
		return err
	}
	return img.Print()
}
