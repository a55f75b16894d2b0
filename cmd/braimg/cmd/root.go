/*
Copyright © 2024 blacktop

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/apex/log"
	clihandler "github.com/apex/log/handlers/cli"
	"github.com/blacktop/go-braimg"
	"github.com/spf13/cobra"
)

var errMissingPath = errors.New("missing image path")

func init() {
	log.SetHandler(clihandler.Default)
}

type options struct {
	verbose      bool
	dither       string
	luma         string
	resample     string
	colors       int
	invert       bool
	noBackground bool
	fit          bool
}

// NewRootCmd creates the braimg command. The rendered image is written to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "braimg <path-to-image> [max-character-width]",
		Short: "Display images in your terminal as colored braille",
		Long: fmt.Sprintf(`Display images in your terminal as colored braille.

Each character covers 2x4 pixels. max-character-width defaults to %d.`, braimg.DefaultWidth),
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errMissingPath
			}
			return cobra.MaximumNArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			// arguments are valid, errors from here on are not usage errors
			cmd.SilenceUsage = true

			if opts.verbose {
				log.SetLevel(log.DebugLevel)
			}

			width := braimg.DefaultWidth
			if len(args) == 2 {
				w, err := parseWidth(args[1])
				if err != nil {
					return err
				}
				width = w
			}
			if opts.fit {
				width = braimg.FitWidth(width)
			}
			if braimg.IsTerminal() && !braimg.Supports256Colors() {
				log.Warn("terminal does not advertise 256 color support, colors may be wrong")
			}

			img, err := configure(args[0], width, opts)
			if err != nil {
				return err
			}

			return render(out, img, !opts.noBackground)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&opts.verbose, "verbose", "V", false, "Enable verbose logging")
	flags.StringVarP(&opts.dither, "dither", "d", braimg.DitherFloydSteinberg.String(), "Dither mode (none, floyd-steinberg, stucki, atkinson, bayer)")
	flags.StringVarP(&opts.luma, "luma", "l", braimg.LumaMaxChannel.String(), "Color brightness normalization (max, hsv, none)")
	flags.StringVarP(&opts.resample, "resample", "r", braimg.ResampleLanczos.String(), "Resampler used to shrink wide images (lanczos, catmullrom, bilinear, nearest)")
	flags.IntVarP(&opts.colors, "colors", "n", 0, "Maximum number of distinct colors (0 for no limit)")
	flags.BoolVarP(&opts.invert, "invert", "i", false, "Put ink on dark areas (for light terminal backgrounds)")
	flags.BoolVar(&opts.noBackground, "no-background", false, "Do not paint a black background")
	flags.BoolVarP(&opts.fit, "fit", "f", false, "Limit the width to the terminal width")

	return cmd
}

// parseWidth validates the max-character-width argument
func parseWidth(s string) (int, error) {
	w, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", braimg.ErrInvalidWidth, s)
	}
	if w <= 0 {
		return 0, fmt.Errorf("%w: %d", braimg.ErrInvalidWidth, w)
	}
	return w, nil
}

func configure(path string, width int, opts options) (*braimg.Image, error) {
	dither, err := braimg.ParseDitherMode(opts.dither)
	if err != nil {
		return nil, err
	}
	luma, err := braimg.ParseLumaMode(opts.luma)
	if err != nil {
		return nil, err
	}
	resampler, err := braimg.ParseResampler(opts.resample)
	if err != nil {
		return nil, err
	}
	if opts.colors < 0 {
		return nil, fmt.Errorf("colors must not be negative: %d", opts.colors)
	}

	img, err := braimg.Open(path)
	if err != nil {
		return nil, err
	}
	return img.
		Width(width).
		Dither(dither).
		Invert(opts.invert).
		Luma(luma).
		Resample(resampler).
		Colors(opts.colors), nil
}

func render(out io.Writer, img *braimg.Image, background bool) error {
	start := time.Now()
	frame, err := img.Frame()
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"source":     frame.Source.Size(),
		"normalized": frame.Normalized.Size(),
		"cols":       frame.Glyphs.Cols,
		"rows":       frame.Glyphs.Rows,
		"elapsed":    time.Since(start),
	}).Debug("Built braille frame")

	start = time.Now()
	output, stats, err := braimg.Compose(frame.Glyphs, frame.Colors, braimg.EmitOptions{Background: background})
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"cells":         stats.Cells,
		"color_changes": stats.ColorChanges,
		"bytes":         stats.Bytes,
		"elapsed":       time.Since(start),
	}).Debug("Composed output")

	if _, err := io.WriteString(out, output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// Execute runs the root command and exits with status 1 on any error.
// This is called by main.main().
func Execute() {
	if err := NewRootCmd(os.Stdout).Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}
