package braimg

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// SGR sequences used in the output stream
const (
	SGRReset           = "\x1b[0m"
	SGRBlackBackground = "\x1b[48;5;0m"
)

// noColor never equals a palette index, so the first cell always gets an escape
const noColor = -1

// EmitOptions configures the output stream
type EmitOptions struct {
	// Background paints a black background behind the glyphs
	Background bool
}

// Stats describes a composed output stream
type Stats struct {
	Cells        int
	ColorChanges int
	Bytes        int
}

// Foreground returns the SGR sequence selecting ANSI256 color idx as foreground
func Foreground(idx uint8) string {
	return "\x1b[38;5;" + strconv.Itoa(int(idx)) + "m"
}

// Compose interleaves braille glyphs with foreground color escapes. A color
// escape is only written when a cell's color differs from the last one
// written, including across line breaks.
func Compose(glyphs *BrailleGrid, colors *ColorGrid, opts EmitOptions) (string, Stats, error) {
	if glyphs == nil || colors == nil {
		return "", Stats{}, ErrGridMismatch
	}
	if glyphs.Cols != colors.Cols || glyphs.Rows != colors.Rows {
		return "", Stats{}, fmt.Errorf("%w: %dx%d glyphs, %dx%d colors",
			ErrGridMismatch, glyphs.Cols, glyphs.Rows, colors.Cols, colors.Rows)
	}

	var sb strings.Builder
	// a glyph is 3 bytes of UTF-8, plus some room for escapes and newlines
	sb.Grow(glyphs.Cols*glyphs.Rows*4 + glyphs.Rows + len(SGRBlackBackground) + len(SGRReset))

	var stats Stats
	if opts.Background {
		sb.WriteString(SGRBlackBackground)
	}

	last := noColor
	for y := range glyphs.Rows {
		for x := range glyphs.Cols {
			if idx := int(colors.At(x, y)); idx != last {
				sb.WriteString(Foreground(uint8(idx)))
				last = idx
				stats.ColorChanges++
			}
			sb.WriteRune(glyphs.At(x, y))
			stats.Cells++
		}
		sb.WriteByte('\n')
	}
	sb.WriteString(SGRReset)

	stats.Bytes = sb.Len()
	return sb.String(), stats, nil
}

// Emit composes the output stream and writes it to w in a single write,
// so nothing reaches w if the grids are invalid.
func Emit(w io.Writer, glyphs *BrailleGrid, colors *ColorGrid, opts EmitOptions) error {
	out, _, err := Compose(glyphs, colors, opts)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
