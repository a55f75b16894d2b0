package braimg

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformGrids(cols, rows int, glyph rune, idx uint8) (*BrailleGrid, *ColorGrid) {
	glyphs := &BrailleGrid{Cols: cols, Rows: rows, Cells: make([]rune, cols*rows)}
	colors := &ColorGrid{Cols: cols, Rows: rows, Cells: make([]uint8, cols*rows)}
	for i := range glyphs.Cells {
		glyphs.Cells[i] = glyph
		colors.Cells[i] = idx
	}
	return glyphs, colors
}

func TestForeground(t *testing.T) {
	assert.Equal(t, "\x1b[38;5;0m", Foreground(0))
	assert.Equal(t, "\x1b[38;5;9m", Foreground(9))
	assert.Equal(t, "\x1b[38;5;255m", Foreground(255))
}

func TestComposeUniform(t *testing.T) {
	glyphs, colors := uniformGrids(3, 2, '⣿', 196)

	out, stats, err := Compose(glyphs, colors, EmitOptions{Background: true})
	require.NoError(t, err)

	assert.Equal(t, "\x1b[48;5;0m\x1b[38;5;196m⣿⣿⣿\n⣿⣿⣿\n\x1b[0m", out)
	assert.Equal(t, Stats{Cells: 6, ColorChanges: 1, Bytes: len(out)}, stats)
}

func TestComposeColorChanges(t *testing.T) {
	glyphs, colors := uniformGrids(2, 2, '⠁', 0)
	// last color of the first row matches the first color of the second row
	colors.Cells = []uint8{1, 2, 2, 3}

	out, stats, err := Compose(glyphs, colors, EmitOptions{})
	require.NoError(t, err)

	assert.Equal(t, "\x1b[38;5;1m⠁\x1b[38;5;2m⠁\n⠁\x1b[38;5;3m⠁\n\x1b[0m", out)
	assert.Equal(t, 3, stats.ColorChanges)
	assert.Equal(t, 4, stats.Cells)
}

func TestComposeAlternatingColumns(t *testing.T) {
	glyphs, colors := uniformGrids(4, 3, '⣀', 0)
	for i := range colors.Cells {
		colors.Cells[i] = uint8(i % 2 * 15)
	}

	out, stats, err := Compose(glyphs, colors, EmitOptions{})
	require.NoError(t, err)

	assert.Equal(t, 12, stats.ColorChanges)
	assert.Equal(t, 6, strings.Count(out, Foreground(0)))
	assert.Equal(t, 6, strings.Count(out, Foreground(15)))
	assert.Equal(t, 3, strings.Count(out, "\n"))
	assert.True(t, strings.HasSuffix(out, "\n"+SGRReset))
	assert.Equal(t, 1, strings.Count(out, SGRReset))
}

func TestComposeBackground(t *testing.T) {
	glyphs, colors := uniformGrids(1, 1, '\u2800', 7)

	with, _, err := Compose(glyphs, colors, EmitOptions{Background: true})
	require.NoError(t, err)
	without, _, err := Compose(glyphs, colors, EmitOptions{Background: false})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(with, SGRBlackBackground))
	assert.NotContains(t, without, SGRBlackBackground)
	assert.Equal(t, with, SGRBlackBackground+without)
}

func TestComposeMismatch(t *testing.T) {
	glyphs, _ := uniformGrids(2, 2, '\u2800', 0)
	_, colors := uniformGrids(2, 3, '\u2800', 0)

	out, stats, err := Compose(glyphs, colors, EmitOptions{})
	assert.ErrorIs(t, err, ErrGridMismatch)
	assert.Empty(t, out)
	assert.Zero(t, stats)

	_, _, err = Compose(nil, colors, EmitOptions{})
	assert.ErrorIs(t, err, ErrGridMismatch)
}

func TestEmit(t *testing.T) {
	glyphs, colors := uniformGrids(2, 1, '⡇', 12)

	var buf bytes.Buffer
	require.NoError(t, Emit(&buf, glyphs, colors, EmitOptions{}))
	assert.Equal(t, "\x1b[38;5;12m⡇⡇\n\x1b[0m", buf.String())
}

func TestEmitWritesNothingOnError(t *testing.T) {
	glyphs, _ := uniformGrids(2, 2, '\u2800', 0)
	_, colors := uniformGrids(3, 2, '\u2800', 0)

	var buf bytes.Buffer
	err := Emit(&buf, glyphs, colors, EmitOptions{Background: true})
	assert.ErrorIs(t, err, ErrGridMismatch)
	assert.Zero(t, buf.Len())
}

type failingWriter struct{ err error }

func (w failingWriter) Write([]byte) (int, error) { return 0, w.err }

func TestEmitWriteError(t *testing.T) {
	glyphs, colors := uniformGrids(1, 1, '\u2800', 0)
	errClosed := errors.New("pipe closed")

	err := Emit(failingWriter{errClosed}, glyphs, colors, EmitOptions{})
	assert.ErrorIs(t, err, errClosed)
}
