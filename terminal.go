package braimg

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// IsTerminal reports whether stdout is attached to a terminal
func IsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the width of the terminal attached to stdout in character cells
func TerminalWidth() (int, bool) {
	if !IsTerminal() {
		return 0, false
	}
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 0, false
	}
	return width, true
}

// FitWidth clamps maxChars to the terminal width when stdout is a terminal.
// The last column is left free so lines do not wrap on terminals that
// wrap eagerly.
func FitWidth(maxChars int) int {
	cols, ok := TerminalWidth()
	if !ok || cols < 2 {
		return maxChars
	}
	return min(maxChars, cols-1)
}

// Supports256Colors checks if the environment advertises the xterm 256 color palette.
// Only environment variables are inspected, the terminal is never queried.
func Supports256Colors() bool {
	switch strings.ToLower(os.Getenv("COLORTERM")) {
	case "truecolor", "24bit":
		return true
	}

	termEnv := strings.ToLower(os.Getenv("TERM"))
	switch {
	case termEnv == "dumb":
		return false
	case strings.Contains(termEnv, "256color"):
		return true
	case strings.Contains(termEnv, "direct"):
		return true
	case strings.Contains(termEnv, "kitty"):
		return true
	case strings.Contains(termEnv, "alacritty"):
		return true
	case strings.Contains(termEnv, "foot"):
		return true
	}

	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "Apple_Terminal", "WezTerm", "ghostty", "vscode", "rio", "WarpTerminal":
		return true
	}

	return os.Getenv("KITTY_WINDOW_ID") != ""
}
