package ui

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Palette wraps text in ANSI colors, or returns it untouched when disabled
type Palette struct {
	enabled bool
}

// NewPalette returns a palette that colors only when enabled is true
func NewPalette(enabled bool) Palette {
	return Palette{enabled: enabled}
}

func (p Palette) wrap(code, text string) string {
	if !p.enabled {
		return text
	}
	return fmt.Sprintf("\033[%sm%s\033[0m", code, text)
}

func (p Palette) Cyan(s string) string   { return p.wrap("36", s) }
func (p Palette) Yellow(s string) string { return p.wrap("33", s) }
func (p Palette) Red(s string) string    { return p.wrap("31", s) }
func (p Palette) Green(s string) string  { return p.wrap("32", s) }
func (p Palette) Dim(s string) string    { return p.wrap("2", s) }

// IsTerminal reports whether w is a file attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ColorSupported reports whether colored output should be written to w.
// NO_COLOR disables it regardless of the terminal.
func ColorSupported(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	return IsTerminal(w)
}
