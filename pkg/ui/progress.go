package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Reporter receives progress notices from a collection run
type Reporter interface {
	// Saved is called after each page with the running image count
	Saved(provider string, count int)
	// Complete is called once a provider run finishes without error
	Complete(provider string)
}

// Printer writes progress notices and status lines to a terminal
type Printer struct {
	out     io.Writer
	palette Palette
	quiet   bool
	mu      sync.Mutex
}

// NewPrinter creates a printer on out. Color is applied only when requested
// and out is a terminal. A quiet printer drops everything except errors.
func NewPrinter(out io.Writer, color, quiet bool) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{
		out:     out,
		palette: NewPalette(color && ColorSupported(out)),
		quiet:   quiet,
	}
}

// Palette exposes the printer's colors
func (p *Printer) Palette() Palette {
	return p.palette
}

func (p *Printer) println(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fmt.Fprintln(p.out, s)
}

// Saved prints the running image count for a page
func (p *Printer) Saved(provider string, count int) {
	if p.quiet {
		return
	}
	p.println(fmt.Sprintf("Number of images saved is : %d", count))
}

// Complete prints the completion notice
func (p *Printer) Complete(provider string) {
	if p.quiet {
		return
	}
	p.println(p.palette.Green("Complete!"))
}

// Info prints a labelled value
func (p *Printer) Info(label, value string) {
	if p.quiet {
		return
	}
	p.println(fmt.Sprintf("%s: %s", p.palette.Cyan(label), p.palette.Yellow(value)))
}

// Warning prints a message in yellow
func (p *Printer) Warning(msg string) {
	if p.quiet {
		return
	}
	p.println(p.palette.Yellow(msg))
}

// Error prints an error message in red. Errors are shown even when quiet.
func (p *Printer) Error(msg string, err error) {
	if err != nil {
		msg = msg + ": " + err.Error()
	}
	p.println(p.palette.Red(msg))
}

// Summary prints the totals for one provider run
func (p *Printer) Summary(provider string, saved int, bytes int64, pages int, elapsed time.Duration, reason string) {
	if p.quiet {
		return
	}
	p.println(fmt.Sprintf("%s %s: %d images (%s) from %d pages in %s, %s",
		p.palette.Green("✓"),
		provider,
		saved,
		FormatBytes(bytes),
		pages,
		FormatDuration(elapsed),
		p.palette.Dim(reason),
	))
}

// FormatDuration formats a duration in a human-readable way
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// FormatBytes formats bytes in a human-readable way
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}

	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}

	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}

// Discard is a Reporter that prints nothing
type Discard struct{}

func (Discard) Saved(string, int) {}
func (Discard) Complete(string)   {}
