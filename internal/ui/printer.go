package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// SeparatorWidth is the number of dashes in the closing separator.
const SeparatorWidth = 80

// ColorMode selects when ANSI colours are emitted.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Valid reports whether m is a known colour mode.
func (m ColorMode) Valid() bool {
	switch m {
	case ColorAuto, ColorAlways, ColorNever:
		return true
	}
	return false
}

// Printer renders the run banner, error line and separator.
type Printer struct {
	output  io.Writer
	success *color.Color
	error   *color.Color
}

// NewPrinter constructs a Printer writing to output (stdout when nil).
// In ColorAuto mode colour is enabled only for terminals with NO_COLOR unset.
func NewPrinter(output io.Writer, mode ColorMode) *Printer {
	if output == nil {
		output = os.Stdout
	}

	p := &Printer{
		output:  output,
		success: color.New(color.FgHiGreen),
		error:   color.New(color.FgHiRed),
	}

	if colorEnabled(output, mode) {
		p.success.EnableColor()
		p.error.EnableColor()
	} else {
		p.success.DisableColor()
		p.error.DisableColor()
	}

	return p
}

// Banner prints the start-of-run line.
func (p *Printer) Banner(version int, appName string) {
	p.writeLine(p.success, FormatBanner(version, appName))
}

// ErrorLine prints the failure line for a wrapped run.
func (p *Printer) ErrorLine(appName, message string) {
	p.writeLine(p.error, FormatErrorLine(appName, message))
}

// Separator prints the end-of-run divider.
func (p *Printer) Separator() {
	p.writeLine(p.error, strings.Repeat("-", SeparatorWidth))
}

func (p *Printer) writeLine(c *color.Color, text string) {
	fmt.Fprintln(p.output, c.Sprint(text))
}

// FormatBanner returns the uncoloured banner text.
func FormatBanner(version int, appName string) string {
	return fmt.Sprintf("[%03d] Script started for '%s'.", version, appName)
}

// FormatErrorLine returns the uncoloured error line text.
func FormatErrorLine(appName, message string) string {
	return fmt.Sprintf("Error in %s: %s", appName, message)
}

func colorEnabled(w io.Writer, mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
