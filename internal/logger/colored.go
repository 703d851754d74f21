package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// ColoredLogger renders log levels in colour when the output is a terminal.
type ColoredLogger struct {
	*StandardLogger
}

// NewColoredLogger returns a logger configured for colourful terminal output when possible.
func NewColoredLogger(options ...Option) *ColoredLogger {
	std := NewStandardLogger(options...)

	colors := map[Level]*color.Color{
		LevelDebug: color.New(color.FgCyan),
		LevelInfo:  color.New(color.FgBlue),
		LevelWarn:  color.New(color.FgYellow),
		LevelError: color.New(color.FgRed),
		levelFaint: color.New(color.Faint),
	}

	// color.NoColor follows stdout; stderr may still be a terminal.
	enabled := supportsColor(std.output) && os.Getenv("NO_COLOR") == ""
	if enabled {
		for _, c := range colors {
			c.EnableColor()
		}
	}

	std.formatter = &ColoredFormatter{
		timestampFormat: "15:04:05",
		colors:          colors,
		enableColors:    enabled,
	}

	return &ColoredLogger{StandardLogger: std}
}

// levelFaint keys the colour used for fields.
const levelFaint Level = -1

// ColoredFormatter renders log entries with coloured levels when enabled.
type ColoredFormatter struct {
	timestampFormat string
	colors          map[Level]*color.Color
	enableColors    bool
}

// Format converts the Entry into a coloured textual representation.
func (f *ColoredFormatter) Format(entry *Entry) ([]byte, error) {
	timestamp := entry.Time.Format(f.timestampFormat)

	level := entry.Level.String()
	if !f.enableColors {
		return formatEntry(entry, timestamp, level, nil), nil
	}

	if c := f.colors[entry.Level]; c != nil {
		level = c.Sprint(level)
	}
	faint := f.colors[levelFaint]
	return formatEntry(entry, timestamp, level, func(field Field) string {
		return faint.Sprint(fmt.Sprintf("%s=%v", field.Key, field.Value))
	}), nil
}

func supportsColor(w io.Writer) bool {
	if file, ok := w.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
