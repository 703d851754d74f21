package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// StandardLogger writes formatted entries to a single writer.
// Diagnostics default to stderr so they never interleave with the run banner on stdout.
// Loggers derived through With share the parent's lock and writer.
type StandardLogger struct {
	mu        *sync.Mutex
	level     Level
	output    io.Writer
	formatter Formatter
	fields    []Field
}

// Option configures a StandardLogger during construction.
type Option func(*StandardLogger)

// NewStandardLogger constructs a StandardLogger configured by the provided options.
func NewStandardLogger(options ...Option) *StandardLogger {
	log := &StandardLogger{
		mu:        &sync.Mutex{},
		level:     LevelWarn,
		output:    os.Stderr,
		formatter: &TextFormatter{TimestampFormat: time.RFC3339},
	}

	for _, opt := range options {
		if opt != nil {
			opt(log)
		}
	}

	if log.output == nil {
		log.output = os.Stderr
	}
	if log.formatter == nil {
		log.formatter = &TextFormatter{TimestampFormat: time.RFC3339}
	}

	return log
}

// WithLevel sets the minimum Level that will be emitted.
func WithLevel(level Level) Option {
	return func(l *StandardLogger) {
		l.level = level
	}
}

// WithOutput redirects log output to the provided writer.
func WithOutput(w io.Writer) Option {
	return func(l *StandardLogger) {
		l.output = w
	}
}

// WithFormatter overrides the formatter used to render entries.
func WithFormatter(formatter Formatter) Option {
	return func(l *StandardLogger) {
		l.formatter = formatter
	}
}

// WithFields registers default fields for all subsequent entries.
func WithFields(fields ...Field) Option {
	return func(l *StandardLogger) {
		l.fields = append(l.fields, fields...)
	}
}

func (l *StandardLogger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, fmt.Sprintf(format, args...), nil)
}

func (l *StandardLogger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, fmt.Sprintf(format, args...), nil)
}

func (l *StandardLogger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, fmt.Sprintf(format, args...), nil)
}

func (l *StandardLogger) Error(format string, args ...interface{}) {
	l.log(LevelError, fmt.Sprintf(format, args...), nil)
}

func (l *StandardLogger) DebugContext(_ context.Context, msg string, fields ...Field) {
	l.log(LevelDebug, msg, fields)
}

func (l *StandardLogger) InfoContext(_ context.Context, msg string, fields ...Field) {
	l.log(LevelInfo, msg, fields)
}

func (l *StandardLogger) WarnContext(_ context.Context, msg string, fields ...Field) {
	l.log(LevelWarn, msg, fields)
}

func (l *StandardLogger) ErrorContext(_ context.Context, msg string, fields ...Field) {
	l.log(LevelError, msg, fields)
}

// With derives a new logger enriched with the provided fields.
func (l *StandardLogger) With(fields ...Field) Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	base := append([]Field{}, l.fields...)
	return &StandardLogger{
		mu:        l.mu,
		level:     l.level,
		output:    l.output,
		formatter: l.formatter,
		fields:    append(base, fields...),
	}
}

// SetLevel adjusts the minimum log level emitted.
func (l *StandardLogger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// GetLevel returns the current minimum log level.
func (l *StandardLogger) GetLevel() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

func (l *StandardLogger) log(level Level, msg string, fields []Field) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	all := append([]Field{}, l.fields...)
	all = append(all, fields...)

	entry := &Entry{
		Time:    time.Now(),
		Level:   level,
		Message: msg,
		Fields:  all,
	}

	bytes, err := l.formatter.Format(entry)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to format log entry: %v\n", err)
		return
	}
	if _, err := l.output.Write(bytes); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write log entry: %v\n", err)
	}
}
