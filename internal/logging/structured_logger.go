package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// Log output formats accepted by New.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// StructuredLogger adapts a logrus entry to fraudlens.Logger.
// Fields attached with WithField are carried on every line.
type StructuredLogger struct {
	entry *logrus.Entry
}

// NewStructuredLogger creates a logrus-backed logger writing JSON to w.
// Verbose messages are emitted at debug level and only when verbose is set.
func NewStructuredLogger(w io.Writer, verbose bool) *StructuredLogger {
	logger := &logrus.Logger{
		Formatter: &logrus.JSONFormatter{
			FieldMap: logrus.FieldMap{
				logrus.FieldKeyLevel: "loglevel",
			},
		},
		Out:   w,
		Hooks: make(logrus.LevelHooks),
		Level: logrus.InfoLevel,
	}
	if verbose {
		logger.Level = logrus.DebugLevel
	}
	return &StructuredLogger{entry: logrus.NewEntry(logger)}
}

// WithField returns a logger that adds key=value to every line.
func (l *StructuredLogger) WithField(key string, value interface{}) *StructuredLogger {
	return &StructuredLogger{entry: l.entry.WithField(key, value)}
}

// Verbose logs at debug level.
func (l *StructuredLogger) Verbose(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

// Info logs at info level.
func (l *StructuredLogger) Info(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

// Warn logs at warning level.
func (l *StructuredLogger) Warn(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

// Error logs at error level.
func (l *StructuredLogger) Error(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

// New returns the logger for a --log-format value, writing to stderr.
func New(format string, verbose bool) (fraudlens.Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatText:
		return NewConsoleLogger(verbose), nil
	case FormatJSON:
		return NewStructuredLogger(os.Stderr, verbose), nil
	default:
		return nil, fmt.Errorf("unsupported log format %q (want %s or %s): %w",
			format, FormatText, FormatJSON, fraudlens.ErrInvalidConfig)
	}
}

// With attaches a field to loggers that support fields and returns other
// loggers unchanged.
func With(logger fraudlens.Logger, key string, value interface{}) fraudlens.Logger {
	if sl, ok := logger.(*StructuredLogger); ok {
		return sl.WithField(key, value)
	}
	return logger
}

var (
	_ fraudlens.Logger = (*ConsoleLogger)(nil)
	_ fraudlens.Logger = (*StructuredLogger)(nil)
	_ fraudlens.Logger = (*NullLogger)(nil)
)
