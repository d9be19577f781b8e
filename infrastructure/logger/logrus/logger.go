// ABOUTME: Logger implementation backed by logrus
// ABOUTME: Maps the core Logger contract onto logrus levels and fields

package logrus

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"brandscout-api/core/interfaces"
)

// Logger implements interfaces.Logger
type Logger struct {
	entry *logrus.Entry
}

var _ interfaces.Logger = (*Logger)(nil)

// New creates a logger writing to stdout. format is "json" or "text";
// an unknown level falls back to info.
func New(level, format string) *Logger {
	return NewWithWriter(os.Stdout, level, format)
}

// NewWithWriter is New with an explicit output
func NewWithWriter(out io.Writer, level, format string) *Logger {
	l := logrus.New()
	l.SetOutput(out)

	if strings.EqualFold(format, "text") {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		l.SetFormatter(&logrus.JSONFormatter{})
	}

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	l.SetLevel(lvl)

	return NewWithLogger(l)
}

// NewWithLogger wraps an existing logrus logger
func NewWithLogger(l *logrus.Logger) *Logger {
	return &Logger{entry: logrus.NewEntry(l)}
}

// With returns a logger that adds fields to every entry
func (l *Logger) With(fields map[string]interface{}) *Logger {
	return &Logger{entry: l.entry.WithFields(logrus.Fields(fields))}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Debug(msg)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Info(msg)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Warn(msg)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields map[string]interface{}) {
	l.entry.WithFields(logrus.Fields(fields)).Error(msg)
}
