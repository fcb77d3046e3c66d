package utils

import (
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Logger provides structured, leveled logging throughout the application.
// Every entry carries the run_id of the process that emitted it.
type Logger struct {
	entry *logrus.Entry
}

// NewLoggerWithOutput creates a Logger writing to w. format is "json" or
// "text"; an unknown level falls back to info.
func NewLoggerWithOutput(w io.Writer, level, format string) *Logger {
	base := logrus.New()
	base.Out = w

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	base.SetLevel(lvl)

	if strings.EqualFold(format, "json") {
		base.Formatter = &logrus.JSONFormatter{}
	} else {
		base.Formatter = &logrus.TextFormatter{
			FullTimestamp:    true,
			TimestampFormat:  "2006-01-02 15:04:05",
			QuoteEmptyFields: true,
		}
	}

	return &Logger{entry: base.WithField("run_id", uuid.New().String())}
}

// WithField returns a Logger that adds key=value to every entry.
func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{entry: l.entry.WithField(key, value)}
}

func (l *Logger) Info(format string, args ...any) {
	l.entry.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.entry.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.entry.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	l.entry.Debug(fmt.Sprintf(format, args...))
}
