package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

const (
	FormatJSON = "json"
	FormatText = "text"
)

// New builds the process logger. Unknown formats fall back to JSON.
func New(level, format string) (*logrus.Logger, error) {
	return newWithOutput(os.Stdout, level, format)
}

func newWithOutput(out io.Writer, level, format string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(lvl)

	switch format {
	case FormatText:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		l.SetFormatter(&logrus.JSONFormatter{})
	}
	return l, nil
}

// Discard returns a logger that drops everything. Used by tests.
func Discard() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
