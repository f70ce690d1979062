package logging

import (
	"github.com/Noah-Huppert/golog"
)

// Logger is the part of golog.Logger the submission packages log through
type Logger interface {
	Debugf(format string, data ...interface{})
	Infof(format string, data ...interface{})
	Warnf(format string, data ...interface{})
	Errorf(format string, data ...interface{})
}

var _ Logger = golog.NewStdLogger("")

// Child returns a child of logger with prefix if logger is a golog.Logger,
// otherwise logger itself
func Child(logger Logger, prefix string) Logger {
	if parent, ok := logger.(golog.Logger); ok {
		return parent.GetChild(prefix)
	}

	return logger
}
