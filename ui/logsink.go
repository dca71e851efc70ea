package ui

import (
	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
)

// logSink renders logr records with funcr's key=value formatter and
// writes them through a UI. Info records go to Info, Error records to Warn:
// component errors are diagnostics, never command failures.
type logSink struct {
	funcr.Formatter
	u UI
}

// NewLogSink returns a logr.LogSink writing to u. Info records above
// verbosity are dropped.
func NewLogSink(u UI, verbosity int) logr.LogSink {
	return &logSink{
		Formatter: funcr.NewFormatter(funcr.Options{Verbosity: verbosity}),
		u:         u,
	}
}

// NewLogger wraps NewLogSink. A negative verbosity disables logging.
func NewLogger(u UI, verbosity int) logr.Logger {
	if verbosity < 0 {
		return logr.Discard()
	}
	return logr.New(NewLogSink(u, verbosity))
}

func (s logSink) Info(level int, msg string, kvList ...any) {
	prefix, args := s.FormatInfo(level, msg, kvList)
	s.u.Info("%s", join(prefix, args))
}

func (s logSink) Error(err error, msg string, kvList ...any) {
	prefix, args := s.FormatError(err, msg, kvList)
	s.u.Warn("%s", join(prefix, args))
}

func (s logSink) WithName(name string) logr.LogSink {
	s.AddName(name)
	return &s
}

func (s logSink) WithValues(kvList ...any) logr.LogSink {
	s.AddValues(kvList)
	return &s
}

func join(prefix, args string) string {
	if prefix == "" {
		return args
	}
	return prefix + ": " + args
}
