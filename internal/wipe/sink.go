package wipe

import (
	"fmt"
	"log"
)

// Sink receives human-readable progress lines from the wipe core: entries
// being deleted, warnings, phase transitions. Purely observational; the
// core never consumes a return value from it.
type Sink interface {
	Info(msg string, args ...interface{})
	Error(msg string, args ...interface{})
}

// nopSink is the default: the core carries no hidden global logging state,
// callers opt in by passing a real sink
type nopSink struct{}

func (nopSink) Info(msg string, args ...interface{})  {}
func (nopSink) Error(msg string, args ...interface{}) {}

// NopSink discards everything
var NopSink Sink = nopSink{}

// stdSink adapts a standard log.Logger to the Sink interface
type stdSink struct {
	*log.Logger
}

// NewStdSink wraps a standard logger as a diagnostics sink.
// A nil logger falls back to log.Default.
func NewStdSink(logger *log.Logger) Sink {
	if logger == nil {
		logger = log.Default()
	}
	return &stdSink{Logger: logger}
}

func (s *stdSink) Info(msg string, args ...interface{}) {
	s.logWithLevel("INFO", msg, args...)
}

func (s *stdSink) Error(msg string, args ...interface{}) {
	s.logWithLevel("ERROR", msg, args...)
}

func (s *stdSink) logWithLevel(level, msg string, args ...interface{}) {
	var parts []interface{}
	parts = append(parts, fmt.Sprintf("[%s]", level), msg)
	parts = append(parts, args...)
	s.Logger.Println(parts...)
}
