package logger

import (
	"time"

	"go.uber.org/zap"
)

// Sink is the narrow logging surface the synchronization engine writes to.
// The engine never formats output itself; it opens scoped blocks around
// units of work, records summary lines, reports failures, and derives child
// sinks so that output from parallel workers stays attributable.
type Sink interface {
	// Scope opens a named block and returns the function that closes it.
	// The closing function logs the block duration.
	Scope(description string, fields ...zap.Field) func()
	// Record emits a progress or summary line.
	Record(msg string, fields ...zap.Field)
	// Exception reports a failure.
	Exception(err error, fields ...zap.Field)
	// Child derives a named sub-sink.
	Child(name string) Sink
}

type zapSink struct {
	log *zap.Logger
}

// NewSink wraps a zap logger in the Sink interface.
func NewSink(log *zap.Logger) Sink {
	return &zapSink{log: log}
}

// Nop returns a sink that discards everything.
func Nop() Sink {
	return &zapSink{log: zap.NewNop()}
}

func (s *zapSink) Scope(description string, fields ...zap.Field) func() {
	s.log.Info(description, fields...)
	start := time.Now()

	return func() {
		s.log.Info(description+" completed", zap.Duration("duration", time.Since(start)))
	}
}

func (s *zapSink) Record(msg string, fields ...zap.Field) {
	s.log.Info(msg, fields...)
}

func (s *zapSink) Exception(err error, fields ...zap.Field) {
	s.log.Error(err.Error(), append(fields, zap.Error(err))...)
}

func (s *zapSink) Child(name string) Sink {
	return &zapSink{log: s.log.Named(name)}
}
