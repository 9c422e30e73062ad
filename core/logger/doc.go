// Package logger provides a structured logging facility based on Zap.
//
// It offers a configured logger instance that supports different environments
// (development vs production) and integrates with the Fiber web framework.
//
// # Sink
//
// The synchronization engine does not log through *zap.Logger directly. It
// writes to the Sink interface, which models three things the engine needs:
// scoped begin/end blocks around units of work, exception reporting, and
// hierarchical child sinks. Child sinks wrap zap's Named loggers, so when
// several targets are synchronized in parallel every line remains
// attributable to its worker.
//
// # Context Awareness
//
// The WithRayID helper extracts the RayID from a Fiber context and attaches
// it to the log entry, ensuring that all logs related to a specific request
// can be correlated.
//
// # Usage
//
//	log, _ := logger.New(&logger.Config{Level: "info"})
//	sink := logger.NewSink(log)
//
//	done := sink.Scope("synchronizing target")
//	defer done()
//	sink.Record("table synchronized", zap.Int("inserted", 3))
package logger
