// Package logger builds the zap loggers used by the commands and the HTTP server.
//
// Level "debug" selects zap's development preset, everything else the production
// preset. Format "console" writes colored human readable lines, "json" writes one
// JSON object per line.
//
// Commands install the result with zap.ReplaceGlobals; the object model logs
// through zap.L() and therefore needs no logger plumbing.
//
// # Request correlation
//
// WithRayID extracts the request id stored by the rayid middleware and attaches
// it to the log entry:
//
//	l := logger.WithRayID(log, c)
//	l.Error("Handler failed", zap.Error(err))
package logger
