// Package logger builds the zap logger shared by the resolver's commands,
// handlers and background reloader.
//
// # Levels and Encoding
//
// "debug" selects zap's development preset. Any other level uses the
// production preset at that level. Format "console" switches to colored
// human-readable output without stack traces, otherwise entries are JSON with
// the keys time, level and message.
//
// # Request Correlation
//
// WithRayID tags a logger with the ray_id the rayid middleware stored on the
// request, so hydration warnings for one lookup can be grouped:
//
//	l := logger.WithRayID(log, c)
//	l.Warn("Item lookup failed", zap.Error(err))
package logger
