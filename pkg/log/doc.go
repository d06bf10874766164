// Package log provides structured logging for ringd components.
//
// Entries flow through a Formatter (text or JSON) to one or more Outputs.
// Loggers are constructed explicitly and passed by dependency injection; there
// is no package-level default logger.
//
// Usage
//
//	logger := log.NewLogger(
//		log.WithLevel(log.InfoLevel),
//		log.WithFormatter(&log.TextFormatter{}),
//	)
//	logger.Info("listener started", log.Str("addr", ":9000"))
//
//	child := logger.With(log.Component("tcp"))
//	child.Debug("session opened", log.Str("session", sid))
//
// ApplyConfig builds a logger from string level/format configuration, and
// RedirectStdLog routes standard library log output (Pebble, net/http) into
// the same pipeline. Slog exposes the pipeline as a *slog.Logger for code
// written against the standard structured API.
package log
