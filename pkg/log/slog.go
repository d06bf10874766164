package log

import (
	"context"
	"log/slog"
)

// Slog wraps a Logger in a slog.Logger so components written against the
// standard structured logging API can share the same pipeline.
func Slog(logger Logger) *slog.Logger {
	return slog.New(&bridgeHandler{logger: logger})
}

// bridgeHandler routes slog records into the Logger's formatter/output
// pipeline.
type bridgeHandler struct {
	logger Logger
	attrs  []slog.Attr
}

func (h *bridgeHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.logger.GetLevel() <= fromSlogLevel(level)
}

func (h *bridgeHandler) Handle(_ context.Context, r slog.Record) error {
	fields := make([]Field, 0, len(h.attrs)+r.NumAttrs())
	for _, a := range h.attrs {
		fields = append(fields, Field{Key: a.Key, Value: a.Value.Any()})
	}
	r.Attrs(func(a slog.Attr) bool {
		fields = append(fields, Field{Key: a.Key, Value: a.Value.Any()})
		return true
	})
	switch fromSlogLevel(r.Level) {
	case DebugLevel:
		h.logger.Debug(r.Message, fields...)
	case InfoLevel:
		h.logger.Info(r.Message, fields...)
	case WarnLevel:
		h.logger.Warn(r.Message, fields...)
	default:
		h.logger.Error(r.Message, fields...)
	}
	return nil
}

func (h *bridgeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	nh := *h
	if len(attrs) > 0 {
		nh.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)
	}
	return &nh
}

func (h *bridgeHandler) WithGroup(string) slog.Handler {
	nh := *h
	return &nh
}

func fromSlogLevel(level slog.Level) Level {
	switch {
	case level <= slog.LevelDebug:
		return DebugLevel
	case level == slog.LevelInfo:
		return InfoLevel
	case level == slog.LevelWarn:
		return WarnLevel
	default:
		return ErrorLevel
	}
}
