package logger

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"time"
)

// JSONLineHandler implements slog.Handler, emitting one JSON object per line
// with a severity field so log collectors can filter without parsing nested
// attributes.
type JSONLineHandler struct {
	level slog.Level
}

func NewJSONLineHandler(level slog.Level) slog.Handler {
	return &JSONLineHandler{level: level}
}

func (h *JSONLineHandler) Enabled(_ context.Context, l slog.Level) bool {
	return l >= h.level
}

func (h *JSONLineHandler) Handle(_ context.Context, r slog.Record) error {
	event := map[string]any{
		"severity": severityName(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}

	if r.NumAttrs() > 0 {
		data := make(map[string]any)

		r.Attrs(func(a slog.Attr) bool {
			data[a.Key] = a.Value.Any()
			return true
		})

		event["data"] = data
	}

	b, err := json.Marshal(event)
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(append(b, '\n'))
	return err
}

func (h *JSONLineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newH := *h
	return &withAttrsHandler{handler: &newH, attrs: attrs}
}

func (h *JSONLineHandler) WithGroup(_ string) slog.Handler {
	// Flat line format — groups are ignored
	return h
}

func severityName(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO"
	case slog.LevelWarn:
		return "WARNING"
	case slog.LevelError:
		return "ERROR"
	default:
		return "DEFAULT"
	}
}

// wrapper that injects static attrs
type withAttrsHandler struct {
	handler *JSONLineHandler
	attrs   []slog.Attr
}

func (h *withAttrsHandler) Enabled(ctx context.Context, l slog.Level) bool {
	return h.handler.Enabled(ctx, l)
}

func (h *withAttrsHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, a := range h.attrs {
		r.AddAttrs(a)
	}
	return h.handler.Handle(ctx, r)
}

func (h *withAttrsHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	all := append(append([]slog.Attr{}, h.attrs...), attrs...)
	return &withAttrsHandler{handler: h.handler, attrs: all}
}

func (h *withAttrsHandler) WithGroup(_ string) slog.Handler {
	return h
}
