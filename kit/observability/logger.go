package observability

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
)

// ContextHandler stamps the chi request id on every record logged with a
// request context.
type ContextHandler struct {
	slog.Handler
}

func NewContextHandler(h slog.Handler) *ContextHandler {
	return &ContextHandler{Handler: h}
}

func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := middleware.GetReqID(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{Handler: h.Handler.WithGroup(name)}
}

type Logger struct {
	l *slog.Logger
}

// NewLogger builds a JSON logger on stdout and installs it as the slog
// default, so package-level slog calls share the same handler.
func NewLogger(level string) *Logger {
	lg := NewLoggerTo(os.Stdout, level)
	slog.SetDefault(lg.l)
	return lg
}

// NewLoggerTo builds a JSON logger on w without touching the slog default.
func NewLoggerTo(w io.Writer, level string) *Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: ParseLevel(level)})
	return &Logger{l: slog.New(NewContextHandler(h))}
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func (lg *Logger) Info(msg string, kv ...any) {
	lg.l.Info(msg, kv...)
}

func (lg *Logger) Error(msg string, kv ...any) {
	lg.l.Error(msg, kv...)
}

func (lg *Logger) InfoContext(ctx context.Context, msg string, kv ...any) {
	lg.l.InfoContext(ctx, msg, kv...)
}

func (lg *Logger) ErrorContext(ctx context.Context, msg string, kv ...any) {
	lg.l.ErrorContext(ctx, msg, kv...)
}
