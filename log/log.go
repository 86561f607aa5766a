package log

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"time"
)

type ctxKey struct{}

// CloudLoggingHandler is a slog.Handler that writes Google Cloud structured
// log entries to stdout, the format Cloud Functions expects.
type CloudLoggingHandler struct {
	attrs []slog.Attr
}

func NewCloudLoggingHandler() *CloudLoggingHandler {
	return &CloudLoggingHandler{}
}

func (h *CloudLoggingHandler) Handle(ctx context.Context, r slog.Record) error {
	entry := map[string]any{
		"severity": severity(r.Level),
		"time":     time.Now().Format(time.RFC3339),
		"message":  r.Message,
	}

	if traceID := traceFromContext(ctx); traceID != "" {
		entry["logging.googleapis.com/trace"] = traceID
	}

	for _, attr := range h.attrs {
		entry[attr.Key] = attr.Value.Any()
	}
	r.Attrs(func(attr slog.Attr) bool {
		entry[attr.Key] = attr.Value.Any()
		return true
	})

	jsonData, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	os.Stdout.Write(jsonData)
	os.Stdout.Write([]byte("\n"))
	return nil
}

func (h *CloudLoggingHandler) Enabled(_ context.Context, _ slog.Level) bool {
	return true
}

func (h *CloudLoggingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)
	return &CloudLoggingHandler{attrs: newAttrs}
}

// WithGroup returns the same handler, grouping is not implemented.
func (h *CloudLoggingHandler) WithGroup(_ string) slog.Handler {
	return h
}

// severity maps slog levels to Cloud Logging severity names.
func severity(l slog.Level) string {
	switch {
	case l >= slog.LevelError:
		return "ERROR"
	case l >= slog.LevelWarn:
		return "WARNING"
	case l >= slog.LevelInfo:
		return "INFO"
	}
	return "DEBUG"
}

type traceKey struct{}

// WithTrace stores the trace id from an X-Cloud-Trace-Context header value.
func WithTrace(ctx context.Context, header string) context.Context {
	traceID, _, _ := strings.Cut(header, "/")
	if traceID == "" {
		return ctx
	}
	return context.WithValue(ctx, traceKey{}, traceID)
}

func traceFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	traceID, _ := ctx.Value(traceKey{}).(string)
	return traceID
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

func LoggerFromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.New(NewCloudLoggingHandler())
}
