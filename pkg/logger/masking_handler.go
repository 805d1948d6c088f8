package logger

import (
	"context"
	"log/slog"
	"strings"
)

// Attribute keys whose values never belong in logs. The bot token and lookup
// endpoint bases often carry embedded API keys.
var sensitiveKeys = []string{
	"token",
	"password",
	"secret",
	"api_key",
	"dsn",
	"endpoint",
	"authorization",
}

// MaskingHandler wraps a slog.Handler and masks sensitive attributes before
// delegating.
type MaskingHandler struct {
	next slog.Handler
}

// NewMaskingHandler creates a handler that masks sensitive fields before
// passing records downstream.
func NewMaskingHandler(next slog.Handler) *MaskingHandler {
	return &MaskingHandler{next: next}
}

// Enabled reports whether the handler handles records at the given level.
func (h *MaskingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// WithAttrs returns a new handler with additional attributes.
func (h *MaskingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &MaskingHandler{next: h.next.WithAttrs(maskAttrs(attrs))}
}

// WithGroup returns a new handler with an appended group name.
func (h *MaskingHandler) WithGroup(name string) slog.Handler {
	return &MaskingHandler{next: h.next.WithGroup(name)}
}

// Handle applies masking to sensitive attributes and delegates to the wrapped
// handler.
func (h *MaskingHandler) Handle(ctx context.Context, record slog.Record) error {
	masked := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)

	record.Attrs(func(attr slog.Attr) bool {
		if isSensitiveKey(attr.Key) {
			attr.Value = slog.StringValue("***")
		}
		masked.AddAttrs(attr)
		return true
	})

	return h.next.Handle(ctx, masked)
}

func maskAttrs(attrs []slog.Attr) []slog.Attr {
	out := make([]slog.Attr, len(attrs))
	for i, attr := range attrs {
		if isSensitiveKey(attr.Key) {
			attr.Value = slog.StringValue("***")
		}
		out[i] = attr
	}
	return out
}

func isSensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, sensitive := range sensitiveKeys {
		if strings.Contains(lowered, sensitive) {
			return true
		}
	}
	return false
}
