package apperr

import (
	"context"
	"errors"
	"log/slog"

	"github.com/getsentry/sentry-go"

	"github.com/AbdulBotz/nagi-osint-bot/pkg/logger"
)

// Handler centralizes logging and Sentry reporting for turn failures. It
// returns the user-visible message for the error; unknown errors resolve to a
// generic apology so no raw fault ever reaches the transport.
type Handler struct {
	log           *slog.Logger
	sentryEnabled bool
}

func NewHandler(log *slog.Logger, sentryEnabled bool) *Handler {
	return &Handler{
		log:           log,
		sentryEnabled: sentryEnabled,
	}
}

func (h *Handler) Handle(ctx context.Context, err error) string {
	if err == nil {
		return ""
	}

	if ctx == nil {
		ctx = context.Background()
	}

	log := h.log
	if log == nil {
		log = slog.Default()
	}

	var appErr *Error
	if errors.As(err, &appErr) && appErr != nil {
		attrs := []any{
			slog.String("kind", string(appErr.Kind)),
			slog.String("message", appErr.Message),
			slog.String("severity", string(appErr.Severity)),
		}
		if appErr.Status != 0 {
			attrs = append(attrs, slog.Int("status", appErr.Status))
		}
		if correlationID := logger.CorrelationIDFromContext(ctx); correlationID != "" {
			attrs = append(attrs, slog.String("correlation_id", correlationID))
		}

		// Expected turn failures stay at warn; only high severity is an error.
		if appErr.Severity == SeverityHigh {
			log.Error("turn failed", attrs...)
			if h.sentryEnabled {
				h.sendToSentry(err)
			}
		} else {
			log.Warn("turn failed", attrs...)
		}

		if appErr.UserMessage != "" {
			return appErr.UserMessage
		}
		return "⚠️ Something went wrong. Please try again later."
	}

	log.Error("unexpected error", slog.String("message", err.Error()))

	if h.sentryEnabled {
		h.sendToSentry(err)
	}

	return "⚠️ Something went wrong. Please try again later."
}

func (h *Handler) sendToSentry(err error) {
	if err == nil {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		var appErr *Error
		if errors.As(err, &appErr) && appErr != nil {
			scope.SetTag("kind", string(appErr.Kind))
			scope.SetTag("severity", string(appErr.Severity))
		}

		sentry.CaptureException(err)
	})
}
