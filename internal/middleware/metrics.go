package middleware

import (
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/internal/bot/handlers"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/metrics"
)

// Metrics measures execution time and status for bot handlers, reporting them
// to Prometheus by update kind.
func Metrics(next handlers.Handler) handlers.Handler {
	if next == nil {
		return nil
	}

	return func(c telebot.Context) error {
		start := time.Now()
		err := next(c)

		status := "ok"
		if err != nil {
			status = "error"
		}

		metrics.RecordUpdate(updateKind(c), status, time.Since(start))

		return err
	}
}

// updateKind buckets updates coarsely so the label stays low-cardinality:
// callback data values are a fixed set, and free text collapses to "text".
func updateKind(c telebot.Context) string {
	if c == nil {
		return "unknown"
	}

	if cb := c.Callback(); cb != nil && cb.Data != "" {
		return cb.Data
	}

	if text := c.Text(); text != "" {
		if text[0] == '/' {
			return "command"
		}
		return "text"
	}

	return "unknown"
}
