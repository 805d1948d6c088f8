package bot

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"strings"
	"time"

	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/internal/apperr"
	"github.com/AbdulBotz/nagi-osint-bot/internal/bot/handlers"
	"github.com/AbdulBotz/nagi-osint-bot/internal/controller"
)

// RecoveryMiddleware catches panics, logs them, and notifies the user instead
// of letting the update loop die.
func RecoveryMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.Error("panic recovered in handler",
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())),
					)

					if c != nil {
						if sendErr := c.Send("⚠️ Something went wrong. Please try again later."); sendErr != nil {
							log.Error("failed to notify user about panic", slog.Any("error", sendErr))
						}
					}

					err = nil
				}
			}()

			return next(c)
		}
	}
}

// ErrorHandlingMiddleware resolves handler failures through the central error
// handler and sends the user-visible message. Errors never propagate to
// telebot: the turn always ends with a reply.
func ErrorHandlingMiddleware(errHandler *apperr.Handler) handlers.Middleware {
	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			err := next(c)
			if err == nil {
				return nil
			}

			userMsg := "⚠️ Something went wrong. Please try again later."
			if errHandler != nil {
				if msg := errHandler.Handle(context.Background(), err); msg != "" {
					userMsg = msg
				}
			}

			if c != nil {
				_ = c.Send(userMsg)
			}

			return nil
		}
	}
}

// LoggingMiddleware logs basic telemetry about incoming updates.
func LoggingMiddleware(log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			start := time.Now()
			userID := int64(0)
			if c != nil && c.Sender() != nil {
				userID = c.Sender().ID
			}

			action := ""
			if c != nil {
				if cb := c.Callback(); cb != nil {
					action = cb.Data
				} else {
					action = c.Text()
				}
			}

			err := next(c)
			log.Info("handled update",
				slog.Int64("user_id", userID),
				slog.String("action", action),
				slog.Duration("duration", time.Since(start)),
				slog.Any("error", err),
			)

			return err
		}
	}
}

// EnsureUserMiddleware creates the user record on first contact, so a user
// who presses a button before ever sending /start still has a balance.
func EnsureUserMiddleware(ledger controller.Ledger, log *slog.Logger) handlers.Middleware {
	if log == nil {
		log = slog.Default()
	}

	return func(next handlers.Handler) handlers.Handler {
		if next == nil {
			return nil
		}

		return func(c telebot.Context) error {
			if ledger == nil || c == nil || c.Sender() == nil {
				return next(c)
			}

			// /start creates the user itself, with the referral payload; doing
			// it here first would mark the user as existing and drop the bonus.
			if strings.HasPrefix(c.Text(), CommandStart) {
				return next(c)
			}

			sender := c.Sender()
			_, err := ledger.CreateUser(context.Background(), sender.ID, sender.Username, sender.FirstName, nil)
			if err != nil {
				log.Error("failed to ensure user record", slog.Int64("user_id", sender.ID), slog.Any("error", err))
				return fmt.Errorf("ensure user: %w", err)
			}

			return next(c)
		}
	}
}
