package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/internal/bot/keyboard"
	"github.com/AbdulBotz/nagi-osint-bot/internal/controller"
)

// NewStartHandler handles /start. The command payload carries an optional
// referrer id, e.g. "/start 42" from a t.me deep link.
func NewStartHandler(ctrl *controller.Controller, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		user, ok := senderOf(c)
		if !ok {
			log.Warn("start handler invoked without sender")
			return nil
		}

		payload := ""
		if msg := c.Message(); msg != nil {
			payload = msg.Payload
		}

		reply := ctrl.HandleStart(context.Background(), user, payload)
		return sendReply(c, kb, reply)
	}
}
