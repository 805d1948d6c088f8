package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/internal/bot/keyboard"
	"github.com/AbdulBotz/nagi-osint-bot/internal/controller"
)

// NewTextHandler runs a lookup turn for a plain text message. A status
// message ("⏳ Fetching data…") is posted right before the external call and
// edited into the final result, so the user sees progress during the
// potentially slow dispatch.
func NewTextHandler(ctrl *controller.Controller, kb *keyboard.Builder, log *slog.Logger) Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		user, ok := senderOf(c)
		if !ok {
			return nil
		}

		var status *telebot.Message
		progress := func() {
			sent, err := c.Bot().Send(c.Chat(), "⏳ Fetching data…")
			if err != nil {
				log.Warn("failed to send status message", slog.Any("error", err))
				return
			}
			status = sent
		}

		reply := ctrl.HandleText(context.Background(), user, c.Text(), progress)

		if status != nil {
			opts := sendOpts(kb, reply)
			if _, err := c.Bot().Edit(status, reply.Text, opts...); err != nil {
				log.Warn("failed to edit status message", slog.Any("error", err))
				return sendReply(c, kb, reply)
			}
			return nil
		}

		return sendReply(c, kb, reply)
	}
}
