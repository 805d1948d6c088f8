package handlers

import (
	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/internal/bot/keyboard"
	"github.com/AbdulBotz/nagi-osint-bot/internal/controller"
)

// senderOf extracts the controller user identity from the update.
func senderOf(c telebot.Context) (controller.User, bool) {
	sender := c.Sender()
	if sender == nil {
		return controller.User{}, false
	}

	return controller.User{
		ID:        sender.ID,
		Username:  sender.Username,
		FirstName: sender.FirstName,
	}, true
}

// markupFor maps a reply menu to its keyboard. MenuNone yields nil markup.
func markupFor(kb *keyboard.Builder, menu controller.Menu) *telebot.ReplyMarkup {
	if kb == nil {
		return nil
	}

	switch menu {
	case controller.MenuJoin:
		return kb.JoinChannels()
	case controller.MenuMain:
		return kb.MainMenu()
	case controller.MenuLookupOptions:
		return kb.LookupOptions()
	case controller.MenuAskInput:
		return kb.AskInput()
	case controller.MenuQuickBack:
		return kb.QuickBack()
	}

	return nil
}

// sendOpts assembles telebot send options for a reply.
func sendOpts(kb *keyboard.Builder, reply controller.Reply) []interface{} {
	var opts []interface{}
	if markup := markupFor(kb, reply.Menu); markup != nil {
		opts = append(opts, markup)
	}
	if reply.Markdown {
		opts = append(opts, telebot.ModeMarkdown)
	}
	return opts
}

// sendReply delivers a controller reply as a fresh message.
func sendReply(c telebot.Context, kb *keyboard.Builder, reply controller.Reply) error {
	return c.Send(reply.Text, sendOpts(kb, reply)...)
}

// editReply rewrites the current (callback) message in place, falling back to
// a fresh message when the edit is rejected, e.g. identical content.
func editReply(c telebot.Context, kb *keyboard.Builder, reply controller.Reply) error {
	if err := c.Edit(reply.Text, sendOpts(kb, reply)...); err != nil {
		return c.Send(reply.Text, sendOpts(kb, reply)...)
	}
	return nil
}
