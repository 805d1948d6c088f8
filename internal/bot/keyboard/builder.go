// Package keyboard renders the bot's inline menus.
package keyboard

import (
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
)

// Callback data values routed by the bot. Lookup selections share the
// "_lookup" suffix so a single prefix registration covers all six.
const (
	CallbackVerifyJoin    = "verify_join"
	CallbackLookupOptions = "lookup_options"
	CallbackQuickSearch   = "quick_search"
	CallbackHelpGuide     = "help_guide"
	CallbackSupport       = "support"
	CallbackBackHome      = "back_home"

	CallbackMobileLookup  = "mobile_lookup"
	CallbackGSTLookup     = "gst_lookup"
	CallbackIFSCLookup    = "ifsc_lookup"
	CallbackPincodeLookup = "pincode_lookup"
	CallbackVehicleLookup = "vehicle_lookup"
	CallbackIMEILookup    = "imei_lookup"
)

// Builder creates the inline keyboards attached to bot replies.
type Builder struct {
	channels config.ChannelsConfig
	log      *slog.Logger
}

// NewBuilder returns a new Builder instance.
func NewBuilder(channels config.ChannelsConfig, log *slog.Logger) *Builder {
	return &Builder{channels: channels, log: log}
}

// JoinChannels builds the gate keyboard: one invite link per configured
// channel plus the verify button. Channels without an invite link get no
// button; the verify button is always present.
func (b *Builder) JoinChannels() *telebot.ReplyMarkup {
	kb := NewInlineKeyboard()

	if b.channels.MainLink != "" {
		kb.AddRow(InlineButton{Text: "📢 Join Main Channel", URL: b.channels.MainLink})
	}
	if b.channels.BackupLink != "" {
		kb.AddRow(InlineButton{Text: "📡 Join Backup Channel", URL: b.channels.BackupLink})
	}
	kb.AddRow(InlineButton{Text: "✅ I Joined, Verify", Data: CallbackVerifyJoin})

	return kb.Build()
}

// MainMenu builds the home screen menu.
func (b *Builder) MainMenu() *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(InlineButton{Text: "🔍 Lookup Tools", Data: CallbackLookupOptions}).
		AddRow(InlineButton{Text: "⚡ Quick Search", Data: CallbackQuickSearch}).
		AddRow(
			InlineButton{Text: "📘 Help", Data: CallbackHelpGuide},
			InlineButton{Text: "🛠 Support", Data: CallbackSupport},
		).
		Build()
}

// LookupOptions builds the lookup type selection menu.
func (b *Builder) LookupOptions() *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(
			InlineButton{Text: "📱 Mobile", Data: CallbackMobileLookup},
			InlineButton{Text: "🏢 GST", Data: CallbackGSTLookup},
		).
		AddRow(
			InlineButton{Text: "🏦 IFSC", Data: CallbackIFSCLookup},
			InlineButton{Text: "📮 Pincode", Data: CallbackPincodeLookup},
		).
		AddRow(
			InlineButton{Text: "🚗 Vehicle", Data: CallbackVehicleLookup},
			InlineButton{Text: "🧾 IMEI", Data: CallbackIMEILookup},
		).
		AddRow(InlineButton{Text: "🏠 Back", Data: CallbackBackHome}).
		Build()
}

// AskInput builds the keyboard shown while waiting for lookup input.
func (b *Builder) AskInput() *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(InlineButton{Text: "🔙 Change Lookup", Data: CallbackLookupOptions}).
		AddRow(InlineButton{Text: "🏠 Back", Data: CallbackBackHome}).
		Build()
}

// QuickBack builds a single back-to-home button.
func (b *Builder) QuickBack() *telebot.ReplyMarkup {
	return NewInlineKeyboard().
		AddRow(InlineButton{Text: "🏠 Back", Data: CallbackBackHome}).
		Build()
}
