package handlers

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/internal/bot/keyboard"
	"github.com/AbdulBotz/nagi-osint-bot/internal/controller"
	"github.com/AbdulBotz/nagi-osint-bot/internal/session"
)

const helpGuideText = "📘 *HELP GUIDE*\n\nThis bot supports auto-detection of:\n\n" +
	"• 10-digit mobile number\n" +
	"• 15-digit GST number\n" +
	"• 11-char IFSC Code\n" +
	"• 6-digit Pincode\n" +
	"• Vehicle Number\n" +
	"• 15-digit IMEI Number\n\n" +
	"Just click any tool or simply send your query! Bot auto fetches LIVE data."

const quickSearchText = "⚡ *QUICK SEARCH*\n\nSIMPLY SEND ANY OF THESE:\n\n" +
	"`9876543210` - MOBILE\n" +
	"`09AAYFK4129N1ZF` - GST\n" +
	"`ICIC0001206` - IFSC\n" +
	"`110001` - PINCODE\n" +
	"`MH12DE1433` - VEHICLE\n" +
	"`123456789012345` - IMEI"

const supportText = "🛠 Support: @AbdulBotz"

// NewVerifyJoinHandler re-runs the gate when the user presses the verify
// button. On success the join prompt is deleted and replaced with the main
// menu.
func NewVerifyJoinHandler(ctrl *controller.Controller, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	return func(c telebot.Context) error {
		defer respond(c)

		user, ok := senderOf(c)
		if !ok {
			return nil
		}

		reply := ctrl.HandleVerifyJoin(context.Background(), user)
		if reply.Menu == controller.MenuMain {
			// Drop the stale join prompt for a cleaner chat; best effort.
			if err := c.Delete(); err != nil {
				log.Debug("failed to delete join prompt", slog.Any("error", err))
			}
			return sendReply(c, kb, reply)
		}

		return sendReply(c, kb, reply)
	}
}

// NewLookupSelectHandler records the lookup mode chosen from the options menu.
// The callback data itself names the mode ("mobile_lookup" etc.).
func NewLookupSelectHandler(ctrl *controller.Controller, kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	modes := map[string]session.Mode{
		keyboard.CallbackMobileLookup:  session.ModeMobile,
		keyboard.CallbackGSTLookup:     session.ModeGST,
		keyboard.CallbackIFSCLookup:    session.ModeIFSC,
		keyboard.CallbackPincodeLookup: session.ModePincode,
		keyboard.CallbackVehicleLookup: session.ModeVehicle,
		keyboard.CallbackIMEILookup:    session.ModeIMEI,
	}

	return func(c telebot.Context) error {
		defer respond(c)

		user, ok := senderOf(c)
		if !ok {
			return nil
		}

		data := callbackData(c)
		mode, known := modes[data]
		if !known {
			log.Warn("unknown lookup selection", slog.String("data", data))
			return nil
		}

		reply := ctrl.HandleModeSelect(context.Background(), user, mode)
		return editReply(c, kb, reply)
	}
}

// NewMenuHandler serves the static menu screens: lookup options, quick
// search, help, support and back-home. All of them edit the message in place.
func NewMenuHandler(kb *keyboard.Builder, log *slog.Logger) CallbackHandler {
	if log == nil {
		log = slog.Default()
	}

	screens := map[string]controller.Reply{
		keyboard.CallbackLookupOptions: {Text: "🔍 Select Lookup Type:", Menu: controller.MenuLookupOptions, Markdown: true},
		keyboard.CallbackQuickSearch:   {Text: quickSearchText, Menu: controller.MenuQuickBack, Markdown: true},
		keyboard.CallbackHelpGuide:     {Text: helpGuideText, Menu: controller.MenuQuickBack, Markdown: true},
		keyboard.CallbackSupport:       {Text: supportText, Menu: controller.MenuQuickBack, Markdown: true},
		keyboard.CallbackBackHome:      {Text: "🏠 Main Menu:", Menu: controller.MenuMain, Markdown: true},
	}

	return func(c telebot.Context) error {
		defer respond(c)

		data := callbackData(c)
		reply, known := screens[data]
		if !known {
			log.Info("no screen for callback", slog.String("data", data))
			return nil
		}

		return editReply(c, kb, reply)
	}
}

// callbackData returns the callback payload with telebot's unique prefix
// already stripped by the router.
func callbackData(c telebot.Context) string {
	if cb := c.Callback(); cb != nil {
		return cb.Data
	}
	return ""
}

// respond acknowledges the callback so the client stops its spinner.
func respond(c telebot.Context) {
	if c.Callback() != nil {
		_ = c.Respond()
	}
}
