// Package controller implements the per-user interaction state machine:
// gate check, mode selection, input validation, credit spend and lookup
// dispatch. It is transport-agnostic; the telegram handlers adapt events into
// it and render the returned replies.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/AbdulBotz/nagi-osint-bot/internal/apperr"
	"github.com/AbdulBotz/nagi-osint-bot/internal/format"
	"github.com/AbdulBotz/nagi-osint-bot/internal/lookup"
	"github.com/AbdulBotz/nagi-osint-bot/internal/session"
)

// Menu identifies which keyboard accompanies a reply.
type Menu int

const (
	MenuNone Menu = iota
	MenuJoin
	MenuMain
	MenuLookupOptions
	MenuAskInput
	MenuQuickBack
)

// Reply is the typed outcome of a turn.
type Reply struct {
	Text     string
	Menu     Menu
	Markdown bool
}

// Gate reports whether the membership gate blocks a user.
type Gate interface {
	IsGated(ctx context.Context, userID int64) bool
}

// Ledger is the slice of the credit ledger the controller drives.
type Ledger interface {
	CreateUser(ctx context.Context, id int64, username, firstName string, referredBy *int64) (bool, error)
	Balance(ctx context.Context, id int64) (int64, error)
	Spend(ctx context.Context, id int64) error
	Refund(ctx context.Context, id int64) error
	AddReferral(ctx context.Context, referrerID, referredID int64) error
}

// Notifier delivers an out-of-band message to a user, e.g. telling a
// referrer about their bonus. Best effort: failures are logged, not surfaced.
type Notifier func(userID int64, text string) error

// User carries the sender identity the controller needs from the transport.
type User struct {
	ID        int64
	Username  string
	FirstName string
}

// Controller orchestrates one turn per incoming event.
type Controller struct {
	gate            Gate
	sessions        session.Store
	ledger          Ledger
	dispatcher      lookup.Dispatcher
	notify          Notifier
	errHandler      *apperr.Handler
	referralBonus   int64
	refundOnFailure bool
	log             *slog.Logger
}

// New constructs a Controller.
func New(
	gate Gate,
	sessions session.Store,
	ledger Ledger,
	dispatcher lookup.Dispatcher,
	notify Notifier,
	errHandler *apperr.Handler,
	referralBonus int64,
	refundOnFailure bool,
	log *slog.Logger,
) *Controller {
	if log == nil {
		log = slog.Default()
	}

	return &Controller{
		gate:            gate,
		sessions:        sessions,
		ledger:          ledger,
		dispatcher:      dispatcher,
		notify:          notify,
		errHandler:      errHandler,
		referralBonus:   referralBonus,
		refundOnFailure: refundOnFailure,
		log:             log,
	}
}

var modePrompts = map[session.Mode]string{
	session.ModeMobile:  "📱 Send Mobile Number (10 digits):",
	session.ModeGST:     "🏢 Send GST Number (15 digits):",
	session.ModeIFSC:    "🏦 Send IFSC Code (11 characters):",
	session.ModePincode: "📮 Send Pincode (6 digits):",
	session.ModeVehicle: "🚗 Send RC Number (e.g., MH12DE1433):",
	session.ModeIMEI:    "🧾 Send IMEI Number (15 digits):",
}

// HandleStart processes /start. The user record is created on first contact;
// a valid referral argument credits the referrer exactly once, guarded by the
// isNew flag. The gate check runs after user creation so a blocked user still
// exists in the ledger (scenario: joins channels later, keeps credits).
func (c *Controller) HandleStart(ctx context.Context, user User, payload string) Reply {
	referrerID, hasReferrer := parseReferral(payload, user.ID)

	var referredBy *int64
	if hasReferrer {
		referredBy = &referrerID
	}

	isNew, err := c.ledger.CreateUser(ctx, user.ID, user.Username, user.FirstName, referredBy)
	if err != nil {
		return c.failure(ctx, err)
	}

	if isNew && hasReferrer {
		if err := c.ledger.AddReferral(ctx, referrerID, user.ID); err != nil {
			c.log.Error("failed to record referral",
				slog.Int64("referrer_id", referrerID),
				slog.Int64("referred_id", user.ID),
				slog.Any("error", err),
			)
		} else if c.notify != nil {
			text := fmt.Sprintf(
				"🎉 *New Referral!* Someone installed using your link.\nYou received +%d Credit 💳",
				c.referralBonus,
			)
			if err := c.notify(referrerID, text); err != nil {
				c.log.Warn("failed to notify referrer",
					slog.Int64("referrer_id", referrerID),
					slog.Any("error", err),
				)
			}
		}
	}

	if c.gate.IsGated(ctx, user.ID) {
		return Reply{
			Text:     "🔐 *Please join all required channels to unlock the bot:*",
			Menu:     MenuJoin,
			Markdown: true,
		}
	}

	return Reply{
		Text:     "👋 Welcome to *Nagi OSINT PRO*\nSelect any tool below ⬇️",
		Menu:     MenuMain,
		Markdown: true,
	}
}

// HandleVerifyJoin re-runs the gate after the user pressed the verify button.
func (c *Controller) HandleVerifyJoin(ctx context.Context, user User) Reply {
	if c.gate.IsGated(ctx, user.ID) {
		return Reply{
			Text: "❌ Please join all channels first.",
			Menu: MenuJoin,
		}
	}

	return Reply{
		Text:     "✅ Verified! Access Unlocked.",
		Menu:     MenuMain,
		Markdown: true,
	}
}

// HandleModeSelect records the chosen lookup mode and asks for input.
// Selecting a mode never touches credits; it overwrites any previous
// selection (last-write-wins).
func (c *Controller) HandleModeSelect(ctx context.Context, user User, mode session.Mode) Reply {
	if c.gate.IsGated(ctx, user.ID) {
		return c.failure(ctx, apperr.Gate(nil))
	}

	if !mode.Valid() {
		return c.failure(ctx, apperr.NoMode())
	}

	if err := c.sessions.SetMode(ctx, user.ID, mode); err != nil {
		return c.failure(ctx, err)
	}

	return Reply{
		Text:     modePrompts[mode],
		Menu:     MenuAskInput,
		Markdown: true,
	}
}

// HandleText runs the full lookup turn for an incoming text message:
// gate → mode → validate → credit check → spend → dispatch → render.
// The credit is spent before the network call; a failed dispatch keeps the
// mode set so the user can retry without reselecting, and refunds only when
// the refund-on-failure policy is enabled. The mode is cleared on success
// only.
func (c *Controller) HandleText(ctx context.Context, user User, text string, progress func()) Reply {
	if c.gate.IsGated(ctx, user.ID) {
		return c.failure(ctx, apperr.Gate(nil))
	}

	mode, err := c.sessions.GetMode(ctx, user.ID)
	if err != nil {
		if !errors.Is(err, session.ErrNotFound) {
			return c.failure(ctx, err)
		}
		mode = session.ModeNone
	}

	lookupType, ok := lookup.TypeForMode(mode)
	if !ok {
		return c.failure(ctx, apperr.NoMode())
	}

	normalized, err := c.dispatcher.Validate(lookupType, text)
	if err != nil {
		// Re-prompt for the same mode; no credit or session side effect.
		return c.failure(ctx, err)
	}

	balance, err := c.ledger.Balance(ctx, user.ID)
	if err != nil {
		return c.failure(ctx, err)
	}
	if balance <= 0 {
		return c.failure(ctx, apperr.InsufficientCredit())
	}

	// Spend before dispatch, regardless of the call's eventual outcome.
	if err := c.ledger.Spend(ctx, user.ID); err != nil {
		return c.failure(ctx, apperr.InsufficientCredit())
	}

	if progress != nil {
		progress()
	}

	payload, err := c.dispatcher.Dispatch(ctx, lookupType, normalized)
	if err != nil {
		if c.refundOnFailure {
			if refundErr := c.ledger.Refund(ctx, user.ID); refundErr != nil {
				c.log.Error("failed to refund credit",
					slog.Int64("user_id", user.ID),
					slog.Any("error", refundErr),
				)
			}
		}
		// Mode stays set: the user can retry the same lookup type.
		return c.failure(ctx, err)
	}

	remaining, err := c.ledger.Balance(ctx, user.ID)
	if err != nil {
		c.log.Warn("failed to read post-spend balance",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
		remaining = balance - 1
	}

	if err := c.sessions.ClearMode(ctx, user.ID); err != nil {
		c.log.Warn("failed to clear session mode",
			slog.Int64("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	return Reply{
		Text:     c.render(payload, remaining),
		Menu:     MenuNone,
		Markdown: true,
	}
}

func (c *Controller) render(payload []byte, credits int64) string {
	return format.Render(payload, credits)
}

// failure maps an error to its user-visible reply via the central handler and
// attaches the keyboard appropriate for the failure kind.
func (c *Controller) failure(ctx context.Context, err error) Reply {
	text := err.Error()
	if c.errHandler != nil {
		text = c.errHandler.Handle(ctx, err)
	}

	reply := Reply{Text: text}

	switch apperr.KindOf(err) {
	case apperr.KindGate:
		reply.Menu = MenuJoin
	case apperr.KindNoMode:
		reply.Menu = MenuMain
	case apperr.KindInvalidFormat:
		reply.Menu = MenuAskInput
	case apperr.KindInsufficientCredit:
		reply.Markdown = true
	}

	return reply
}

// parseReferral extracts a referrer id from the /start payload. Non-numeric
// payloads and self-referrals are ignored.
func parseReferral(payload string, selfID int64) (int64, bool) {
	if payload == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(payload, 10, 64)
	if err != nil || id <= 0 || id == selfID {
		return 0, false
	}

	return id, true
}
