// Package bot wires the Telegram transport: telebot setup, routing and the
// handler middleware chain.
package bot

import (
	"fmt"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/internal/apperr"
	"github.com/AbdulBotz/nagi-osint-bot/internal/bot/handlers"
	"github.com/AbdulBotz/nagi-osint-bot/internal/bot/keyboard"
	"github.com/AbdulBotz/nagi-osint-bot/internal/controller"
	"github.com/AbdulBotz/nagi-osint-bot/internal/gate"
	"github.com/AbdulBotz/nagi-osint-bot/internal/idempotency"
	"github.com/AbdulBotz/nagi-osint-bot/internal/lookup"
	"github.com/AbdulBotz/nagi-osint-bot/internal/middleware"
	"github.com/AbdulBotz/nagi-osint-bot/internal/session"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
)

const CommandStart = "/start"

// Bot wraps telebot.Bot with the application components handling updates.
type Bot struct {
	telebot     *telebot.Bot
	log         *slog.Logger
	cfg         config.Config
	router      *Router
	keyboard    *keyboard.Builder
	controller  *controller.Controller
	gate        gate.Keeper
	rateLimitMw *middleware.RateLimitMiddleware
}

// New builds a telegram bot instance configured according to the application
// settings. The membership gate and referral notifier are created here since
// both need the live telebot client.
func New(
	cfg config.Config,
	log *slog.Logger,
	ledgerSvc controller.Ledger,
	sessions session.Store,
	dispatcher lookup.Dispatcher,
	idempotencyManager idempotency.Manager,
	rateLimitMw *middleware.RateLimitMiddleware,
) (*Bot, error) {
	settings := telebot.Settings{
		Token: cfg.Bot.Token,
	}

	if cfg.Bot.Mode == "webhook" {
		settings.Poller = &telebot.Webhook{
			Listen: cfg.Server.Port,
			Endpoint: &telebot.WebhookEndpoint{
				PublicURL: cfg.Bot.PublicURL,
			},
		}
	} else {
		settings.Poller = &telebot.LongPoller{
			Timeout: cfg.Bot.Timeout,
		}
	}

	tb, err := telebot.NewBot(settings)
	if err != nil {
		return nil, fmt.Errorf("initialize telebot: %w", err)
	}

	keeper := gate.NewChannelKeeper(tb, cfg.Channels, log)
	errHandler := apperr.NewHandler(log, cfg.Sentry.Enabled)

	notify := func(userID int64, text string) error {
		_, err := tb.Send(&telebot.User{ID: userID}, text, telebot.ModeMarkdown)
		return err
	}

	ctrl := controller.New(
		keeper,
		sessions,
		ledgerSvc,
		dispatcher,
		notify,
		errHandler,
		cfg.Credits.ReferralBonus,
		cfg.Credits.RefundOnFailure,
		log,
	)

	kb := keyboard.NewBuilder(cfg.Channels, log)
	router := NewRouter(log)

	b := &Bot{
		telebot:     tb,
		log:         log,
		cfg:         cfg,
		router:      router,
		keyboard:    kb,
		controller:  ctrl,
		gate:        keeper,
		rateLimitMw: rateLimitMw,
	}

	b.setupRouter(errHandler, ledgerSvc, idempotencyManager)

	if b.rateLimitMw != nil {
		b.telebot.Use(b.rateLimitMw.Handle)
	}

	b.telebot.Handle(telebot.OnText, b.router.Route)
	b.telebot.Handle(telebot.OnCallback, b.router.Route)

	return b, nil
}

// Start runs the telegram bot event loop.
func (b *Bot) Start() {
	if b.telebot != nil {
		b.telebot.Start()
	}
}

// Stop gracefully stops the telegram bot.
func (b *Bot) Stop() {
	if b.telebot == nil {
		return
	}

	b.log.Info("stopping telegram bot...")
	b.telebot.Stop()
}

// Telebot exposes the underlying telebot.Bot instance for integrations such
// as health checks.
func (b *Bot) Telebot() *telebot.Bot {
	return b.telebot
}

// Controller exposes the interaction controller, mainly for tests.
func (b *Bot) Controller() *controller.Controller {
	return b.controller
}

func (b *Bot) setupRouter(errHandler *apperr.Handler, ledgerSvc controller.Ledger, idempotencyManager idempotency.Manager) {
	b.router.Use(RecoveryMiddleware(b.log))
	if b.cfg.Idempotency.Enabled {
		b.router.Use(middleware.Idempotency(idempotencyManager, b.cfg.Idempotency.TTL, b.log))
	}
	b.router.Use(ErrorHandlingMiddleware(errHandler))
	b.router.Use(LoggingMiddleware(b.log))
	b.router.Use(EnsureUserMiddleware(ledgerSvc, b.log))
	b.router.Use(middleware.Metrics)

	b.router.RegisterCommand(CommandStart, handlers.NewStartHandler(b.controller, b.keyboard, b.log))

	b.router.RegisterCallback(keyboard.CallbackVerifyJoin, handlers.NewVerifyJoinHandler(b.controller, b.keyboard, b.log))

	lookupSelect := handlers.NewLookupSelectHandler(b.controller, b.keyboard, b.log)
	for _, data := range []string{
		keyboard.CallbackMobileLookup,
		keyboard.CallbackGSTLookup,
		keyboard.CallbackIFSCLookup,
		keyboard.CallbackPincodeLookup,
		keyboard.CallbackVehicleLookup,
		keyboard.CallbackIMEILookup,
	} {
		b.router.RegisterCallback(data, lookupSelect)
	}

	menu := handlers.NewMenuHandler(b.keyboard, b.log)
	for _, data := range []string{
		keyboard.CallbackLookupOptions,
		keyboard.CallbackQuickSearch,
		keyboard.CallbackHelpGuide,
		keyboard.CallbackSupport,
		keyboard.CallbackBackHome,
	} {
		b.router.RegisterCallback(data, menu)
	}

	b.router.SetDefault(handlers.NewTextHandler(b.controller, b.keyboard, b.log))
}
