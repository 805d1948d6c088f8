package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	_ "github.com/lib/pq"

	"github.com/AbdulBotz/nagi-osint-bot/internal/bot"
	"github.com/AbdulBotz/nagi-osint-bot/internal/database"
	"github.com/AbdulBotz/nagi-osint-bot/internal/health"
	"github.com/AbdulBotz/nagi-osint-bot/internal/idempotency"
	"github.com/AbdulBotz/nagi-osint-bot/internal/ledger"
	"github.com/AbdulBotz/nagi-osint-bot/internal/lifecycle"
	"github.com/AbdulBotz/nagi-osint-bot/internal/lookup"
	"github.com/AbdulBotz/nagi-osint-bot/internal/middleware"
	"github.com/AbdulBotz/nagi-osint-bot/internal/ratelimit"
	"github.com/AbdulBotz/nagi-osint-bot/internal/repository"
	"github.com/AbdulBotz/nagi-osint-bot/internal/session"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/graceful"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/logger"
	pkgredis "github.com/AbdulBotz/nagi-osint-bot/pkg/redis"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, v, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(*cfg)
	log.Info("starting nagi osint bot",
		slog.String("env", cfg.AppEnv),
		slog.String("mode", cfg.Bot.Mode),
		slog.String("http_port", cfg.Server.Port),
	)

	if cfg.Sentry.Enabled {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			log.Error("failed to initialize sentry", slog.Any("error", err))
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	config.Watch(v, log)

	db, err := sql.Open("postgres", cfg.DB.DSN())
	if err != nil {
		log.Error("failed to open database", slog.Any("error", err))
		os.Exit(1)
	}

	if err := db.PingContext(ctx); err != nil {
		log.Error("failed to ping database", slog.Any("error", err))
		os.Exit(1)
	}

	migrator := database.NewMigrator(db, log)
	if err := migrator.ApplyDir(ctx, "migrations"); err != nil {
		log.Error("failed to apply migrations", slog.Any("error", err))
		os.Exit(1)
	}

	var redisClient *pkgredis.Client
	if needsRedis(*cfg) {
		redisClient, err = pkgredis.New(ctx, cfg.Redis)
		if err != nil {
			log.Error("failed to connect to redis", slog.Any("error", err))
			os.Exit(1)
		}
	}

	sessions, sessionCleaner := buildSessionStore(*cfg, redisClient, log)
	if sessionCleaner != nil {
		go sessionCleaner.Run(ctx)
	}

	userRepo := repository.NewUserRepository(db, log)
	ledgerSvc := ledger.NewService(userRepo, cfg.Credits, log)
	dispatcher := lookup.NewHTTPDispatcher(cfg.Lookup, log)

	var rateLimitMw *middleware.RateLimitMiddleware
	if cfg.RateLimit.Enabled {
		var limiter ratelimit.Limiter
		if cfg.RateLimit.Backend == "redis" && redisClient != nil {
			limiter = ratelimit.NewRedisLimiter(redisClient.Client, log)
		} else {
			limiter = ratelimit.NewMemoryLimiter(log)
		}
		rules := ratelimit.NewRules(cfg.RateLimit, cfg.Admin)
		rateLimitMw = middleware.NewRateLimitMiddleware(limiter, rules, log)
	}

	var idemManager idempotency.Manager
	if cfg.Idempotency.Enabled && redisClient != nil {
		idemManager = idempotency.NewManager(idempotency.NewRedisStore(redisClient.Client, log), log)
	}

	b, err := bot.New(*cfg, log, ledgerSvc, sessions, dispatcher, idemManager, rateLimitMw)
	if err != nil {
		log.Error("failed to initialize bot", slog.Any("error", err))
		os.Exit(1)
	}

	checker := health.NewChecker(log)
	checker.AddCheck("database", health.NewDBChecker(db))
	if redisClient != nil {
		checker.AddCheck("redis", health.NewRedisChecker(redisClient.Client))
	}
	checker.AddCheck("telegram", health.NewTelegramChecker(b.Telebot()))

	httpServer := buildHTTPServer(*cfg, checker, log)

	go func() {
		if err := httpServer.ListenAndServe(ctx); err != nil {
			log.Error("http server stopped with error", slog.Any("error", err))
		}
	}()

	shutdown := lifecycle.NewShutdown(log)
	shutdown.Register("telegram-bot", func(ctx context.Context) error {
		b.Stop()
		return nil
	})
	shutdown.Register("database", func(ctx context.Context) error {
		return db.Close()
	})
	if redisClient != nil {
		shutdown.Register("redis", func(ctx context.Context) error {
			return redisClient.Close()
		})
	}

	go b.Start()
	log.Info("bot is running")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := shutdown.Execute(shutdownCtx); err != nil {
		log.Error("shutdown finished with errors", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("bot stopped")
}

// needsRedis reports whether any configured backend requires a Redis
// connection.
func needsRedis(cfg config.Config) bool {
	if cfg.Session.Backend == "redis" {
		return true
	}
	if cfg.RateLimit.Enabled && cfg.RateLimit.Backend == "redis" {
		return true
	}
	return cfg.Idempotency.Enabled
}

// buildSessionStore selects the session backend. The memory store gets a
// cleaner goroutine; the Redis store expires entries via key TTL.
func buildSessionStore(cfg config.Config, redisClient *pkgredis.Client, log *slog.Logger) (session.Store, *session.Cleaner) {
	if cfg.Session.Backend == "redis" && redisClient != nil {
		kv := pkgredis.NewMetricsClient(redisClient)
		return session.NewRedisStore(kv, cfg.Session.TTL, log), nil
	}

	store := session.NewMemoryStore()
	cleaner := session.NewCleaner(store, log, cfg.Session.TTL, cfg.Session.SweepInterval)
	return store, cleaner
}

func buildHTTPServer(cfg config.Config, checker *health.Checker, log *slog.Logger) *graceful.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("OK"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		results := checker.Check(r.Context())

		status := http.StatusOK
		for _, result := range results {
			if result != "OK" {
				status = http.StatusServiceUnavailable
				break
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(results)
	})

	mux.Handle("/metrics", promhttp.Handler())

	handler := logger.Middleware(middleware.RequestLogging(log)(mux))

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	return graceful.NewServer(log, srv, cfg.Server.ShutdownTimeout)
}
