// Package config provides configuration loading and validation utilities.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validator "github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from YAML files and environment variables,
// validates it, and returns the resulting Config. A missing or incomplete
// configuration is fatal for the process: the returned error must prevent the
// bot from entering service.
func Load() (*Config, *viper.Viper, error) {
	if err := godotenv.Load(".env.local", ".env"); err != nil {
		// env files are optional
		_ = err
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	v := viper.New()
	v.SetConfigFile(fmt.Sprintf("./configs/%s.yaml", env))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.AppEnv = env

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return nil, nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, v, nil
}

// Watch logs configuration file changes. The loaded Config stays immutable; a
// restart is required for changes to take effect, but noticing drift early is
// still useful in operations.
func Watch(v *viper.Viper, log *slog.Logger) {
	if v == nil {
		return
	}
	if log == nil {
		log = slog.Default()
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		log.Warn("configuration file changed on disk; restart to apply",
			slog.String("file", e.Name),
			slog.String("op", e.Op.String()),
		)
	})
	v.WatchConfig()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bot.mode", "polling")
	v.SetDefault("bot.timeout", 10*time.Second)
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("credits.start", 5)
	v.SetDefault("credits.referral_bonus", 1)
	v.SetDefault("credits.refund_on_failure", false)
	v.SetDefault("lookup.timeout", 15*time.Second)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("session.backend", "memory")
	v.SetDefault("session.ttl", time.Hour)
	v.SetDefault("session.sweep_interval", 10*time.Minute)
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.backend", "memory")
	v.SetDefault("ratelimit.limit", 20)
	v.SetDefault("ratelimit.window", time.Minute)
	v.SetDefault("idempotency.enabled", false)
	v.SetDefault("idempotency.ttl", 24*time.Hour)
	v.SetDefault("log.level", "info")
}
