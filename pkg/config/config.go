package config

import (
	"fmt"
	"time"
)

// Config holds the immutable runtime configuration for the Nagi OSINT bot.
// It is assembled and validated once at startup and passed explicitly into
// every component that needs a slice of it.
type Config struct {
	AppEnv string `mapstructure:"app_env"`

	Bot         BotConfig         `mapstructure:"bot"`
	Server      ServerConfig      `mapstructure:"server"`
	Channels    ChannelsConfig    `mapstructure:"channels"`
	Admin       AdminConfig       `mapstructure:"admin"`
	Credits     CreditsConfig     `mapstructure:"credits"`
	Lookup      LookupConfig      `mapstructure:"lookup"`
	DB          DBConfig          `mapstructure:"db"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Session     SessionConfig     `mapstructure:"session"`
	RateLimit   RateLimitConfig   `mapstructure:"ratelimit"`
	Idempotency IdempotencyConfig `mapstructure:"idempotency"`
	Logger      LoggerConfig      `mapstructure:"log"`
	Sentry      SentryConfig      `mapstructure:"sentry"`
}

// BotConfig configures the Telegram transport.
type BotConfig struct {
	Token    string        `mapstructure:"token" validate:"required"`
	Username string        `mapstructure:"username"`
	Mode     string        `mapstructure:"mode" validate:"oneof=polling webhook"`
	Timeout  time.Duration `mapstructure:"timeout"`
	// PublicURL is only used when Mode is webhook.
	PublicURL string `mapstructure:"public_url"`
}

// ServerConfig configures the liveness/metrics HTTP server.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// ChannelsConfig lists the channels a user must join before using the bot.
type ChannelsConfig struct {
	Main   int64 `mapstructure:"main" validate:"required"`
	Backup int64 `mapstructure:"backup" validate:"required"`
	// Invite links rendered on the join keyboard. Optional: when empty only
	// the verify button is shown.
	MainLink   string `mapstructure:"main_link"`
	BackupLink string `mapstructure:"backup_link"`
}

// AdminConfig identifies the bot administrator. The admin bypasses rate
// limits.
type AdminConfig struct {
	ID int64 `mapstructure:"id"`
}

// CreditsConfig controls the credit ledger.
type CreditsConfig struct {
	Start         int64 `mapstructure:"start" validate:"min=0"`
	ReferralBonus int64 `mapstructure:"referral_bonus" validate:"min=0"`
	// RefundOnFailure returns the spent credit when a lookup dispatch fails.
	// Off by default: a spent credit stays spent.
	RefundOnFailure bool `mapstructure:"refund_on_failure"`
}

// LookupConfig holds one base endpoint per lookup type. The validated input
// is appended verbatim to the base URL.
type LookupConfig struct {
	MobileAPI  string        `mapstructure:"mobile_api" validate:"required"`
	GSTAPI     string        `mapstructure:"gst_api" validate:"required"`
	IFSCAPI    string        `mapstructure:"ifsc_api" validate:"required"`
	PincodeAPI string        `mapstructure:"pincode_api" validate:"required"`
	VehicleAPI string        `mapstructure:"vehicle_api" validate:"required"`
	IMEIAPI    string        `mapstructure:"imei_api" validate:"required"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// DBConfig configures the PostgreSQL connection.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name" validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (c DBConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// RedisConfig configures the Redis connection used for sessions, rate limits
// and idempotency records.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

// SessionConfig selects the lookup-mode store backend.
type SessionConfig struct {
	Backend string        `mapstructure:"backend" validate:"oneof=memory redis"`
	TTL     time.Duration `mapstructure:"ttl"`
	// SweepInterval controls how often the memory backend drops idle sessions.
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// RateLimitConfig bounds per-user update rates.
type RateLimitConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Backend string        `mapstructure:"backend" validate:"oneof=memory redis"`
	Limit   int           `mapstructure:"limit"`
	Window  time.Duration `mapstructure:"window"`
}

// IdempotencyConfig controls duplicate-update suppression.
type IdempotencyConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// LoggerConfig controls log output.
type LoggerConfig struct {
	Level string `mapstructure:"level"`
	// File enables lumberjack rotation when set; empty means stdout.
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// SentryConfig enables error forwarding to Sentry.
type SentryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DSN     string `mapstructure:"dsn"`
}
