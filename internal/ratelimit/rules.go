package ratelimit

import (
	"time"

	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
)

// Rules encapsulates the configured per-user limit and the admin bypass.
type Rules struct {
	config  config.RateLimitConfig
	adminID int64
}

// NewRules constructs rate limiting rules from configuration settings.
func NewRules(cfg config.RateLimitConfig, admin config.AdminConfig) *Rules {
	return &Rules{config: cfg, adminID: admin.ID}
}

// IsExempt returns true if the userID bypasses rate limits. Only the bot
// admin is exempt.
func (r *Rules) IsExempt(userID int64) bool {
	return r.adminID != 0 && userID == r.adminID
}

// PerUserLimit returns the per-user rate limiting rule.
func (r *Rules) PerUserLimit() (int, time.Duration) {
	return r.config.Limit, r.config.Window
}
