// Package gate enforces the channel-membership requirement.
package gate

import (
	"context"
	"log/slog"

	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
	"github.com/AbdulBotz/nagi-osint-bot/pkg/metrics"
)

// Keeper reports whether a user is blocked by the membership gate.
type Keeper interface {
	// IsGated returns true when the user must not be let through: either a
	// channel query failed or the user is not a member of every required
	// channel. Fail-closed by contract.
	IsGated(ctx context.Context, userID int64) bool
}

// MemberChecker is the slice of the telegram client the keeper needs.
type MemberChecker interface {
	ChatMemberOf(chat, user telebot.Recipient) (*telebot.ChatMember, error)
}

// ChannelKeeper checks membership in the two required channels. No caching:
// every gated action re-queries both channels.
type ChannelKeeper struct {
	bot      MemberChecker
	channels []int64
	log      *slog.Logger
}

// NewChannelKeeper constructs a ChannelKeeper for the configured channels.
func NewChannelKeeper(bot MemberChecker, cfg config.ChannelsConfig, log *slog.Logger) *ChannelKeeper {
	if log == nil {
		log = slog.Default()
	}

	return &ChannelKeeper{
		bot:      bot,
		channels: []int64{cfg.Main, cfg.Backup},
		log:      log,
	}
}

// IsGated queries both channels and passes only members, administrators and
// owners. Any query error denies access rather than surfacing.
func (k *ChannelKeeper) IsGated(ctx context.Context, userID int64) bool {
	for _, channelID := range k.channels {
		member, err := k.bot.ChatMemberOf(telebot.ChatID(channelID), &telebot.User{ID: userID})
		if err != nil {
			k.log.Warn("channel membership check failed",
				slog.Int64("user_id", userID),
				slog.Int64("channel_id", channelID),
				slog.Any("error", err),
			)
			metrics.RecordGateCheck(false)
			return true
		}

		if !statusPasses(member.Role) {
			metrics.RecordGateCheck(false)
			return true
		}
	}

	metrics.RecordGateCheck(true)
	return false
}

func statusPasses(role telebot.MemberStatus) bool {
	switch role {
	case telebot.Creator, telebot.Administrator, telebot.Member:
		return true
	}
	return false
}
