package gate

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	telebot "gopkg.in/telebot.v3"

	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
)

type fakeChecker struct {
	roles map[int64]telebot.MemberStatus
	err   error
	calls int
}

func (f *fakeChecker) ChatMemberOf(chat, user telebot.Recipient) (*telebot.ChatMember, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}

	chatID, _ := chat.(telebot.ChatID)
	role, ok := f.roles[int64(chatID)]
	if !ok {
		role = telebot.Left
	}

	return &telebot.ChatMember{Role: role}, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testChannels() config.ChannelsConfig {
	return config.ChannelsConfig{Main: -100, Backup: -200}
}

func TestIsGated_MemberOfBoth(t *testing.T) {
	checker := &fakeChecker{roles: map[int64]telebot.MemberStatus{
		-100: telebot.Member,
		-200: telebot.Administrator,
	}}
	keeper := NewChannelKeeper(checker, testChannels(), testLogger())

	assert.False(t, keeper.IsGated(context.Background(), 7))
	assert.Equal(t, 2, checker.calls)
}

func TestIsGated_MissingOneChannel(t *testing.T) {
	checker := &fakeChecker{roles: map[int64]telebot.MemberStatus{
		-100: telebot.Member,
		-200: telebot.Left,
	}}
	keeper := NewChannelKeeper(checker, testChannels(), testLogger())

	assert.True(t, keeper.IsGated(context.Background(), 7))
}

func TestIsGated_KickedIsDenied(t *testing.T) {
	checker := &fakeChecker{roles: map[int64]telebot.MemberStatus{
		-100: telebot.Kicked,
		-200: telebot.Member,
	}}
	keeper := NewChannelKeeper(checker, testChannels(), testLogger())

	assert.True(t, keeper.IsGated(context.Background(), 7))
}

// A failed membership query denies access rather than letting the user in.
func TestIsGated_QueryErrorFailsClosed(t *testing.T) {
	checker := &fakeChecker{err: errors.New("telegram: chat not found")}
	keeper := NewChannelKeeper(checker, testChannels(), testLogger())

	assert.True(t, keeper.IsGated(context.Background(), 7))
	assert.Equal(t, 1, checker.calls)
}
