package keyboard

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AbdulBotz/nagi-osint-bot/pkg/config"
)

func testBuilder(channels config.ChannelsConfig) *Builder {
	return NewBuilder(channels, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestInlineKeyboardBuilder(t *testing.T) {
	markup := NewInlineKeyboard().
		AddRow(
			InlineButton{Text: "A", Data: "a"},
			InlineButton{Text: "B", Data: "b"},
		).
		AddRow(InlineButton{Text: "Link", URL: "https://example.com"}).
		AddRow(). // empty rows are dropped
		Build()

	assert.Len(t, markup.InlineKeyboard, 2)
	assert.Len(t, markup.InlineKeyboard[0], 2)
	assert.Equal(t, "a", markup.InlineKeyboard[0][0].Data)
	assert.Equal(t, "https://example.com", markup.InlineKeyboard[1][0].URL)
}

func TestJoinChannels_WithLinks(t *testing.T) {
	b := testBuilder(config.ChannelsConfig{
		Main:       -100,
		Backup:     -200,
		MainLink:   "https://t.me/main",
		BackupLink: "https://t.me/backup",
	})

	markup := b.JoinChannels()

	assert.Len(t, markup.InlineKeyboard, 3)
	assert.Equal(t, "https://t.me/main", markup.InlineKeyboard[0][0].URL)
	assert.Equal(t, "https://t.me/backup", markup.InlineKeyboard[1][0].URL)
	assert.Equal(t, CallbackVerifyJoin, markup.InlineKeyboard[2][0].Data)
}

func TestJoinChannels_WithoutLinks(t *testing.T) {
	b := testBuilder(config.ChannelsConfig{Main: -100, Backup: -200})

	markup := b.JoinChannels()

	// Only the verify button remains.
	assert.Len(t, markup.InlineKeyboard, 1)
	assert.Equal(t, CallbackVerifyJoin, markup.InlineKeyboard[0][0].Data)
}

func TestLookupOptions_CoversAllTypes(t *testing.T) {
	b := testBuilder(config.ChannelsConfig{})

	markup := b.LookupOptions()

	var data []string
	for _, row := range markup.InlineKeyboard {
		for _, btn := range row {
			data = append(data, btn.Data)
		}
	}

	assert.Contains(t, data, CallbackMobileLookup)
	assert.Contains(t, data, CallbackGSTLookup)
	assert.Contains(t, data, CallbackIFSCLookup)
	assert.Contains(t, data, CallbackPincodeLookup)
	assert.Contains(t, data, CallbackVehicleLookup)
	assert.Contains(t, data, CallbackIMEILookup)
	assert.Contains(t, data, CallbackBackHome)
}
