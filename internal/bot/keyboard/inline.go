package keyboard

import (
	telebot "gopkg.in/telebot.v3"
)

// InlineButton is a lightweight inline keyboard button definition used by the
// builder. Exactly one of Data or URL should be set.
type InlineButton struct {
	Text string
	Data string // Callback payload routed by data prefix.
	URL  string // External link button, e.g. a channel invite.
}

// InlineKeyboardBuilder accumulates rows of InlineButton definitions before
// rendering telebot markup.
type InlineKeyboardBuilder struct {
	rows [][]InlineButton
}

// NewInlineKeyboard creates an empty builder instance.
func NewInlineKeyboard() *InlineKeyboardBuilder {
	return &InlineKeyboardBuilder{
		rows: make([][]InlineButton, 0),
	}
}

// AddRow appends a new row made of custom InlineButton definitions.
func (b *InlineKeyboardBuilder) AddRow(buttons ...InlineButton) *InlineKeyboardBuilder {
	if len(buttons) == 0 {
		return b
	}

	row := make([]InlineButton, len(buttons))
	copy(row, buttons)
	b.rows = append(b.rows, row)
	return b
}

// Build finalizes the accumulated rows into telebot inline markup.
func (b *InlineKeyboardBuilder) Build() *telebot.ReplyMarkup {
	inlineKeyboard := make([][]telebot.InlineButton, len(b.rows))
	for i, row := range b.rows {
		inlineKeyboard[i] = make([]telebot.InlineButton, len(row))
		for j, btn := range row {
			inlineKeyboard[i][j] = telebot.InlineButton{
				Text: btn.Text,
				Data: btn.Data,
				URL:  btn.URL,
			}
		}
	}

	return &telebot.ReplyMarkup{InlineKeyboard: inlineKeyboard}
}
