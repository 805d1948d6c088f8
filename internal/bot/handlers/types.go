// Package handlers adapts telegram updates into controller turns and renders
// the typed replies back through telebot.
package handlers

import (
	telebot "gopkg.in/telebot.v3"
)

// Handler processes bot commands and plain text updates.
type Handler func(c telebot.Context) error

// CallbackHandler processes inline callback events.
type CallbackHandler func(c telebot.Context) error

// Middleware wraps handlers with additional behavior.
type Middleware func(Handler) Handler
