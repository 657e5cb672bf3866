// Package telegram connects the survey to the Telegram Bot API: it renders prompts
// as reply keyboards and converts incoming updates into domain.Inbound messages.
package telegram
