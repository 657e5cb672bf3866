package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aretw0/pollster/internal/logging"
	"github.com/aretw0/pollster/pkg/ports"
)

// ContactButtonLabel is the caption of the share-contact button.
const ContactButtonLabel = "Отправить"

// Bot is the sending half of *tgbotapi.BotAPI.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Messenger implements ports.Messenger over the Bot API. User ids are chat ids.
type Messenger struct {
	bot    Bot
	logger *slog.Logger
}

var _ ports.Messenger = (*Messenger)(nil)

// Option configures the Messenger.
type Option func(*Messenger)

// WithLogger configures the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Messenger) {
		m.logger = logger
	}
}

// NewMessenger creates a Messenger sending through bot.
func NewMessenger(bot Bot, opts ...Option) *Messenger {
	m := &Messenger{bot: bot, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SendChoicePrompt sends text with a one-time keyboard, one row per choice.
func (m *Messenger) SendChoicePrompt(ctx context.Context, userID, text string, choices []string) error {
	msg, err := newMessage(userID, text)
	if err != nil {
		return err
	}
	msg.ReplyMarkup = ChoiceKeyboard(choices)
	return m.send(ctx, msg)
}

// SendContactRequest sends text with a single share-contact button.
func (m *Messenger) SendContactRequest(ctx context.Context, userID, text string) error {
	msg, err := newMessage(userID, text)
	if err != nil {
		return err
	}
	msg.ReplyMarkup = ContactKeyboard()
	return m.send(ctx, msg)
}

// SendText sends plain text and removes the custom keyboard.
func (m *Messenger) SendText(ctx context.Context, userID, text string) error {
	msg, err := newMessage(userID, text)
	if err != nil {
		return err
	}
	msg.ReplyMarkup = tgbotapi.NewRemoveKeyboard(true)
	return m.send(ctx, msg)
}

func (m *Messenger) send(ctx context.Context, msg tgbotapi.MessageConfig) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := m.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send to chat %d: %w", msg.ChatID, err)
	}
	m.logger.Debug("Message sent", "chat_id", msg.ChatID)
	return nil
}

// ChoiceKeyboard builds a one-time reply keyboard with one button per row.
func ChoiceKeyboard(choices []string) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(choices))
	for _, c := range choices {
		rows = append(rows, tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButton(c)))
	}
	kb := tgbotapi.NewOneTimeReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// ContactKeyboard builds a one-time keyboard holding the share-contact button.
func ContactKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewOneTimeReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(tgbotapi.NewKeyboardButtonContact(ContactButtonLabel)),
	)
	kb.ResizeKeyboard = true
	return kb
}

func newMessage(userID, text string) (tgbotapi.MessageConfig, error) {
	chatID, err := ChatID(userID)
	if err != nil {
		return tgbotapi.MessageConfig{}, err
	}
	return tgbotapi.NewMessage(chatID, text), nil
}

// ChatID parses a user id produced by this adapter back into a chat id.
func ChatID(userID string) (int64, error) {
	id, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid telegram user id %q: %w", userID, err)
	}
	return id, nil
}
