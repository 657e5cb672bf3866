package telegram

import (
	"context"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/aretw0/pollster/pkg/domain"
)

// NewBot connects to the Bot API with token.
func NewBot(token string, debug bool) (*tgbotapi.BotAPI, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	bot.Debug = debug
	return bot, nil
}

// Updates long-polls bot and returns the converted inbound stream.
// The stream is closed after ctx is cancelled.
func Updates(ctx context.Context, bot *tgbotapi.BotAPI, timeout int, logger *slog.Logger) <-chan domain.Inbound {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = timeout
	updates := bot.GetUpdatesChan(cfg)

	go func() {
		<-ctx.Done()
		bot.StopReceivingUpdates()
	}()
	return Pump(ctx, updates, logger)
}

// Pump converts updates into inbound messages, skipping updates that carry no message.
func Pump(ctx context.Context, updates <-chan tgbotapi.Update, logger *slog.Logger) <-chan domain.Inbound {
	out := make(chan domain.Inbound)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case u, ok := <-updates:
				if !ok {
					return
				}
				msg, ok := ToInbound(u)
				if !ok {
					logger.Debug("Skipping update", "update_id", u.UpdateID)
					continue
				}
				select {
				case out <- msg:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// ToInbound converts a Telegram update. It reports false for updates without a message.
// Messages with neither text nor contact (stickers, photos) become inbound with no payload.
func ToInbound(u tgbotapi.Update) (domain.Inbound, bool) {
	m := u.Message
	if m == nil || m.Chat == nil {
		return domain.Inbound{}, false
	}

	in := domain.Inbound{UserID: strconv.FormatInt(m.Chat.ID, 10)}
	if m.Contact != nil {
		in.Contact = &domain.Contact{PhoneNumber: m.Contact.PhoneNumber}
	}
	if m.Text != "" {
		text := m.Text
		in.Text = &text
	}
	return in, true
}
