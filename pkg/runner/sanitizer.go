package runner

import (
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/aretw0/pollster/pkg/domain"
)

// DefaultMaxInputSize bounds inbound text in bytes unless WithMaxInputSize says otherwise.
const DefaultMaxInputSize = 4096

var (
	ErrInputTooLarge = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8   = errors.New("input contains invalid UTF-8 sequences")
)

// CheckInput enforces the size limit and validates UTF-8.
// Control characters are kept: answers must match a label byte for byte.
// A limit below 1 means DefaultMaxInputSize.
func CheckInput(input string, limit int) error {
	if limit < 1 {
		limit = DefaultMaxInputSize
	}
	if len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}
	return nil
}

// SanitizeInbound drops text that fails CheckInput, so the message is treated
// as carrying no text.
func SanitizeInbound(msg domain.Inbound, limit int, logger *slog.Logger) domain.Inbound {
	if msg.Text == nil {
		return msg
	}
	if err := CheckInput(*msg.Text, limit); err != nil {
		logger.Warn("Dropping unsafe text", "user_id", msg.UserID, "err", err)
		msg.Text = nil
	}
	return msg
}

// Sanitize applies SanitizeInbound with the runner's input limit.
func (r *Runner) Sanitize(msg domain.Inbound) domain.Inbound {
	return SanitizeInbound(msg, r.maxInputSize, r.logger)
}
