package middleware

import (
	"context"
	"strings"
	"unicode"

	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/ports"
)

type maskSink struct {
	next ports.RecordSink
	keep int
}

// NewContactMask replaces all but the last keep digits of the contact with '*'
// before the record reaches the sink.
func NewContactMask(keep int) SinkMiddleware {
	return func(next ports.RecordSink) ports.RecordSink {
		return &maskSink{next: next, keep: keep}
	}
}

func (m *maskSink) Append(ctx context.Context, record domain.Record) error {
	record.Contact = domain.ContactReference(MaskDigits(string(record.Contact), m.keep))
	return m.next.Append(ctx, record)
}

// MaskDigits hides every digit of s except the last keep ones. Non-digits are preserved.
func MaskDigits(s string, keep int) string {
	digits := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			digits++
		}
	}

	var b strings.Builder
	b.Grow(len(s))
	seen := 0
	for _, r := range s {
		if unicode.IsDigit(r) {
			seen++
			if seen <= digits-keep {
				b.WriteRune('*')
				continue
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
