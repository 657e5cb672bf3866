package survey

import (
	"fmt"

	"github.com/aretw0/pollster/pkg/domain"
)

// Validate checks an inbound message against the choice set of question q and
// maps it to a domain value. Matching is exact and case-sensitive.
// Every rejection wraps domain.ErrRejected.
func Validate(q domain.Question, msg domain.Inbound) (domain.Answer, error) {
	def, ok := domain.LookupQuestion(q)
	if !ok {
		return nil, fmt.Errorf("unknown question %q", q)
	}

	if def.RequestsContact() {
		if msg.Contact == nil {
			return nil, domain.ErrMissingContact
		}
		if msg.Contact.PhoneNumber == "" {
			return nil, domain.ErrEmptyPhone
		}
		return domain.ContactReference(msg.Contact.PhoneNumber), nil
	}

	if msg.Text == nil {
		return nil, domain.ErrMissingText
	}
	for _, choice := range def.Choices {
		if choice.String() == *msg.Text {
			return choice, nil
		}
	}
	return nil, domain.ErrUnknownChoice
}
