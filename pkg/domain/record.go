package domain

import (
	"fmt"
	"strings"
)

// Record is the accumulated answer tuple of one user.
// Fields are filled strictly left-to-right and never revised.
type Record struct {
	Age        AgeRange             `json:"age"`
	Status     InvestmentStatus     `json:"status"`
	Instrument InvestmentInstrument `json:"instrument"`
	Funding    FundingCapacity      `json:"funding"`
	Contact    ContactReference     `json:"contact"`
}

// IsSet reports whether the field answering q is populated.
func (r Record) IsSet(q Question) bool {
	switch q {
	case QuestionAge:
		return r.Age != AgeUnset
	case QuestionInvestmentStatus:
		return r.Status != StatusUnset
	case QuestionInstrument:
		return r.Instrument != InstrumentUnset
	case QuestionFundingCapacity:
		return r.Funding != FundingUnset
	case QuestionContact:
		return r.Contact != ""
	}
	return false
}

// Complete reports whether all five fields are populated.
func (r Record) Complete() bool {
	for _, q := range stageQuestions {
		if !r.IsSet(q) {
			return false
		}
	}
	return true
}

// Set stores an answer in its field. A field is written at most once.
func (r *Record) Set(a Answer) error {
	q := a.Question()
	if r.IsSet(q) {
		return fmt.Errorf("%w: %s", ErrFieldAlreadySet, q)
	}
	switch v := a.(type) {
	case AgeRange:
		r.Age = v
	case InvestmentStatus:
		r.Status = v
	case InvestmentInstrument:
		r.Instrument = v
	case FundingCapacity:
		r.Funding = v
	case ContactReference:
		r.Contact = v
	default:
		return fmt.Errorf("unsupported answer type %T", a)
	}
	return nil
}

// Field is one labelled line of a rendered record.
type Field struct {
	Label string
	Value string
}

// Fields returns the record in persistence order: Age, Status, Instrument, Budget, Contact.
func (r Record) Fields() []Field {
	return []Field{
		{Label: "Возраст", Value: r.Age.String()},
		{Label: "Статус", Value: r.Status.String()},
		{Label: "Инструмент", Value: r.Instrument.String()},
		{Label: "Бюджет", Value: r.Funding.String()},
		{Label: "Контакт", Value: r.Contact.String()},
	}
}

// Format renders the record as a block of "Label:value" lines, each ending in a newline.
func (r Record) Format() string {
	var b strings.Builder
	for _, f := range r.Fields() {
		b.WriteString(f.Label)
		b.WriteByte(':')
		b.WriteString(f.Value)
		b.WriteByte('\n')
	}
	return b.String()
}
