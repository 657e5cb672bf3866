package dto

import (
	"time"

	"github.com/aretw0/pollster/pkg/domain"
)

// InboundRequest is the JSON body of POST /v1/inbound.
type InboundRequest struct {
	UserID  string          `json:"user_id"`
	Text    *string         `json:"text,omitempty"`
	Contact *domain.Contact `json:"contact,omitempty"`
}

// ToDomain converts the request into an inbound message.
func (r InboundRequest) ToDomain() domain.Inbound {
	return domain.Inbound{UserID: r.UserID, Text: r.Text, Contact: r.Contact}
}

// Field is one labelled answer.
type Field struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Effect is the wire form of domain.Effect. Records are rendered as labelled fields.
type Effect struct {
	Type    domain.EffectType `json:"type"`
	UserID  string            `json:"user_id"`
	Text    string            `json:"text,omitempty"`
	Choices []string          `json:"choices,omitempty"`
	Record  []Field           `json:"record,omitempty"`
}

// InboundResponse lists the effects produced for one inbound message.
type InboundResponse struct {
	Effects []Effect `json:"effects"`
}

// SessionView is the read model returned by GET /v1/sessions/{userID}.
type SessionView struct {
	UserID    string       `json:"user_id"`
	Stage     domain.Stage `json:"stage"`
	Complete  bool         `json:"complete"`
	Answers   []Field      `json:"answers"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// FromEffects maps domain effects to their wire form.
func FromEffects(effects []domain.Effect) []Effect {
	out := make([]Effect, 0, len(effects))
	for _, e := range effects {
		w := Effect{Type: e.Type, UserID: e.UserID, Text: e.Text, Choices: e.Choices}
		if e.Record != nil {
			w.Record = fields(*e.Record)
		}
		out = append(out, w)
	}
	return out
}

// FromSession builds a SessionView listing only the answered fields.
func FromSession(s *domain.Session) SessionView {
	return SessionView{
		UserID:    s.UserID,
		Stage:     s.Stage,
		Complete:  s.Complete(),
		Answers:   answered(s.Record),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func fields(r domain.Record) []Field {
	var out []Field
	for _, f := range r.Fields() {
		out = append(out, Field{Label: f.Label, Value: f.Value})
	}
	return out
}

func answered(r domain.Record) []Field {
	out := []Field{}
	for i, f := range r.Fields() {
		if r.IsSet(domain.Questions()[i].ID) {
			out = append(out, Field{Label: f.Label, Value: f.Value})
		}
	}
	return out
}
