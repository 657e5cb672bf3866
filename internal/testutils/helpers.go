package testutils

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/pollster/pkg/adapters/memory"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/session"
	"github.com/aretw0/pollster/pkg/survey"
)

// Sent is one message captured by RecordingMessenger.
type Sent struct {
	Kind    domain.EffectType
	UserID  string
	Text    string
	Choices []string
}

// RecordingMessenger implements ports.Messenger by capturing every send.
// Err, when set, is returned from every call after the message is recorded.
type RecordingMessenger struct {
	mu   sync.Mutex
	sent []Sent
	Err  error
}

func (m *RecordingMessenger) record(s Sent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, s)
	return m.Err
}

func (m *RecordingMessenger) SendChoicePrompt(_ context.Context, userID, text string, choices []string) error {
	return m.record(Sent{Kind: domain.EffectChoicePrompt, UserID: userID, Text: text, Choices: choices})
}

func (m *RecordingMessenger) SendContactRequest(_ context.Context, userID, text string) error {
	return m.record(Sent{Kind: domain.EffectContactRequest, UserID: userID, Text: text})
}

func (m *RecordingMessenger) SendText(_ context.Context, userID, text string) error {
	return m.record(Sent{Kind: domain.EffectText, UserID: userID, Text: text})
}

// Sent returns captured messages in send order.
func (m *RecordingMessenger) Sent() []Sent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Sent, len(m.sent))
	copy(out, m.sent)
	return out
}

// For returns the messages sent to userID.
func (m *RecordingMessenger) For(userID string) []Sent {
	var out []Sent
	for _, s := range m.Sent() {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out
}

// FlakySink fails the first Failures appends with Err, then delegates to an in-memory sink.
type FlakySink struct {
	*memory.Sink

	mu       sync.Mutex
	Failures int
	Err      error
	calls    int
}

// NewFlakySink creates a sink failing the first n appends with err.
func NewFlakySink(n int, err error) *FlakySink {
	return &FlakySink{Sink: memory.NewSink(), Failures: n, Err: err}
}

func (s *FlakySink) Append(ctx context.Context, record domain.Record) error {
	s.mu.Lock()
	s.calls++
	fail := s.calls <= s.Failures
	s.mu.Unlock()
	if fail {
		return s.Err
	}
	return s.Sink.Append(ctx, record)
}

// Calls reports how many appends were attempted.
func (s *FlakySink) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

// NewController builds a controller over a fresh in-memory store.
func NewController(t *testing.T, opts ...survey.Option) *survey.Controller {
	t.Helper()
	return survey.NewController(session.NewManager(memory.NewStore()), opts...)
}

// CompleteRun returns the messages that take a user from a fresh session to completion.
func CompleteRun(userID string) []domain.Inbound {
	return []domain.Inbound{
		domain.NewTextMessage(userID, "18-25"),
		domain.NewTextMessage(userID, "Не было опыта"),
		domain.NewTextMessage(userID, "Акции"),
		domain.NewTextMessage(userID, "Более 10 миллионов"),
		domain.NewContactMessage(userID, "+1234567890"),
	}
}
