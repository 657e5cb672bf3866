package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/aretw0/pollster/internal/dto"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/ports"
)

// StreamManager fans outbound messages out to SSE subscribers, keyed by user.
// It implements ports.Messenger so the runner can deliver prompts to web clients.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan<- string]struct{}
	logger      *slog.Logger
}

var _ ports.Messenger = (*StreamManager)(nil)

// NewStreamManager creates a manager with no subscribers.
func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[string]map[chan<- string]struct{}),
		logger:      logger,
	}
}

// Subscribe registers a listener for userID. The returned func unsubscribes and closes the channel.
func (sm *StreamManager) Subscribe(userID string) (<-chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	if _, ok := sm.subscribers[userID]; !ok {
		sm.subscribers[userID] = make(map[chan<- string]struct{})
	}
	sm.subscribers[userID][ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if subs, ok := sm.subscribers[userID]; ok {
			if _, live := subs[ch]; !live {
				return
			}
			delete(subs, ch)
			close(ch)
			if len(subs) == 0 {
				delete(sm.subscribers, userID)
			}
		}
	}
}

// Broadcast delivers msg to every subscriber of userID. Slow subscribers miss messages.
func (sm *StreamManager) Broadcast(userID string, msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers[userID] {
		select {
		case ch <- msg:
		default:
			sm.logger.Warn("SSE: Client buffer full, dropping message", "user_id", userID)
		}
	}
}

// SendChoicePrompt publishes a choice_prompt effect.
func (sm *StreamManager) SendChoicePrompt(_ context.Context, userID, text string, choices []string) error {
	return sm.publish(dto.Effect{Type: domain.EffectChoicePrompt, UserID: userID, Text: text, Choices: choices})
}

// SendContactRequest publishes a contact_request effect.
func (sm *StreamManager) SendContactRequest(_ context.Context, userID, text string) error {
	return sm.publish(dto.Effect{Type: domain.EffectContactRequest, UserID: userID, Text: text})
}

// SendText publishes a text effect.
func (sm *StreamManager) SendText(_ context.Context, userID, text string) error {
	return sm.publish(dto.Effect{Type: domain.EffectText, UserID: userID, Text: text})
}

func (sm *StreamManager) publish(e dto.Effect) error {
	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	sm.Broadcast(e.UserID, string(b))
	return nil
}
