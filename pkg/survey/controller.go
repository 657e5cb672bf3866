package survey

import (
	"context"
	"log/slog"

	"github.com/aretw0/pollster/internal/logging"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/session"
)

// Controller turns inbound messages into effects. It owns no I/O: the returned
// effects are performed by the caller, in order.
type Controller struct {
	sessions *session.Manager
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// Option defines a functional option for configuring the Controller.
type Option func(*Controller)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *Controller) {
		c.hooks = hooks
	}
}

// WithLogger configures a logger for the Controller.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a controller backed by the given session manager.
func NewController(sessions *session.Manager, opts ...Option) *Controller {
	c := &Controller{
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Sessions returns the session manager.
func (c *Controller) Sessions() *session.Manager {
	return c.sessions
}

// HandleInbound feeds one message to the user's session and returns the effects to perform.
// The user's session is held exclusively for the duration of the call.
// Errors are infrastructure failures (store, lock); rejections are not errors.
func (c *Controller) HandleInbound(ctx context.Context, msg domain.Inbound) ([]domain.Effect, error) {
	var (
		outcome  Outcome
		from     domain.Stage
		snapshot *domain.Session
		fresh    bool
	)
	err := c.sessions.WithSession(ctx, msg.UserID, func(ctx context.Context, s *domain.Session, isNew bool) error {
		fresh = isNew
		from = s.Stage
		outcome = Advance(s, msg)
		snapshot = s.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.emit(ctx, snapshot, from, outcome, fresh)
	return Effects(msg.UserID, outcome), nil
}

// Effects maps an outcome to the outbound actions for userID.
func Effects(userID string, o Outcome) []domain.Effect {
	switch o.Kind {
	case OutcomeFinished:
		return []domain.Effect{
			{Type: domain.EffectText, UserID: userID, Text: domain.CompletionText},
			{Type: domain.EffectAppendRecord, UserID: userID, Record: o.Record},
		}
	default:
		if o.Prompt == nil {
			return nil
		}
		return []domain.Effect{promptEffect(userID, *o.Prompt)}
	}
}

func promptEffect(userID string, p Prompt) domain.Effect {
	if p.Contact {
		return domain.Effect{Type: domain.EffectContactRequest, UserID: userID, Text: p.Text}
	}
	return domain.Effect{Type: domain.EffectChoicePrompt, UserID: userID, Text: p.Text, Choices: p.Choices}
}

func (c *Controller) emit(ctx context.Context, s *domain.Session, from domain.Stage, o Outcome, fresh bool) {
	if fresh && c.hooks.OnSessionStart != nil {
		c.hooks.OnSessionStart(ctx, s)
	}

	ev := &domain.TransitionEvent{UserID: s.UserID, From: from, To: o.Stage, Err: o.Err}
	switch o.Kind {
	case OutcomeRejected:
		c.logger.Debug("Answer rejected", "user_id", s.UserID, "stage", from, "err", o.Err)
		if c.hooks.OnReject != nil {
			c.hooks.OnReject(ctx, ev)
		}
	case OutcomeAdvanced, OutcomeFinished:
		c.logger.Debug("Answer accepted", "user_id", s.UserID, "from", from, "to", o.Stage)
		if c.hooks.OnAdvance != nil {
			c.hooks.OnAdvance(ctx, ev)
		}
	}

	if o.Kind == OutcomeFinished && c.hooks.OnFinish != nil {
		c.hooks.OnFinish(ctx, s)
	}
}
