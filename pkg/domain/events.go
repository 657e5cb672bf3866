package domain

import "context"

// TransitionEvent describes one processed inbound message.
type TransitionEvent struct {
	UserID string
	From   Stage
	To     Stage
	Err    error // Rejection reason, nil when the answer was accepted.
}

// EffectEvent describes the outcome of performing one Effect.
type EffectEvent struct {
	Effect   Effect
	Attempts int
	Err      error
}

// LifecycleHooks defines callbacks for controller and runner observability.
type LifecycleHooks struct {
	OnSessionStart func(context.Context, *Session)
	OnAdvance      func(context.Context, *TransitionEvent)
	OnReject       func(context.Context, *TransitionEvent)
	OnFinish       func(context.Context, *Session)
	OnEffect       func(context.Context, *EffectEvent)
}
