package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/pollster/pkg/domain"
)

// AuditHooks logs every lifecycle event at info level, except rejections which log at debug.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(_ context.Context, s *domain.Session) {
			logger.Info("session_start", "user_id", s.UserID)
		},
		OnAdvance: func(_ context.Context, e *domain.TransitionEvent) {
			logger.Info("answer_accepted", "user_id", e.UserID, "from", e.From, "to", e.To)
		},
		OnReject: func(_ context.Context, e *domain.TransitionEvent) {
			logger.Debug("answer_rejected", "user_id", e.UserID, "stage", e.From, "reason", e.Err)
		},
		OnFinish: func(_ context.Context, s *domain.Session) {
			logger.Info("survey_complete", "user_id", s.UserID)
		},
		OnEffect: func(_ context.Context, e *domain.EffectEvent) {
			if e.Err != nil {
				logger.Error("effect_failed", "user_id", e.Effect.UserID, "type", e.Effect.Type, "attempts", e.Attempts, "err", e.Err)
				return
			}
			logger.Debug("effect_done", "user_id", e.Effect.UserID, "type", e.Effect.Type)
		},
	}
}

// Merge combines hook sets; each callback runs in argument order.
func Merge(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var (
		starts   []func(context.Context, *domain.Session)
		advances []func(context.Context, *domain.TransitionEvent)
		rejects  []func(context.Context, *domain.TransitionEvent)
		finishes []func(context.Context, *domain.Session)
		effects  []func(context.Context, *domain.EffectEvent)
	)
	for _, h := range sets {
		if h.OnSessionStart != nil {
			starts = append(starts, h.OnSessionStart)
		}
		if h.OnAdvance != nil {
			advances = append(advances, h.OnAdvance)
		}
		if h.OnReject != nil {
			rejects = append(rejects, h.OnReject)
		}
		if h.OnFinish != nil {
			finishes = append(finishes, h.OnFinish)
		}
		if h.OnEffect != nil {
			effects = append(effects, h.OnEffect)
		}
	}
	return domain.LifecycleHooks{
		OnSessionStart: fanOut(starts),
		OnAdvance:      fanOut(advances),
		OnReject:       fanOut(rejects),
		OnFinish:       fanOut(finishes),
		OnEffect:       fanOut(effects),
	}
}

func fanOut[T any](fns []func(context.Context, T)) func(context.Context, T) {
	if len(fns) == 0 {
		return nil
	}
	return func(ctx context.Context, v T) {
		for _, fn := range fns {
			fn(ctx, v)
		}
	}
}
