package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/pollster/internal/logging"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/ports"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"
)

// Handler turns one inbound message into effects. *survey.Controller satisfies it.
type Handler interface {
	HandleInbound(ctx context.Context, msg domain.Inbound) ([]domain.Effect, error)
}

// Runner is the dispatch loop between a transport and the survey controller.
type Runner struct {
	handler   Handler
	messenger ports.Messenger
	sink      ports.RecordSink
	hooks     domain.LifecycleHooks
	logger    *slog.Logger

	workers        int
	queueSize      int
	sinkRetries    int
	sinkRetryDelay time.Duration
	maxInputSize   int
}

// NewRunner creates a Runner that feeds handler and performs effects with messenger and sink.
func NewRunner(handler Handler, messenger ports.Messenger, sink ports.RecordSink, opts ...Option) *Runner {
	r := &Runner{
		handler:   handler,
		messenger: messenger,
		sink:      sink,
		logger:    logging.NewNop(),
		workers:      DefaultWorkers,
		queueSize:    DefaultQueueSize,
		maxInputSize: DefaultMaxInputSize,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run consumes events until the channel is closed or ctx is cancelled.
// Events of one user are processed sequentially in arrival order.
// Per-event failures are logged; Run itself returns nil on a clean stop.
func (r *Runner) Run(ctx context.Context, events <-chan domain.Inbound) error {
	queues := make([]chan domain.Inbound, r.workers)
	g, gctx := errgroup.WithContext(ctx)
	for i := range queues {
		q := make(chan domain.Inbound, r.queueSize)
		queues[i] = q
		g.Go(func() error {
			for msg := range q {
				if gctx.Err() != nil {
					r.logger.Debug("Dropping event after shutdown", "user_id", msg.UserID)
					continue
				}
				if err := r.Dispatch(gctx, msg); err != nil {
					r.logger.Error("Failed to dispatch event", "user_id", msg.UserID, "err", err)
				}
			}
			return nil
		})
	}

	r.logger.Info("Runner started", "workers", r.workers)
	defer r.logger.Info("Runner stopped")

	stopErr := r.distribute(ctx, events, queues)
	for _, q := range queues {
		close(q)
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if errors.Is(stopErr, context.Canceled) {
		return nil
	}
	return stopErr
}

func (r *Runner) distribute(ctx context.Context, events <-chan domain.Inbound, queues []chan domain.Inbound) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-events:
			if !ok {
				return nil
			}
			q := queues[shard(msg.UserID, len(queues))]
			select {
			case q <- msg:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func shard(userID string, n int) int {
	return int(xxhash.Sum64String(userID) % uint64(n))
}

// Dispatch handles a single event synchronously and performs its effects in order.
func (r *Runner) Dispatch(ctx context.Context, msg domain.Inbound) error {
	msg = r.Sanitize(msg)

	effects, err := r.handler.HandleInbound(ctx, msg)
	if err != nil {
		return fmt.Errorf("handle inbound for user %q: %w", msg.UserID, err)
	}
	return r.Apply(ctx, effects)
}

// Apply performs effects in order. A failed effect does not prevent the following ones;
// all failures are joined into the returned error.
func (r *Runner) Apply(ctx context.Context, effects []domain.Effect) error {
	var errs []error
	for _, e := range effects {
		attempts, err := r.perform(ctx, e)
		if r.hooks.OnEffect != nil {
			r.hooks.OnEffect(ctx, &domain.EffectEvent{Effect: e, Attempts: attempts, Err: err})
		}
		if err != nil {
			r.logger.Error("Effect failed", "type", e.Type, "user_id", e.UserID, "attempts", attempts, "err", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (r *Runner) perform(ctx context.Context, e domain.Effect) (int, error) {
	switch e.Type {
	case domain.EffectChoicePrompt:
		return 1, r.messenger.SendChoicePrompt(ctx, e.UserID, e.Text, e.Choices)
	case domain.EffectContactRequest:
		return 1, r.messenger.SendContactRequest(ctx, e.UserID, e.Text)
	case domain.EffectText:
		return 1, r.messenger.SendText(ctx, e.UserID, e.Text)
	case domain.EffectAppendRecord:
		if e.Record == nil {
			return 0, fmt.Errorf("%w: effect carries no record", domain.ErrIncompleteRecord)
		}
		return r.appendRecord(ctx, *e.Record)
	default:
		return 0, fmt.Errorf("unknown effect type %q", e.Type)
	}
}

func (r *Runner) appendRecord(ctx context.Context, record domain.Record) (int, error) {
	var err error
	attempt := 0
	for attempt <= r.sinkRetries {
		attempt++
		if err = r.sink.Append(ctx, record); err == nil {
			return attempt, nil
		}
		if errors.Is(err, domain.ErrIncompleteRecord) || attempt > r.sinkRetries {
			break
		}
		r.logger.Warn("Record append failed, retrying", "attempt", attempt, "err", err)
		select {
		case <-ctx.Done():
			return attempt, fmt.Errorf("%w: %w", err, ctx.Err())
		case <-time.After(r.sinkRetryDelay):
		}
	}
	if !errors.Is(err, domain.ErrSinkWrite) && !errors.Is(err, domain.ErrIncompleteRecord) {
		err = fmt.Errorf("%w: %w", domain.ErrSinkWrite, err)
	}
	return attempt, err
}
