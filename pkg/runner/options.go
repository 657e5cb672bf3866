package runner

import (
	"log/slog"
	"time"

	"github.com/aretw0/pollster/pkg/domain"
)

const (
	// DefaultWorkers is the number of shards used when none is configured.
	DefaultWorkers = 4
	// DefaultQueueSize is the per-worker buffer of pending events.
	DefaultQueueSize = 64
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithWorkers sets the number of user shards. Values below 1 are ignored.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.workers = n
		}
	}
}

// WithQueueSize sets how many events each worker buffers.
func WithQueueSize(n int) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.queueSize = n
		}
	}
}

// WithSinkRetries makes a failed record append retry n more times, waiting delay between attempts.
func WithSinkRetries(n int, delay time.Duration) Option {
	return func(r *Runner) {
		if n >= 0 {
			r.sinkRetries = n
		}
		r.sinkRetryDelay = delay
	}
}

// WithMaxInputSize bounds inbound text in bytes. Values below 1 are ignored.
func WithMaxInputSize(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.maxInputSize = n
		}
	}
}

// WithLifecycleHooks registers the effect hook. Other hooks are fired by the controller.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(r *Runner) {
		r.hooks = hooks
	}
}
