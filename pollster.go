package pollster

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	goredis "github.com/redis/go-redis/v9"

	"github.com/aretw0/pollster/internal/config"
	"github.com/aretw0/pollster/internal/logging"
	"github.com/aretw0/pollster/pkg/adapters/file"
	"github.com/aretw0/pollster/pkg/adapters/memory"
	"github.com/aretw0/pollster/pkg/adapters/redis"
	"github.com/aretw0/pollster/pkg/adapters/sqlite"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/observability"
	"github.com/aretw0/pollster/pkg/persistence/middleware"
	"github.com/aretw0/pollster/pkg/ports"
	"github.com/aretw0/pollster/pkg/runner"
	"github.com/aretw0/pollster/pkg/session"
	"github.com/aretw0/pollster/pkg/survey"
)

// ContactDigitsKept is how many trailing phone digits survive sink.mask_contact.
const ContactDigitsKept = 4

// Version is the release version, overridden at build time with -ldflags.
var Version = "dev"

// App bundles the survey controller with the backends selected by configuration.
type App struct {
	Controller *survey.Controller
	Sessions   *session.Manager
	Sink       ports.RecordSink
	Metrics    *observability.Metrics
	Hooks      domain.LifecycleHooks

	cfg        *config.Config
	logger     *slog.Logger
	registerer prometheus.Registerer
	redis      *goredis.Client
	closers    []io.Closer
}

// Option defines a functional option for configuring the App.
type Option func(*App)

// WithLogger configures the logger shared by all components.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithRegisterer registers metrics with reg instead of the default registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(a *App) {
		a.registerer = reg
	}
}

// WithRedisClient reuses client instead of dialing cfg.Redis. The caller keeps ownership.
func WithRedisClient(client *goredis.Client) Option {
	return func(a *App) {
		a.redis = client
	}
}

// New builds an App from cfg.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	a := &App{
		cfg:        cfg,
		logger:     logging.NewNop(),
		registerer: prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(a)
	}

	if cfg.UsesRedis() && a.redis == nil {
		a.redis = redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		a.closers = append(a.closers, a.redis)
	}

	store, err := a.buildStore()
	if err != nil {
		return nil, errors.Join(err, a.Close())
	}
	if store, err = a.secureStore(store); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	a.Sessions = session.NewManager(store, a.sessionOptions()...)

	if a.Sink, err = a.buildSink(); err != nil {
		return nil, errors.Join(err, a.Close())
	}
	if cfg.Sink.MaskContact {
		a.Sink = middleware.NewContactMask(ContactDigitsKept)(a.Sink)
	}

	a.Metrics = observability.NewMetrics(a.registerer)
	a.Hooks = observability.Merge(a.Metrics.Hooks(), observability.AuditHooks(a.logger))
	a.Controller = survey.NewController(a.Sessions,
		survey.WithLogger(a.logger),
		survey.WithLifecycleHooks(a.Hooks),
	)

	a.logger.Debug("App ready", "store", cfg.Store.Backend, "sink", cfg.Sink.Backend, "lock", cfg.Store.Lock)
	return a, nil
}

func (a *App) buildStore() (ports.SessionStore, error) {
	switch a.cfg.Store.Backend {
	case "memory":
		return memory.NewStore(), nil
	case "redis":
		return redis.NewFromClient(a.redis,
			redis.WithPrefix(a.cfg.Redis.Prefix),
			redis.WithTTL(a.cfg.Store.TTL),
		), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", a.cfg.Store.Backend)
	}
}

// secureStore wraps store with contact encryption when a key is configured.
func (a *App) secureStore(store ports.SessionStore) (ports.SessionStore, error) {
	active, fallback, err := a.cfg.Store.Keys()
	if err != nil || active == nil {
		return store, err
	}
	mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: active, FallbackKeys: fallback})
	if err != nil {
		return nil, err
	}
	return mw(store), nil
}

func (a *App) sessionOptions() []session.Option {
	opts := []session.Option{session.WithLogger(a.logger)}
	if a.cfg.Store.Lock {
		opts = append(opts,
			session.WithLocker(redis.NewLocker(a.redis, a.cfg.Redis.Prefix)),
			session.WithLockTTL(a.cfg.Store.LockTTL),
		)
	}
	return opts
}

func (a *App) buildSink() (ports.RecordSink, error) {
	switch a.cfg.Sink.Backend {
	case "file":
		return file.NewSink(a.cfg.Sink.Path), nil
	case "sqlite":
		s, err := sqlite.Open(a.cfg.Sink.Path)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, s)
		return s, nil
	case "redis":
		return redis.NewSink(a.redis, a.cfg.Sink.Key), nil
	case "memory":
		return memory.NewSink(), nil
	default:
		return nil, fmt.Errorf("unknown sink backend %q", a.cfg.Sink.Backend)
	}
}

// RunnerOptions returns the runner settings derived from configuration.
func (a *App) RunnerOptions() []runner.Option {
	return []runner.Option{
		runner.WithLogger(a.logger),
		runner.WithWorkers(a.cfg.Runner.Workers),
		runner.WithSinkRetries(a.cfg.Runner.SinkRetries, a.cfg.Runner.SinkRetryDelay),
		runner.WithMaxInputSize(a.cfg.Runner.MaxInputSize),
		runner.WithLifecycleHooks(a.Hooks),
	}
}

// NewRunner creates a runner delivering effects through messenger.
func (a *App) NewRunner(messenger ports.Messenger) *runner.Runner {
	return runner.NewRunner(a.Controller, messenger, a.Sink, a.RunnerOptions()...)
}

// Close releases connections opened by New, in reverse order.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
