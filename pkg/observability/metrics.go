package observability

import (
	"context"
	"errors"

	"github.com/aretw0/pollster/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pollster"

// Metrics holds the survey collectors.
type Metrics struct {
	SessionsStarted prometheus.Counter
	Answers         *prometheus.CounterVec
	Completed       prometheus.Counter
	Effects         *prometheus.CounterVec
	SinkAttempts    prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg skips registration.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Number of survey sessions created.",
		}),
		Answers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Inbound answers by stage and result.",
		}, []string{"stage", "result"}),
		Completed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "surveys_completed_total",
			Help:      "Number of surveys that reached completion.",
		}),
		Effects: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effects_total",
			Help:      "Performed effects by type and result.",
		}, []string{"type", "result"}),
		SinkAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sink_append_attempts",
			Help:      "Attempts needed per record append.",
			Buckets:   []float64{1, 2, 3, 5, 8},
		}),
	}
	if reg != nil {
		m.SessionsStarted = register(reg, m.SessionsStarted)
		m.Answers = register(reg, m.Answers)
		m.Completed = register(reg, m.Completed)
		m.Effects = register(reg, m.Effects)
		m.SinkAttempts = register(reg, m.SinkAttempts)
	}
	return m
}

// register adds c to reg, returning the already registered collector when an
// identical one exists. Any other registration error panics like MustRegister.
func register[T prometheus.Collector](reg prometheus.Registerer, c T) T {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing
			}
		}
		panic(err)
	}
	return c
}

// Hooks returns lifecycle hooks that update m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnSessionStart: func(context.Context, *domain.Session) {
			m.SessionsStarted.Inc()
		},
		OnAdvance: func(_ context.Context, e *domain.TransitionEvent) {
			m.Answers.WithLabelValues(e.From.String(), "accepted").Inc()
		},
		OnReject: func(_ context.Context, e *domain.TransitionEvent) {
			m.Answers.WithLabelValues(e.From.String(), rejectReason(e.Err)).Inc()
		},
		OnFinish: func(context.Context, *domain.Session) {
			m.Completed.Inc()
		},
		OnEffect: func(_ context.Context, e *domain.EffectEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.Effects.WithLabelValues(string(e.Effect.Type), result).Inc()
			if e.Effect.Type == domain.EffectAppendRecord {
				m.SinkAttempts.Observe(float64(e.Attempts))
			}
		},
	}
}

func rejectReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrSurveyComplete):
		return "ignored"
	case errors.Is(err, domain.ErrMissingText), errors.Is(err, domain.ErrMissingContact):
		return "wrong_kind"
	case errors.Is(err, domain.ErrEmptyPhone):
		return "empty_phone"
	default:
		return "rejected"
	}
}
