package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/aretw0/pollster/internal/logging"
	"github.com/aretw0/pollster/internal/testutils"
	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/observability"
	"github.com/aretw0/pollster/pkg/survey"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountSurveyLifecycle(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	c := testutils.NewController(t, survey.WithLifecycleHooks(m.Hooks()))
	ctx := context.Background()

	_, err := c.HandleInbound(ctx, domain.NewTextMessage("u", "/start"))
	require.NoError(t, err)
	for _, msg := range testutils.CompleteRun("u") {
		_, err := c.HandleInbound(ctx, msg)
		require.NoError(t, err)
	}
	_, err = c.HandleInbound(ctx, domain.NewTextMessage("u", "again"))
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Completed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues("awaiting_age", "rejected")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues("awaiting_age", "accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Answers.WithLabelValues("complete", "ignored")))

	count, err := testutil.GatherAndCount(reg, "pollster_answers_total")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestMetrics_Effects(t *testing.T) {
	m := observability.NewMetrics(nil)
	hooks := m.Hooks()

	hooks.OnEffect(context.Background(), &domain.EffectEvent{Effect: domain.Effect{Type: domain.EffectAppendRecord}, Attempts: 2})
	hooks.OnEffect(context.Background(), &domain.EffectEvent{Effect: domain.Effect{Type: domain.EffectText}, Attempts: 1, Err: assert.AnError})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Effects.WithLabelValues("append_record", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Effects.WithLabelValues("text", "error")))
}

func TestMerge_RunsAllInOrder(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnFinish: func(context.Context, *domain.Session) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{OnFinish: func(context.Context, *domain.Session) { calls = append(calls, "b") }}

	merged := observability.Merge(a, domain.LifecycleHooks{}, b)
	merged.OnFinish(context.Background(), domain.NewSession("u"))

	assert.Equal(t, []string{"a", "b"}, calls)
	assert.Nil(t, merged.OnAdvance)
}

func TestAuditHooks_Logs(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithFormat(&buf, slog.LevelDebug, "json")
	c := testutils.NewController(t, survey.WithLifecycleHooks(observability.AuditHooks(logger)))

	_, err := c.HandleInbound(context.Background(), domain.NewTextMessage("7", "18-25"))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"msg":"session_start"`)
	assert.Contains(t, out, `"msg":"answer_accepted"`)
	assert.Contains(t, out, `"user_id":"7"`)
}

func TestNewMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := observability.NewMetrics(reg)
	second := observability.NewMetrics(reg)

	first.Completed.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(second.Completed))
}
