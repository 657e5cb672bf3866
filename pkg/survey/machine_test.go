package survey_test

import (
	"testing"

	"github.com/aretw0/pollster/pkg/domain"
	"github.com/aretw0/pollster/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInputs holds one accepted message per non-terminal stage, in order.
var validInputs = []domain.Inbound{
	domain.NewTextMessage("u", "18-25"),
	domain.NewTextMessage("u", "Не было опыта"),
	domain.NewTextMessage("u", "Акции"),
	domain.NewTextMessage("u", "Более 10 миллионов"),
	domain.NewContactMessage("u", "+1234567890"),
}

// sessionAt drives a fresh session to stage s using validInputs.
func sessionAt(t *testing.T, s domain.Stage) *domain.Session {
	t.Helper()
	sess := domain.NewSession("u")
	for i := 0; i < int(s); i++ {
		out := survey.Advance(sess, validInputs[i])
		require.NotEqual(t, survey.OutcomeRejected, out.Kind)
	}
	require.Equal(t, s, sess.Stage)
	return sess
}

func TestAdvance_RejectLeavesSessionUnchanged(t *testing.T) {
	invalid := []domain.Inbound{
		{UserID: "u"},
		domain.NewTextMessage("u", "30-40"),
		domain.NewTextMessage("u", ""),
		domain.NewContactMessage("u", ""),
	}

	for stage := domain.StageAwaitingAge; stage < domain.StageComplete; stage++ {
		for _, msg := range invalid {
			sess := sessionAt(t, stage)
			before := *sess

			out := survey.Advance(sess, msg)

			assert.Equal(t, survey.OutcomeRejected, out.Kind, "stage %s", stage)
			assert.ErrorIs(t, out.Err, domain.ErrRejected)
			assert.Equal(t, before, *sess, "stage %s must not change on rejection", stage)
			require.NotNil(t, out.Prompt)

			want, _ := survey.PromptFor(stage)
			assert.Equal(t, want, *out.Prompt, "rejection re-sends the same prompt")
		}
	}
}

func TestAdvance_ValidInputMovesExactlyOneStep(t *testing.T) {
	for stage := domain.StageAwaitingAge; stage < domain.StageComplete; stage++ {
		sess := sessionAt(t, stage)
		before := sess.Record

		out := survey.Advance(sess, validInputs[stage])

		assert.Equal(t, stage.Next(), sess.Stage)
		assert.Equal(t, sess.Stage, out.Stage)
		assert.NoError(t, sess.Validate())

		q, _ := stage.Question()
		assert.True(t, sess.Record.IsSet(q))
		for _, other := range domain.Questions() {
			if other.ID != q {
				assert.Equal(t, before.IsSet(other.ID), sess.Record.IsSet(other.ID), "only %s may change", q)
			}
		}

		if stage == domain.StageAwaitingContact {
			assert.Equal(t, survey.OutcomeFinished, out.Kind)
			assert.Nil(t, out.Prompt)
			require.NotNil(t, out.Record)
			assert.True(t, out.Record.Complete())
		} else {
			assert.Equal(t, survey.OutcomeAdvanced, out.Kind)
			require.NotNil(t, out.Prompt)
			want, _ := survey.PromptFor(stage.Next())
			assert.Equal(t, want, *out.Prompt)
		}
	}
}

func TestAdvance_OutOfOrderAnswerIsRejected(t *testing.T) {
	sess := domain.NewSession("u")

	out := survey.Advance(sess, domain.NewTextMessage("u", "Акции"))

	assert.Equal(t, survey.OutcomeRejected, out.Kind)
	assert.Equal(t, domain.StageAwaitingAge, sess.Stage)
	assert.Equal(t, domain.Record{}, sess.Record)
}

func TestAdvance_CompleteIsNoOp(t *testing.T) {
	sess := sessionAt(t, domain.StageComplete)
	before := *sess

	for _, msg := range append(validInputs, domain.NewTextMessage("u", "/start")) {
		out := survey.Advance(sess, msg)
		assert.Equal(t, survey.OutcomeRejected, out.Kind)
		assert.ErrorIs(t, out.Err, domain.ErrSurveyComplete)
		assert.Nil(t, out.Prompt, "completed sessions stay silent")
		assert.Nil(t, out.Record)
	}
	assert.Equal(t, before, *sess)
}

func TestAdvance_FundingRejectRepromptsFunding(t *testing.T) {
	sess := sessionAt(t, domain.StageAwaitingFundingCapacity)

	out := survey.Advance(sess, domain.NewTextMessage("u", "много"))

	require.NotNil(t, out.Prompt)
	assert.Equal(t, domain.QuestionFundingCapacity, out.Prompt.Question)
	assert.Equal(t, []string{"<1 миллиона", "1-5 миллионов", "5-10 миллионов", "Более 10 миллионов"}, out.Prompt.Choices)
}

func TestPromptFor(t *testing.T) {
	p, ok := survey.PromptFor(domain.StageAwaitingContact)
	require.True(t, ok)
	assert.True(t, p.Contact)
	assert.Empty(t, p.Choices)

	_, ok = survey.PromptFor(domain.StageComplete)
	assert.False(t, ok)
}
