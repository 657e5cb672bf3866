package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aretw0/pollster/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestions_CatalogOrderMatchesStages(t *testing.T) {
	qs := domain.Questions()
	require.Len(t, qs, 5)

	stage := domain.StageAwaitingAge
	for _, q := range qs {
		want, ok := stage.Question()
		require.True(t, ok)
		assert.Equal(t, want, q.ID)
		stage = stage.Next()
	}
	assert.Equal(t, domain.StageComplete, stage)
}

func TestQuestions_Labels(t *testing.T) {
	age, ok := domain.LookupQuestion(domain.QuestionAge)
	require.True(t, ok)
	assert.Equal(t, []string{"18-25", "25-40", "40-50", "50+"}, age.Labels())

	instrument, _ := domain.LookupQuestion(domain.QuestionInstrument)
	assert.NotContains(t, instrument.Labels(), domain.InstrumentNone.String())

	contact, _ := domain.LookupQuestion(domain.QuestionContact)
	assert.True(t, contact.RequestsContact())
	assert.Empty(t, contact.Labels())

	_, ok = domain.LookupQuestion("unknown")
	assert.False(t, ok)
}

func TestQuestions_ReturnsCopy(t *testing.T) {
	qs := domain.Questions()
	qs[0].Prompt = "mutated"

	age, _ := domain.LookupQuestion(domain.QuestionAge)
	assert.NotEqual(t, "mutated", age.Prompt)
}

func TestStage_Next(t *testing.T) {
	assert.Equal(t, domain.StageAwaitingInvestmentStatus, domain.StageAwaitingAge.Next())
	assert.Equal(t, domain.StageComplete, domain.StageAwaitingContact.Next())
	assert.Equal(t, domain.StageComplete, domain.StageComplete.Next())

	_, ok := domain.StageComplete.Question()
	assert.False(t, ok)
	assert.True(t, domain.StageComplete.Terminal())
}

func TestStage_TextRoundTrip(t *testing.T) {
	data, err := json.Marshal(domain.StageAwaitingInstrument)
	require.NoError(t, err)
	assert.Equal(t, `"awaiting_instrument"`, string(data))

	var s domain.Stage
	require.NoError(t, json.Unmarshal(data, &s))
	assert.Equal(t, domain.StageAwaitingInstrument, s)

	err = json.Unmarshal([]byte(`"nowhere"`), &s)
	assert.ErrorIs(t, err, domain.ErrInvalidStage)
}

func TestRecord_SetOnce(t *testing.T) {
	var r domain.Record
	require.NoError(t, r.Set(domain.AgeFiftyPlus))
	assert.True(t, r.IsSet(domain.QuestionAge))

	err := r.Set(domain.AgeEighteenToTwentyFive)
	assert.ErrorIs(t, err, domain.ErrFieldAlreadySet)
	assert.Equal(t, domain.AgeFiftyPlus, r.Age)
	assert.False(t, r.Complete())
}

func TestRecord_Format(t *testing.T) {
	r := domain.Record{
		Age:        domain.AgeEighteenToTwentyFive,
		Status:     domain.StatusNoExperience,
		Instrument: domain.InstrumentStocks,
		Funding:    domain.FundingOver10M,
		Contact:    "+1234567890",
	}
	require.True(t, r.Complete())

	want := "Возраст:18-25\n" +
		"Статус:Не было опыта\n" +
		"Инструмент:Акции\n" +
		"Бюджет:Более 10 миллионов\n" +
		"Контакт:+1234567890\n"
	assert.Equal(t, want, r.Format())
}

func TestSession_Validate(t *testing.T) {
	s := domain.NewSession("u1")
	assert.NoError(t, s.Validate())

	s.Record.Age = domain.AgeFortyToFifty
	assert.ErrorIs(t, s.Validate(), domain.ErrInconsistentSession, "field set ahead of the marker")

	s.Stage = domain.StageAwaitingInvestmentStatus
	assert.NoError(t, s.Validate())

	s.Stage = domain.StageAwaitingInstrument
	assert.ErrorIs(t, s.Validate(), domain.ErrInconsistentSession, "marker ahead of the fields")

	s.Stage = domain.Stage(42)
	assert.ErrorIs(t, s.Validate(), domain.ErrInvalidStage)

	assert.Error(t, (&domain.Session{}).Validate())
}

func TestRejectionErrors_WrapRoot(t *testing.T) {
	for _, err := range []error{
		domain.ErrMissingText,
		domain.ErrUnknownChoice,
		domain.ErrMissingContact,
		domain.ErrEmptyPhone,
		domain.ErrSurveyComplete,
	} {
		assert.ErrorIs(t, err, domain.ErrRejected)
	}
	assert.NotErrorIs(t, domain.ErrSinkWrite, domain.ErrRejected)
}
