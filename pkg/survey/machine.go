package survey

import (
	"time"

	"github.com/aretw0/pollster/pkg/domain"
)

// OutcomeKind classifies the result of Advance.
type OutcomeKind int

const (
	// OutcomeRejected: input failed validation; session unchanged.
	OutcomeRejected OutcomeKind = iota
	// OutcomeAdvanced: one field was set and the stage moved one step.
	OutcomeAdvanced
	// OutcomeFinished: the contact was set and the record is complete.
	OutcomeFinished
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeRejected:
		return "rejected"
	case OutcomeAdvanced:
		return "advanced"
	case OutcomeFinished:
		return "finished"
	}
	return "unknown"
}

// Prompt is the question the user should be shown.
type Prompt struct {
	Question domain.Question
	Text     string
	Choices  []string // Empty for the contact question.
	Contact  bool     // True when a share-contact button is requested instead of choices.
}

// Outcome is the result of feeding one inbound message to a session.
type Outcome struct {
	Kind  OutcomeKind
	Stage domain.Stage // Stage after the transition.

	// Prompt is the question to (re-)send. It is nil for OutcomeFinished and
	// for rejections of a completed session, which must stay silent.
	Prompt *Prompt

	// Record is the completed record, set only for OutcomeFinished.
	Record *domain.Record

	// Err is the rejection reason, set only for OutcomeRejected.
	Err error
}

// PromptFor returns the prompt of the question pending in stage s.
// The second value is false for the terminal stage.
func PromptFor(s domain.Stage) (Prompt, bool) {
	q, ok := s.Question()
	if !ok {
		return Prompt{}, false
	}
	def, ok := domain.LookupQuestion(q)
	if !ok {
		return Prompt{}, false
	}
	return Prompt{
		Question: q,
		Text:     def.Prompt,
		Choices:  def.Labels(),
		Contact:  def.RequestsContact(),
	}, true
}

// Advance applies one inbound message to the session.
// On success exactly one record field is set and the stage moves exactly one step forward.
// On rejection neither the stage nor the record change.
func Advance(s *domain.Session, msg domain.Inbound) Outcome {
	q, ok := s.Stage.Question()
	if !ok {
		return Outcome{Kind: OutcomeRejected, Stage: s.Stage, Err: domain.ErrSurveyComplete}
	}

	answer, err := Validate(q, msg)
	if err == nil {
		err = s.Record.Set(answer)
	}
	if err != nil {
		return reject(s.Stage, err)
	}

	s.Stage = s.Stage.Next()
	s.UpdatedAt = time.Now().UTC()

	if s.Stage.Terminal() {
		record := s.Record
		return Outcome{Kind: OutcomeFinished, Stage: s.Stage, Record: &record}
	}

	next, _ := PromptFor(s.Stage)
	return Outcome{Kind: OutcomeAdvanced, Stage: s.Stage, Prompt: &next}
}

func reject(stage domain.Stage, err error) Outcome {
	p, _ := PromptFor(stage)
	return Outcome{Kind: OutcomeRejected, Stage: stage, Prompt: &p, Err: err}
}
