package domain

import "fmt"

// Stage is the pending-question marker of a session.
// The zero value is StageAwaitingAge, the stage of a fresh session.
type Stage int

const (
	StageAwaitingAge Stage = iota
	StageAwaitingInvestmentStatus
	StageAwaitingInstrument
	StageAwaitingFundingCapacity
	StageAwaitingContact
	StageComplete // Terminal
)

var stageNames = []string{
	"awaiting_age",
	"awaiting_investment_status",
	"awaiting_instrument",
	"awaiting_funding_capacity",
	"awaiting_contact",
	"complete",
}

// stageQuestions maps every non-terminal stage to the question it waits for.
var stageQuestions = []Question{
	QuestionAge,
	QuestionInvestmentStatus,
	QuestionInstrument,
	QuestionFundingCapacity,
	QuestionContact,
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("stage(%d)", int(s))
	}
	return stageNames[s]
}

// Valid reports whether s is one of the declared stages.
func (s Stage) Valid() bool {
	return s >= StageAwaitingAge && s <= StageComplete
}

// Terminal reports whether no further transitions are accepted.
func (s Stage) Terminal() bool {
	return s == StageComplete
}

// Question returns the question pending in this stage.
// The second value is false for StageComplete.
func (s Stage) Question() (Question, bool) {
	if s < 0 || int(s) >= len(stageQuestions) {
		return "", false
	}
	return stageQuestions[s], true
}

// Next returns the following stage. StageComplete is its own successor.
func (s Stage) Next() Stage {
	if s >= StageComplete {
		return StageComplete
	}
	return s + 1
}

// MarshalText encodes the stage by name so persisted sessions stay readable.
func (s Stage) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidStage, int(s))
	}
	return []byte(stageNames[s]), nil
}

// UnmarshalText decodes a stage name.
func (s *Stage) UnmarshalText(text []byte) error {
	for i, name := range stageNames {
		if name == string(text) {
			*s = Stage(i)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidStage, string(text))
}
