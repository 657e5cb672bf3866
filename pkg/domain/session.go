package domain

import (
	"fmt"
	"time"
)

// Session is the per-user survey state: which question is pending and what was answered so far.
type Session struct {
	UserID string `json:"user_id"`
	Stage  Stage  `json:"stage"`
	Record Record `json:"record"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a fresh session waiting for the first question.
func NewSession(userID string) *Session {
	now := time.Now().UTC()
	return &Session{
		UserID:    userID,
		Stage:     StageAwaitingAge,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Complete reports whether the survey has been finished.
func (s *Session) Complete() bool {
	return s.Stage == StageComplete
}

// Validate checks that the stage marker points at the first unfilled record field.
func (s *Session) Validate() error {
	if s.UserID == "" {
		return fmt.Errorf("%w: empty user id", ErrInconsistentSession)
	}
	if !s.Stage.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidStage, int(s.Stage))
	}
	for i, q := range stageQuestions {
		want := i < int(s.Stage)
		if s.Record.IsSet(q) != want {
			return fmt.Errorf("%w: stage %s with %s set=%t", ErrInconsistentSession, s.Stage, q, !want)
		}
	}
	return nil
}

// Clone returns an independent copy.
func (s *Session) Clone() *Session {
	c := *s
	return &c
}
