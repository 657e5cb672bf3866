package domain

import (
	"errors"
	"fmt"
)

// ErrRejected is the root of every validation rejection. It is recovered by re-prompting.
var ErrRejected = errors.New("answer rejected")

var (
	// ErrMissingText is returned when a choice question receives a non-text message.
	ErrMissingText = fmt.Errorf("%w: message has no text", ErrRejected)

	// ErrUnknownChoice is returned when the text matches no label of the pending question.
	ErrUnknownChoice = fmt.Errorf("%w: not one of the offered choices", ErrRejected)

	// ErrMissingContact is returned when the contact question receives no contact payload.
	ErrMissingContact = fmt.Errorf("%w: no contact attached", ErrRejected)

	// ErrEmptyPhone is returned when the shared contact has no phone number.
	ErrEmptyPhone = fmt.Errorf("%w: contact has no phone number", ErrRejected)

	// ErrSurveyComplete is returned for any input after the survey is finished.
	ErrSurveyComplete = fmt.Errorf("%w: survey already complete", ErrRejected)
)

// ErrSessionNotFound is returned when a user ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")

// ErrInconsistentSession is returned when a session's stage disagrees with its record.
var ErrInconsistentSession = errors.New("inconsistent session")

// ErrInvalidStage is returned for an unknown stage value or name.
var ErrInvalidStage = errors.New("invalid stage")

// ErrFieldAlreadySet is returned when a record field would be overwritten.
var ErrFieldAlreadySet = errors.New("record field already set")

// ErrIncompleteRecord is returned when a sink is handed a record with unset fields.
var ErrIncompleteRecord = errors.New("record is incomplete")

// ErrSinkWrite wraps failures of the record sink.
var ErrSinkWrite = errors.New("record sink write failed")
