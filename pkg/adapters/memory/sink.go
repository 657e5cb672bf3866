package memory

import (
	"context"
	"sync"

	"github.com/aretw0/pollster/pkg/domain"
)

// Sink implements ports.RecordSink by keeping records in memory.
// Useful for dry runs and tests.
type Sink struct {
	mu      sync.Mutex
	records []domain.Record
}

// NewSink creates an empty in-memory sink.
func NewSink() *Sink {
	return &Sink{}
}

// Append stores a complete record.
func (s *Sink) Append(ctx context.Context, record domain.Record) error {
	if !record.Complete() {
		return domain.ErrIncompleteRecord
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
	return nil
}

// Records returns the appended records in completion order.
func (s *Sink) Records() []domain.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Record, len(s.records))
	copy(out, s.records)
	return out
}
