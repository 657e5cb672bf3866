package ports

import (
	"context"

	"github.com/aretw0/pollster/pkg/domain"
)

// RecordSink durably appends completed survey records. It has no read side.
type RecordSink interface {
	// Append stores a human-readable rendering of a complete record.
	// Implementations return domain.ErrIncompleteRecord for records with unset fields.
	Append(ctx context.Context, record domain.Record) error
}
