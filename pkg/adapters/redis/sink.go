package redis

import (
	"context"
	"fmt"

	"github.com/aretw0/pollster/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

// Sink implements ports.RecordSink by pushing rendered records onto a Redis list.
type Sink struct {
	client *backend.Client
	key    string
}

// NewSink creates a sink appending to the list at key.
func NewSink(client *backend.Client, key string) *Sink {
	return &Sink{client: client, key: key}
}

// Append pushes the record block to the tail of the list, preserving completion order.
func (s *Sink) Append(ctx context.Context, record domain.Record) error {
	if !record.Complete() {
		return domain.ErrIncompleteRecord
	}
	if err := s.client.RPush(ctx, s.key, record.Format()).Err(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrSinkWrite, err)
	}
	return nil
}
