package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/aretw0/pollster/pkg/domain"
)

// Sink implements ports.RecordSink by appending rendered records to a text file.
// Each record is a block of five "Label:value" lines; blocks follow each other directly.
type Sink struct {
	Path string
	mu   sync.Mutex
}

// NewSink creates a sink appending to path.
// If path is empty, it defaults to "data.txt".
func NewSink(path string) *Sink {
	if path == "" {
		path = "data.txt"
	}
	return &Sink{Path: path}
}

// Append writes the record block with a single write and fsyncs it.
func (s *Sink) Append(ctx context.Context, record domain.Record) error {
	if !record.Complete() {
		return domain.ErrIncompleteRecord
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: ensure directory: %w", domain.ErrSinkWrite, err)
		}
	}

	f, err := openFile(s.Path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("%w: open: %w", domain.ErrSinkWrite, err)
	}

	if _, err := f.WriteString(record.Format()); err != nil {
		return errors.Join(fmt.Errorf("%w: write: %w", domain.ErrSinkWrite, err), f.Close())
	}
	if err := f.Sync(); err != nil {
		return errors.Join(fmt.Errorf("%w: fsync: %w", domain.ErrSinkWrite, err), f.Close())
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: close: %w", domain.ErrSinkWrite, err)
	}
	return nil
}

// file is the subset of *os.File the sink writes through.
type file interface {
	WriteString(s string) (int, error)
	Sync() error
	Close() error
}

var openFile = func(name string, flag int, perm os.FileMode) (file, error) {
	return os.OpenFile(name, flag, perm)
}
