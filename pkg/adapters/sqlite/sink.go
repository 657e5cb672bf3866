package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/pollster/pkg/domain"
	_ "modernc.org/sqlite"
)

// Sink implements ports.RecordSink with an append-only SQLite table.
type Sink struct {
	db *sql.DB
}

// Open creates (or opens) the database at path and ensures the schema.
func Open(path string) (*Sink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1) // Serialize writers; appends are tiny.

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Sink{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *Sink) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS survey_records (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		age TEXT NOT NULL,
		status TEXT NOT NULL,
		instrument TEXT NOT NULL,
		budget TEXT NOT NULL,
		contact TEXT NOT NULL,
		rendered TEXT NOT NULL,
		created_at INTEGER NOT NULL
	);
	`
	_, err := s.db.Exec(query)
	return err
}

// Append inserts one row per completed record; ids follow completion order.
func (s *Sink) Append(ctx context.Context, record domain.Record) error {
	if !record.Complete() {
		return domain.ErrIncompleteRecord
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO survey_records (age, status, instrument, budget, contact, rendered, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.Age.String(),
		record.Status.String(),
		record.Instrument.String(),
		record.Funding.String(),
		record.Contact.String(),
		record.Format(),
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("%w: insert: %w", domain.ErrSinkWrite, err)
	}
	return nil
}

// Close closes the database.
func (s *Sink) Close() error {
	return s.db.Close()
}
