/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package sqlite provides a SQLite-backed record store.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/go-openapi/strfmt"
	_ "github.com/mattn/go-sqlite3"

	"github.com/suparena/indexstore/errors"
	"github.com/suparena/indexstore/indexstruct"
	"github.com/suparena/indexstore/recordstore"
)

//go:embed schema.sql
var schemaSQL string

// Store persists records in a single SQLite table.
// All returns records in insertion order; replacing a record keeps its position.
type Store struct {
	db *sql.DB
}

var _ recordstore.Store = (*Store)(nil)

// Open creates or opens a SQLite database at the given path and applies the schema.
//
// The database is configured with:
//   - WAL mode for concurrent reads during writes
//   - 5-second busy timeout for lock contention
//
// This function is idempotent - safe to call multiple times.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", pragma, err)
		}
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Get retrieves a record by index id.
func (s *Store) Get(ctx context.Context, indexID string) (*indexstruct.Record, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT index_id, type, summary, created_at, data FROM index_structs WHERE index_id = ?`,
		indexID,
	)
	rec, err := scanRecord(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundError(recordstore.RecordType, indexID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get record %q: %w", indexID, err)
	}
	return rec, nil
}

// All returns every record in insertion order.
func (s *Store) All(ctx context.Context) ([]*indexstruct.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT index_id, type, summary, created_at, data FROM index_structs ORDER BY seq`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	defer rows.Close()

	var records []*indexstruct.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	return records, nil
}

// Put inserts or replaces a record.
func (s *Store) Put(ctx context.Context, record *indexstruct.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	var createdAt string
	if !time.Time(record.CreatedAt).IsZero() {
		createdAt = record.CreatedAt.String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO index_structs (index_id, type, summary, created_at, data)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(index_id) DO UPDATE SET
			type = excluded.type,
			summary = excluded.summary,
			created_at = excluded.created_at,
			data = excluded.data
	`, record.IndexID, string(record.Type), record.Summary, createdAt, []byte(record.Data))
	if err != nil {
		return fmt.Errorf("failed to put record %q: %w", record.IndexID, err)
	}
	return nil
}

// Delete removes a record by index id.
func (s *Store) Delete(ctx context.Context, indexID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM index_structs WHERE index_id = ?`, indexID)
	if err != nil {
		return fmt.Errorf("failed to delete record %q: %w", indexID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete record %q: %w", indexID, err)
	}
	if n == 0 {
		return errors.NewNotFoundError(recordstore.RecordType, indexID)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*indexstruct.Record, error) {
	var (
		rec       indexstruct.Record
		typ       string
		createdAt string
		data      []byte
	)
	if err := row.Scan(&rec.IndexID, &typ, &rec.Summary, &createdAt, &data); err != nil {
		return nil, fmt.Errorf("failed to scan record: %w", err)
	}
	rec.Type = indexstruct.Type(typ)
	if len(data) > 0 {
		rec.Data = data
	}
	if createdAt != "" {
		dt, err := strfmt.ParseDateTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
		}
		rec.CreatedAt = dt
	}
	return &rec, nil
}
