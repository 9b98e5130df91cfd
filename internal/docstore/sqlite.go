// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLite implements Store on a local SQLite file. Documents are kept as JSON
// text keyed by (collection, id).
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path and its schema.
func OpenSQLite(path string) (*SQLite, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000&_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) createSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS documents (
		collection TEXT NOT NULL,
		id TEXT NOT NULL,
		data TEXT NOT NULL,
		PRIMARY KEY (collection, id)
	)`)
	return err
}

// ListDocuments implements Store.
func (s *SQLite) ListDocuments(ctx context.Context, collection string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM documents WHERE collection = ? ORDER BY id`, collection)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", collection, err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Commit implements Store. All writes share one transaction.
func (s *SQLite) Commit(ctx context.Context, writes []Write) error {
	if len(writes) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, w := range writes {
		switch w.Op {
		case OpSet:
			if err := upsert(ctx, tx, w.Collection, w.ID, w.Data); err != nil {
				return err
			}
		case OpDelete:
			if _, err := tx.ExecContext(ctx,
				`DELETE FROM documents WHERE collection = ? AND id = ?`, w.Collection, w.ID); err != nil {
				return fmt.Errorf("deleting %s/%s: %w", w.Collection, w.ID, err)
			}
		default:
			return fmt.Errorf("unknown write op %v", w.Op)
		}
	}

	return tx.Commit()
}

// NewID implements Store.
func (s *SQLite) NewID(string) string {
	return uuid.NewString()
}

// Set implements Store.
func (s *SQLite) Set(ctx context.Context, collection, id string, data any) error {
	return s.Commit(ctx, []Write{{Op: OpSet, Collection: collection, ID: id, Data: data}})
}

// Get decodes the document collection/id into dst. It returns sql.ErrNoRows
// when the document does not exist.
func (s *SQLite) Get(ctx context.Context, collection, id string, dst any) error {
	var data string
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM documents WHERE collection = ? AND id = ?`, collection, id,
	).Scan(&data)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(data), dst)
}

// Close releases the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func upsert(ctx context.Context, db execer, collection, id string, data any) error {
	body, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encoding %s/%s: %w", collection, id, err)
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
		 ON CONFLICT(collection, id) DO UPDATE SET data=excluded.data`,
		collection, id, string(body),
	)
	if err != nil {
		return fmt.Errorf("writing %s/%s: %w", collection, id, err)
	}
	return nil
}
