// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docstore is the boundary to the document database the lessons are
// published to. Firestore is the production backend; SQLite serves local
// development and tests.
package docstore

import (
	"context"
	"fmt"
	"os"

	"github.com/pdiddy/tpadmin/pkg/types"
)

// WriteOp is the kind of a staged write.
type WriteOp int

const (
	OpSet WriteOp = iota
	OpDelete
)

func (op WriteOp) String() string {
	switch op {
	case OpSet:
		return "set"
	case OpDelete:
		return "delete"
	default:
		return fmt.Sprintf("WriteOp(%d)", int(op))
	}
}

// Write is one operation of a batch.
type Write struct {
	Op         WriteOp
	Collection string
	ID         string
	// Data is the document body for OpSet and ignored for OpDelete.
	Data any
}

// Store is the subset of a document database the tool depends on.
type Store interface {
	// ListDocuments returns the ids of every document in collection.
	ListDocuments(ctx context.Context, collection string) ([]string, error)

	// Commit applies writes as one atomic batch. An empty batch succeeds
	// without contacting the backend.
	Commit(ctx context.Context, writes []Write) error

	// NewID allocates a fresh document id in collection.
	NewID(collection string) string

	// Set replaces the document collection/id with data.
	Set(ctx context.Context, collection, id string, data any) error

	Close() error
}

// DefaultEmulatorHost is where `gcloud emulators firestore start` listens.
const DefaultEmulatorHost = "localhost:8080"

// Open returns the backend selected by cfg.
func Open(ctx context.Context, cfg types.StoreConfig) (Store, error) {
	switch cfg.Backend {
	case types.BackendSQLite:
		path := cfg.SQLitePath
		if path == "" {
			path = "data/tpadmin.db"
		}
		s, err := OpenSQLite(path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case types.BackendFirestore, "":
		if cfg.Emulator {
			host := cfg.EmulatorHost
			if host == "" {
				host = DefaultEmulatorHost
			}
			if err := os.Setenv(EmulatorHostEnv, host); err != nil {
				return nil, fmt.Errorf("setting %s: %w", EmulatorHostEnv, err)
			}
		}
		f, err := OpenFirestore(ctx, cfg.Credentials)
		if err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported backend %q: use firestore or sqlite", cfg.Backend)
	}
}
