// Package sqlite implements a SQLite-backed DocumentStore for durable
// single-replica boards. The schema keeps each board structure in its own
// table, so every DocumentStore operation stays an independent write,
// matching the no-cross-structure-transaction contract the reconciliation
// engine is built against.
package sqlite

import (
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/outframe/tripboard/pkg/types"
)

//go:embed schema.sql
var schemaSQL string

// boardFileName is the database file created inside the data directory.
const boardFileName = "board.db"

// Position keys in membership and order tables are spaced by posGap so
// inserts between neighbors can usually pick a midpoint without renumbering.
const posGap = 1024

// Compile-time interface check: Store must implement DocumentStore.
var _ types.DocumentStore = (*Store)(nil)

// Store is a SQLite-backed DocumentStore.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open creates or opens the board database inside dataDir, creating the
// directory and schema as needed.
func Open(dataDir string) (*Store, error) {
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	db, err := sql.Open("sqlite", filepath.Join(dataDir, boardFileName))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle. Idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
