// Package sqlite provides the public factory for the SQLite-backed
// DocumentStore, keeping implementation details internal.
package sqlite

import (
	"github.com/outframe/tripboard/internal/sqlite"
	"github.com/outframe/tripboard/pkg/types"
)

// Store is the SQLite-backed DocumentStore. It additionally owns a
// database handle that must be closed when the board is done.
type Store interface {
	types.DocumentStore

	// Close releases the database handle. Idempotent.
	Close() error
}

// Open creates or opens the board database inside dataDir.
//
// Example:
//
//	store, err := sqlite.Open(".tripboard-db")
//	if err != nil { ... }
//	defer store.Close()
//	engine := board.New(store, board.Options{})
func Open(dataDir string) (Store, error) {
	return sqlite.Open(dataDir)
}
