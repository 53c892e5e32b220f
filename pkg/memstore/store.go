// Package memstore provides the public factory for the in-memory
// DocumentStore. Besides serving as a lightweight board backend, it is the
// store the engine's own tests run against, and its Merge models how two
// replica snapshots converge.
package memstore

import (
	"github.com/outframe/tripboard/internal/memstore"
	"github.com/outframe/tripboard/pkg/types"
)

// Store is the in-memory convergent DocumentStore.
type Store = memstore.Store

// New creates an empty in-memory store. The actor id seeds
// last-writer-wins tiebreaks; pass "" to generate one.
func New(actor string) *Store {
	return memstore.New(actor)
}

// Compile-time interface check.
var _ types.DocumentStore = (*Store)(nil)
