package board

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/outframe/tripboard/pkg/types"
)

// Catalog resolves read-only picker references. Entries are templates, not
// board-owned cards: placing one on the board copies it into a new card
// with a fresh id (materialize-then-place).
type Catalog interface {
	// Entry returns the catalog entry for ref (the id without the
	// catalog/ prefix). Returns types.ErrUnknownCatalog for unknown refs.
	Entry(ref string) (*types.Card, error)
}

// StaticCatalog is a Catalog backed by a fixed ref -> entry table.
type StaticCatalog struct {
	entries map[string]*types.Card
}

// NewStaticCatalog creates a StaticCatalog from the given entries.
func NewStaticCatalog(entries map[string]*types.Card) *StaticCatalog {
	return &StaticCatalog{entries: entries}
}

// Entry returns the catalog entry for ref.
func (c *StaticCatalog) Entry(ref string) (*types.Card, error) {
	entry, ok := c.entries[ref]
	if !ok {
		return nil, types.ErrUnknownCatalog
	}
	return entry, nil
}

// materialize copies a catalog entry into a new board-owned card with a
// fresh UUID v7 id.
func materialize(entry *types.Card) *types.Card {
	now := time.Now().UTC()
	card := *entry
	card.CardID = newCardID()
	card.IsUserCreated = true
	card.CreatedAt = now
	card.UpdatedAt = now
	if entry.Schedule != nil {
		sched := *entry.Schedule
		card.Schedule = &sched
	}
	card.Votes = nil
	return &card
}

// newCardID generates a UUID v7 card id, falling back to v4 if the
// monotonic source fails.
func newCardID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New().String()
	}
	return id.String()
}

// catalogRef splits a proposal card id into its catalog reference, if any.
func catalogRef(cardID string) (string, bool) {
	return strings.CutPrefix(cardID, types.CatalogPrefix)
}
