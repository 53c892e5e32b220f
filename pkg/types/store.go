package types

import "errors"

// DocumentStore is the contract of the shared replicated document backing a
// board. Implementations provide per-record last-writer-wins semantics and
// per-list convergent ordering, but no cross-structure transaction: every
// method is an independent operation and the reconciliation engine is
// responsible for cross-structure consistency.
type DocumentStore interface {
	// Card returns the card with the given id.
	// Returns ErrNotFound if no such card exists.
	Card(id string) (*Card, error)

	// SetCard creates or overwrites a card record (last writer wins).
	SetCard(card *Card) error

	// DeleteCard removes a card record. Deleting an absent card is a no-op.
	DeleteCard(id string) error

	// Cards returns every card record, in unspecified order.
	Cards() ([]*Card, error)

	// Column returns the column record with the given id.
	// Returns ErrNotFound if no such column exists.
	Column(id string) (*Column, error)

	// PutColumn creates or overwrites a column record and, when new,
	// its empty membership list. It does not touch the column order.
	PutColumn(col *Column) error

	// DeleteColumn removes a column record and its membership list.
	// Deleting an absent column is a no-op.
	DeleteColumn(id string) error

	// Columns returns every column record, in unspecified order.
	Columns() ([]*Column, error)

	// ColumnItems returns the ordered card ids held by a column.
	// Returns ErrNotFound if the column does not exist.
	ColumnItems(columnID string) ([]string, error)

	// InsertItem inserts cardID into the column's sequence at index,
	// clamped to [0, len]. Inserting an id already present in the column
	// returns ErrDuplicateItem.
	InsertItem(columnID, cardID string, index int) error

	// RemoveItem removes cardID from the column's sequence. Removing an
	// absent id is a no-op.
	RemoveItem(columnID, cardID string) error

	// ColumnOrder returns the board's column display order.
	ColumnOrder() ([]string, error)

	// InsertColumnAt inserts columnID into the display order at index,
	// clamped to [0, len]. Inserting an id already in the order is a no-op.
	InsertColumnAt(columnID string, index int) error

	// RemoveColumnFromOrder removes columnID from the display order.
	// Removing an absent id is a no-op.
	RemoveColumnFromOrder(columnID string) error

	// FlightInfo returns the trip flight record.
	// Returns ErrNotFound when no flights are saved.
	FlightInfo() (*FlightInfo, error)

	// SetFlightInfo creates or overwrites the trip flight record.
	SetFlightInfo(info *FlightInfo) error

	// DeleteFlightInfo removes the trip flight record. Idempotent.
	DeleteFlightInfo() error
}

// Store operation errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrInvalidID     = errors.New("invalid id")
	ErrDuplicateItem = errors.New("card already present in column")
)

// Domain validation errors.
var (
	ErrInvalidCategory = errors.New("invalid card category")
	ErrInvalidTitle    = errors.New("title must not be empty")
	ErrBuiltinCard     = errors.New("built-in card cannot be deleted")
	ErrUnknownColumn   = errors.New("unknown column")
	ErrUnknownCatalog  = errors.New("unknown catalog reference")
)
