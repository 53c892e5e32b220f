package board

import (
	"time"

	"github.com/outframe/tripboard/pkg/types"
)

// destinationCleared runs the DestinationCleared cascade: the trip flights
// and the itinerary built for the removed destination are dropped, and the
// entry-requirements note is reset so a future destination can repopulate
// it. Idempotent: concurrent replicas may observe the triggering transition
// more than once, and re-firing against a cleared state changes nothing.
func (e *Engine) destinationCleared() ([]types.Change, error) {
	var changes []types.Change

	if _, err := e.store.FlightInfo(); err == nil {
		if err := e.store.DeleteFlightInfo(); err != nil {
			return nil, err
		}
		changes = append(changes, types.Change{Kind: types.ChangeFlightsDeleted})
	} else if err != types.ErrNotFound {
		return nil, err
	}

	cols, err := e.store.Columns()
	if err != nil {
		return nil, err
	}
	for _, col := range cols {
		if col.Role.Kind != types.RoleDayBucket {
			continue
		}
		items, err := e.store.ColumnItems(col.ColumnID)
		if err != nil {
			if err == types.ErrNotFound {
				continue // already gone on this snapshot
			}
			return nil, err
		}
		for _, cardID := range items {
			if err := e.store.RemoveItem(col.ColumnID, cardID); err != nil {
				return nil, err
			}
			if err := e.store.DeleteCard(cardID); err != nil {
				return nil, err
			}
			changes = append(changes, types.Change{Kind: types.ChangeCardDeleted, CardID: cardID, ColumnID: col.ColumnID})
		}
		if err := e.store.RemoveColumnFromOrder(col.ColumnID); err != nil {
			return nil, err
		}
		if err := e.store.DeleteColumn(col.ColumnID); err != nil {
			return nil, err
		}
		changes = append(changes, types.Change{Kind: types.ChangeColumnDeleted, ColumnID: col.ColumnID})
	}

	note, err := e.store.Card(types.EntryRequirementsCardID)
	if err != nil {
		if err == types.ErrNotFound {
			return changes, nil // board was seeded without the note card
		}
		return nil, err
	}
	if note.Note != "" {
		note.Note = ""
		note.UpdatedAt = time.Now().UTC()
		if err := e.store.SetCard(note); err != nil {
			return nil, err
		}
		changes = append(changes, types.Change{Kind: types.ChangeCardUpdated, CardID: note.CardID})
	}

	return changes, nil
}

// destinationSet runs the DestinationSet cascade: populate the
// entry-requirements note with guidance for the new destination. A
// non-empty note is never overwritten, and a guidance lookup failure
// leaves the note empty rather than blocking the transition.
func (e *Engine) destinationSet(destination *types.Card) error {
	if e.guidance == nil {
		return nil
	}
	note, err := e.store.Card(types.EntryRequirementsCardID)
	if err != nil {
		if err == types.ErrNotFound {
			return nil
		}
		return err
	}
	if note.Note != "" {
		return nil
	}
	text, err := e.guidance.LookupEntryRequirements(destination.Title)
	if err != nil || text == "" {
		return nil // external lookup failure is swallowed
	}
	note.Note = text
	note.UpdatedAt = time.Now().UTC()
	return e.store.SetCard(note)
}
