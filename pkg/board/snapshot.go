package board

import "github.com/outframe/tripboard/pkg/types"

// ColumnView is one column with its cards resolved, in sequence order.
type ColumnView struct {
	Column *types.Column `json:"column"`
	Cards  []*types.Card `json:"cards"`
}

// Snapshot is a read-only view of the whole board for rendering.
type Snapshot struct {
	Columns []ColumnView      `json:"columns"`
	Flights *types.FlightInfo `json:"flights,omitempty"`
}

// Snapshot assembles the board view from the store's current state:
// columns in display order, each with its cards resolved. A card id whose
// record a concurrent delete has already removed is skipped rather than
// treated as fatal; the presentation layer re-renders on convergence.
func (e *Engine) Snapshot() (*Snapshot, error) {
	order, err := e.store.ColumnOrder()
	if err != nil {
		return nil, err
	}

	snap := &Snapshot{}
	for _, colID := range order {
		col, err := e.store.Column(colID)
		if err != nil {
			if err == types.ErrNotFound {
				continue
			}
			return nil, err
		}
		items, err := e.store.ColumnItems(colID)
		if err != nil {
			if err == types.ErrNotFound {
				continue
			}
			return nil, err
		}
		view := ColumnView{Column: col, Cards: make([]*types.Card, 0, len(items))}
		for _, cardID := range items {
			card, err := e.store.Card(cardID)
			if err != nil {
				if err == types.ErrNotFound {
					continue
				}
				return nil, err
			}
			view.Cards = append(view.Cards, card)
		}
		snap.Columns = append(snap.Columns, view)
	}

	if info, err := e.store.FlightInfo(); err == nil {
		snap.Flights = info
	} else if err != types.ErrNotFound {
		return nil, err
	}

	return snap, nil
}
