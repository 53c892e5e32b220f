package board

import (
	"fmt"

	"github.com/outframe/tripboard/pkg/types"
)

// Engine validates and applies card placement proposals against a
// DocumentStore. It holds no board state of its own: every decision is made
// against the store snapshot visible at call time, and every accepted
// mutation is submitted as independent store operations.
type Engine struct {
	store    types.DocumentStore
	guidance GuidanceLookup
	catalog  Catalog
}

// Options carries the engine's optional external collaborators.
type Options struct {
	// Guidance populates the entry-requirements note when a destination
	// is set. Nil disables the DestinationSet cascade's lookup.
	Guidance GuidanceLookup

	// Catalog resolves catalog/ card references for
	// materialize-then-place. Nil rejects catalog references.
	Catalog Catalog
}

// New creates an engine over the given store.
func New(store types.DocumentStore, opts Options) *Engine {
	return &Engine{
		store:    store,
		guidance: opts.Guidance,
		catalog:  opts.Catalog,
	}
}

// Proposal is a requested card placement.
type Proposal struct {
	// ActorMayEdit is the caller-supplied permission flag. The engine
	// performs no permission logic beyond honoring it.
	ActorMayEdit bool

	// CardID is a board card id, or a catalog/ reference for
	// materialize-then-place.
	CardID string

	// SourceColumnID is the column currently holding the card. Optional:
	// when empty the engine locates the owner itself.
	SourceColumnID string

	// TargetColumnID is the column to place the card into.
	TargetColumnID string

	// TargetIndex is the position within the target column. Nil appends.
	TargetIndex *int
}

// placement is the resolved, validated form of a proposal, ready to apply.
type placement struct {
	card        *types.Card   // resolved card; for materialize, not yet stored
	materialize bool          // card must be created before insertion
	source      *types.Column // nil for materialize
	sourceIndex int           // card's current index in source
	target      *types.Column
	index       int    // resolved insertion index
	evict       string // destination occupant to relocate to candidates, if any
}

// Propose validates and, on acceptance, applies a placement. The ordered
// validation pipeline runs entirely before any store mutation: a
// non-accepted outcome guarantees an untouched board. A returned error
// means the store itself failed, not that the proposal was rejected.
func (e *Engine) Propose(p Proposal) (types.Outcome, error) {
	return e.propose(p, false)
}

// ProposeConfirmed is the explicit confirmed-replace path for the
// destination slot: where Propose returns RequiresConfirmation, this
// relocates the current occupant to candidates, runs the DestinationCleared
// cascade (dropping trip flights and the itinerary), and then performs the
// placement.
func (e *Engine) ProposeConfirmed(p Proposal) (types.Outcome, error) {
	return e.propose(p, true)
}

func (e *Engine) propose(p Proposal, confirmed bool) (types.Outcome, error) {
	// Step 1: permission. Rejected before any store access.
	if !p.ActorMayEdit {
		return types.Outcome{Code: types.OutcomePermissionDenied}, nil
	}

	pl, outcome, err := e.resolve(p, confirmed)
	if err != nil {
		return types.Outcome{}, err
	}
	if outcome != nil {
		return *outcome, nil
	}

	return e.apply(pl)
}

// resolve runs validation steps 2-5 against the current snapshot. It
// returns a terminal outcome for the first failing step, or the resolved
// placement when every step passes.
func (e *Engine) resolve(p Proposal, confirmed bool) (*placement, *types.Outcome, error) {
	target, err := e.store.Column(p.TargetColumnID)
	if err != nil {
		if err == types.ErrNotFound {
			return nil, nil, fmt.Errorf("target column %s: %w", p.TargetColumnID, types.ErrUnknownColumn)
		}
		return nil, nil, err
	}

	pl := &placement{target: target}

	if ref, ok := catalogRef(p.CardID); ok {
		if e.catalog == nil {
			return nil, nil, types.ErrUnknownCatalog
		}
		entry, err := e.catalog.Entry(ref)
		if err != nil {
			return nil, nil, fmt.Errorf("catalog entry %s: %w", ref, err)
		}
		pl.card = materialize(entry)
		pl.materialize = true
	} else {
		card, err := e.store.Card(p.CardID)
		if err != nil {
			return nil, nil, fmt.Errorf("card %s: %w", p.CardID, err)
		}
		pl.card = card
		pl.source, pl.sourceIndex, err = e.locateSource(p)
		if err != nil {
			return nil, nil, err
		}
	}

	targetItems, err := e.store.ColumnItems(target.ColumnID)
	if err != nil {
		return nil, nil, err
	}
	pl.index = resolveIndex(p.TargetIndex, pl, targetItems)

	// Step 2: no-op self-drop.
	if pl.source != nil && pl.source.ColumnID == target.ColumnID && pl.index == pl.sourceIndex {
		return nil, &types.Outcome{Code: types.OutcomeNoOp, CardID: pl.card.CardID}, nil
	}

	// Step 3: category compatibility. Flight cards are pinned to their
	// own day column; only same-column reorders pass.
	if pl.card.Category == types.CategoryFlight {
		sameDay := pl.source != nil &&
			pl.source.ColumnID == target.ColumnID &&
			target.Role.Kind == types.RoleDayBucket
		if !sameDay {
			return nil, &types.Outcome{Code: types.OutcomeImmutableCategory}, nil
		}
	} else if !IsAdmissible(target.Role, pl.card.Category) {
		return nil, &types.Outcome{Code: types.OutcomeCategoryMismatch}, nil
	}

	// Step 4: singleton guard. While trip flights are saved the
	// destination slot's content is change-guarded in both directions:
	// replacing the occupant and moving the occupant out each need the
	// confirmed path.
	if !confirmed &&
		pl.source != nil &&
		pl.source.Role.Kind == types.RoleSingletonDestination &&
		pl.source.ColumnID != target.ColumnID {
		if _, err := e.store.FlightInfo(); err == nil {
			return nil, &types.Outcome{Code: types.OutcomeRequiresConfirmation}, nil
		} else if err != types.ErrNotFound {
			return nil, nil, err
		}
	}
	if target.Role.Kind == types.RoleSingletonDestination {
		occupant := ""
		for _, id := range targetItems {
			if id != pl.card.CardID {
				occupant = id
				break
			}
		}
		if occupant != "" {
			if !confirmed {
				if _, err := e.store.FlightInfo(); err == nil {
					return nil, &types.Outcome{Code: types.OutcomeRequiresConfirmation}, nil
				} else if err != types.ErrNotFound {
					return nil, nil, err
				}
			}
			pl.evict = occupant
		}
	}

	// Step 5: duplicate-in-candidates guard, materialize-then-place only.
	if pl.materialize && target.Role.Kind == types.RoleCandidates {
		dup, err := e.hasDuplicateCandidate(targetItems, pl.card)
		if err != nil {
			return nil, nil, err
		}
		if dup {
			return nil, &types.Outcome{Code: types.OutcomeDuplicateCandidate}, nil
		}
	}

	return pl, nil, nil
}

// locateSource resolves the column currently holding the proposal's card.
// When the proposal names a source, the card must actually be there; when
// it does not, the owner is found by scanning (a card has at most one owner
// at quiescence).
func (e *Engine) locateSource(p Proposal) (*types.Column, int, error) {
	if p.SourceColumnID != "" {
		col, err := e.store.Column(p.SourceColumnID)
		if err != nil {
			if err == types.ErrNotFound {
				return nil, 0, fmt.Errorf("source column %s: %w", p.SourceColumnID, types.ErrUnknownColumn)
			}
			return nil, 0, err
		}
		items, err := e.store.ColumnItems(col.ColumnID)
		if err != nil {
			return nil, 0, err
		}
		for i, id := range items {
			if id == p.CardID {
				return col, i, nil
			}
		}
		return nil, 0, fmt.Errorf("card %s not in column %s: %w", p.CardID, p.SourceColumnID, types.ErrNotFound)
	}

	cols, err := e.store.Columns()
	if err != nil {
		return nil, 0, err
	}
	for _, col := range cols {
		items, err := e.store.ColumnItems(col.ColumnID)
		if err != nil {
			if err == types.ErrNotFound {
				continue // column deleted under us; stale snapshot tolerated
			}
			return nil, 0, err
		}
		for i, id := range items {
			if id == p.CardID {
				return col, i, nil
			}
		}
	}
	return nil, 0, nil // unowned card; placement adopts it
}

// resolveIndex turns an optional target index into a concrete position.
// Nil appends: past the end for a cross-column move, onto the last slot
// for a same-column reorder (so an index-less self-drop is a no-op).
func resolveIndex(requested *int, pl *placement, targetItems []string) int {
	sameColumn := pl.source != nil && pl.source.ColumnID == pl.target.ColumnID
	if requested == nil {
		if sameColumn && len(targetItems) > 0 {
			return len(targetItems) - 1
		}
		return len(targetItems)
	}
	idx := *requested
	if idx < 0 {
		idx = 0
	}
	max := len(targetItems)
	if sameColumn && max > 0 {
		max--
	}
	if idx > max {
		idx = max
	}
	return idx
}

// hasDuplicateCandidate reports whether the candidates column already holds
// a card matching the materialized entry on (title, scheduled date).
func (e *Engine) hasDuplicateCandidate(items []string, card *types.Card) (bool, error) {
	for _, id := range items {
		existing, err := e.store.Card(id)
		if err != nil {
			if err == types.ErrNotFound {
				continue // dangling reference from a concurrent delete
			}
			return false, err
		}
		if existing.Title == card.Title && existing.ScheduledDate() == card.ScheduledDate() {
			return true, nil
		}
	}
	return false, nil
}

// apply submits the accepted placement's mutations to the store, in order:
// occupant eviction (plus its cascade), card creation for materialize,
// removal from source, insertion into target, and finally the cascades
// triggered by the destination slot changing hands.
func (e *Engine) apply(pl *placement) (types.Outcome, error) {
	var changes []types.Change

	if pl.evict != "" {
		if err := e.store.RemoveItem(pl.target.ColumnID, pl.evict); err != nil {
			return types.Outcome{}, err
		}
		changes = append(changes, types.Change{Kind: types.ChangeItemRemoved, CardID: pl.evict, ColumnID: pl.target.ColumnID})

		candItems, err := e.store.ColumnItems(types.ColumnCandidates)
		if err != nil {
			return types.Outcome{}, err
		}
		if err := e.store.InsertItem(types.ColumnCandidates, pl.evict, len(candItems)); err != nil && err != types.ErrDuplicateItem {
			return types.Outcome{}, err
		}
		changes = append(changes, types.Change{Kind: types.ChangeItemInserted, CardID: pl.evict, ColumnID: types.ColumnCandidates, Index: len(candItems)})

		// The slot transitioned occupied -> empty: the itinerary built
		// for the old destination is no longer valid.
		cascade, err := e.destinationCleared()
		if err != nil {
			return types.Outcome{}, err
		}
		changes = append(changes, cascade...)
	}

	if pl.materialize {
		if err := e.store.SetCard(pl.card); err != nil {
			return types.Outcome{}, err
		}
		changes = append(changes, types.Change{Kind: types.ChangeCardCreated, CardID: pl.card.CardID})
	}

	clearedDestination := false
	if pl.source != nil && pl.source.ColumnID != pl.target.ColumnID {
		if err := e.store.RemoveItem(pl.source.ColumnID, pl.card.CardID); err != nil {
			return types.Outcome{}, err
		}
		changes = append(changes, types.Change{Kind: types.ChangeItemRemoved, CardID: pl.card.CardID, ColumnID: pl.source.ColumnID})
		clearedDestination = pl.source.Role.Kind == types.RoleSingletonDestination
	} else if pl.source != nil {
		// Same-column reorder: remove before reinserting at the new index.
		if err := e.store.RemoveItem(pl.source.ColumnID, pl.card.CardID); err != nil {
			return types.Outcome{}, err
		}
	}

	if err := e.store.InsertItem(pl.target.ColumnID, pl.card.CardID, pl.index); err != nil && err != types.ErrDuplicateItem {
		return types.Outcome{}, err
	}
	changes = append(changes, types.Change{Kind: types.ChangeItemInserted, CardID: pl.card.CardID, ColumnID: pl.target.ColumnID, Index: pl.index})

	if clearedDestination {
		cascade, err := e.destinationCleared()
		if err != nil {
			return types.Outcome{}, err
		}
		changes = append(changes, cascade...)
	}

	if pl.target.Role.Kind == types.RoleSingletonDestination {
		if err := e.destinationSet(pl.card); err != nil {
			return types.Outcome{}, err
		}
	}

	return types.Outcome{Code: types.OutcomeAccepted, CardID: pl.card.CardID, Changes: changes}, nil
}
