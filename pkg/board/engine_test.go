package board

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outframe/tripboard/internal/memstore"
	"github.com/outframe/tripboard/pkg/types"
)

// newTestEngine seeds a fresh in-memory board with a catalog and guidance
// table wired in.
func newTestEngine(t *testing.T) (*Engine, *memstore.Store) {
	t.Helper()
	store := memstore.New("test-actor")
	require.NoError(t, Seed(store))

	catalog := NewStaticCatalog(map[string]*types.Card{
		"osaka": {
			Category: types.CategoryDestination,
			Title:    "Osaka",
			Schedule: &types.Schedule{Date: "2026-03-10"},
			Detail:   types.DestinationDetail{Country: "Japan"},
		},
		"lisbon": {
			Category: types.CategoryDestination,
			Title:    "Lisbon",
			Detail:   types.DestinationDetail{Country: "Portugal"},
		},
	})
	guidance := NewStaticGuidance(map[string]string{
		"Osaka": "Visa-free entry up to 90 days for most passports.",
	})
	return New(store, Options{Guidance: guidance, Catalog: catalog}), store
}

// addCard creates a card record and places it in a column directly through
// the store, bypassing the engine, to arrange test fixtures.
func addCard(t *testing.T, store *memstore.Store, columnID, category, title string) *types.Card {
	t.Helper()
	now := time.Now().UTC()
	card := &types.Card{
		CardID:        newCardID(),
		Category:      category,
		Title:         title,
		IsUserCreated: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	require.NoError(t, store.SetCard(card))
	items, err := store.ColumnItems(columnID)
	require.NoError(t, err)
	require.NoError(t, store.InsertItem(columnID, card.CardID, len(items)))
	return card
}

func intp(i int) *int { return &i }

func saveTestFlights(t *testing.T, e *Engine, days int) {
	t.Helper()
	out := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	outcome, err := e.SaveFlights(true, &types.FlightInfo{
		Outbound: types.FlightSegment{FromAirport: "FRA", ToAirport: "KIX", DepartureTime: out, ArrivalTime: out.Add(11 * time.Hour)},
		Return:   types.FlightSegment{FromAirport: "KIX", ToAirport: "FRA", DepartureTime: out.AddDate(0, 0, days-1), ArrivalTime: out.AddDate(0, 0, days-1).Add(12 * time.Hour)},
	})
	require.NoError(t, err)
	require.True(t, outcome.Accepted())
}

func TestProposePermissionDenied(t *testing.T) {
	e, store := newTestEngine(t)
	card := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")

	outcome, err := e.Propose(Proposal{
		ActorMayEdit:   false,
		CardID:         card.CardID,
		SourceColumnID: types.ColumnCandidates,
		TargetColumnID: types.ColumnDestinationHeader,
	})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomePermissionDenied, outcome.Code)

	// Rejected before any store access: the board is untouched.
	items, err := store.ColumnItems(types.ColumnCandidates)
	require.NoError(t, err)
	assert.Equal(t, []string{card.CardID}, items)
}

func TestProposeDestinationFromCandidates(t *testing.T) {
	e, store := newTestEngine(t)
	card := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")

	outcome, err := e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         card.CardID,
		SourceColumnID: types.ColumnCandidates,
		TargetColumnID: types.ColumnDestinationHeader,
		TargetIndex:    intp(0),
	})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeAccepted, outcome.Code)

	header, err := store.ColumnItems(types.ColumnDestinationHeader)
	require.NoError(t, err)
	assert.Equal(t, []string{card.CardID}, header)

	candidates, err := store.ColumnItems(types.ColumnCandidates)
	require.NoError(t, err)
	assert.Empty(t, candidates)

	// DestinationSet populated the entry-requirements note.
	note, err := store.Card(types.EntryRequirementsCardID)
	require.NoError(t, err)
	assert.Equal(t, "Visa-free entry up to 90 days for most passports.", note.Note)
}

func TestProposeNoOpSelfDrop(t *testing.T) {
	e, store := newTestEngine(t)
	card := addCard(t, store, types.ColumnInbox, types.CategoryFood, "Ramen")

	tests := []struct {
		name  string
		index *int
	}{
		{name: "explicit same index", index: intp(0)},
		{name: "append onto own slot", index: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome, err := e.Propose(Proposal{
				ActorMayEdit:   true,
				CardID:         card.CardID,
				SourceColumnID: types.ColumnInbox,
				TargetColumnID: types.ColumnInbox,
				TargetIndex:    tt.index,
			})
			require.NoError(t, err)
			assert.Equal(t, types.OutcomeNoOp, outcome.Code)
			assert.Empty(t, outcome.Changes)
		})
	}
}

func TestProposeCategoryMismatch(t *testing.T) {
	e, store := newTestEngine(t)
	card := addCard(t, store, types.ColumnInbox, types.CategoryFood, "Ramen")

	outcome, err := e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         card.CardID,
		SourceColumnID: types.ColumnInbox,
		TargetColumnID: types.ColumnPreparation,
	})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeCategoryMismatch, outcome.Code)

	items, err := store.ColumnItems(types.ColumnInbox)
	require.NoError(t, err)
	assert.Equal(t, []string{card.CardID}, items)
}

func TestProposeFlightImmutability(t *testing.T) {
	e, store := newTestEngine(t)
	dest := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")
	_, err := e.Propose(Proposal{ActorMayEdit: true, CardID: dest.CardID, TargetColumnID: types.ColumnDestinationHeader})
	require.NoError(t, err)
	saveTestFlights(t, e, 4)

	flight := addCard(t, store, "day3", types.CategoryFlight, "Connecting flight")
	food := addCard(t, store, "day3", types.CategoryFood, "Okonomiyaki")

	// Cross-column move of a flight card is always rejected.
	outcome, err := e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         flight.CardID,
		SourceColumnID: "day3",
		TargetColumnID: "day4",
	})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeImmutableCategory, outcome.Code)

	// Reordering within its own day is fine.
	outcome, err = e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         flight.CardID,
		SourceColumnID: "day3",
		TargetColumnID: "day3",
		TargetIndex:    intp(1),
	})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeAccepted, outcome.Code)

	items, err := store.ColumnItems("day3")
	require.NoError(t, err)
	assert.Equal(t, []string{food.CardID, flight.CardID}, items)
}

func TestProposeSingletonEvictsWithoutFlights(t *testing.T) {
	e, store := newTestEngine(t)
	first := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")
	second := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Lisbon")

	_, err := e.Propose(Proposal{ActorMayEdit: true, CardID: first.CardID, TargetColumnID: types.ColumnDestinationHeader})
	require.NoError(t, err)

	// No flights saved: the occupant is silently relocated to candidates.
	outcome, err := e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         second.CardID,
		SourceColumnID: types.ColumnCandidates,
		TargetColumnID: types.ColumnDestinationHeader,
	})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeAccepted, outcome.Code)

	header, err := store.ColumnItems(types.ColumnDestinationHeader)
	require.NoError(t, err)
	assert.Equal(t, []string{second.CardID}, header)

	candidates, err := store.ColumnItems(types.ColumnCandidates)
	require.NoError(t, err)
	assert.Contains(t, candidates, first.CardID)
}

func TestProposeRequiresConfirmationOnReplace(t *testing.T) {
	e, store := newTestEngine(t)
	first := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")
	second := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Lisbon")

	_, err := e.Propose(Proposal{ActorMayEdit: true, CardID: first.CardID, TargetColumnID: types.ColumnDestinationHeader})
	require.NoError(t, err)
	saveTestFlights(t, e, 3)

	outcome, err := e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         second.CardID,
		SourceColumnID: types.ColumnCandidates,
		TargetColumnID: types.ColumnDestinationHeader,
	})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeRequiresConfirmation, outcome.Code)

	// No direct mutation happened.
	header, err := store.ColumnItems(types.ColumnDestinationHeader)
	require.NoError(t, err)
	assert.Equal(t, []string{first.CardID}, header)
	_, err = store.FlightInfo()
	assert.NoError(t, err)
}

func TestProposeRequiresConfirmationOnMoveOut(t *testing.T) {
	e, store := newTestEngine(t)
	card := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")
	_, err := e.Propose(Proposal{ActorMayEdit: true, CardID: card.CardID, TargetColumnID: types.ColumnDestinationHeader})
	require.NoError(t, err)
	saveTestFlights(t, e, 3)

	outcome, err := e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         card.CardID,
		SourceColumnID: types.ColumnDestinationHeader,
		TargetColumnID: types.ColumnCandidates,
	})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeRequiresConfirmation, outcome.Code)

	header, err := store.ColumnItems(types.ColumnDestinationHeader)
	require.NoError(t, err)
	assert.Equal(t, []string{card.CardID}, header)
}

func TestProposeConfirmedMoveOutCascades(t *testing.T) {
	e, store := newTestEngine(t)
	card := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")
	_, err := e.Propose(Proposal{ActorMayEdit: true, CardID: card.CardID, TargetColumnID: types.ColumnDestinationHeader})
	require.NoError(t, err)
	saveTestFlights(t, e, 3)
	dayCard := addCard(t, store, "day2", types.CategoryFood, "Okonomiyaki")

	outcome, err := e.ProposeConfirmed(Proposal{
		ActorMayEdit:   true,
		CardID:         card.CardID,
		SourceColumnID: types.ColumnDestinationHeader,
		TargetColumnID: types.ColumnCandidates,
	})
	require.NoError(t, err)
	require.Equal(t, types.OutcomeAccepted, outcome.Code)

	// Flights gone.
	_, err = store.FlightInfo()
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Day columns and their cards gone.
	for day := 1; day <= 3; day++ {
		_, err := store.Column(types.DayColumnID(day))
		assert.ErrorIs(t, err, types.ErrNotFound, "day%d should be deleted", day)
	}
	_, err = store.Card(dayCard.CardID)
	assert.ErrorIs(t, err, types.ErrNotFound)

	// Entry-requirements note cleared but not deleted.
	note, err := store.Card(types.EntryRequirementsCardID)
	require.NoError(t, err)
	assert.Equal(t, "", note.Note)

	// The destination card itself was relocated, not destroyed.
	candidates, err := store.ColumnItems(types.ColumnCandidates)
	require.NoError(t, err)
	assert.Contains(t, candidates, card.CardID)

	// Column order no longer mentions day columns.
	order, err := store.ColumnOrder()
	require.NoError(t, err)
	for _, id := range order {
		_, isDay := types.ParseDayColumnID(id)
		assert.False(t, isDay, "column order still holds %s", id)
	}
}

func TestProposeConfirmedReplace(t *testing.T) {
	e, store := newTestEngine(t)
	first := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")
	second := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Lisbon")
	_, err := e.Propose(Proposal{ActorMayEdit: true, CardID: first.CardID, TargetColumnID: types.ColumnDestinationHeader})
	require.NoError(t, err)
	saveTestFlights(t, e, 3)

	outcome, err := e.ProposeConfirmed(Proposal{
		ActorMayEdit:   true,
		CardID:         second.CardID,
		SourceColumnID: types.ColumnCandidates,
		TargetColumnID: types.ColumnDestinationHeader,
	})
	require.NoError(t, err)
	require.Equal(t, types.OutcomeAccepted, outcome.Code)

	header, err := store.ColumnItems(types.ColumnDestinationHeader)
	require.NoError(t, err)
	assert.Equal(t, []string{second.CardID}, header)

	candidates, err := store.ColumnItems(types.ColumnCandidates)
	require.NoError(t, err)
	assert.Contains(t, candidates, first.CardID)

	_, err = store.FlightInfo()
	assert.ErrorIs(t, err, types.ErrNotFound)

	// The new destination repopulated the note (old content was cleared
	// by the cascade first, so no user content was overwritten).
	note, err := store.Card(types.EntryRequirementsCardID)
	require.NoError(t, err)
	assert.NotEmpty(t, note.Note)
}

func TestMaterializeThenPlace(t *testing.T) {
	e, store := newTestEngine(t)

	outcome, err := e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         "catalog/osaka",
		TargetColumnID: types.ColumnCandidates,
	})
	require.NoError(t, err)
	require.Equal(t, types.OutcomeAccepted, outcome.Code)
	require.NotEmpty(t, outcome.CardID)
	assert.NotEqual(t, "catalog/osaka", outcome.CardID)

	card, err := store.Card(outcome.CardID)
	require.NoError(t, err)
	assert.Equal(t, "Osaka", card.Title)
	assert.True(t, card.IsUserCreated)

	// Placing the same catalog entry again is an indistinguishable
	// duplicate: same title, same scheduled date.
	outcome, err = e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         "catalog/osaka",
		TargetColumnID: types.ColumnCandidates,
	})
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeDuplicateCandidate, outcome.Code)

	items, err := store.ColumnItems(types.ColumnCandidates)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestMaterializeUnknownCatalogRef(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         "catalog/atlantis",
		TargetColumnID: types.ColumnCandidates,
	})
	assert.ErrorIs(t, err, types.ErrUnknownCatalog)
}

func TestCreateCardRollbackOnRejection(t *testing.T) {
	e, store := newTestEngine(t)

	outcome, err := e.CreateCard(true, &types.Card{
		Category: types.CategoryFood,
		Title:    "Ramen",
	}, types.ColumnDestinationHeader, nil)
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeCategoryMismatch, outcome.Code)

	// The staged card record was removed again.
	cards, err := store.Cards()
	require.NoError(t, err)
	for _, card := range cards {
		assert.NotEqual(t, "Ramen", card.Title)
	}
}

func TestDeleteProtectsBuiltinCards(t *testing.T) {
	e, _ := newTestEngine(t)

	_, err := e.Delete(true, types.EntryRequirementsCardID)
	assert.ErrorIs(t, err, types.ErrBuiltinCard)
}

func TestDeleteDestinationFiresCascade(t *testing.T) {
	e, store := newTestEngine(t)
	card := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")
	_, err := e.Propose(Proposal{ActorMayEdit: true, CardID: card.CardID, TargetColumnID: types.ColumnDestinationHeader})
	require.NoError(t, err)
	saveTestFlights(t, e, 2)

	outcome, err := e.Delete(true, card.CardID)
	require.NoError(t, err)
	require.Equal(t, types.OutcomeAccepted, outcome.Code)

	_, err = store.Card(card.CardID)
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = store.FlightInfo()
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = store.Column("day1")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestSaveFlightsBuildsItinerary(t *testing.T) {
	e, store := newTestEngine(t)
	saveTestFlights(t, e, 3)

	for day := 1; day <= 3; day++ {
		_, err := store.Column(types.DayColumnID(day))
		assert.NoError(t, err, "day%d should exist", day)
	}

	day1, err := store.ColumnItems("day1")
	require.NoError(t, err)
	require.Len(t, day1, 1)
	outbound, err := store.Card(day1[0])
	require.NoError(t, err)
	assert.Equal(t, types.CategoryFlight, outbound.Category)
	assert.Equal(t, "Outbound flight", outbound.Title)

	day3, err := store.ColumnItems("day3")
	require.NoError(t, err)
	require.Len(t, day3, 1)

	// Re-saving refreshes the generated cards instead of duplicating.
	saveTestFlights(t, e, 3)
	day1, err = store.ColumnItems("day1")
	require.NoError(t, err)
	assert.Len(t, day1, 1)
}

func TestSnapshot(t *testing.T) {
	e, store := newTestEngine(t)
	card := addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka")
	_, err := e.Propose(Proposal{ActorMayEdit: true, CardID: card.CardID, TargetColumnID: types.ColumnDestinationHeader})
	require.NoError(t, err)
	saveTestFlights(t, e, 2)

	snap, err := e.Snapshot()
	require.NoError(t, err)
	require.NotNil(t, snap.Flights)

	var ids []string
	for _, view := range snap.Columns {
		ids = append(ids, view.Column.ColumnID)
	}
	assert.Equal(t, []string{
		types.ColumnDestinationHeader,
		types.ColumnCandidates,
		types.ColumnPreparation,
		"day1",
		"day2",
		types.ColumnInbox,
	}, ids)

	assert.Equal(t, card.CardID, snap.Columns[0].Cards[0].CardID)
}

// TestProposeInvariants drives a deterministic random workload through the
// engine and checks the structural invariants after every call: a card id
// appears in at most one column, every referenced id resolves, and the
// destination slot holds at most one card.
func TestProposeInvariants(t *testing.T) {
	e, store := newTestEngine(t)

	cardPool := []string{
		addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Osaka").CardID,
		addCard(t, store, types.ColumnCandidates, types.CategoryDestination, "Lisbon").CardID,
		addCard(t, store, types.ColumnInbox, types.CategoryFood, "Ramen").CardID,
		addCard(t, store, types.ColumnInbox, types.CategoryHotel, "Dotonbori Inn").CardID,
		addCard(t, store, types.ColumnInbox, types.CategoryShopping, "Kuromon Market").CardID,
		addCard(t, store, types.ColumnPreparation, types.CategoryPreparation, "Pack adapters").CardID,
	}
	columnPool := []string{
		types.ColumnDestinationHeader,
		types.ColumnCandidates,
		types.ColumnInbox,
		types.ColumnPreparation,
		"day1", "day2",
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 300; i++ {
		switch rng.Intn(10) {
		case 0:
			saveTestFlights(t, e, 2+rng.Intn(3))
		case 1:
			_, err := e.ClearFlights(true)
			require.NoError(t, err)
		default:
			p := Proposal{
				ActorMayEdit:   true,
				CardID:         cardPool[rng.Intn(len(cardPool))],
				TargetColumnID: columnPool[rng.Intn(len(columnPool))],
			}
			if rng.Intn(2) == 0 {
				p.TargetIndex = intp(rng.Intn(4))
			}
			var err error
			if rng.Intn(4) == 0 {
				_, err = e.ProposeConfirmed(p)
			} else {
				_, err = e.Propose(p)
			}
			// Unknown columns and deleted cards are legitimate
			// here: day columns come and go with the cascade, and
			// the cascade deletes itinerary cards outright.
			if err != nil {
				known := errors.Is(err, types.ErrNotFound) || errors.Is(err, types.ErrUnknownColumn)
				require.True(t, known, "step %d: unexpected error %v", i, err)
			}
		}
		assertInvariants(t, store)
	}
}

// assertInvariants checks the board's structural invariants against the
// store's current state.
func assertInvariants(t *testing.T, store *memstore.Store) {
	t.Helper()

	cols, err := store.Columns()
	require.NoError(t, err)

	seen := make(map[string]string) // card id -> column id
	for _, col := range cols {
		items, err := store.ColumnItems(col.ColumnID)
		require.NoError(t, err)

		if col.Role.Kind == types.RoleSingletonDestination {
			require.LessOrEqual(t, len(items), 1, "destination slot over-occupied")
		}
		for _, id := range items {
			if owner, dup := seen[id]; dup {
				t.Fatalf("card %s in both %s and %s", id, owner, col.ColumnID)
			}
			seen[id] = col.ColumnID

			_, err := store.Card(id)
			require.NoError(t, err, "column %s references missing card %s", col.ColumnID, id)
		}
	}
}
