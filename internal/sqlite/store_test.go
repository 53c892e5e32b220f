package sqlite

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outframe/tripboard/pkg/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func testColumn(id string) *types.Column {
	return &types.Column{
		ColumnID: id,
		Title:    id,
		Role:     types.Role{Kind: types.RoleInbox},
	}
}

func TestOpenCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "board")

	store, err := Open(dataDir)
	require.NoError(t, err)
	defer store.Close()

	_, err = os.Stat(filepath.Join(dataDir, boardFileName))
	assert.NoError(t, err)
}

func TestReopenKeepsData(t *testing.T) {
	dataDir := t.TempDir()

	store, err := Open(dataDir)
	require.NoError(t, err)
	now := time.Now().UTC().Truncate(time.Millisecond)
	require.NoError(t, store.SetCard(&types.Card{
		CardID:    "c1",
		Category:  types.CategoryFood,
		Title:     "Ramen",
		CreatedAt: now,
		UpdatedAt: now,
	}))
	require.NoError(t, store.Close())
	// Double close is harmless.
	require.NoError(t, store.Close())

	store, err = Open(dataDir)
	require.NoError(t, err)
	defer store.Close()

	card, err := store.Card("c1")
	require.NoError(t, err)
	assert.Equal(t, "Ramen", card.Title)
	assert.True(t, card.CreatedAt.Equal(now))
}

func TestCardRoundtrip(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	tests := []struct {
		name string
		card *types.Card
	}{
		{
			name: "destination with schedule and votes",
			card: &types.Card{
				CardID:        "dest-1",
				Category:      types.CategoryDestination,
				Title:         "Osaka",
				Note:          "cherry blossom season",
				Schedule:      &types.Schedule{Date: "2026-03-10", Start: "09:00"},
				Votes:         map[string]bool{"alice": true, "bob": false},
				IsUserCreated: true,
				Detail:        types.DestinationDetail{Country: "Japan"},
				CreatedAt:     now,
				UpdatedAt:     now,
			},
		},
		{
			name: "flight detail",
			card: &types.Card{
				CardID:   "flight-1",
				Category: types.CategoryFlight,
				Title:    "Outbound flight",
				Detail: types.FlightDetail{
					Airline:       "ANA",
					FlightNumber:  "NH204",
					FromAirport:   "FRA",
					ToAirport:     "KIX",
					DepartureTime: "2026-03-10T09:00:00Z",
					ArrivalTime:   "2026-03-10T20:00:00Z",
					Stopovers:     []string{"HND"},
				},
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
		{
			name: "bare note card",
			card: &types.Card{
				CardID:    "note-1",
				Category:  types.CategoryPreparation,
				Title:     "Entry requirements",
				CreatedAt: now,
				UpdatedAt: now,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, store.SetCard(tt.card))
			got, err := store.Card(tt.card.CardID)
			require.NoError(t, err)

			assert.Equal(t, tt.card.Category, got.Category)
			assert.Equal(t, tt.card.Title, got.Title)
			assert.Equal(t, tt.card.Note, got.Note)
			assert.Equal(t, tt.card.Schedule, got.Schedule)
			assert.Equal(t, tt.card.Votes, got.Votes)
			assert.Equal(t, tt.card.IsUserCreated, got.IsUserCreated)
			assert.Equal(t, tt.card.Detail, got.Detail)
			assert.True(t, got.CreatedAt.Equal(tt.card.CreatedAt))
			assert.True(t, got.UpdatedAt.Equal(tt.card.UpdatedAt))
		})
	}
}

func TestCardOverwrite(t *testing.T) {
	store := newTestStore(t)
	now := time.Now().UTC().Truncate(time.Millisecond)

	card := &types.Card{CardID: "c1", Category: types.CategoryFood, Title: "Ramen", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, store.SetCard(card))

	card.Title = "Tonkotsu ramen"
	card.Note = "Ichiran, open late"
	require.NoError(t, store.SetCard(card))

	got, err := store.Card("c1")
	require.NoError(t, err)
	assert.Equal(t, "Tonkotsu ramen", got.Title)
	assert.Equal(t, "Ichiran, open late", got.Note)

	cards, err := store.Cards()
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}

func TestCardErrors(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Card("missing")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = store.Card("")
	assert.ErrorIs(t, err, types.ErrInvalidID)
	assert.ErrorIs(t, store.SetCard(nil), types.ErrInvalidID)
	assert.ErrorIs(t, store.SetCard(&types.Card{}), types.ErrInvalidID)

	// Deleting an absent card is a no-op.
	assert.NoError(t, store.DeleteCard("missing"))
}

func TestColumnLifecycle(t *testing.T) {
	store := newTestStore(t)

	col := &types.Column{
		ColumnID: "day2",
		Title:    "Day 2",
		Role:     types.Role{Kind: types.RoleDayBucket, Day: 2},
	}
	require.NoError(t, store.PutColumn(col))

	got, err := store.Column("day2")
	require.NoError(t, err)
	assert.Equal(t, col.Title, got.Title)
	assert.Equal(t, col.Role, got.Role)

	cols, err := store.Columns()
	require.NoError(t, err)
	assert.Len(t, cols, 1)

	require.NoError(t, store.InsertItem("day2", "c1", 0))
	require.NoError(t, store.DeleteColumn("day2"))
	_, err = store.Column("day2")
	assert.ErrorIs(t, err, types.ErrNotFound)
	_, err = store.ColumnItems("day2")
	assert.ErrorIs(t, err, types.ErrNotFound)
}

func TestColumnItemsOrdering(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PutColumn(testColumn("inbox")))

	require.NoError(t, store.InsertItem("inbox", "a", 0))
	require.NoError(t, store.InsertItem("inbox", "b", 1))
	require.NoError(t, store.InsertItem("inbox", "c", 1))

	items, err := store.ColumnItems("inbox")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c", "b"}, items)

	assert.ErrorIs(t, store.InsertItem("inbox", "a", 0), types.ErrDuplicateItem)
	assert.ErrorIs(t, store.InsertItem("missing", "x", 0), types.ErrNotFound)

	require.NoError(t, store.RemoveItem("inbox", "c"))
	items, err = store.ColumnItems("inbox")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, items)

	// Removed ids can come back at any position.
	require.NoError(t, store.InsertItem("inbox", "c", 0))
	items, err = store.ColumnItems("inbox")
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, items)
}

// TestInsertItemRenumber exhausts the midpoint gap between two neighbors so
// positions must be respaced, and checks the order survives.
func TestInsertItemRenumber(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.PutColumn(testColumn("inbox")))
	require.NoError(t, store.InsertItem("inbox", "first", 0))
	require.NoError(t, store.InsertItem("inbox", "last", 1))

	want := []string{"first"}
	for i := 0; i < 20; i++ {
		id := string(rune('a' + i))
		require.NoError(t, store.InsertItem("inbox", id, 1))
		want = append(want[:1], append([]string{id}, want[1:]...)...)
	}
	want = append(want, "last")

	items, err := store.ColumnItems("inbox")
	require.NoError(t, err)
	assert.Equal(t, want, items)
}

func TestColumnOrder(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.InsertColumnAt("one", 0))
	require.NoError(t, store.InsertColumnAt("three", 1))
	require.NoError(t, store.InsertColumnAt("two", 1))

	order, err := store.ColumnOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, order)

	// Reinserting an id already in the order is a no-op.
	require.NoError(t, store.InsertColumnAt("three", 0))
	order, err = store.ColumnOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "two", "three"}, order)

	require.NoError(t, store.RemoveColumnFromOrder("two"))
	order, err = store.ColumnOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"one", "three"}, order)
}

func TestFlightInfoRoundtrip(t *testing.T) {
	store := newTestStore(t)

	_, err := store.FlightInfo()
	assert.ErrorIs(t, err, types.ErrNotFound)

	depart := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	info := &types.FlightInfo{
		Outbound: types.FlightSegment{
			Airline:       "ANA",
			FlightNumber:  "NH204",
			FromAirport:   "FRA",
			ToAirport:     "KIX",
			DepartureTime: depart,
			ArrivalTime:   depart.Add(11 * time.Hour),
		},
		Return: types.FlightSegment{
			FromAirport:   "KIX",
			ToAirport:     "FRA",
			DepartureTime: depart.AddDate(0, 0, 4),
			ArrivalTime:   depart.AddDate(0, 0, 4).Add(12 * time.Hour),
		},
	}
	require.NoError(t, store.SetFlightInfo(info))

	got, err := store.FlightInfo()
	require.NoError(t, err)
	assert.Equal(t, "NH204", got.Outbound.FlightNumber)
	assert.True(t, got.Return.DepartureTime.Equal(info.Return.DepartureTime))
	assert.Equal(t, 5, got.TripLengthDays())

	// Overwrite keeps the single-row shape.
	info.Outbound.FlightNumber = "NH205"
	require.NoError(t, store.SetFlightInfo(info))
	got, err = store.FlightInfo()
	require.NoError(t, err)
	assert.Equal(t, "NH205", got.Outbound.FlightNumber)

	require.NoError(t, store.DeleteFlightInfo())
	_, err = store.FlightInfo()
	assert.ErrorIs(t, err, types.ErrNotFound)

	assert.ErrorIs(t, store.SetFlightInfo(nil), types.ErrInvalidID)
}

func TestDetailCodecRejectsUnknownKind(t *testing.T) {
	_, err := decodeDetail(`{"kind":"submarine","payload":{}}`)
	assert.Error(t, err)

	// Empty payloads hydrate to a nil detail.
	detail, err := decodeDetail("")
	require.NoError(t, err)
	assert.Nil(t, detail)
}
