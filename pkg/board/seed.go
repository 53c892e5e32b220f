package board

import (
	"time"

	"github.com/outframe/tripboard/pkg/types"
)

// fixedColumns are the columns every board carries for its whole lifetime,
// in display order. Day columns are created later, between day0 and inbox.
var fixedColumns = []*types.Column{
	{
		ColumnID: types.ColumnDestinationHeader,
		Title:    "Destination",
		Role:     types.Role{Kind: types.RoleSingletonDestination},
	},
	{
		ColumnID: types.ColumnCandidates,
		Title:    "Candidates",
		Role:     types.Role{Kind: types.RoleCandidates},
	},
	{
		ColumnID: types.ColumnPreparation,
		Title:    "Preparation",
		Role:     types.Role{Kind: types.RoleCategoryBucket, Category: types.CategoryPreparation},
	},
	{
		ColumnID: types.ColumnInbox,
		Title:    "Inbox",
		Role:     types.Role{Kind: types.RoleInbox},
	},
}

// Seed creates the fixed columns and the built-in entry-requirements note
// card on a fresh store. Columns and cards that already exist are left
// untouched, so seeding an existing board is a no-op.
func Seed(store types.DocumentStore) error {
	order, err := store.ColumnOrder()
	if err != nil {
		return err
	}
	present := make(map[string]bool, len(order))
	for _, id := range order {
		present[id] = true
	}

	for _, col := range fixedColumns {
		if _, err := store.Column(col.ColumnID); err == nil {
			continue
		} else if err != types.ErrNotFound {
			return err
		}
		if err := store.PutColumn(col); err != nil {
			return err
		}
		if !present[col.ColumnID] {
			order, err = store.ColumnOrder()
			if err != nil {
				return err
			}
			if err := store.InsertColumnAt(col.ColumnID, len(order)); err != nil {
				return err
			}
		}
	}

	if _, err := store.Card(types.EntryRequirementsCardID); err == types.ErrNotFound {
		now := time.Now().UTC()
		note := &types.Card{
			CardID:        types.EntryRequirementsCardID,
			Category:      types.CategoryPreparation,
			Title:         "Entry requirements",
			IsUserCreated: false,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := store.SetCard(note); err != nil {
			return err
		}
		if err := store.InsertItem(types.ColumnPreparation, note.CardID, 0); err != nil && err != types.ErrDuplicateItem {
			return err
		}
	} else if err != nil {
		return err
	}

	return nil
}
