package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/outframe/tripboard/pkg/types"
)

// Column returns the column record with the given id.
func (s *Store) Column(id string) (*types.Column, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.columnLocked(id)
}

func (s *Store) columnLocked(id string) (*types.Column, error) {
	var col types.Column
	err := s.db.QueryRow(
		`SELECT column_id, title, role_kind, role_category, role_day
		 FROM columns WHERE column_id = ?`, id,
	).Scan(&col.ColumnID, &col.Title, &col.Role.Kind, &col.Role.Category, &col.Role.Day)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting column %s: %w", id, err)
	}
	return &col, nil
}

// PutColumn creates or overwrites a column record.
func (s *Store) PutColumn(col *types.Column) error {
	if col == nil || col.ColumnID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(
		`INSERT INTO columns (column_id, title, role_kind, role_category, role_day)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (column_id) DO UPDATE SET
		   title = excluded.title,
		   role_kind = excluded.role_kind,
		   role_category = excluded.role_category,
		   role_day = excluded.role_day`,
		col.ColumnID, col.Title, col.Role.Kind, col.Role.Category, col.Role.Day,
	)
	if err != nil {
		return fmt.Errorf("persisting column %s: %w", col.ColumnID, err)
	}
	return nil
}

// DeleteColumn removes a column record and its membership list.
func (s *Store) DeleteColumn(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM column_items WHERE column_id = ?`, id); err != nil {
		return fmt.Errorf("deleting column items %s: %w", id, err)
	}
	if _, err := s.db.Exec(`DELETE FROM columns WHERE column_id = ?`, id); err != nil {
		return fmt.Errorf("deleting column %s: %w", id, err)
	}
	return nil
}

// Columns returns every column record.
func (s *Store) Columns() ([]*types.Column, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT column_id, title, role_kind, role_category, role_day FROM columns`)
	if err != nil {
		return nil, fmt.Errorf("listing columns: %w", err)
	}
	defer rows.Close()

	var out []*types.Column
	for rows.Next() {
		var col types.Column
		if err := rows.Scan(&col.ColumnID, &col.Title, &col.Role.Kind, &col.Role.Category, &col.Role.Day); err != nil {
			return nil, err
		}
		out = append(out, &col)
	}
	return out, rows.Err()
}

// ColumnItems returns the ordered card ids held by a column.
func (s *Store) ColumnItems(columnID string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.columnLocked(columnID); err != nil {
		return nil, err
	}
	return s.orderedIDs(`SELECT card_id FROM column_items WHERE column_id = ? ORDER BY pos, card_id`, columnID)
}

// InsertItem inserts cardID into the column's sequence at index.
func (s *Store) InsertItem(columnID, cardID string, index int) error {
	if cardID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.columnLocked(columnID); err != nil {
		return err
	}

	var exists int
	err := s.db.QueryRow(
		`SELECT 1 FROM column_items WHERE column_id = ? AND card_id = ?`,
		columnID, cardID,
	).Scan(&exists)
	if err == nil {
		return types.ErrDuplicateItem
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking item %s: %w", cardID, err)
	}

	pos, err := s.itemPositionFor(columnID, index)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(
		`INSERT INTO column_items (column_id, card_id, pos) VALUES (?, ?, ?)`,
		columnID, cardID, pos,
	); err != nil {
		return fmt.Errorf("inserting item %s into %s: %w", cardID, columnID, err)
	}
	return nil
}

// RemoveItem removes cardID from the column's sequence.
func (s *Store) RemoveItem(columnID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		`DELETE FROM column_items WHERE column_id = ? AND card_id = ?`,
		columnID, cardID,
	); err != nil {
		return fmt.Errorf("removing item %s from %s: %w", cardID, columnID, err)
	}
	return nil
}

// ColumnOrder returns the board's column display order.
func (s *Store) ColumnOrder() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.orderedIDs(`SELECT column_id FROM column_order ORDER BY pos, column_id`)
}

// InsertColumnAt inserts columnID into the display order at index.
// Reinserting an id already in the order is a no-op.
func (s *Store) InsertColumnAt(columnID string, index int) error {
	if columnID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRow(
		`SELECT 1 FROM column_order WHERE column_id = ?`, columnID,
	).Scan(&exists)
	if err == nil {
		return nil
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("checking order for %s: %w", columnID, err)
	}

	pos, err := s.orderPositionFor(index)
	if err != nil {
		return err
	}

	if _, err := s.db.Exec(
		`INSERT INTO column_order (column_id, pos) VALUES (?, ?)`,
		columnID, pos,
	); err != nil {
		return fmt.Errorf("inserting %s into column order: %w", columnID, err)
	}
	return nil
}

// RemoveColumnFromOrder removes columnID from the display order.
func (s *Store) RemoveColumnFromOrder(columnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(
		`DELETE FROM column_order WHERE column_id = ?`, columnID,
	); err != nil {
		return fmt.Errorf("removing %s from column order: %w", columnID, err)
	}
	return nil
}

// orderedIDs runs a single-column query and collects the ids.
func (s *Store) orderedIDs(query string, args ...any) ([]string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

// itemPositionFor picks a sparse position key for inserting at index in a
// column's membership sequence, clamping index to the sequence length.
// When the neighboring keys leave no gap, the column's rows are respaced
// by posGap first.
func (s *Store) itemPositionFor(columnID string, index int) (int64, error) {
	positions, keys, err := s.positionsAndKeys(
		`SELECT pos, card_id FROM column_items WHERE column_id = ? ORDER BY pos, card_id`,
		columnID)
	if err != nil {
		return 0, err
	}
	pos, ok := gapPosition(positions, index)
	if ok {
		return pos, nil
	}
	for i, key := range keys {
		if _, err := s.db.Exec(
			`UPDATE column_items SET pos = ? WHERE column_id = ? AND card_id = ?`,
			int64(i+1)*posGap, columnID, key,
		); err != nil {
			return 0, fmt.Errorf("renumbering items in %s: %w", columnID, err)
		}
	}
	return s.itemPositionFor(columnID, index)
}

// orderPositionFor picks a sparse position key for inserting at index in
// the column display order, respacing the order first when no gap remains.
func (s *Store) orderPositionFor(index int) (int64, error) {
	positions, keys, err := s.positionsAndKeys(
		`SELECT pos, column_id FROM column_order ORDER BY pos, column_id`)
	if err != nil {
		return 0, err
	}
	pos, ok := gapPosition(positions, index)
	if ok {
		return pos, nil
	}
	for i, key := range keys {
		if _, err := s.db.Exec(
			`UPDATE column_order SET pos = ? WHERE column_id = ?`,
			int64(i+1)*posGap, key,
		); err != nil {
			return 0, fmt.Errorf("renumbering column order: %w", err)
		}
	}
	return s.orderPositionFor(index)
}

// gapPosition computes the position key between the neighbors of index, or
// reports false when the gap is exhausted and a renumber is needed.
func gapPosition(positions []int64, index int) (int64, bool) {
	if index < 0 {
		index = 0
	}
	if index > len(positions) {
		index = len(positions)
	}

	hasBefore, hasAfter := index > 0, index < len(positions)
	switch {
	case !hasBefore && !hasAfter:
		return posGap, true
	case hasBefore && !hasAfter:
		return positions[index-1] + posGap, true
	case !hasBefore && hasAfter:
		if positions[index] > 1 {
			return positions[index] / 2, true
		}
	default:
		if positions[index]-positions[index-1] >= 2 {
			return positions[index-1] + (positions[index]-positions[index-1])/2, true
		}
	}
	return 0, false
}

// positionsAndKeys collects (pos, key) pairs, in order, for a membership or
// order query.
func (s *Store) positionsAndKeys(query string, args ...any) ([]int64, []string, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var positions []int64
	var keys []string
	for rows.Next() {
		var pos int64
		var key string
		if err := rows.Scan(&pos, &key); err != nil {
			return nil, nil, err
		}
		positions = append(positions, pos)
		keys = append(keys, key)
	}
	return positions, keys, rows.Err()
}
