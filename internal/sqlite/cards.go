package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/outframe/tripboard/pkg/types"
)

// Card returns the card with the given id.
func (s *Store) Card(id string) (*types.Card, error) {
	if id == "" {
		return nil, types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.db.QueryRow(
		`SELECT card_id, category, title, note, schedule_json, votes_json,
		        is_user_created, detail_json, created_at, updated_at
		 FROM cards WHERE card_id = ?`, id)
	card, err := hydrateCard(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting card %s: %w", id, err)
	}
	return card, nil
}

// SetCard creates or overwrites a card record.
func (s *Store) SetCard(card *types.Card) error {
	if card == nil || card.CardID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	scheduleJSON := ""
	var err error
	if card.Schedule != nil {
		scheduleJSON, err = encodeJSON(card.Schedule)
		if err != nil {
			return fmt.Errorf("encoding schedule: %w", err)
		}
	}
	votesJSON := ""
	if len(card.Votes) > 0 {
		votesJSON, err = encodeJSON(card.Votes)
		if err != nil {
			return fmt.Errorf("encoding votes: %w", err)
		}
	}
	detailJSON, err := encodeDetail(card.Detail)
	if err != nil {
		return fmt.Errorf("encoding detail: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO cards (card_id, category, title, note, schedule_json, votes_json,
		                    is_user_created, detail_json, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (card_id) DO UPDATE SET
		   category = excluded.category,
		   title = excluded.title,
		   note = excluded.note,
		   schedule_json = excluded.schedule_json,
		   votes_json = excluded.votes_json,
		   is_user_created = excluded.is_user_created,
		   detail_json = excluded.detail_json,
		   updated_at = excluded.updated_at`,
		card.CardID, card.Category, card.Title, card.Note,
		nullable(scheduleJSON), nullable(votesJSON),
		boolToInt(card.IsUserCreated), nullable(detailJSON),
		card.CreatedAt.UTC().Format(time.RFC3339Nano),
		card.UpdatedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("persisting card %s: %w", card.CardID, err)
	}
	return nil
}

// DeleteCard removes a card record. Deleting an absent card is a no-op.
func (s *Store) DeleteCard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM cards WHERE card_id = ?`, id); err != nil {
		return fmt.Errorf("deleting card %s: %w", id, err)
	}
	return nil
}

// Cards returns every card record.
func (s *Store) Cards() ([]*types.Card, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(
		`SELECT card_id, category, title, note, schedule_json, votes_json,
		        is_user_created, detail_json, created_at, updated_at
		 FROM cards`)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}
	defer rows.Close()

	var out []*types.Card
	for rows.Next() {
		card, err := hydrateCard(rows)
		if err != nil {
			return nil, fmt.Errorf("hydrating card: %w", err)
		}
		out = append(out, card)
	}
	return out, rows.Err()
}

// rowScanner covers *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// hydrateCard scans one cards row into a Card.
func hydrateCard(row rowScanner) (*types.Card, error) {
	var (
		card                                types.Card
		scheduleJSON, votesJSON, detailJSON sql.NullString
		isUserCreated                       int
		createdAt, updatedAt                string
	)
	err := row.Scan(&card.CardID, &card.Category, &card.Title, &card.Note,
		&scheduleJSON, &votesJSON, &isUserCreated, &detailJSON,
		&createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	card.IsUserCreated = isUserCreated != 0
	if scheduleJSON.Valid && scheduleJSON.String != "" {
		var sched types.Schedule
		if err := json.Unmarshal([]byte(scheduleJSON.String), &sched); err != nil {
			return nil, fmt.Errorf("decoding schedule: %w", err)
		}
		card.Schedule = &sched
	}
	if votesJSON.Valid && votesJSON.String != "" {
		if err := json.Unmarshal([]byte(votesJSON.String), &card.Votes); err != nil {
			return nil, fmt.Errorf("decoding votes: %w", err)
		}
	}
	if detailJSON.Valid {
		card.Detail, err = decodeDetail(detailJSON.String)
		if err != nil {
			return nil, fmt.Errorf("decoding detail: %w", err)
		}
	}
	if card.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if card.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &card, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
