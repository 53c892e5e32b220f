package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/outframe/tripboard/pkg/types"
)

// FlightInfo returns the trip flight record.
func (s *Store) FlightInfo() (*types.FlightInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var raw string
	err := s.db.QueryRow(`SELECT info_json FROM flight_info WHERE id = 1`).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, types.ErrNotFound
		}
		return nil, fmt.Errorf("getting flight info: %w", err)
	}
	var info types.FlightInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, fmt.Errorf("decoding flight info: %w", err)
	}
	return &info, nil
}

// SetFlightInfo creates or overwrites the trip flight record.
func (s *Store) SetFlightInfo(info *types.FlightInfo) error {
	if info == nil {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding flight info: %w", err)
	}
	if _, err := s.db.Exec(
		`INSERT INTO flight_info (id, info_json) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET info_json = excluded.info_json`,
		string(raw),
	); err != nil {
		return fmt.Errorf("persisting flight info: %w", err)
	}
	return nil
}

// DeleteFlightInfo removes the trip flight record. Idempotent.
func (s *Store) DeleteFlightInfo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`DELETE FROM flight_info WHERE id = 1`); err != nil {
		return fmt.Errorf("deleting flight info: %w", err)
	}
	return nil
}
