// Package memstore implements an in-memory DocumentStore with convergent
// merge semantics: last-writer-wins stamps on every record and sparse
// position keys with tombstones on every ordered list, so that two replicas
// which exchange state reach the same board regardless of merge order.
package memstore

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/outframe/tripboard/pkg/types"
)

// Compile-time interface check: Store must implement DocumentStore.
var _ types.DocumentStore = (*Store)(nil)

// Position keys are spaced by posGap so inserts between neighbors can
// usually pick a midpoint without renumbering.
const posGap = 1024

// stamp orders concurrent writes: higher counter wins, with the actor id
// breaking ties so all replicas agree.
type stamp struct {
	counter uint64
	actor   string
}

func (s stamp) after(o stamp) bool {
	if s.counter != o.counter {
		return s.counter > o.counter
	}
	return s.actor > o.actor
}

// cardRecord is a card value with its write stamp. Deleted records remain
// as tombstones so a concurrent stale write cannot resurrect them silently.
type cardRecord struct {
	card    *types.Card
	deleted bool
	at      stamp
}

type columnRecord struct {
	column  *types.Column
	deleted bool
	at      stamp
}

type flightRecord struct {
	info    *types.FlightInfo
	deleted bool
	at      stamp
}

// listEntry is one membership slot in an ordered list. Live entries are
// ordered by (pos, id); removed entries stay as tombstones.
type listEntry struct {
	id      string
	pos     int64
	deleted bool
	at      stamp
}

type orderedList struct {
	entries []listEntry
}

// Store is an in-memory DocumentStore. It is safe for concurrent use by a
// single process; cross-replica convergence happens through Merge.
type Store struct {
	mu     sync.RWMutex
	actor  string
	clock  uint64
	cards  map[string]*cardRecord
	cols   map[string]*columnRecord
	items  map[string]*orderedList // column id -> membership list
	order  orderedList             // column display order
	flight *flightRecord
}

// New creates an empty in-memory store. The actor id seeds last-writer-wins
// tiebreaks; pass "" to generate one.
func New(actor string) *Store {
	if actor == "" {
		actor = uuid.New().String()
	}
	return &Store{
		actor: actor,
		cards: make(map[string]*cardRecord),
		cols:  make(map[string]*columnRecord),
		items: make(map[string]*orderedList),
	}
}

// tick advances the lamport clock and returns a fresh stamp.
// The caller must hold s.mu.
func (s *Store) tick() stamp {
	s.clock++
	return stamp{counter: s.clock, actor: s.actor}
}

// Card returns a copy of the card with the given id.
func (s *Store) Card(id string) (*types.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.cards[id]
	if !ok || rec.deleted {
		return nil, types.ErrNotFound
	}
	return cloneCard(rec.card), nil
}

// SetCard creates or overwrites a card record.
func (s *Store) SetCard(card *types.Card) error {
	if card == nil || card.CardID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cards[card.CardID] = &cardRecord{card: cloneCard(card), at: s.tick()}
	return nil
}

// DeleteCard tombstones a card record. Deleting an absent card is a no-op.
func (s *Store) DeleteCard(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.cards[id]
	if !ok || rec.deleted {
		return nil
	}
	rec.card = nil
	rec.deleted = true
	rec.at = s.tick()
	return nil
}

// Cards returns a copy of every live card record.
func (s *Store) Cards() ([]*types.Card, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Card, 0, len(s.cards))
	for _, rec := range s.cards {
		if !rec.deleted {
			out = append(out, cloneCard(rec.card))
		}
	}
	return out, nil
}

// Column returns a copy of the column record with the given id.
func (s *Store) Column(id string) (*types.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.cols[id]
	if !ok || rec.deleted {
		return nil, types.ErrNotFound
	}
	col := *rec.column
	return &col, nil
}

// PutColumn creates or overwrites a column record. A new column starts with
// an empty membership list.
func (s *Store) PutColumn(col *types.Column) error {
	if col == nil || col.ColumnID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *col
	s.cols[col.ColumnID] = &columnRecord{column: &c, at: s.tick()}
	if _, ok := s.items[col.ColumnID]; !ok {
		s.items[col.ColumnID] = &orderedList{}
	}
	return nil
}

// DeleteColumn tombstones a column record and drops its membership list.
func (s *Store) DeleteColumn(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.cols[id]
	if !ok || rec.deleted {
		return nil
	}
	rec.column = nil
	rec.deleted = true
	rec.at = s.tick()
	if list, ok := s.items[id]; ok {
		at := s.tick()
		for i := range list.entries {
			if !list.entries[i].deleted {
				list.entries[i].deleted = true
				list.entries[i].at = at
			}
		}
	}
	return nil
}

// Columns returns a copy of every live column record.
func (s *Store) Columns() ([]*types.Column, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*types.Column, 0, len(s.cols))
	for _, rec := range s.cols {
		if !rec.deleted {
			col := *rec.column
			out = append(out, &col)
		}
	}
	return out, nil
}

// ColumnItems returns the ordered live card ids held by a column.
func (s *Store) ColumnItems(columnID string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if rec, ok := s.cols[columnID]; !ok || rec.deleted {
		return nil, types.ErrNotFound
	}
	list, ok := s.items[columnID]
	if !ok {
		return nil, types.ErrNotFound
	}
	return list.liveIDs(), nil
}

// InsertItem inserts cardID into the column's sequence at index.
func (s *Store) InsertItem(columnID, cardID string, index int) error {
	if cardID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec, ok := s.cols[columnID]; !ok || rec.deleted {
		return types.ErrNotFound
	}
	list := s.items[columnID]
	if list == nil {
		list = &orderedList{}
		s.items[columnID] = list
	}
	return list.insert(cardID, index, s.tick())
}

// RemoveItem removes cardID from the column's sequence.
func (s *Store) RemoveItem(columnID, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, ok := s.items[columnID]
	if !ok {
		return nil
	}
	list.remove(cardID, s.tick())
	return nil
}

// ColumnOrder returns the board's live column display order.
func (s *Store) ColumnOrder() ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order.liveIDs(), nil
}

// InsertColumnAt inserts columnID into the display order at index.
func (s *Store) InsertColumnAt(columnID string, index int) error {
	if columnID == "" {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.order.insert(columnID, index, s.tick()); err != nil {
		// Reinserting an id already in the order is a no-op.
		if err == types.ErrDuplicateItem {
			return nil
		}
		return err
	}
	return nil
}

// RemoveColumnFromOrder removes columnID from the display order.
func (s *Store) RemoveColumnFromOrder(columnID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order.remove(columnID, s.tick())
	return nil
}

// FlightInfo returns a copy of the trip flight record.
func (s *Store) FlightInfo() (*types.FlightInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.flight == nil || s.flight.deleted {
		return nil, types.ErrNotFound
	}
	info := *s.flight.info
	return &info, nil
}

// SetFlightInfo creates or overwrites the trip flight record.
func (s *Store) SetFlightInfo(info *types.FlightInfo) error {
	if info == nil {
		return types.ErrInvalidID
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	v := *info
	s.flight = &flightRecord{info: &v, at: s.tick()}
	return nil
}

// DeleteFlightInfo tombstones the trip flight record. Idempotent.
func (s *Store) DeleteFlightInfo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flight == nil || s.flight.deleted {
		return nil
	}
	s.flight.info = nil
	s.flight.deleted = true
	s.flight.at = s.tick()
	return nil
}

// liveIDs returns the ids of live entries in (pos, id) order.
func (l *orderedList) liveIDs() []string {
	out := make([]string, 0, len(l.entries))
	for _, e := range l.entries {
		if !e.deleted {
			out = append(out, e.id)
		}
	}
	return out
}

// insert places id at index among the live entries, clamped to [0, len].
// The position key is chosen between the live neighbors; when the gap is
// exhausted all live entries are renumbered first.
func (l *orderedList) insert(id string, index int, at stamp) error {
	for i := range l.entries {
		if l.entries[i].id == id {
			if l.entries[i].deleted {
				// Reinsert over a tombstone: revive at the requested spot.
				l.entries = append(l.entries[:i], l.entries[i+1:]...)
				break
			}
			return types.ErrDuplicateItem
		}
	}

	live := l.liveIndexes()
	if index < 0 {
		index = 0
	}
	if index > len(live) {
		index = len(live)
	}

	var before, after int64
	hasBefore, hasAfter := index > 0, index < len(live)
	if hasBefore {
		before = l.entries[live[index-1]].pos
	}
	if hasAfter {
		after = l.entries[live[index]].pos
	}

	var pos int64
	switch {
	case !hasBefore && !hasAfter:
		pos = posGap
	case hasBefore && !hasAfter:
		pos = before + posGap
	case !hasBefore && hasAfter:
		pos = after - posGap
	default:
		if after-before < 2 {
			l.renumber(at)
			return l.insert(id, index, at)
		}
		pos = before + (after-before)/2
	}

	l.entries = append(l.entries, listEntry{id: id, pos: pos, at: at})
	l.sortEntries()
	return nil
}

func (l *orderedList) remove(id string, at stamp) {
	for i := range l.entries {
		if l.entries[i].id == id && !l.entries[i].deleted {
			l.entries[i].deleted = true
			l.entries[i].at = at
			return
		}
	}
}

// renumber respaces live entries by posGap, preserving relative order.
func (l *orderedList) renumber(at stamp) {
	pos := int64(posGap)
	for _, i := range l.liveIndexes() {
		l.entries[i].pos = pos
		l.entries[i].at = at
		pos += posGap
	}
}

func (l *orderedList) liveIndexes() []int {
	out := make([]int, 0, len(l.entries))
	for i, e := range l.entries {
		if !e.deleted {
			out = append(out, i)
		}
	}
	return out
}

func (l *orderedList) sortEntries() {
	sort.SliceStable(l.entries, func(i, j int) bool {
		if l.entries[i].pos != l.entries[j].pos {
			return l.entries[i].pos < l.entries[j].pos
		}
		return l.entries[i].id < l.entries[j].id
	})
}

func cloneCard(c *types.Card) *types.Card {
	if c == nil {
		return nil
	}
	out := *c
	if c.Schedule != nil {
		sched := *c.Schedule
		out.Schedule = &sched
	}
	if c.Votes != nil {
		out.Votes = make(map[string]bool, len(c.Votes))
		for k, v := range c.Votes {
			out.Votes[k] = v
		}
	}
	return &out
}
