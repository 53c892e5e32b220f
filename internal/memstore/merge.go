package memstore

// Merge folds another replica's state into this store. Records and list
// entries merge per last-writer-wins stamp; tombstones win over equal-aged
// live values only through their stamp, never specially. Merge is
// commutative and idempotent: merging the same remote state twice, or
// merging two replicas in either order, converges to the same board.
func (s *Store) Merge(remote *Store) {
	if remote == nil || remote == s {
		return
	}
	// Lock order by actor id so two replicas merging into each other
	// concurrently cannot deadlock.
	first, second := s, remote
	if remote.actor < s.actor {
		first, second = remote, s
	}
	first.mu.Lock()
	defer first.mu.Unlock()
	second.mu.Lock()
	defer second.mu.Unlock()

	for id, rec := range remote.cards {
		local, ok := s.cards[id]
		if !ok || rec.at.after(local.at) {
			cp := *rec
			cp.card = cloneCard(rec.card)
			s.cards[id] = &cp
		}
	}

	for id, rec := range remote.cols {
		local, ok := s.cols[id]
		if !ok || rec.at.after(local.at) {
			cp := *rec
			if rec.column != nil {
				col := *rec.column
				cp.column = &col
			}
			s.cols[id] = &cp
		}
	}

	for id, list := range remote.items {
		local, ok := s.items[id]
		if !ok {
			local = &orderedList{}
			s.items[id] = local
		}
		local.merge(list)
	}

	s.order.merge(&remote.order)

	if remote.flight != nil {
		if s.flight == nil || remote.flight.at.after(s.flight.at) {
			cp := *remote.flight
			if remote.flight.info != nil {
				info := *remote.flight.info
				cp.info = &info
			}
			s.flight = &cp
		}
	}

	// Lamport receive rule keeps later local writes after merged ones.
	if remote.clock > s.clock {
		s.clock = remote.clock
	}
}

// merge folds remote entries into the list, newest stamp per id winning.
func (l *orderedList) merge(remote *orderedList) {
	byID := make(map[string]int, len(l.entries))
	for i, e := range l.entries {
		byID[e.id] = i
	}
	for _, re := range remote.entries {
		if i, ok := byID[re.id]; ok {
			if re.at.after(l.entries[i].at) {
				l.entries[i] = re
			}
			continue
		}
		l.entries = append(l.entries, re)
	}
	l.sortEntries()
}
