// Package board implements the reconciliation engine for a shared
// trip-planning board: it validates proposed card placements against the
// category compatibility table and structural invariants, applies accepted
// mutations to a DocumentStore, and fires the cascade rules that keep the
// destination slot, trip flights, and itinerary day columns consistent.
//
// Every replica runs its own engine against its local store snapshot; there
// is no central sequencer. The engine therefore never partially applies a
// rejected proposal, and every cascade rule is idempotent so re-firing
// against an already-converged state is harmless.
package board
