package types

// Outcome codes returned by the reconciliation engine for a proposal.
// Every validation failure is detected before any store mutation, so a
// non-accepted outcome guarantees zero board changes.
const (
	// OutcomeAccepted means the proposal was applied to the store.
	OutcomeAccepted = "accepted"

	// OutcomeNoOp means source and target resolved to the same position;
	// the proposal was accepted without touching the store.
	OutcomeNoOp = "no-op"

	// OutcomePermissionDenied means the actor lacks edit rights. Terminal.
	OutcomePermissionDenied = "permission-denied"

	// OutcomeCategoryMismatch means the card's category is not admissible
	// in the target column's role. Terminal, user-facing.
	OutcomeCategoryMismatch = "category-mismatch"

	// OutcomeImmutableCategory means a flight card was proposed for any
	// column other than its own day-bucket. Terminal, user-facing.
	OutcomeImmutableCategory = "immutable-category"

	// OutcomeRequiresConfirmation is a control-flow signal, not a failure:
	// replacing the destination while flights are saved must be re-invoked
	// through the confirmed-replace path.
	OutcomeRequiresConfirmation = "requires-confirmation"

	// OutcomeDuplicateCandidate means a materialized catalog entry already
	// has an indistinguishable twin in the candidates column. Terminal.
	OutcomeDuplicateCandidate = "duplicate-candidate"
)

// Change kinds recorded in an accepted outcome, for observability.
const (
	ChangeCardCreated    = "card-created"
	ChangeCardDeleted    = "card-deleted"
	ChangeCardUpdated    = "card-updated"
	ChangeItemInserted   = "item-inserted"
	ChangeItemRemoved    = "item-removed"
	ChangeColumnCreated  = "column-created"
	ChangeColumnDeleted  = "column-deleted"
	ChangeFlightsDeleted = "flights-deleted"
)

// Change describes one structural mutation applied by an accepted proposal.
type Change struct {
	Kind     string `json:"kind"`
	CardID   string `json:"card_id,omitempty"`
	ColumnID string `json:"column_id,omitempty"`
	Index    int    `json:"index,omitempty"`
}

// Outcome is the engine's decision for a single proposal.
type Outcome struct {
	Code string `json:"code"`

	// CardID is the id the placement acted on. For materialize-then-place
	// this is the freshly generated owned card id, not the catalog ref.
	CardID string `json:"card_id,omitempty"`

	// Changes lists every structural mutation applied, in application
	// order. Empty for every code except OutcomeAccepted.
	Changes []Change `json:"changes,omitempty"`
}

// Accepted reports whether the proposal mutated the board.
func (o Outcome) Accepted() bool { return o.Code == OutcomeAccepted }
