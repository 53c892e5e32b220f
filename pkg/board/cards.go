package board

import (
	"fmt"
	"time"

	"github.com/outframe/tripboard/pkg/types"
)

// CreateCard creates a user-owned card and places it in the target column,
// appending when targetIndex is nil. The placement runs through the same
// validation pipeline as any proposal, so an inadmissible target rejects
// the creation with zero effects.
func (e *Engine) CreateCard(actorMayEdit bool, card *types.Card, targetColumnID string, targetIndex *int) (types.Outcome, error) {
	if !actorMayEdit {
		return types.Outcome{Code: types.OutcomePermissionDenied}, nil
	}
	if !types.ValidCategory(card.Category) {
		return types.Outcome{}, fmt.Errorf("category %q: %w", card.Category, types.ErrInvalidCategory)
	}
	if card.Title == "" {
		return types.Outcome{}, types.ErrInvalidTitle
	}

	now := time.Now().UTC()
	card.CardID = newCardID()
	card.IsUserCreated = true
	card.CreatedAt = now
	card.UpdatedAt = now

	// Stage the card, then drive the placement through the pipeline. If
	// validation rejects the target the staged record is removed again,
	// leaving the board unchanged.
	if err := e.store.SetCard(card); err != nil {
		return types.Outcome{}, err
	}
	outcome, err := e.Propose(Proposal{
		ActorMayEdit:   true,
		CardID:         card.CardID,
		TargetColumnID: targetColumnID,
		TargetIndex:    targetIndex,
	})
	if err != nil || !outcome.Accepted() {
		if derr := e.store.DeleteCard(card.CardID); derr != nil && err == nil {
			err = derr
		}
		return outcome, err
	}
	outcome.Changes = append([]types.Change{{Kind: types.ChangeCardCreated, CardID: card.CardID}}, outcome.Changes...)
	return outcome, nil
}

// Delete removes a user-created card from the board: its membership first,
// then its record. Built-in sample content is protected by the
// IsUserCreated flag. Deleting the current destination occupant fires the
// DestinationCleared cascade.
func (e *Engine) Delete(actorMayEdit bool, cardID string) (types.Outcome, error) {
	if !actorMayEdit {
		return types.Outcome{Code: types.OutcomePermissionDenied}, nil
	}
	card, err := e.store.Card(cardID)
	if err != nil {
		return types.Outcome{}, fmt.Errorf("card %s: %w", cardID, err)
	}
	if !card.IsUserCreated {
		return types.Outcome{}, types.ErrBuiltinCard
	}

	owner, _, err := e.locateSource(Proposal{CardID: cardID})
	if err != nil {
		return types.Outcome{}, err
	}

	var changes []types.Change
	if owner != nil {
		if err := e.store.RemoveItem(owner.ColumnID, cardID); err != nil {
			return types.Outcome{}, err
		}
		changes = append(changes, types.Change{Kind: types.ChangeItemRemoved, CardID: cardID, ColumnID: owner.ColumnID})
	}
	if err := e.store.DeleteCard(cardID); err != nil {
		return types.Outcome{}, err
	}
	changes = append(changes, types.Change{Kind: types.ChangeCardDeleted, CardID: cardID})

	if owner != nil && owner.Role.Kind == types.RoleSingletonDestination {
		cascade, err := e.destinationCleared()
		if err != nil {
			return types.Outcome{}, err
		}
		changes = append(changes, cascade...)
	}

	return types.Outcome{Code: types.OutcomeAccepted, CardID: cardID, Changes: changes}, nil
}

// ToggleVote flips memberID's vote on a card. The vote set is a per-card
// last-writer-wins field; concurrent toggles by different members touch
// different keys and converge.
func (e *Engine) ToggleVote(actorMayEdit bool, cardID, memberID string) (types.Outcome, error) {
	if !actorMayEdit {
		return types.Outcome{Code: types.OutcomePermissionDenied}, nil
	}
	card, err := e.store.Card(cardID)
	if err != nil {
		return types.Outcome{}, fmt.Errorf("card %s: %w", cardID, err)
	}
	card.ToggleVote(memberID)
	if err := e.store.SetCard(card); err != nil {
		return types.Outcome{}, err
	}
	return types.Outcome{
		Code:    types.OutcomeAccepted,
		CardID:  cardID,
		Changes: []types.Change{{Kind: types.ChangeCardUpdated, CardID: cardID}},
	}, nil
}
