package board

import (
	"time"

	"github.com/outframe/tripboard/pkg/types"
)

// SaveFlights stores the trip flight record, derives the itinerary day
// columns from the trip length, and places the generated flight cards on
// the first and last day. Saving over an existing record never shrinks the
// itinerary; day columns disappear only when the destination is cleared.
//
// Flight cards are the only way flight-category content reaches the board:
// the proposal pipeline rejects every cross-column flight placement, so
// each card stays pinned to the day it was generated into.
func (e *Engine) SaveFlights(actorMayEdit bool, info *types.FlightInfo) (types.Outcome, error) {
	if !actorMayEdit {
		return types.Outcome{Code: types.OutcomePermissionDenied}, nil
	}
	if err := e.store.SetFlightInfo(info); err != nil {
		return types.Outcome{}, err
	}
	days := info.TripLengthDays()
	if err := e.EnsureDayColumns(days); err != nil {
		return types.Outcome{}, err
	}
	if days >= 1 {
		if err := e.placeFlightCard(types.DayColumnID(1), "Outbound flight", info.Outbound); err != nil {
			return types.Outcome{}, err
		}
		last := days
		if last > maxTripDays {
			last = maxTripDays
		}
		if err := e.placeFlightCard(types.DayColumnID(last), "Return flight", info.Return); err != nil {
			return types.Outcome{}, err
		}
	}
	return types.Outcome{Code: types.OutcomeAccepted}, nil
}

// placeFlightCard upserts the generated flight card for one segment. An
// existing flight card with the same title in the column is refreshed in
// place rather than duplicated, so re-saving flights is idempotent.
func (e *Engine) placeFlightCard(columnID, title string, seg types.FlightSegment) error {
	detail := types.FlightDetail{
		Airline:       seg.Airline,
		FlightNumber:  seg.FlightNumber,
		FromAirport:   seg.FromAirport,
		ToAirport:     seg.ToAirport,
		DepartureTime: seg.DepartureTime.Format(time.RFC3339),
		ArrivalTime:   seg.ArrivalTime.Format(time.RFC3339),
		Stopovers:     seg.Stopovers,
	}
	now := time.Now().UTC()

	items, err := e.store.ColumnItems(columnID)
	if err != nil {
		return err
	}
	for _, id := range items {
		card, err := e.store.Card(id)
		if err != nil {
			if err == types.ErrNotFound {
				continue
			}
			return err
		}
		if card.Category == types.CategoryFlight && card.Title == title {
			card.Detail = detail
			card.UpdatedAt = now
			return e.store.SetCard(card)
		}
	}

	card := &types.Card{
		CardID:    newCardID(),
		Category:  types.CategoryFlight,
		Title:     title,
		Detail:    detail,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := e.store.SetCard(card); err != nil {
		return err
	}
	return e.store.InsertItem(columnID, card.CardID, 0)
}

// ClearFlights removes the trip flight record. The itinerary columns stay:
// only the DestinationCleared cascade removes them.
func (e *Engine) ClearFlights(actorMayEdit bool) (types.Outcome, error) {
	if !actorMayEdit {
		return types.Outcome{Code: types.OutcomePermissionDenied}, nil
	}
	if err := e.store.DeleteFlightInfo(); err != nil {
		return types.Outcome{}, err
	}
	return types.Outcome{Code: types.OutcomeAccepted}, nil
}
