package board

import "github.com/outframe/tripboard/pkg/types"

// maxTripDays bounds the number of itinerary day columns a single trip can
// derive from its flight dates.
const maxTripDays = 30

// EnsureDayColumns creates itinerary day columns day1..dayN so they exist
// for a trip of tripLengthDays whole days. Each new column is inserted into
// the display order immediately after the previous day column (or after the
// day0 preparation bucket for day1), keeping day columns contiguous and
// numerically ordered. Existing columns are never removed here (deletion
// only happens through the DestinationCleared cascade), so the call is
// idempotent and never shrinks the itinerary.
func (e *Engine) EnsureDayColumns(tripLengthDays int) error {
	if tripLengthDays <= 0 {
		return nil
	}
	if tripLengthDays > maxTripDays {
		tripLengthDays = maxTripDays
	}

	for day := 1; day <= tripLengthDays; day++ {
		id := types.DayColumnID(day)
		if _, err := e.store.Column(id); err == nil {
			continue
		} else if err != types.ErrNotFound {
			return err
		}

		if err := e.store.PutColumn(types.NewDayColumn(day)); err != nil {
			return err
		}

		order, err := e.store.ColumnOrder()
		if err != nil {
			return err
		}
		prev := types.DayColumnID(day - 1)
		if day == 1 {
			prev = types.ColumnPreparation
		}
		at := len(order)
		for i, colID := range order {
			if colID == prev {
				at = i + 1
				break
			}
		}
		if err := e.store.InsertColumnAt(id, at); err != nil {
			return err
		}
	}
	return nil
}
