package types

import "time"

// FlightSegment is one leg of the trip's booked flights.
type FlightSegment struct {
	Airline       string    `json:"airline,omitempty"`
	FlightNumber  string    `json:"flight_number,omitempty"`
	FromAirport   string    `json:"from_airport"`
	ToAirport     string    `json:"to_airport"`
	DepartureTime time.Time `json:"departure_time"`
	ArrivalTime   time.Time `json:"arrival_time"`
	Stopovers     []string  `json:"stopovers,omitempty"`
}

// FlightInfo is the optional singleton record describing the trip's booked
// flights. While present, the destination column is change-guarded and the
// itinerary day columns are derived from the trip length.
type FlightInfo struct {
	Outbound FlightSegment `json:"outbound"`
	Return   FlightSegment `json:"return"`
}

// TripLengthDays returns the trip length in whole days, derived from the
// outbound departure and return departure calendar dates. A same-day round
// trip counts as one day; an inverted or zero range yields 0.
func (f *FlightInfo) TripLengthDays() int {
	out := f.Outbound.DepartureTime
	ret := f.Return.DepartureTime
	if out.IsZero() || ret.IsZero() {
		return 0
	}
	outDay := time.Date(out.Year(), out.Month(), out.Day(), 0, 0, 0, 0, time.UTC)
	retDay := time.Date(ret.Year(), ret.Month(), ret.Day(), 0, 0, 0, 0, time.UTC)
	if retDay.Before(outDay) {
		return 0
	}
	return int(retDay.Sub(outDay).Hours()/24) + 1
}
