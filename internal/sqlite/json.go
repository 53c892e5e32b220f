package sqlite

import (
	"encoding/json"
	"fmt"

	"github.com/outframe/tripboard/pkg/types"
)

// Detail kind tags persisted in detail_json. One tag per concrete payload
// type, so decoding stays exhaustive over the closed Detail set.
const (
	detailKindDestination = "destination"
	detailKindFlight      = "flight"
	detailKindHotel       = "hotel"
	detailKindPlace       = "place"
	detailKindNote        = "note"
)

// taggedDetail is the persisted envelope for a card's Detail payload.
type taggedDetail struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// encodeDetail marshals a Detail payload to its tagged JSON form.
// A nil detail encodes to the empty string (stored as NULL).
func encodeDetail(d types.Detail) (string, error) {
	if d == nil {
		return "", nil
	}
	var kind string
	switch d.(type) {
	case types.DestinationDetail:
		kind = detailKindDestination
	case types.FlightDetail:
		kind = detailKindFlight
	case types.HotelDetail:
		kind = detailKindHotel
	case types.PlaceDetail:
		kind = detailKindPlace
	case types.NoteDetail:
		kind = detailKindNote
	default:
		return "", fmt.Errorf("unknown detail type %T", d)
	}
	payload, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	out, err := json.Marshal(taggedDetail{Kind: kind, Payload: payload})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// decodeDetail unmarshals a tagged JSON detail back into its concrete type.
func decodeDetail(raw string) (types.Detail, error) {
	if raw == "" {
		return nil, nil
	}
	var env taggedDetail
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, err
	}
	switch env.Kind {
	case detailKindDestination:
		var d types.DestinationDetail
		return d, json.Unmarshal(env.Payload, &d)
	case detailKindFlight:
		var d types.FlightDetail
		return d, json.Unmarshal(env.Payload, &d)
	case detailKindHotel:
		var d types.HotelDetail
		return d, json.Unmarshal(env.Payload, &d)
	case detailKindPlace:
		var d types.PlaceDetail
		return d, json.Unmarshal(env.Payload, &d)
	case detailKindNote:
		var d types.NoteDetail
		return d, json.Unmarshal(env.Payload, &d)
	default:
		return nil, fmt.Errorf("unknown detail kind %q", env.Kind)
	}
}

// encodeJSON marshals v, mapping nil-ish values to "" for NULL storage.
func encodeJSON(v any) (string, error) {
	if v == nil {
		return "", nil
	}
	out, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(out), nil
}
