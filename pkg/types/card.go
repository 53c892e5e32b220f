package types

import "time"

// Card categories. Every card carries exactly one category, fixed at
// creation; the category decides which columns may hold the card.
const (
	CategoryDestination = "destination"
	CategoryFlight      = "flight"
	CategoryHotel       = "hotel"
	CategoryFood        = "food"
	CategoryShopping    = "shopping"
	CategoryTransport   = "transport"
	CategoryPreparation = "preparation"
	CategoryTourSpa     = "tour-spa"
	CategoryOther       = "other"
)

// validCategories is the set of recognized card categories.
var validCategories = map[string]bool{
	CategoryDestination: true,
	CategoryFlight:      true,
	CategoryHotel:       true,
	CategoryFood:        true,
	CategoryShopping:    true,
	CategoryTransport:   true,
	CategoryPreparation: true,
	CategoryTourSpa:     true,
	CategoryOther:       true,
}

// ValidCategory reports whether category is one of the Category constants.
func ValidCategory(category string) bool {
	return validCategories[category]
}

// CatalogPrefix marks a card id as a reference into a read-only catalog
// rather than a board-owned card. Proposing such an id triggers
// materialize-then-place: the engine copies the catalog entry into a new
// owned card with a fresh id before placing it.
const CatalogPrefix = "catalog/"

// EntryRequirementsCardID is the well-known id of the built-in note card
// whose text is populated when a destination is set and cleared when the
// destination is removed. The card itself is never deleted.
const EntryRequirementsCardID = "entry-requirements"

// Schedule is an optional date/time pair attached to a card.
type Schedule struct {
	Date  string `json:"date,omitempty"`  // YYYY-MM-DD
	Start string `json:"start,omitempty"` // HH:MM, local to the destination
	End   string `json:"end,omitempty"`
}

// Card represents a single trip item on the board.
type Card struct {
	CardID        string          // UUID v7, generated on creation.
	Category      string          // One of the Category constants.
	Title         string          // Human-readable title (required, non-empty).
	Note          string          // Free-form text notes.
	Schedule      *Schedule       // Optional scheduled date/time.
	Votes         map[string]bool // Member ids that voted for this card.
	IsUserCreated bool            // False for built-in sample content, which cannot be deleted.
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Detail        Detail // Category-specific payload; nil is valid.
}

// Detail is the closed set of category-specific card payloads. Exactly one
// concrete type exists per payload shape; the unexported method keeps the
// set closed so the compatibility table can be checked exhaustively.
type Detail interface {
	detailCategory() string
}

// DestinationDetail is the payload of a destination card.
type DestinationDetail struct {
	Country   string  `json:"country,omitempty"`
	Region    string  `json:"region,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

func (DestinationDetail) detailCategory() string { return CategoryDestination }

// FlightDetail is the payload of a flight card placed in a day-bucket.
type FlightDetail struct {
	Airline       string   `json:"airline,omitempty"`
	FlightNumber  string   `json:"flight_number,omitempty"`
	FromAirport   string   `json:"from_airport,omitempty"`
	ToAirport     string   `json:"to_airport,omitempty"`
	DepartureTime string   `json:"departure_time,omitempty"` // RFC 3339
	ArrivalTime   string   `json:"arrival_time,omitempty"`
	Stopovers     []string `json:"stopovers,omitempty"`
}

func (FlightDetail) detailCategory() string { return CategoryFlight }

// HotelDetail is the payload of a hotel card.
type HotelDetail struct {
	Address  string `json:"address,omitempty"`
	CheckIn  string `json:"check_in,omitempty"`
	CheckOut string `json:"check_out,omitempty"`
}

func (HotelDetail) detailCategory() string { return CategoryHotel }

// PlaceDetail is the shared payload of food, shopping, transport, tour-spa
// and other cards: a point of interest with optional coordinates.
type PlaceDetail struct {
	Address   string  `json:"address,omitempty"`
	Latitude  float64 `json:"latitude,omitempty"`
	Longitude float64 `json:"longitude,omitempty"`
}

func (PlaceDetail) detailCategory() string { return CategoryOther }

// NoteDetail is the payload of a preparation card: checklist-style text.
type NoteDetail struct {
	Checklist []string `json:"checklist,omitempty"`
}

func (NoteDetail) detailCategory() string { return CategoryPreparation }

// ToggleVote flips member's vote on the card. Adding a vote for a member
// who already voted removes it.
func (c *Card) ToggleVote(memberID string) {
	if c.Votes == nil {
		c.Votes = make(map[string]bool)
	}
	if c.Votes[memberID] {
		delete(c.Votes, memberID)
	} else {
		c.Votes[memberID] = true
	}
	c.UpdatedAt = time.Now().UTC()
}

// ScheduledDate returns the card's scheduled date, or "" when the card has
// no schedule. Two cards with no schedule compare as equal dates.
func (c *Card) ScheduledDate() string {
	if c.Schedule == nil {
		return ""
	}
	return c.Schedule.Date
}
