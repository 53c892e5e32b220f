package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Role kinds. A column's role decides which categories it admits and which
// structural rules apply to it.
const (
	RoleSingletonDestination = "singleton-destination"
	RoleCategoryBucket       = "single-category-bucket"
	RoleDayBucket            = "day-bucket"
	RoleCandidates           = "candidates"
	RoleInbox                = "inbox"
)

// Well-known column ids. All columns except day-buckets are fixed for the
// lifetime of a board; day-buckets are created and removed only by the
// day-column lifecycle manager.
const (
	ColumnDestinationHeader = "destination-header"
	ColumnCandidates        = "candidates"
	ColumnInbox             = "inbox"
	ColumnPreparation       = "day0" // the always-present preparation bucket
)

// Role describes a column's structural role. Category is set only for
// RoleCategoryBucket; Day is set only for RoleDayBucket (1-based).
type Role struct {
	Kind     string `json:"kind"`
	Category string `json:"category,omitempty"`
	Day      int    `json:"day,omitempty"`
}

// Column is a named, ordered, duplicate-free sequence of card ids with a
// fixed structural role. The membership sequence itself lives in the
// DocumentStore's per-column list; Column carries only identity and role.
type Column struct {
	ColumnID string `json:"column_id"`
	Title    string `json:"title"`
	Role     Role   `json:"role"`
}

// DayColumnID returns the well-known id of the n-th itinerary day column.
func DayColumnID(n int) string {
	return fmt.Sprintf("day%d", n)
}

// ParseDayColumnID returns the day number of a day-bucket column id, or
// (0, false) when id is not a dayN id with N >= 1. "day0" is the fixed
// preparation bucket, not an itinerary day.
func ParseDayColumnID(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "day")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// NewDayColumn returns the Column record for itinerary day n.
func NewDayColumn(n int) *Column {
	return &Column{
		ColumnID: DayColumnID(n),
		Title:    fmt.Sprintf("Day %d", n),
		Role:     Role{Kind: RoleDayBucket, Day: n},
	}
}
