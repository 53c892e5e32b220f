package board

import "github.com/outframe/tripboard/pkg/types"

// dayBucketCategories is the admissible set for itinerary day columns.
// Flight cards are listed here but additionally restricted to reordering
// within their own day column; the engine enforces that before this table
// is consulted.
var dayBucketCategories = map[string]bool{
	types.CategoryHotel:     true,
	types.CategoryFood:      true,
	types.CategoryShopping:  true,
	types.CategoryTransport: true,
	types.CategoryTourSpa:   true,
	types.CategoryFlight:    true,
	types.CategoryOther:     true,
}

// IsAdmissible reports whether a card of the given category may be placed
// in a column with the given role. Pure lookup, no state.
func IsAdmissible(role types.Role, category string) bool {
	switch role.Kind {
	case types.RoleSingletonDestination, types.RoleCandidates:
		return category == types.CategoryDestination
	case types.RoleCategoryBucket:
		return category == role.Category
	case types.RoleDayBucket:
		return dayBucketCategories[category]
	case types.RoleInbox:
		return true
	default:
		return false
	}
}
