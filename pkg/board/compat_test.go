package board

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outframe/tripboard/pkg/types"
)

func TestIsAdmissible(t *testing.T) {
	destination := types.Role{Kind: types.RoleSingletonDestination}
	candidates := types.Role{Kind: types.RoleCandidates}
	prep := types.Role{Kind: types.RoleCategoryBucket, Category: types.CategoryPreparation}
	day := types.Role{Kind: types.RoleDayBucket, Day: 2}
	inbox := types.Role{Kind: types.RoleInbox}

	tests := []struct {
		name     string
		role     types.Role
		category string
		want     bool
	}{
		{name: "destination slot takes destinations", role: destination, category: types.CategoryDestination, want: true},
		{name: "destination slot rejects food", role: destination, category: types.CategoryFood, want: false},
		{name: "candidates takes destinations", role: candidates, category: types.CategoryDestination, want: true},
		{name: "candidates rejects hotel", role: candidates, category: types.CategoryHotel, want: false},
		{name: "category bucket takes its own category", role: prep, category: types.CategoryPreparation, want: true},
		{name: "category bucket rejects others", role: prep, category: types.CategoryFood, want: false},
		{name: "day bucket takes food", role: day, category: types.CategoryFood, want: true},
		{name: "day bucket takes hotel", role: day, category: types.CategoryHotel, want: true},
		{name: "day bucket takes transport", role: day, category: types.CategoryTransport, want: true},
		{name: "day bucket takes tour/spa", role: day, category: types.CategoryTourSpa, want: true},
		{name: "day bucket takes shopping", role: day, category: types.CategoryShopping, want: true},
		{name: "day bucket takes other", role: day, category: types.CategoryOther, want: true},
		{name: "day bucket rejects destination", role: day, category: types.CategoryDestination, want: false},
		{name: "day bucket rejects preparation", role: day, category: types.CategoryPreparation, want: false},
		{name: "inbox takes anything", role: inbox, category: types.CategoryShopping, want: true},
		{name: "inbox takes destinations", role: inbox, category: types.CategoryDestination, want: true},
		{name: "unknown role rejects everything", role: types.Role{Kind: "mystery"}, category: types.CategoryFood, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAdmissible(tt.role, tt.category))
		})
	}
}
