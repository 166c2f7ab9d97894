package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Category is the sport a resource is built for
type Category string

const (
	CategorySoccer     Category = "soccer"
	CategoryVolleyball Category = "volleyball"
	CategoryBasketball Category = "basketball"
	CategoryTennis     Category = "tennis"
	CategoryFutsal     Category = "futsal"
	CategorySwimming   Category = "swimming"
	CategoryAthletics  Category = "athletics"
	CategoryGymnastics Category = "gymnastics"
	CategoryOther      Category = "other"
)

// Categories lists every known category
var Categories = []Category{
	CategorySoccer,
	CategoryVolleyball,
	CategoryBasketball,
	CategoryTennis,
	CategoryFutsal,
	CategorySwimming,
	CategoryAthletics,
	CategoryGymnastics,
	CategoryOther,
}

// IsValid returns true for known categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Resource is a bookable court, field or pool inside a venue
type Resource struct {
	ID       int64
	VenueID  int64
	Name     string
	Category Category

	ProfileImage *string
	CoverImage   *string
	Photos       []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ResourceSummary is a resource with derived values and its venue
type ResourceSummary struct {
	Resource
	Venue        Venue
	MinOpenPrice *types.Money
	RatingsCount int
}

// ResourceFilter фильтр списка пространств
type ResourceFilter struct {
	VenueID  *int64
	Name     *string
	Category *Category
}
