package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Venue is a sports complex owned by a manager
type Venue struct {
	ID            int64
	ManagerID     int64
	Name          string
	Description   string
	Latitude      float64
	Longitude     float64
	City          string
	Region        string
	AverageRating float64

	ProfileImage *string
	CoverImage   *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// VenueSummary is a venue with values derived from its resources and reservations
type VenueSummary struct {
	Venue
	MinOpenPrice *types.Money // lowest price among open slots, nil if none
	RatingsCount int          // reservations with at least one score
}

// VenueFilter фильтр поиска центров
type VenueFilter struct {
	Name      *string   // подстрока, без учета регистра
	City      *string   // подстрока, без учета регистра
	Region    *string   // точное совпадение, без учета регистра
	Category  *Category // есть хотя бы одно пространство этой категории
	ManagerID *int64
}
