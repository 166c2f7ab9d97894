package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Request модели

// CreateVenueRequest запрос на создание центра
type CreateVenueRequest struct {
	Name         string  `json:"name"`
	Description  string  `json:"description"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	City         string  `json:"city"`
	Region       string  `json:"region"` // код штата, например "SP"
	ProfileImage *string `json:"profileImage,omitempty"`
	CoverImage   *string `json:"coverImage,omitempty"`
}

// UpdateVenueRequest запрос на обновление центра
// Все поля опциональны - обновляются только переданные значения
type UpdateVenueRequest struct {
	Name         *string  `json:"name,omitempty"`
	Description  *string  `json:"description,omitempty"`
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	City         *string  `json:"city,omitempty"`
	Region       *string  `json:"region,omitempty"`
	ProfileImage *string  `json:"profileImage,omitempty"`
	CoverImage   *string  `json:"coverImage,omitempty"`
}

// SearchVenuesRequest фильтры поиска центров
type SearchVenuesRequest struct {
	Name     *string
	City     *string
	Region   *string
	Category *string
}

// Response модели

// VenueResponse ответ с данными центра
type VenueResponse struct {
	ID            int64        `json:"id"`
	ManagerID     int64        `json:"managerId"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Latitude      float64      `json:"latitude"`
	Longitude     float64      `json:"longitude"`
	City          string       `json:"city"`
	Region        string       `json:"region"`
	AverageRating float64      `json:"averageRating"`
	RatingsCount  int          `json:"ratingsCount"`
	MinOpenPrice  *types.Money `json:"minOpenPrice,omitempty"`
	ProfileImage  *string      `json:"profileImage,omitempty"`
	CoverImage    *string      `json:"coverImage,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	UpdatedAt     time.Time    `json:"updatedAt"`
}

// ResourceInfo пространство в карточке центра
type ResourceInfo struct {
	ID           int64        `json:"id"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	MinOpenPrice *types.Money `json:"minOpenPrice,omitempty"`
	RatingsCount int          `json:"ratingsCount"`
	ProfileImage *string      `json:"profileImage,omitempty"`
}

// VenueDetailsResponse центр вместе с пространствами
type VenueDetailsResponse struct {
	VenueResponse
	Resources []ResourceInfo `json:"resources"`
}

// VenueListResponse список центров
type VenueListResponse struct {
	Venues []VenueResponse `json:"venues"`
	Total  int             `json:"total"`
}

// FromDomainVenue конвертирует domain.Venue в ответ
func FromDomainVenue(v *domain.Venue) *VenueResponse {
	return &VenueResponse{
		ID:            v.ID,
		ManagerID:     v.ManagerID,
		Name:          v.Name,
		Description:   v.Description,
		Latitude:      v.Latitude,
		Longitude:     v.Longitude,
		City:          v.City,
		Region:        v.Region,
		AverageRating: v.AverageRating,
		ProfileImage:  v.ProfileImage,
		CoverImage:    v.CoverImage,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

// FromDomainSummary конвертирует domain.VenueSummary в ответ
func FromDomainSummary(s *domain.VenueSummary) *VenueResponse {
	resp := FromDomainVenue(&s.Venue)
	resp.MinOpenPrice = s.MinOpenPrice
	resp.RatingsCount = s.RatingsCount
	return resp
}

// FromDomainDetails собирает карточку центра
func FromDomainDetails(s *domain.VenueSummary, resources []*domain.ResourceSummary) *VenueDetailsResponse {
	resp := &VenueDetailsResponse{
		VenueResponse: *FromDomainSummary(s),
		Resources:     make([]ResourceInfo, 0, len(resources)),
	}
	for _, r := range resources {
		resp.Resources = append(resp.Resources, ResourceInfo{
			ID:           r.ID,
			Name:         r.Name,
			Category:     string(r.Category),
			MinOpenPrice: r.MinOpenPrice,
			RatingsCount: r.RatingsCount,
			ProfileImage: r.ProfileImage,
		})
	}
	return resp
}

// FromDomainSummaries конвертирует список центров
func FromDomainSummaries(list []*domain.VenueSummary) *VenueListResponse {
	resp := &VenueListResponse{
		Venues: make([]VenueResponse, 0, len(list)),
		Total:  len(list),
	}
	for _, s := range list {
		resp.Venues = append(resp.Venues, *FromDomainSummary(s))
	}
	return resp
}
