package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Request модели

// CreateResourceRequest запрос на создание пространства
type CreateResourceRequest struct {
	VenueID      int64    `json:"venueId"`
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	ProfileImage *string  `json:"profileImage,omitempty"`
	CoverImage   *string  `json:"coverImage,omitempty"`
	Photos       []string `json:"photos,omitempty"`
}

// UpdateResourceRequest запрос на обновление пространства
// Все поля опциональны - обновляются только переданные значения
type UpdateResourceRequest struct {
	Name         *string   `json:"name,omitempty"`
	Category     *string   `json:"category,omitempty"`
	ProfileImage *string   `json:"profileImage,omitempty"`
	CoverImage   *string   `json:"coverImage,omitempty"`
	Photos       *[]string `json:"photos,omitempty"`
}

// ListResourcesRequest фильтры списка пространств
type ListResourcesRequest struct {
	VenueID  *int64
	Name     *string
	Category *string
}

// Response модели

// VenueInfo центр пространства
type VenueInfo struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	City          string  `json:"city"`
	Region        string  `json:"region"`
	AverageRating float64 `json:"averageRating"`
}

// ResourceResponse ответ с данными пространства
type ResourceResponse struct {
	ID           int64        `json:"id"`
	VenueID      int64        `json:"venueId"`
	Name         string       `json:"name"`
	Category     string       `json:"category"`
	ProfileImage *string      `json:"profileImage,omitempty"`
	CoverImage   *string      `json:"coverImage,omitempty"`
	Photos       []string     `json:"photos"`
	MinOpenPrice *types.Money `json:"minOpenPrice,omitempty"`
	RatingsCount int          `json:"ratingsCount"`
	Venue        *VenueInfo   `json:"venue,omitempty"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// ResourceListResponse список пространств
type ResourceListResponse struct {
	Resources []ResourceResponse `json:"resources"`
	Total     int                `json:"total"`
}

// FromDomainResource конвертирует domain.Resource в ответ
func FromDomainResource(r *domain.Resource) *ResourceResponse {
	photos := r.Photos
	if photos == nil {
		photos = []string{}
	}
	return &ResourceResponse{
		ID:           r.ID,
		VenueID:      r.VenueID,
		Name:         r.Name,
		Category:     string(r.Category),
		ProfileImage: r.ProfileImage,
		CoverImage:   r.CoverImage,
		Photos:       photos,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
	}
}

// FromDomainSummary конвертирует domain.ResourceSummary в ответ
func FromDomainSummary(s *domain.ResourceSummary) *ResourceResponse {
	resp := FromDomainResource(&s.Resource)
	resp.MinOpenPrice = s.MinOpenPrice
	resp.RatingsCount = s.RatingsCount
	resp.Venue = &VenueInfo{
		ID:            s.Venue.ID,
		Name:          s.Venue.Name,
		City:          s.Venue.City,
		Region:        s.Venue.Region,
		AverageRating: s.Venue.AverageRating,
	}
	return resp
}

// FromDomainSummaries конвертирует список
func FromDomainSummaries(list []*domain.ResourceSummary) *ResourceListResponse {
	resp := &ResourceListResponse{
		Resources: make([]ResourceResponse, 0, len(list)),
		Total:     len(list),
	}
	for _, s := range list {
		resp.Resources = append(resp.Resources, *FromDomainSummary(s))
	}
	return resp
}
