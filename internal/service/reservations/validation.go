package reservations

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations/models"
)

// validateRating проверяет, что задана хотя бы одна оценка и все оценки в диапазоне 1..5
func validateRating(r domain.Rating) error {
	if r.Service == nil && r.Facility == nil && r.Cleanliness == nil {
		return fmt.Errorf("%w: at least one score is required", ErrInvalidInput)
	}

	scores := []struct {
		name  string
		value *int
	}{
		{name: "serviceRating", value: r.Service},
		{name: "facilityRating", value: r.Facility},
		{name: "cleanlinessRating", value: r.Cleanliness},
	}
	for _, score := range scores {
		if score.value != nil && (*score.value < domain.MinRating || *score.value > domain.MaxRating) {
			return fmt.Errorf("%w: %s must be between %d and %d", ErrInvalidInput, score.name, domain.MinRating, domain.MaxRating)
		}
	}

	if r.Comment != nil && len([]rune(*r.Comment)) > domain.MaxCommentLength {
		return fmt.Errorf("%w: comment is longer than %d characters", ErrInvalidInput, domain.MaxCommentLength)
	}

	return nil
}

// toManagedFilter конвертирует запрос панели менеджера в domain фильтр
func toManagedFilter(managerID int64, req *models.ManagedReservationsRequest) (domain.ManagedReservationsFilter, error) {
	filter := domain.ManagedReservationsFilter{ManagerID: managerID}
	if req == nil {
		return filter, nil
	}

	if req.Status != nil {
		status := domain.ReservationStatus(strings.ToLower(*req.Status))
		if !status.IsValid() {
			return filter, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
		filter.Status = &status
	}

	if req.Category != nil {
		category := domain.Category(strings.ToLower(*req.Category))
		if !category.IsValid() {
			return filter, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, *req.Category)
		}
		filter.Category = &category
	}

	if req.CreatedFrom != nil && req.CreatedTo != nil && req.CreatedTo.Before(*req.CreatedFrom) {
		return filter, fmt.Errorf("%w: createdTo is before createdFrom", ErrInvalidInput)
	}

	filter.OrganizerName = nonEmpty(req.OrganizerName)
	filter.ResourceName = nonEmpty(req.ResourceName)
	filter.CreatedFrom = req.CreatedFrom
	filter.CreatedTo = req.CreatedTo

	return filter, nil
}

func nonEmpty(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
