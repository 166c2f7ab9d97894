package venues

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// normalize приводит строковые поля центра к каноничному виду
func normalize(v *domain.Venue) {
	v.Name = strings.TrimSpace(v.Name)
	v.Description = strings.TrimSpace(v.Description)
	v.City = strings.TrimSpace(v.City)
	v.Region = strings.ToUpper(strings.TrimSpace(v.Region))
}

// validateVenue проверяет поля центра
func validateVenue(v *domain.Venue) error {
	if v.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(v.Name) > domain.MaxVenueNameLength {
		return fmt.Errorf("%w: name is longer than %d characters", ErrInvalidInput, domain.MaxVenueNameLength)
	}
	if utf8.RuneCountInString(v.Description) > domain.MaxVenueDescriptionLength {
		return fmt.Errorf("%w: description is longer than %d characters", ErrInvalidInput, domain.MaxVenueDescriptionLength)
	}
	if v.City == "" || utf8.RuneCountInString(v.City) > domain.MaxCityLength {
		return fmt.Errorf("%w: city is required and must be at most %d characters", ErrInvalidInput, domain.MaxCityLength)
	}
	if !domain.IsValidRegion(v.Region) {
		return fmt.Errorf("%w: unknown region %q", ErrInvalidInput, v.Region)
	}
	if v.Latitude < domain.MinLatitude || v.Latitude > domain.MaxLatitude {
		return fmt.Errorf("%w: latitude must be between %.0f and %.0f", ErrInvalidInput, domain.MinLatitude, domain.MaxLatitude)
	}
	if v.Longitude < domain.MinLongitude || v.Longitude > domain.MaxLongitude {
		return fmt.Errorf("%w: longitude must be between %.0f and %.0f", ErrInvalidInput, domain.MinLongitude, domain.MaxLongitude)
	}
	return nil
}
