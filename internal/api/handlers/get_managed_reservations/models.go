package get_managed_reservations

import (
	"fmt"
	"net/url"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/internal/service/reservations/models"
)

// ParseFilter читает фильтры из query: status, organizer, resource, category, from, to
func ParseFilter(q url.Values) (*models.ManagedReservationsRequest, error) {
	req := &models.ManagedReservationsRequest{
		Status:        optional(q, "status"),
		OrganizerName: optional(q, "organizer"),
		ResourceName:  optional(q, "resource"),
		Category:      optional(q, "category"),
	}

	from, err := optionalDate(q, "from")
	if err != nil {
		return nil, err
	}
	req.CreatedFrom = from

	to, err := optionalDate(q, "to")
	if err != nil {
		return nil, err
	}
	req.CreatedTo = to

	return req, nil
}

func optional(q url.Values, key string) *string {
	v := q.Get(key)
	if v == "" {
		return nil
	}
	return &v
}

func optionalDate(q url.Values, key string) (*time.Time, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	date, err := time.Parse(domain.DateFormat, v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &date, nil
}
