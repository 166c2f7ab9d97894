package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// validateRequest валидирует входные данные и возвращает дату
func validateRequest(req *Request) (time.Time, error) {
	if req.ResourceID <= 0 {
		return time.Time{}, fmt.Errorf("%w: resourceID must be positive", ErrInvalidInput)
	}

	raw := strings.TrimSpace(req.Date)
	if raw == "" {
		return time.Time{}, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}

	date, err := time.Parse(domain.DateFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, raw)
	}

	return date, nil
}
