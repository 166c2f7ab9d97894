package slots

import (
	"fmt"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Range полуинтервал [Start, End) внутри одного дня
type Range struct {
	Start types.TimeString
	End   types.TimeString
}

// ValidateRange проверяет интервал кандидата против уже существующих слотов того же пространства и даты.
// Касание границ пересечением не считается. excludeID исключает обновляемый слот.
func ValidateRange(candidate Range, existing []*domain.Slot, excludeID *int64) error {
	if err := candidate.Start.Validate(); err != nil {
		return fmt.Errorf("%w: startTime: %v", ErrInvalidRange, err)
	}
	if err := candidate.End.Validate(); err != nil {
		return fmt.Errorf("%w: endTime: %v", ErrInvalidRange, err)
	}
	if !candidate.Start.IsBefore(candidate.End) {
		return fmt.Errorf("%w: startTime %s must be before endTime %s", ErrInvalidRange, candidate.Start, candidate.End)
	}

	for _, slot := range existing {
		if excludeID != nil && slot.ID == *excludeID {
			continue
		}
		if slot.Overlaps(candidate.Start, candidate.End) {
			return fmt.Errorf("%w: [%s, %s) intersects slot id=%d [%s, %s)",
				ErrSlotOverlap, candidate.Start, candidate.End, slot.ID, slot.StartTime, slot.EndTime)
		}
	}

	return nil
}
