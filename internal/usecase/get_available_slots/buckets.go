package get_available_slots

import (
	"sort"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
)

// bucketSlots раскладывает слоты по частям дня, внутри части по времени начала
func bucketSlots(slots []*domain.Slot) (morning, afternoon, evening []Slot) {
	sorted := make([]*domain.Slot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime.IsBefore(sorted[j].StartTime)
	})

	morning, afternoon, evening = []Slot{}, []Slot{}, []Slot{}
	for _, s := range sorted {
		slot := Slot{
			ID:        s.ID,
			Date:      s.Date,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Price:     s.Price,
		}

		switch domain.PeriodOf(s.StartTime) {
		case domain.PeriodMorning:
			morning = append(morning, slot)
		case domain.PeriodAfternoon:
			afternoon = append(afternoon, slot)
		default:
			evening = append(evening, slot)
		}
	}

	return morning, afternoon, evening
}
