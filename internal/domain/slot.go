package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// SlotStatus represents whether a slot can be booked
type SlotStatus string

const (
	SlotOpen        SlotStatus = "open"
	SlotUnavailable SlotStatus = "unavailable"
)

// IsValid returns true for known slot statuses
func (s SlotStatus) IsValid() bool {
	return s == SlotOpen || s == SlotUnavailable
}

// Slot is a bookable [start, end) interval of a resource on a date
type Slot struct {
	ID         int64
	ResourceID int64
	Date       time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Price      types.Money
	Status     SlotStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOpen returns true if the slot can be claimed
func (s *Slot) IsOpen() bool {
	return s.Status == SlotOpen
}

// Overlaps reports whether [start, end) intersects the slot interval.
// Touching boundaries do not overlap.
func (s *Slot) Overlaps(start, end types.TimeString) bool {
	return s.StartTime.IsBefore(end) && s.EndTime.IsAfter(start)
}

// SlotOwnership is a slot together with its ownership chain
// Resource -> Venue -> Manager
type SlotOwnership struct {
	Slot
	ResourceName string
	Category     Category
	VenueID      int64
	VenueName    string
	ManagerID    int64
}

// SlotFilter фильтр списка слотов
type SlotFilter struct {
	ResourceID *int64
	Date       *time.Time
	Status     *SlotStatus
}

// DayPeriod is the part of the day a slot starts in
type DayPeriod string

const (
	PeriodMorning   DayPeriod = "morning"
	PeriodAfternoon DayPeriod = "afternoon"
	PeriodEvening   DayPeriod = "evening"
)

var (
	morningStart   = types.MustTimeString("05:00")
	afternoonStart = types.MustTimeString("12:00")
	eveningStart   = types.MustTimeString("18:00")
)

// PeriodOf buckets a start time: [05:00,12:00) morning, [12:00,18:00) afternoon,
// everything else evening
func PeriodOf(start types.TimeString) DayPeriod {
	switch {
	case !start.IsBefore(morningStart) && start.IsBefore(afternoonStart):
		return PeriodMorning
	case !start.IsBefore(afternoonStart) && start.IsBefore(eveningStart):
		return PeriodAfternoon
	default:
		return PeriodEvening
	}
}
