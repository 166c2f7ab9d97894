package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// StatusCount количество бронирований в статусе
type StatusCount struct {
	Status ReservationStatus
	Total  int
}

// ResourceCount популярность пространства
type ResourceCount struct {
	ResourceID int64
	Name       string
	Category   Category
	Total      int
}

// TimeRangeCount популярность интервала (start, end)
type TimeRangeCount struct {
	StartTime types.TimeString
	EndTime   types.TimeString
	Total     int
}

// CategoryCount популярность категории
type CategoryCount struct {
	Category Category
	Total    int
}

// PaidReservation строка списка оплаченных бронирований
type PaidReservation struct {
	ReservationID int64
	ResourceName  string
	Date          time.Time
	OrganizerName string
	CreatedAt     time.Time
}

// ManagerStatistics сводка для менеджера
type ManagerStatistics struct {
	ByStatus          []StatusCount
	TopResources      []ResourceCount
	TopTimeRanges     []TimeRangeCount
	Categories        []CategoryCount
	TotalReservations int
	CancelledCount    int
	TotalRevenue      types.Money
	PaidReservations  []PaidReservation
}
