package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// ReservationStatus represents the status of a reservation
type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationPaid      ReservationStatus = "paid"
	ReservationCancelled ReservationStatus = "cancelled"
)

// IsValid returns true for known reservation statuses
func (s ReservationStatus) IsValid() bool {
	return s == ReservationPending || s == ReservationPaid || s == ReservationCancelled
}

// Reservation is an organizer's claim on a slot
type Reservation struct {
	ID          int64
	OrganizerID int64
	SlotID      int64
	Status      ReservationStatus

	ServiceRating     *int
	FacilityRating    *int
	CleanlinessRating *int
	Comment           *string

	CreatedAt   time.Time
	CancelledAt *time.Time
}

// IsCancelled returns true if the reservation has been cancelled
func (r *Reservation) IsCancelled() bool {
	return r.Status == ReservationCancelled
}

// CanBeCompleted returns true if a manager may mark the reservation as paid
func (r *Reservation) CanBeCompleted() bool {
	return r.Status == ReservationPending
}

// IsPayable returns true if a payment may be submitted
func (r *Reservation) IsPayable() bool {
	return r.Status == ReservationPending
}

// CanBeRated returns true if the organizer may leave scores
func (r *Reservation) CanBeRated() bool {
	return r.Status == ReservationPaid
}

// HasRating returns true if at least one score is set
func (r *Reservation) HasRating() bool {
	return r.ServiceRating != nil || r.FacilityRating != nil || r.CleanlinessRating != nil
}

// Rating набор оценок после игры
type Rating struct {
	Service     *int
	Facility    *int
	Cleanliness *int
	Comment     *string
}

// ReservationDetails is a reservation with its slot, ownership chain and payment
type ReservationDetails struct {
	Reservation
	Slot          SlotOwnership
	OrganizerName string
	Payment       *Payment
}

// ManagedReservationsFilter фильтр панели менеджера
type ManagedReservationsFilter struct {
	ManagerID     int64
	Status        *ReservationStatus
	OrganizerName *string    // подстрока
	ResourceName  *string    // подстрока
	Category      *Category  // точное совпадение
	CreatedFrom   *time.Time // включительно
	CreatedTo     *time.Time // включительно (по дате)
}

// ReservationFact is one reservation row used for manager statistics
type ReservationFact struct {
	ReservationID int64
	Status        ReservationStatus
	CreatedAt     time.Time
	ResourceID    int64
	ResourceName  string
	Category      Category
	Date          time.Time
	StartTime     types.TimeString
	EndTime       types.TimeString
	Price         types.Money
	OrganizerName string
}
