package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Request модели

// ManagedReservationsRequest фильтры панели менеджера
type ManagedReservationsRequest struct {
	Status        *string    `json:"status,omitempty"`
	OrganizerName *string    `json:"organizerName,omitempty"` // подстрока
	ResourceName  *string    `json:"resourceName,omitempty"`  // подстрока
	Category      *string    `json:"category,omitempty"`
	CreatedFrom   *time.Time `json:"createdFrom,omitempty"`
	CreatedTo     *time.Time `json:"createdTo,omitempty"`
}

// RateRequest оценки после игры (1..5) и комментарий
type RateRequest struct {
	ServiceRating     *int    `json:"serviceRating,omitempty"`
	FacilityRating    *int    `json:"facilityRating,omitempty"`
	CleanlinessRating *int    `json:"cleanlinessRating,omitempty"`
	Comment           *string `json:"comment,omitempty"`
}

// ToDomain конвертирует запрос в domain.Rating
func (r *RateRequest) ToDomain() domain.Rating {
	return domain.Rating{
		Service:     r.ServiceRating,
		Facility:    r.FacilityRating,
		Cleanliness: r.CleanlinessRating,
		Comment:     r.Comment,
	}
}

// Response модели

// SlotInfo слот бронирования с пространством и центром
type SlotInfo struct {
	ID           int64            `json:"id"`
	ResourceID   int64            `json:"resourceId"`
	ResourceName string           `json:"resourceName"`
	Category     string           `json:"category"`
	VenueID      int64            `json:"venueId"`
	VenueName    string           `json:"venueName"`
	Date         string           `json:"date"` // "2025-10-15"
	StartTime    types.TimeString `json:"startTime"`
	EndTime      types.TimeString `json:"endTime"`
	Price        types.Money      `json:"price"`
	Status       string           `json:"status"`
}

// PaymentInfo платеж бронирования
type PaymentInfo struct {
	ID         int64       `json:"id"`
	Amount     types.Money `json:"amount"`
	PaidAt     time.Time   `json:"paidAt"`
	Confirmed  bool        `json:"confirmed"`
	ReceiptRef *string     `json:"receiptRef,omitempty"`
}

// RatingInfo оценки бронирования
type RatingInfo struct {
	ServiceRating     *int    `json:"serviceRating,omitempty"`
	FacilityRating    *int    `json:"facilityRating,omitempty"`
	CleanlinessRating *int    `json:"cleanlinessRating,omitempty"`
	Comment           *string `json:"comment,omitempty"`
}

// ReservationResponse ответ с данными бронирования
type ReservationResponse struct {
	ID            int64        `json:"id"`
	OrganizerID   int64        `json:"organizerId"`
	OrganizerName string       `json:"organizerName,omitempty"`
	Status        string       `json:"status"`
	CheckIn       string       `json:"checkIn"` // "2025-10-15 15:00"
	Slot          SlotInfo     `json:"slot"`
	Payment       *PaymentInfo `json:"payment,omitempty"`
	Rating        *RatingInfo  `json:"rating,omitempty"`
	CreatedAt     time.Time    `json:"createdAt"`
	CancelledAt   *time.Time   `json:"cancelledAt,omitempty"`
}

// ReservationListResponse список бронирований
type ReservationListResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Total        int                   `json:"total"`
}

// FromDomainDetails конвертирует domain.ReservationDetails в ответ
func FromDomainDetails(d *domain.ReservationDetails) *ReservationResponse {
	date := d.Slot.Date.Format(domain.DateFormat)

	resp := &ReservationResponse{
		ID:            d.ID,
		OrganizerID:   d.OrganizerID,
		OrganizerName: d.OrganizerName,
		Status:        string(d.Status),
		CheckIn:       date + " " + d.Slot.StartTime.String(),
		Slot: SlotInfo{
			ID:           d.Slot.ID,
			ResourceID:   d.Slot.ResourceID,
			ResourceName: d.Slot.ResourceName,
			Category:     string(d.Slot.Category),
			VenueID:      d.Slot.VenueID,
			VenueName:    d.Slot.VenueName,
			Date:         date,
			StartTime:    d.Slot.StartTime,
			EndTime:      d.Slot.EndTime,
			Price:        d.Slot.Price,
			Status:       string(d.Slot.Status),
		},
		CreatedAt:   d.CreatedAt,
		CancelledAt: d.CancelledAt,
	}

	if d.Payment != nil {
		resp.Payment = &PaymentInfo{
			ID:         d.Payment.ID,
			Amount:     d.Payment.Amount,
			PaidAt:     d.Payment.PaidAt,
			Confirmed:  d.Payment.Confirmed,
			ReceiptRef: d.Payment.ReceiptRef,
		}
	}

	if d.HasRating() || d.Comment != nil {
		resp.Rating = &RatingInfo{
			ServiceRating:     d.ServiceRating,
			FacilityRating:    d.FacilityRating,
			CleanlinessRating: d.CleanlinessRating,
			Comment:           d.Comment,
		}
	}

	return resp
}

// FromDomainDetailsList конвертирует список
func FromDomainDetailsList(list []*domain.ReservationDetails) *ReservationListResponse {
	resp := &ReservationListResponse{
		Reservations: make([]ReservationResponse, 0, len(list)),
		Total:        len(list),
	}
	for _, d := range list {
		resp.Reservations = append(resp.Reservations, *FromDomainDetails(d))
	}
	return resp
}
