package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// PaymentResponse ответ с данными платежа
type PaymentResponse struct {
	ID                int64       `json:"id"`
	ReservationID     int64       `json:"reservationId"`
	Amount            types.Money `json:"amount"`
	PaidAt            time.Time   `json:"paidAt"`
	Confirmed         bool        `json:"confirmed"`
	ReceiptRef        *string     `json:"receiptRef,omitempty"`
	ReservationStatus string      `json:"reservationStatus"`
}

// ReceiptResponse содержимое чека
type ReceiptResponse struct {
	ContentType string
	Data        []byte
}

// FromDomainPayment конвертирует domain.Payment в ответ
func FromDomainPayment(p *domain.Payment, status domain.ReservationStatus) *PaymentResponse {
	return &PaymentResponse{
		ID:                p.ID,
		ReservationID:     p.ReservationID,
		Amount:            p.Amount,
		PaidAt:            p.PaidAt,
		Confirmed:         p.Confirmed,
		ReceiptRef:        p.ReceiptRef,
		ReservationStatus: string(status),
	}
}
