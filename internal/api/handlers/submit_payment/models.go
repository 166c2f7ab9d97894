package submit_payment

import (
	"encoding/base64"
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	submitPayment "github.com/m04kA/SMC-VenueBooking/internal/usecase/submit_payment"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// SubmitPaymentRequest HTTP request model
type SubmitPaymentRequest struct {
	ReservationID      int64       `json:"reservationId"`
	Amount             types.Money `json:"amount"`
	Receipt            *string     `json:"receipt,omitempty"` // base64
	ReceiptContentType string      `json:"receiptContentType,omitempty"`
}

// PaymentResponse HTTP response model
type PaymentResponse struct {
	ID                int64       `json:"id"`
	ReservationID     int64       `json:"reservationId"`
	Amount            types.Money `json:"amount"`
	MinimumAmount     types.Money `json:"minimumAmount"`
	PaidAt            time.Time   `json:"paidAt"`
	Confirmed         bool        `json:"confirmed"`
	ReceiptRef        *string     `json:"receiptRef,omitempty"`
	ReservationStatus string      `json:"reservationStatus"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case (с декодированием чека)
func (r *SubmitPaymentRequest) ToUseCaseRequest(actor domain.Actor) (*submitPayment.Request, error) {
	req := &submitPayment.Request{
		Actor:              actor,
		ReservationID:      r.ReservationID,
		Amount:             r.Amount,
		ReceiptContentType: r.ReceiptContentType,
	}

	if r.Receipt != nil && *r.Receipt != "" {
		data, err := base64.StdEncoding.DecodeString(*r.Receipt)
		if err != nil {
			return nil, err
		}
		req.Receipt = data
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *submitPayment.Response) *PaymentResponse {
	return &PaymentResponse{
		ID:                resp.ID,
		ReservationID:     resp.ReservationID,
		Amount:            resp.Amount,
		MinimumAmount:     resp.MinimumAmount,
		PaidAt:            resp.PaidAt,
		Confirmed:         resp.Confirmed,
		ReceiptRef:        resp.ReceiptRef,
		ReservationStatus: resp.ReservationStatus,
	}
}
