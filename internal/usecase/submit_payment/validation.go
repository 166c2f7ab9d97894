package submit_payment

import (
	"fmt"
)

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request) error {
	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationId must be positive", ErrInvalidInput)
	}

	if !req.Amount.IsPositive() {
		return fmt.Errorf("%w: amount must be positive", ErrInvalidInput)
	}

	if len(req.Receipt) > MaxReceiptSize {
		return fmt.Errorf("%w: receipt is larger than %d bytes", ErrInvalidInput, MaxReceiptSize)
	}

	return nil
}
