package domain

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Payment is a monetary record tied 1:1 to a reservation
type Payment struct {
	ID            int64
	ReservationID int64
	Amount        types.Money
	PaidAt        time.Time
	Confirmed     bool
	ReceiptRef    *string
}

// MinimumPayment returns half of the slot price, rounded up to a whole cent
func MinimumPayment(price types.Money) types.Money {
	cents := price.Cents()
	return types.NewMoneyFromCents(cents/2 + cents%2)
}

// IsSufficientPayment reports whether amount >= price / 2.
// Compared as 2*amount >= price to stay exact on cents.
func IsSufficientPayment(amount, price types.Money) bool {
	return 2*amount.Cents() >= price.Cents()
}
