package get_available_slots

import (
	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-VenueBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	ResourceID int64  `json:"resourceId"`
	Date       string `json:"date"`
	Morning    []Slot `json:"morning"`
	Afternoon  []Slot `json:"afternoon"`
	Evening    []Slot `json:"evening"`
}

// Slot свободный слот
type Slot struct {
	ID        int64            `json:"id"`
	Date      string           `json:"date"`
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Price     types.Money      `json:"price"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	return &AvailableSlotsResponse{
		ResourceID: resp.ResourceID,
		Date:       resp.Date.Format(domain.DateFormat),
		Morning:    convertSlots(resp.Morning),
		Afternoon:  convertSlots(resp.Afternoon),
		Evening:    convertSlots(resp.Evening),
	}
}

func convertSlots(slots []getAvailableSlots.Slot) []Slot {
	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			ID:        s.ID,
			Date:      s.Date.Format(domain.DateFormat),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Price:     s.Price,
		}
	}
	return result
}
