package get_statistics

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	getStatistics "github.com/m04kA/SMC-VenueBooking/internal/usecase/get_statistics"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// StatisticsResponse HTTP response model
type StatisticsResponse struct {
	ByStatus          []StatusCount     `json:"byStatus"`
	TopResources      []ResourceCount   `json:"topResources"`
	TopTimeRanges     []TimeRangeCount  `json:"topTimeRanges"`
	Categories        []CategoryCount   `json:"categories"`
	TotalReservations int               `json:"totalReservations"`
	CancelledCount    int               `json:"cancelledCount"`
	TotalRevenue      types.Money       `json:"totalRevenue"`
	PaidReservations  []PaidReservation `json:"paidReservations"`
}

type StatusCount struct {
	Status string `json:"status"`
	Total  int    `json:"total"`
}

type ResourceCount struct {
	ResourceID int64  `json:"resourceId"`
	Name       string `json:"name"`
	Category   string `json:"category"`
	Total      int    `json:"total"`
}

type TimeRangeCount struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
	Total     int              `json:"total"`
}

type CategoryCount struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
}

type PaidReservation struct {
	ReservationID int64     `json:"reservationId"`
	ResourceName  string    `json:"resourceName"`
	Date          string    `json:"date"`
	OrganizerName string    `json:"organizerName"`
	CreatedAt     time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStatistics.Response) *StatisticsResponse {
	out := &StatisticsResponse{
		ByStatus:          make([]StatusCount, len(resp.ByStatus)),
		TopResources:      make([]ResourceCount, len(resp.TopResources)),
		TopTimeRanges:     make([]TimeRangeCount, len(resp.TopTimeRanges)),
		Categories:        make([]CategoryCount, len(resp.Categories)),
		TotalReservations: resp.TotalReservations,
		CancelledCount:    resp.CancelledCount,
		TotalRevenue:      resp.TotalRevenue,
		PaidReservations:  make([]PaidReservation, len(resp.PaidReservations)),
	}

	for i, s := range resp.ByStatus {
		out.ByStatus[i] = StatusCount{Status: string(s.Status), Total: s.Total}
	}
	for i, r := range resp.TopResources {
		out.TopResources[i] = ResourceCount{ResourceID: r.ResourceID, Name: r.Name, Category: string(r.Category), Total: r.Total}
	}
	for i, tr := range resp.TopTimeRanges {
		out.TopTimeRanges[i] = TimeRangeCount{StartTime: tr.StartTime, EndTime: tr.EndTime, Total: tr.Total}
	}
	for i, c := range resp.Categories {
		out.Categories[i] = CategoryCount{Category: string(c.Category), Total: c.Total}
	}
	for i, p := range resp.PaidReservations {
		out.PaidReservations[i] = PaidReservation{
			ReservationID: p.ReservationID,
			ResourceName:  p.ResourceName,
			Date:          p.Date.Format(domain.DateFormat),
			OrganizerName: p.OrganizerName,
			CreatedAt:     p.CreatedAt,
		}
	}

	return out
}
