package get_statistics

import (
	"sort"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

type timeRange struct {
	start types.TimeString
	end   types.TimeString
}

// Aggregate считает статистику по фактам. Результат не зависит от порядка фактов:
// при равных счетчиках сортировка по имени или времени по возрастанию.
func Aggregate(facts []domain.ReservationFact) domain.ManagerStatistics {
	byStatus := make(map[domain.ReservationStatus]int)
	byResource := make(map[int64]*domain.ResourceCount)
	byRange := make(map[timeRange]int)
	byCategory := make(map[domain.Category]int)

	var revenue int64
	cancelled := 0
	paid := make([]domain.PaidReservation, 0)

	for _, f := range facts {
		byStatus[f.Status]++

		rc, ok := byResource[f.ResourceID]
		if !ok {
			rc = &domain.ResourceCount{ResourceID: f.ResourceID, Name: f.ResourceName, Category: f.Category}
			byResource[f.ResourceID] = rc
		}
		rc.Total++

		byRange[timeRange{start: f.StartTime, end: f.EndTime}]++
		byCategory[f.Category]++

		switch f.Status {
		case domain.ReservationCancelled:
			cancelled++
		case domain.ReservationPaid:
			revenue += f.Price.Cents()
			paid = append(paid, domain.PaidReservation{
				ReservationID: f.ReservationID,
				ResourceName:  f.ResourceName,
				Date:          f.Date,
				OrganizerName: f.OrganizerName,
				CreatedAt:     f.CreatedAt,
			})
		}
	}

	return domain.ManagerStatistics{
		ByStatus:          statusCounts(byStatus),
		TopResources:      topResources(byResource),
		TopTimeRanges:     topTimeRanges(byRange),
		Categories:        categoryCounts(byCategory),
		TotalReservations: len(facts),
		CancelledCount:    cancelled,
		TotalRevenue:      types.NewMoneyFromCents(revenue),
		PaidReservations:  newestFirst(paid),
	}
}

func statusCounts(m map[domain.ReservationStatus]int) []domain.StatusCount {
	result := make([]domain.StatusCount, 0, len(m))
	for status, total := range m {
		result = append(result, domain.StatusCount{Status: status, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Status < result[j].Status
	})
	return result
}

func topResources(m map[int64]*domain.ResourceCount) []domain.ResourceCount {
	result := make([]domain.ResourceCount, 0, len(m))
	for _, rc := range m {
		result = append(result, *rc)
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ResourceID < b.ResourceID
	})
	return limit(result, TopLimit)
}

func topTimeRanges(m map[timeRange]int) []domain.TimeRangeCount {
	result := make([]domain.TimeRangeCount, 0, len(m))
	for r, total := range m {
		result = append(result, domain.TimeRangeCount{StartTime: r.start, EndTime: r.end, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.StartTime != b.StartTime {
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.EndTime.IsBefore(b.EndTime)
	})
	return limit(result, TopLimit)
}

func categoryCounts(m map[domain.Category]int) []domain.CategoryCount {
	result := make([]domain.CategoryCount, 0, len(m))
	for category, total := range m {
		result = append(result, domain.CategoryCount{Category: category, Total: total})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Total != result[j].Total {
			return result[i].Total > result[j].Total
		}
		return result[i].Category < result[j].Category
	})
	return result
}

func newestFirst(paid []domain.PaidReservation) []domain.PaidReservation {
	sort.Slice(paid, func(i, j int) bool {
		if !paid[i].CreatedAt.Equal(paid[j].CreatedAt) {
			return paid[i].CreatedAt.After(paid[j].CreatedAt)
		}
		return paid[i].ReservationID > paid[j].ReservationID
	})
	return paid
}

func limit[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
