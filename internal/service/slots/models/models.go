package models

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Request модели

// CreateSlotRequest запрос на создание слота
type CreateSlotRequest struct {
	ResourceID int64            `json:"resourceId"`
	Date       string           `json:"date"`      // "2025-10-15"
	StartTime  types.TimeString `json:"startTime"` // "15:00"
	EndTime    types.TimeString `json:"endTime"`   // "17:00"
	Price      types.Money      `json:"price"`
}

// UpdateSlotRequest запрос на обновление слота
// Все поля опциональны - обновляются только переданные значения
type UpdateSlotRequest struct {
	Date      *string           `json:"date,omitempty"`
	StartTime *types.TimeString `json:"startTime,omitempty"`
	EndTime   *types.TimeString `json:"endTime,omitempty"`
	Price     *types.Money      `json:"price,omitempty"`
}

// SetStatusRequest ручное открытие/закрытие слота
type SetStatusRequest struct {
	Status string `json:"status"`
}

// ListSlotsRequest фильтры списка слотов
type ListSlotsRequest struct {
	ResourceID *int64
	Date       *string
	Status     *string
}

// Response модели

// SlotResponse ответ с данными слота
type SlotResponse struct {
	ID         int64            `json:"id"`
	ResourceID int64            `json:"resourceId"`
	Date       string           `json:"date"`
	StartTime  types.TimeString `json:"startTime"`
	EndTime    types.TimeString `json:"endTime"`
	Price      types.Money      `json:"price"`
	Status     string           `json:"status"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// SlotListResponse список слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
	Total int            `json:"total"`
}

// FromDomainSlot конвертирует domain.Slot в ответ
func FromDomainSlot(s *domain.Slot) *SlotResponse {
	return &SlotResponse{
		ID:         s.ID,
		ResourceID: s.ResourceID,
		Date:       s.Date.Format(domain.DateFormat),
		StartTime:  s.StartTime,
		EndTime:    s.EndTime,
		Price:      s.Price,
		Status:     string(s.Status),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// FromDomainSlots конвертирует список слотов
func FromDomainSlots(list []*domain.Slot) *SlotListResponse {
	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(list)),
		Total: len(list),
	}
	for _, s := range list {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}
	return resp
}
