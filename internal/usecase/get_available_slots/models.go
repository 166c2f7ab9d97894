package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// Request модель запроса на получение свободных слотов
type Request struct {
	ResourceID int64  // ID пространства
	Date       string // Дата в формате YYYY-MM-DD
}

// Response свободные слоты, разбитые по частям дня
type Response struct {
	ResourceID int64     // ID пространства
	Date       time.Time // Дата, на которую запрашивались слоты
	Morning    []Slot    // [05:00, 12:00)
	Afternoon  []Slot    // [12:00, 18:00)
	Evening    []Slot    // остальное время
}

// Slot модель свободного слота
type Slot struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Price     types.Money
}
