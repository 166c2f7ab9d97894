package get_statistics

import "github.com/m04kA/SMC-VenueBooking/internal/domain"

// TopLimit размер топов по пространствам и интервалам
const TopLimit = 5

// Request модель запроса статистики
type Request struct {
	Actor domain.Actor // Менеджер, запрашивающий статистику
}

// Response сводка по бронированиям центров менеджера
type Response struct {
	domain.ManagerStatistics
}
