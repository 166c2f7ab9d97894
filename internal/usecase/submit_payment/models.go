package submit_payment

import (
	"time"

	"github.com/m04kA/SMC-VenueBooking/internal/domain"
	"github.com/m04kA/SMC-VenueBooking/pkg/types"
)

// MaxReceiptSize максимальный размер файла чека
const MaxReceiptSize = 5 << 20

// Request модель запроса на оплату бронирования
type Request struct {
	Actor              domain.Actor // Организатор, оплачивающий бронирование
	ReservationID      int64        // ID бронирования
	Amount             types.Money  // Сумма платежа
	Receipt            []byte       // Файл чека (опционально)
	ReceiptContentType string       // MIME тип чека
}

// Response модель ответа с созданным платежом
type Response struct {
	ID                int64       // ID платежа
	ReservationID     int64       // ID бронирования
	Amount            types.Money // Сумма платежа
	MinimumAmount     types.Money // Минимально допустимая сумма (половина цены)
	PaidAt            time.Time   // Время оплаты
	Confirmed         bool        // Подтвержден менеджером
	ReceiptRef        *string     // Ссылка на чек
	ReservationStatus string      // Статус бронирования после оплаты (pending)
}
