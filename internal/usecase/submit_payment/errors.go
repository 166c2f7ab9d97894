package submit_payment

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("submit_payment: reservation not found")

	// ErrAccessDenied возвращается, когда платит не организатор бронирования
	ErrAccessDenied = errors.New("submit_payment: access denied")

	// ErrNotPayable возвращается, когда бронирование не в статусе pending
	ErrNotPayable = errors.New("submit_payment: reservation is not payable")

	// ErrDuplicatePayment возвращается, когда у бронирования уже есть платеж
	ErrDuplicatePayment = errors.New("submit_payment: reservation already has a payment")

	// ErrConcurrentUpdate возвращается, когда транзакцию вытеснил параллельный запрос и платежа нет; запрос можно повторить
	ErrConcurrentUpdate = errors.New("submit_payment: concurrent update, retry the request")

	// ErrInsufficientAmount возвращается, когда сумма меньше половины цены слота
	ErrInsufficientAmount = errors.New("submit_payment: amount is less than half of the slot price")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("submit_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("submit_payment: internal error")
)
