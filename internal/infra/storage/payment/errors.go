package payment

import "errors"

var (
	// ErrPaymentNotFound возвращается, когда платеж не найден
	ErrPaymentNotFound = errors.New("payment.repository: payment not found")

	// ErrDuplicatePayment возвращается при нарушении payments_reservation_id_key
	ErrDuplicatePayment = errors.New("payment.repository: reservation already has a payment")

	// ErrReservationNotFound возвращается, когда бронирование платежа не существует
	ErrReservationNotFound = errors.New("payment.repository: reservation not found")

	// ErrInvalidAmount возвращается при нарушении payments_amount_check
	ErrInvalidAmount = errors.New("payment.repository: invalid amount")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
