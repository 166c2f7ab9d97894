package reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrSlotAlreadyReserved возвращается при нарушении reservations_active_slot_key
	ErrSlotAlreadyReserved = errors.New("reservation.repository: slot already has an active reservation")

	// ErrAlreadyCancelled возвращается, когда условная отмена не нашла неотмененной строки
	ErrAlreadyCancelled = errors.New("reservation.repository: reservation already cancelled")

	// ErrStatusChanged возвращается, когда условный переход статуса не сработал
	ErrStatusChanged = errors.New("reservation.repository: reservation status changed concurrently")

	// ErrReferenceNotFound возвращается, когда слот или организатор не существует
	ErrReferenceNotFound = errors.New("reservation.repository: referenced slot or organizer not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
