package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("reservations: reservation not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("reservations: slot not found")

	// ErrOrganizerNotFound возвращается, когда организатора из токена нет среди пользователей
	ErrOrganizerNotFound = errors.New("reservations: organizer not found")

	// ErrSlotNotAvailable возвращается, когда слот уже занят или закрыт
	ErrSlotNotAvailable = errors.New("reservations: slot is not available")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("reservations: access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("reservations: reservation already cancelled")

	// ErrInvalidTransition возвращается, когда переход статуса недопустим
	ErrInvalidTransition = errors.New("reservations: invalid status transition")

	// ErrNotRatable возвращается, когда оценивать бронирование еще (или уже) нельзя
	ErrNotRatable = errors.New("reservations: only paid reservations can be rated")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("reservations: internal error")
)
