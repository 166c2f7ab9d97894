package get_available_slots

import "errors"

var (
	// ErrResourceNotFound возвращается, когда пространство не найдено
	ErrResourceNotFound = errors.New("get_available_slots: resource not found")

	// ErrInvalidDate возвращается при некорректной дате
	ErrInvalidDate = errors.New("get_available_slots: invalid date, expected YYYY-MM-DD")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
