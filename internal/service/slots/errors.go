package slots

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slots: slot not found")

	// ErrResourceNotFound возвращается, когда пространство не найдено
	ErrResourceNotFound = errors.New("slots: resource not found")

	// ErrInvalidRange возвращается, когда начало слота не раньше конца
	ErrInvalidRange = errors.New("slots: invalid time range")

	// ErrSlotOverlap возвращается, когда интервал пересекается с другим слотом пространства
	ErrSlotOverlap = errors.New("slots: slot overlaps existing slot")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("slots: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("slots: internal error")
)
