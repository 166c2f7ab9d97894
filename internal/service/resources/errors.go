package resources

import "errors"

var (
	// ErrResourceNotFound возвращается, когда пространство не найдено
	ErrResourceNotFound = errors.New("resources: resource not found")

	// ErrVenueNotFound возвращается, когда центр не найден
	ErrVenueNotFound = errors.New("resources: venue not found")

	// ErrResourceAlreadyExists возвращается, когда в центре уже есть пространство с таким именем
	ErrResourceAlreadyExists = errors.New("resources: resource with this name already exists in venue")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("resources: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("resources: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("resources: internal error")
)
