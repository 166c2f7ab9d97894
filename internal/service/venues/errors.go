package venues

import "errors"

var (
	// ErrVenueNotFound возвращается, когда центр не найден
	ErrVenueNotFound = errors.New("venues: venue not found")

	// ErrVenueAlreadyExists возвращается, когда центр с таким именем уже есть в городе
	ErrVenueAlreadyExists = errors.New("venues: venue with this name already exists in city")

	// ErrManagerNotFound возвращается, когда менеджера из токена нет среди пользователей
	ErrManagerNotFound = errors.New("venues: manager not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на операцию
	ErrAccessDenied = errors.New("venues: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("venues: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("venues: internal error")
)
