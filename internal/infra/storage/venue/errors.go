package venue

import "errors"

var (
	// ErrVenueNotFound возвращается, когда центр не найден
	ErrVenueNotFound = errors.New("venue.repository: venue not found")

	// ErrVenueAlreadyExists возвращается при нарушении уникальности (name, city, region)
	ErrVenueAlreadyExists = errors.New("venue.repository: venue with this name already exists in city")

	// ErrManagerNotFound возвращается, когда менеджер центра не существует
	ErrManagerNotFound = errors.New("venue.repository: manager not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("venue.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("venue.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("venue.repository: failed to scan row")
)
