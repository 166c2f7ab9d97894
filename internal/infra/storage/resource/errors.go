package resource

import "errors"

var (
	// ErrResourceNotFound возвращается, когда пространство не найдено
	ErrResourceNotFound = errors.New("resource.repository: resource not found")

	// ErrResourceAlreadyExists возвращается при нарушении уникальности имени внутри центра
	ErrResourceAlreadyExists = errors.New("resource.repository: resource with this name already exists in venue")

	// ErrVenueNotFound возвращается, когда центр пространства не существует
	ErrVenueNotFound = errors.New("resource.repository: venue not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("resource.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("resource.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("resource.repository: failed to scan row")
)
