package actor

import "errors"

var (
	// ErrActorNotFound возвращается, когда пользователь не найден
	ErrActorNotFound = errors.New("actor.repository: actor not found")

	// ErrEmailTaken возвращается при нарушении users_email_key
	ErrEmailTaken = errors.New("actor.repository: email already registered")

	// ErrTaxIDTaken возвращается при нарушении users_tax_id_key
	ErrTaxIDTaken = errors.New("actor.repository: tax id already registered")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("actor.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("actor.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("actor.repository: failed to scan row")
)
