package actors

import "errors"

var (
	// ErrActorNotFound возвращается, когда пользователь не найден
	ErrActorNotFound = errors.New("actors: actor not found")

	// ErrEmailTaken возвращается, когда email уже зарегистрирован
	ErrEmailTaken = errors.New("actors: email already registered")

	// ErrTaxIDTaken возвращается, когда ИНН (CPF) уже зарегистрирован
	ErrTaxIDTaken = errors.New("actors: tax id already registered")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("actors: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("actors: internal error")
)
