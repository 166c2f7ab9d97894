package get_statistics

import "errors"

var (
	// ErrAccessDenied возвращается, когда статистику запрашивает не менеджер
	ErrAccessDenied = errors.New("get_statistics: access denied")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_statistics: internal error")
)
