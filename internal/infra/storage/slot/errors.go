package slot

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("slot.repository: slot not found")

	// ErrSlotNotOpen возвращается, когда слот уже занят (условное обновление не сработало)
	ErrSlotNotOpen = errors.New("slot.repository: slot is not open")

	// ErrSlotOverlap возвращается при нарушении ограничения slots_no_overlap
	ErrSlotOverlap = errors.New("slot.repository: slot overlaps existing slot")

	// ErrInvalidRange возвращается при нарушении CHECK (start_time < end_time, price >= 0)
	ErrInvalidRange = errors.New("slot.repository: invalid slot range")

	// ErrResourceNotFound возвращается, когда пространство слота не существует
	ErrResourceNotFound = errors.New("slot.repository: resource not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("slot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("slot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("slot.repository: failed to scan row")
)
