package list_slots

import "errors"

var (
	// ErrEntityNotFound возвращается, когда аттракцион или комбо не найдены
	ErrEntityNotFound = errors.New("entity not found")

	// ErrInvalidDateRange возвращается при нераспознаваемых датах запроса.
	// Диапазон со start > end ошибкой НЕ является — он даёт пустой результат.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
