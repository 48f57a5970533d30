package catalogservice

import "errors"

var (
	// ErrAttractionNotFound возвращается, когда аттракцион не найден
	ErrAttractionNotFound = errors.New("attraction not found")

	// ErrComboNotFound возвращается, когда комбо не найдено
	ErrComboNotFound = errors.New("combo not found")

	// ErrEntityNotFound возвращается, когда сущность не найдена (обобщение двух ошибок выше)
	ErrEntityNotFound = errors.New("entity not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("catalogservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("catalogservice client: invalid response")
)
