package create_booking

import "errors"

var (
	// ErrEntityNotFound возвращается, когда аттракцион или комбо не найдены
	ErrEntityNotFound = errors.New("create_booking: entity not found")

	// ErrInvalidSlotID возвращается при нераспознаваемом идентификаторе
	// виртуального слота
	ErrInvalidSlotID = errors.New("create_booking: invalid virtual slot id")

	// ErrSlotMismatch возвращается, когда слот из идентификатора не существует
	// в расписании сущности (час вне рабочего окна)
	ErrSlotMismatch = errors.New("create_booking: slot does not exist in entity schedule")

	// ErrDateInPast возвращается при попытке бронирования на прошедшую дату
	ErrDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrSlotUnavailable возвращается, когда в слоте не хватает мест
	// на запрошенное количество
	ErrSlotUnavailable = errors.New("create_booking: not enough remaining capacity in slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
