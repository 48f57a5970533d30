package create_booking

import (
	"fmt"
	"time"

	"github.com/funpark/TicketingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if !domain.EntityType(req.EntityType).IsValid() {
		return fmt.Errorf("%w: unknown entity type %q", ErrInvalidInput, req.EntityType)
	}

	if req.VirtualSlotID == "" {
		return fmt.Errorf("%w: virtual slot id is required", ErrInvalidInput)
	}

	if req.Quantity < domain.MinBookingQuantity || req.Quantity > domain.MaxBookingQuantity {
		return fmt.Errorf("%w: quantity must be between %d and %d",
			ErrInvalidInput, domain.MinBookingQuantity, domain.MaxBookingQuantity)
	}

	return nil
}

// validateSlotWindow проверяет, что час из идентификатора слота действительно
// существует в расписании сущности: старт в {openHour .. closeHour-duration}.
// Идентификатор с «несуществующим» часом синтаксически корректен, но слота
// с таким окном генератор никогда не выдаёт.
func validateSlotWindow(startHour, durationHours, openHour, closeHour int) error {
	lastStart := closeHour - durationHours
	if startHour < openHour || startHour > lastStart {
		return fmt.Errorf("%w: start hour %d is outside working window [%d, %d]",
			ErrSlotMismatch, startHour, openHour, lastStart)
	}
	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(bookingDate, now time.Time) error {
	if domain.NormalizeDate(bookingDate).Before(domain.NormalizeDate(now)) {
		return ErrDateInPast
	}
	return nil
}
