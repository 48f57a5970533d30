package create_booking

import (
	"errors"
	"net/http"

	"github.com/funpark/TicketingService/internal/api/handlers"
	"github.com/funpark/TicketingService/internal/api/middleware"
	createBooking "github.com/funpark/TicketingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgEntityNotFound     = "аттракцион или комбо-набор не найден"
	msgInvalidSlotID      = "некорректный идентификатор слота, ожидается {entity_id}-{YYYYMMDD}-{HH}"
	msgSlotMismatch       = "слот отсутствует в расписании сущности"
	msgDateInPast         = "дата бронирования уже прошла"
	msgSlotUnavailable    = "недостаточно свободных мест в слоте"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotUnavailable):
			h.logger.Warn("POST /bookings - Slot unavailable: user_id=%d, slot=%s, qty=%d",
				userID, req.VirtualSlotID, req.Quantity)
			handlers.RespondConflict(w, msgSlotUnavailable)

		case errors.Is(err, createBooking.ErrEntityNotFound):
			h.logger.Warn("POST /bookings - Entity not found: user_id=%d, slot=%s", userID, req.VirtualSlotID)
			handlers.RespondNotFound(w, msgEntityNotFound)

		case errors.Is(err, createBooking.ErrInvalidSlotID):
			h.logger.Warn("POST /bookings - Invalid slot id: user_id=%d, slot=%s", userID, req.VirtualSlotID)
			handlers.RespondBadRequest(w, msgInvalidSlotID)

		case errors.Is(err, createBooking.ErrSlotMismatch):
			h.logger.Warn("POST /bookings - Slot mismatch: user_id=%d, slot=%s", userID, req.VirtualSlotID)
			handlers.RespondBadRequest(w, msgSlotMismatch)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: user_id=%d, slot=%s", userID, req.VirtualSlotID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, slot=%s, error=%v",
				userID, req.VirtualSlotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, user_id=%d, slot=%s",
		result.ID, userID, req.VirtualSlotID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
