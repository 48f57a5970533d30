package list_slots

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/funpark/TicketingService/internal/api/handlers"
	"github.com/funpark/TicketingService/internal/domain"
	listSlots "github.com/funpark/TicketingService/internal/usecase/list_slots"
)

const (
	msgInvalidEntityID  = "некорректный ID сущности"
	msgEntityNotFound   = "аттракцион или комбо-набор не найден"
	msgInvalidDateRange = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	useCase ListSlotsUseCase
	logger  Logger
}

func NewHandler(useCase ListSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// HandleAttraction GET /api/v1/attractions/{attractionId}/slots
func (h *Handler) HandleAttraction(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.EntityTypeAttraction, "attractionId")
}

// HandleCombo GET /api/v1/combos/{comboId}/slots
func (h *Handler) HandleCombo(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, domain.EntityTypeCombo, "comboId")
}

func (h *Handler) handle(w http.ResponseWriter, r *http.Request, entityType domain.EntityType, idVar string) {
	vars := mux.Vars(r)
	entityID, err := strconv.ParseInt(vars[idVar], 10, 64)
	if err != nil {
		h.logger.Warn("GET slots - Invalid entity ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidEntityID)
		return
	}

	// Диапазон дат из query параметров: либо date, либо start_date/end_date
	query := r.URL.Query()
	req := &listSlots.Request{
		EntityType: string(entityType),
		EntityID:   entityID,
		Date:       query.Get("date"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, listSlots.ErrEntityNotFound):
			h.logger.Warn("GET slots - Entity not found: type=%s, id=%d", entityType, entityID)
			handlers.RespondNotFound(w, msgEntityNotFound)

		case errors.Is(err, listSlots.ErrInvalidDateRange):
			h.logger.Warn("GET slots - Invalid date range: type=%s, id=%d, error=%v", entityType, entityID, err)
			handlers.RespondBadRequest(w, msgInvalidDateRange)

		case errors.Is(err, listSlots.ErrInvalidInput):
			h.logger.Warn("GET slots - Invalid input: type=%s, id=%d, error=%v", entityType, entityID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET slots - Failed to list slots: type=%s, id=%d, error=%v", entityType, entityID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET slots - Listed %d slots: type=%s, id=%d", result.Meta.Count, entityType, entityID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
