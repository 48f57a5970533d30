package update_rule_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/funpark/TicketingService/internal/api/handlers"
	rulesService "github.com/funpark/TicketingService/internal/service/rules"
)

const (
	msgInvalidRuleID      = "некорректный ID правила"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgRuleNotFound       = "правило не найдено"
)

// UpdateRuleStatusRequest HTTP request model
type UpdateRuleStatusRequest struct {
	Active bool `json:"active"`
}

type Handler struct {
	service RulesService
	logger  Logger
}

func NewHandler(service RulesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/rules/{ruleId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	ruleID, err := strconv.ParseInt(vars["ruleId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /rules/{id}/status - Invalid rule ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	var req UpdateRuleStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /rules/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if err := h.service.SetActive(r.Context(), ruleID, req.Active); err != nil {
		switch {
		case errors.Is(err, rulesService.ErrRuleNotFound):
			h.logger.Warn("PATCH /rules/{id}/status - Rule not found: rule_id=%d", ruleID)
			handlers.RespondNotFound(w, msgRuleNotFound)

		default:
			h.logger.Error("PATCH /rules/{id}/status - Failed to update rule: rule_id=%d, error=%v", ruleID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /rules/{id}/status - Rule updated: rule_id=%d, active=%t", ruleID, req.Active)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
