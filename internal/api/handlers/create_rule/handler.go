package create_rule

import (
	"errors"
	"net/http"

	"github.com/funpark/TicketingService/internal/api/handlers"
	rulesService "github.com/funpark/TicketingService/internal/service/rules"
	"github.com/funpark/TicketingService/internal/service/rules/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRule        = "некорректные параметры правила"
)

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

// HandlePriceRule POST /api/v1/rules/price
func (h *Handler) HandlePriceRule(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePriceRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rules/price - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreatePriceRule(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /rules/price", err)
		return
	}

	h.logger.Info("POST /rules/price - Rule created successfully: rule_id=%d, name=%q", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleOfferRule POST /api/v1/rules/offer
func (h *Handler) HandleOfferRule(w http.ResponseWriter, r *http.Request) {
	var req models.CreateOfferRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /rules/offer - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateOfferRule(r.Context(), &req)
	if err != nil {
		h.respondError(w, "POST /rules/offer", err)
		return
	}

	h.logger.Info("POST /rules/offer - Offer created successfully: rule_id=%d, name=%q", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, rulesService.ErrInvalidInput):
		h.logger.Warn("%s - Invalid rule: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRule)

	default:
		h.logger.Error("%s - Failed to create rule: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
