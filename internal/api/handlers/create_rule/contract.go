package create_rule

import (
	"context"

	"github.com/funpark/TicketingService/internal/service/rules/models"
)

type RulesService interface {
	CreatePriceRule(ctx context.Context, req *models.CreatePriceRuleRequest) (*models.PriceRuleResponse, error)
	CreateOfferRule(ctx context.Context, req *models.CreateOfferRuleRequest) (*models.OfferRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
