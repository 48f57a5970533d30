package list_rules

import (
	"context"

	"github.com/funpark/TicketingService/internal/service/rules/models"
)

type RulesService interface {
	List(ctx context.Context, includeInactive bool) (*models.RuleListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
