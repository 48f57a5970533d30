package pricing

import (
	"context"

	"github.com/funpark/TicketingService/internal/domain"
)

// RulesRepository интерфейс хранилища правил ценообразования.
// Возвращает активные правила; движок читает их на каждый вызов и никогда
// не кеширует, поэтому изменения правил действуют со следующего запроса.
type RulesRepository interface {
	GetActive(ctx context.Context) ([]*domain.PricingRule, []*domain.OfferRule, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
