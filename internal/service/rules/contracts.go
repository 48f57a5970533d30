package rules

import (
	"context"

	"github.com/funpark/TicketingService/internal/domain"
)

// RulesRepository интерфейс репозитория правил ценообразования
type RulesRepository interface {
	CreatePriceRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error)
	CreateOfferRule(ctx context.Context, offer *domain.OfferRule) (*domain.OfferRule, error)
	List(ctx context.Context, includeInactive bool) ([]*domain.PricingRule, []*domain.OfferRule, error)
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями.
// Создание правила пишет в две таблицы (правило + диапазоны дат),
// вставки должны быть атомарны.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
