package list_slots

import (
	"context"
	"time"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/internal/integrations/catalogservice"
)

// CatalogClient интерфейс клиента мастер-данных каталога
type CatalogClient interface {
	GetEntity(ctx context.Context, entityType domain.EntityType, entityID int64) (*catalogservice.Entity, error)
}

// BookingRepository интерфейс чтения агрегатов бронирований
type BookingRepository interface {
	GetAggregates(ctx context.Context, entityType domain.EntityType, entityID int64, startDate, endDate time.Time) ([]*domain.BookingAggregate, error)
}

// RulesRepository интерфейс чтения активных правил ценообразования.
// Правила читаются один раз на запрос и применяются ко всем слотам выборки.
type RulesRepository interface {
	GetActive(ctx context.Context) ([]*domain.PricingRule, []*domain.OfferRule, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования).
// Используется только для дефолтного диапазона дат — сама генерация слотов
// от часов не зависит и остаётся чистой.
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
