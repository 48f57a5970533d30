package create_booking

import (
	"context"
	"time"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/internal/integrations/catalogservice"
	"github.com/funpark/TicketingService/internal/service/pricing"
)

// CatalogClient интерфейс клиента мастер-данных каталога
type CatalogClient interface {
	GetEntity(ctx context.Context, entityType domain.EntityType, entityID int64) (*catalogservice.Entity, error)
}

// BookingRepository интерфейс репозитория бронирований.
// GetBookedQtyForSlot и Create вызываются внутри одной сериализуемой
// транзакции — проверка вместимости и вставка атомарны.
type BookingRepository interface {
	GetBookedQtyForSlot(ctx context.Context, entityType domain.EntityType, entityID int64, date time.Time, startHour int) (int, error)
	Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error)
}

// PricingService интерфейс сервиса расчёта цен
type PricingService interface {
	Quote(ctx context.Context, in pricing.QuoteInput) (pricing.Quote, error)
}

// TransactionManager интерфейс менеджера транзакций
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
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
