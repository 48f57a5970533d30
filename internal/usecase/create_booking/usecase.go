package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/funpark/TicketingService/internal/domain"
	catalogClient "github.com/funpark/TicketingService/internal/integrations/catalogservice"
	"github.com/funpark/TicketingService/internal/service/pricing"
)

// UseCase use case для создания бронирования
type UseCase struct {
	catalog      CatalogClient
	bookingRepo  BookingRepository
	pricingSvc   PricingService
	txManager    TransactionManager
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogClient,
	bookingRepo BookingRepository,
	pricingSvc PricingService,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		bookingRepo:  bookingRepo,
		pricingSvc:   pricingSvc,
		txManager:    txManager,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Слот виртуальный: вместо поиска записи слота идентификатор декодируется,
// а окно пересчитывается из мастер-данных сущности. Проверка вместимости
// и вставка выполняются в сериализуемой транзакции для защиты от гонки.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, entity_type=%s, slot=%s, qty=%d",
		req.UserID, req.EntityType, req.VirtualSlotID, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	entityType := domain.EntityType(req.EntityType)

	// 2. Декодируем идентификатор виртуального слота
	ref, err := domain.DecodeSlotID(req.VirtualSlotID)
	if err != nil {
		uc.logger.Warn("CreateBooking: malformed slot id %q: %v", req.VirtualSlotID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlotID, err)
	}

	// 3. Получаем сущность из каталога
	entity, err := uc.catalog.GetEntity(ctx, entityType, ref.EntityID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrEntityNotFound) {
			uc.logger.Warn("CreateBooking: entity %s/%d not found", entityType, ref.EntityID)
			return nil, ErrEntityNotFound
		}
		uc.logger.Error("CreateBooking: failed to get entity %s/%d: %v", entityType, ref.EntityID, err)
		return nil, fmt.Errorf("%w: failed to get entity: %v", ErrInternal, err)
	}

	durationHours := entity.SlotDurationHours()

	// 4. Слот из идентификатора обязан существовать в расписании сущности
	if err := validateSlotWindow(ref.Hour, durationHours, domain.DefaultOpenHour, domain.DefaultCloseHour); err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, err
	}

	// 5. Дата не в прошлом
	now := uc.timeProvider.Now()
	if err := validateDate(ref.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date %s is in the past", ref.Date.Format(domain.DateFormat))
		return nil, err
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 6. Проверка вместимости и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 6.1. Сколько мест уже занято в этом окне
		booked, err := uc.bookingRepo.GetBookedQtyForSlot(txCtx, entityType, ref.EntityID, ref.Date, ref.Hour)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get booked qty: %v", err)
			return fmt.Errorf("%w: failed to get booked qty: %v", ErrInternal, err)
		}

		if booked+req.Quantity > entity.Capacity {
			uc.logger.Warn("CreateBooking: slot %s unavailable, %d/%d taken, requested %d",
				req.VirtualSlotID, booked, entity.Capacity, req.Quantity)
			return ErrSlotUnavailable
		}

		uc.logger.Info("CreateBooking: slot %s available, %d/%d taken", req.VirtualSlotID, booked, entity.Capacity)

		// 6.2. Цена по активным правилам на дату и час слота
		quote, err := uc.pricingSvc.Quote(txCtx, pricing.QuoteInput{
			TargetType: domain.TargetTypeFor(entityType),
			TargetID:   ref.EntityID,
			Date:       ref.Date,
			Hour:       ref.Hour,
			Quantity:   req.Quantity,
			BasePrice:  entity.BasePrice,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to quote price: %v", err)
			return fmt.Errorf("%w: failed to quote price: %v", ErrInternal, err)
		}

		// 6.3. Создаем бронирование с денормализацией цены
		booking := &domain.Booking{
			Reference:     uuid.NewString(),
			UserID:        req.UserID,
			EntityType:    entityType,
			EntityID:      ref.EntityID,
			Date:          ref.Date,
			StartHour:     ref.Hour,
			DurationHours: durationHours,
			Quantity:      req.Quantity,
			Status:        domain.StatusConfirmed,
			// Денормализация: история бронирования не зависит от будущих
			// изменений каталога и правил
			EntityName:      entity.Name,
			BasePrice:       entity.BasePrice,
			UnitPrice:       quote.UnitPrice,
			DiscountAmount:  quote.DiscountAmount,
			DiscountPercent: quote.DiscountPercent,
			TotalPrice:      quote.TotalPrice,
			AppliedRuleID:   quote.AppliedRuleID,
			AppliedOfferID:  quote.AppliedOfferID,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: created booking id=%d ref=%s for slot %s, total=%.2f",
		result.ID, result.Reference, req.VirtualSlotID, result.TotalPrice)

	return toResponse(result), nil
}

// toResponse преобразует доменную модель в ответ usecase
func toResponse(b *domain.Booking) *Response {
	return &Response{
		ID:              b.ID,
		Reference:       b.Reference,
		UserID:          b.UserID,
		EntityType:      string(b.EntityType),
		EntityID:        b.EntityID,
		VirtualSlotID:   b.VirtualSlotID(),
		Date:            b.Date,
		StartHour:       b.StartHour,
		DurationHours:   b.DurationHours,
		Quantity:        b.Quantity,
		Status:          string(b.Status),
		EntityName:      b.EntityName,
		BasePrice:       b.BasePrice,
		UnitPrice:       b.UnitPrice,
		DiscountAmount:  b.DiscountAmount,
		DiscountPercent: b.DiscountPercent,
		TotalPrice:      b.TotalPrice,
		AppliedRuleID:   b.AppliedRuleID,
		AppliedOfferID:  b.AppliedOfferID,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}
