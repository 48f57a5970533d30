package list_slots

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/funpark/TicketingService/internal/domain"
	catalogClient "github.com/funpark/TicketingService/internal/integrations/catalogservice"
	"github.com/funpark/TicketingService/internal/service/pricing"
)

// UseCase use case листинга виртуальных слотов с ценами и доступностью
type UseCase struct {
	catalog      CatalogClient
	bookingRepo  BookingRepository
	rulesRepo    RulesRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	catalog CatalogClient,
	bookingRepo BookingRepository,
	rulesRepo RulesRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		catalog:      catalog,
		bookingRepo:  bookingRepo,
		rulesRepo:    rulesRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case листинга слотов.
//
// Конвейер: мастер-данные сущности -> генерация дескрипторов -> наложение
// агрегатов бронирований -> расчёт цены каждого слота по активным правилам.
// Слоты нигде не сохраняются — результат полностью вычисляется на запрос.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ListSlots: entity=%s/%d, date=%q, range=[%q, %q]",
		req.EntityType, req.EntityID, req.Date, req.StartDate, req.EndDate)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("ListSlots: validation failed: %v", err)
		return nil, err
	}

	entityType := domain.EntityType(req.EntityType)

	// 2. Границы листинга (явный момент времени только для дефолтов)
	now := uc.timeProvider.Now()
	startDate, endDate, err := resolveDateRange(req, now)
	if err != nil {
		uc.logger.Warn("ListSlots: date range resolution failed: %v", err)
		return nil, err
	}

	// 3. Получаем сущность из каталога
	entity, err := uc.catalog.GetEntity(ctx, entityType, req.EntityID)
	if err != nil {
		if errors.Is(err, catalogClient.ErrEntityNotFound) {
			uc.logger.Warn("ListSlots: entity %s/%d not found", entityType, req.EntityID)
			return nil, ErrEntityNotFound
		}
		uc.logger.Error("ListSlots: failed to get entity %s/%d: %v", entityType, req.EntityID, err)
		return nil, fmt.Errorf("%w: failed to get entity: %v", ErrInternal, err)
	}

	// 4. Агрегаты бронирований и активные правила — независимые чтения,
	// забираем конкурентно
	var (
		aggregates []*domain.BookingAggregate
		rules      []*domain.PricingRule
		offers     []*domain.OfferRule
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		aggregates, err = uc.bookingRepo.GetAggregates(gctx, entityType, req.EntityID, startDate, endDate)
		if err != nil {
			return fmt.Errorf("%w: failed to get booking aggregates: %v", ErrInternal, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		rules, offers, err = uc.rulesRepo.GetActive(gctx)
		if err != nil {
			return fmt.Errorf("%w: failed to get active rules: %v", ErrInternal, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		uc.logger.Error("ListSlots: %v", err)
		return nil, err
	}

	// 5. Генерируем дескрипторы и накладываем доступность
	descriptors := generateDescriptors(
		entityType,
		req.EntityID,
		startDate,
		endDate,
		entity.SlotDurationHours(),
		domain.DefaultOpenHour,
		domain.DefaultCloseHour,
		entity.Capacity,
		entity.BasePrice,
	)
	annotated := annotateAvailability(descriptors, aggregates)

	// 6. Цена каждого слота по единожды прочитанным правилам
	targetType := domain.TargetTypeFor(entityType)
	slots := make([]Slot, len(annotated))
	for i, slot := range annotated {
		quote := pricing.ComputeQuote(rules, offers, pricing.QuoteInput{
			TargetType: targetType,
			TargetID:   slot.EntityID,
			Date:       slot.Date,
			Hour:       slot.StartHour,
			Quantity:   1,
			BasePrice:  slot.BasePrice,
		})

		slots[i] = Slot{
			VirtualSlotID:   domain.EncodeSlotID(slot.EntityID, slot.Date, slot.StartHour),
			Date:            slot.Date,
			StartHour:       slot.StartHour,
			EndHour:         slot.EndHour,
			Capacity:        slot.Capacity,
			Booked:          slot.Booked,
			Remaining:       slot.Remaining,
			Available:       slot.Available,
			BasePrice:       slot.BasePrice,
			UnitPrice:       quote.UnitPrice,
			DiscountAmount:  quote.DiscountAmount,
			DiscountPercent: quote.DiscountPercent,
			AppliedRuleID:   quote.AppliedRuleID,
			AppliedOfferID:  quote.AppliedOfferID,
		}
	}

	uc.logger.Info("ListSlots: generated %d slots for %s/%d in [%s, %s]",
		len(slots), entityType, req.EntityID,
		startDate.Format(domain.DateFormat), endDate.Format(domain.DateFormat))

	return &Response{
		Meta: Meta{
			EntityType: string(entityType),
			EntityID:   req.EntityID,
			EntityName: entity.Name,
			Count:      len(slots),
		},
		Slots: slots,
	}, nil
}
