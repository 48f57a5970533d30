package list_slots

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/internal/integrations/catalogservice"
)

// --- фейки ---

type fakeCatalog struct {
	entity *catalogservice.Entity
	err    error
}

func (f *fakeCatalog) GetEntity(_ context.Context, _ domain.EntityType, _ int64) (*catalogservice.Entity, error) {
	return f.entity, f.err
}

type fakeBookingRepo struct {
	aggregates []*domain.BookingAggregate
	err        error
}

func (f *fakeBookingRepo) GetAggregates(_ context.Context, _ domain.EntityType, _ int64, _, _ time.Time) ([]*domain.BookingAggregate, error) {
	return f.aggregates, f.err
}

type fakeRulesRepo struct {
	rules  []*domain.PricingRule
	offers []*domain.OfferRule
	err    error
}

func (f *fakeRulesRepo) GetActive(_ context.Context) ([]*domain.PricingRule, []*domain.OfferRule, error) {
	return f.rules, f.offers, f.err
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(catalog CatalogClient, bookings BookingRepository, rules RulesRepository) *UseCase {
	uc := NewUseCase(catalog, bookings, rules, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: date(2025, 11, 1)}
	return uc
}

// --- тесты ---

func TestExecute_SingleDayAttraction(t *testing.T) {
	catalog := &fakeCatalog{entity: &catalogservice.Entity{
		Type:      domain.EntityTypeAttraction,
		ID:        7,
		Name:      "Колесо обозрения",
		Capacity:  15,
		BasePrice: 500,
	}}
	uc := newTestUseCase(catalog, &fakeBookingRepo{}, &fakeRulesRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		EntityType: "attraction",
		EntityID:   7,
		Date:       "2025-11-29",
	})

	require.NoError(t, err)
	assert.Equal(t, "attraction", resp.Meta.EntityType)
	assert.Equal(t, "Колесо обозрения", resp.Meta.EntityName)
	assert.Equal(t, 10, resp.Meta.Count)
	require.Len(t, resp.Slots, 10)

	for i, slot := range resp.Slots {
		assert.Equal(t, fmt.Sprintf("7-20251129-%d", 10+i), slot.VirtualSlotID)
		assert.Equal(t, 10+i, slot.StartHour)
		assert.Equal(t, 11+i, slot.EndHour)
		assert.Equal(t, 15, slot.Capacity)
		assert.Equal(t, 15, slot.Remaining)
		assert.True(t, slot.Available)
		// без правил цена равна базовой
		assert.Equal(t, 500.0, slot.UnitPrice)
		assert.Nil(t, slot.AppliedRuleID)
	}
}

func TestExecute_ComboDuration(t *testing.T) {
	catalog := &fakeCatalog{entity: &catalogservice.Entity{
		Type:          domain.EntityTypeCombo,
		ID:            2,
		Name:          "Семейный день",
		Capacity:      20,
		BasePrice:     1200,
		AttractionIDs: []int64{1, 2, 3},
	}}
	uc := newTestUseCase(catalog, &fakeBookingRepo{}, &fakeRulesRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		EntityType: "combo",
		EntityID:   2,
		Date:       "2025-11-29",
	})

	require.NoError(t, err)
	// 3 аттракциона -> 3 часа, старты 10..17
	require.Len(t, resp.Slots, 8)
	assert.Equal(t, "2-20251129-10", resp.Slots[0].VirtualSlotID)
	assert.Equal(t, 13, resp.Slots[0].EndHour)
	assert.Equal(t, 17, resp.Slots[7].StartHour)
	assert.Equal(t, 20, resp.Slots[7].EndHour)
}

func TestExecute_AvailabilityAndPricing(t *testing.T) {
	d := date(2025, 11, 29)
	catalog := &fakeCatalog{entity: &catalogservice.Entity{
		Type:      domain.EntityTypeAttraction,
		ID:        7,
		Name:      "Колесо обозрения",
		Capacity:  15,
		BasePrice: 850,
	}}
	bookings := &fakeBookingRepo{aggregates: []*domain.BookingAggregate{
		{EntityType: domain.EntityTypeAttraction, EntityID: 7, Date: d, StartHour: 12, BookedQty: 15},
		{EntityType: domain.EntityTypeAttraction, EntityID: 7, Date: d, StartHour: 14, BookedQty: 3},
	}}
	rules := &fakeRulesRepo{rules: []*domain.PricingRule{
		{
			ID:            41,
			Name:          "Ноябрьская скидка",
			TargetType:    domain.RuleTargetAll,
			DateRanges:    []domain.DateRange{{From: date(2025, 11, 1), To: date(2025, 11, 30)}},
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: 10,
			Priority:      1,
			Active:        true,
		},
	}}
	uc := newTestUseCase(catalog, bookings, rules)

	resp, err := uc.Execute(context.Background(), &Request{
		EntityType: "attraction",
		EntityID:   7,
		Date:       "2025-11-29",
	})

	require.NoError(t, err)
	byHour := make(map[int]Slot)
	for _, s := range resp.Slots {
		byHour[s.StartHour] = s
	}

	assert.False(t, byHour[12].Available)
	assert.Equal(t, 0, byHour[12].Remaining)
	assert.Equal(t, 12, byHour[14].Remaining)

	// скидка применяется и к распроданным слотам тоже
	for _, s := range resp.Slots {
		assert.Equal(t, 765.0, s.UnitPrice)
		require.NotNil(t, s.AppliedRuleID)
		assert.Equal(t, int64(41), *s.AppliedRuleID)
	}
}

func TestExecute_EntityNotFound(t *testing.T) {
	catalog := &fakeCatalog{err: catalogservice.ErrEntityNotFound}
	uc := newTestUseCase(catalog, &fakeBookingRepo{}, &fakeRulesRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		EntityType: "attraction",
		EntityID:   99,
		Date:       "2025-11-29",
	})

	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeCatalog{}, &fakeBookingRepo{}, &fakeRulesRepo{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"unknown entity type", &Request{EntityType: "restaurant", EntityID: 1, Date: "2025-11-29"}},
		{"zero entity id", &Request{EntityType: "attraction", EntityID: 0, Date: "2025-11-29"}},
		{"date and range together", &Request{EntityType: "attraction", EntityID: 1, Date: "2025-11-29", StartDate: "2025-11-29", EndDate: "2025-11-30"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_MalformedDate(t *testing.T) {
	uc := newTestUseCase(&fakeCatalog{}, &fakeBookingRepo{}, &fakeRulesRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		EntityType: "attraction",
		EntityID:   1,
		Date:       "29.11.2025",
	})

	assert.ErrorIs(t, err, ErrInvalidDateRange)
}

func TestExecute_StartAfterEndIsEmpty(t *testing.T) {
	catalog := &fakeCatalog{entity: &catalogservice.Entity{
		Type: domain.EntityTypeAttraction, ID: 7, Name: "Колесо обозрения", Capacity: 15, BasePrice: 500,
	}}
	uc := newTestUseCase(catalog, &fakeBookingRepo{}, &fakeRulesRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		EntityType: "attraction",
		EntityID:   7,
		StartDate:  "2025-12-01",
		EndDate:    "2025-11-29",
	})

	// пустой диапазон — пустой результат, не ошибка
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Meta.Count)
	assert.Empty(t, resp.Slots)
}

func TestExecute_DefaultRangeUsesClock(t *testing.T) {
	catalog := &fakeCatalog{entity: &catalogservice.Entity{
		Type: domain.EntityTypeAttraction, ID: 7, Name: "Колесо обозрения", Capacity: 15, BasePrice: 500,
	}}
	uc := newTestUseCase(catalog, &fakeBookingRepo{}, &fakeRulesRepo{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 11, 29, 13, 45, 0, 0, time.UTC)}

	resp, err := uc.Execute(context.Background(), &Request{
		EntityType: "attraction",
		EntityID:   7,
	})

	require.NoError(t, err)
	// год вперёд: 366 дней по 10 слотов (2025-11-29 .. 2026-11-29, 2026 не високосный)
	assert.Equal(t, 366*10, resp.Meta.Count)
	assert.Equal(t, "7-20251129-10", resp.Slots[0].VirtualSlotID)
}

func TestExecute_DependencyFailures(t *testing.T) {
	entity := &catalogservice.Entity{
		Type: domain.EntityTypeAttraction, ID: 7, Name: "Колесо обозрения", Capacity: 15, BasePrice: 500,
	}
	boom := errors.New("connection refused")

	t.Run("catalog failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeCatalog{err: boom}, &fakeBookingRepo{}, &fakeRulesRepo{})
		_, err := uc.Execute(context.Background(), &Request{EntityType: "attraction", EntityID: 7, Date: "2025-11-29"})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("booking repo failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeCatalog{entity: entity}, &fakeBookingRepo{err: boom}, &fakeRulesRepo{})
		_, err := uc.Execute(context.Background(), &Request{EntityType: "attraction", EntityID: 7, Date: "2025-11-29"})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("rules repo failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeCatalog{entity: entity}, &fakeBookingRepo{}, &fakeRulesRepo{err: boom})
		_, err := uc.Execute(context.Background(), &Request{EntityType: "attraction", EntityID: 7, Date: "2025-11-29"})
		assert.ErrorIs(t, err, ErrInternal)
	})
}
