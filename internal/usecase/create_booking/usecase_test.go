package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/internal/integrations/catalogservice"
	"github.com/funpark/TicketingService/internal/service/pricing"
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
	bookedQty    int
	bookedQtyErr error
	createErr    error

	created *domain.Booking
}

func (f *fakeBookingRepo) GetBookedQtyForSlot(_ context.Context, _ domain.EntityType, _ int64, _ time.Time, _ int) (int, error) {
	return f.bookedQty, f.bookedQtyErr
}

func (f *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	created := *b
	created.ID = 101
	created.CreatedAt = time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)
	created.UpdatedAt = created.CreatedAt
	f.created = &created
	return &created, nil
}

type fakePricing struct {
	quote pricing.Quote
	err   error
}

func (f *fakePricing) Quote(_ context.Context, _ pricing.QuoteInput) (pricing.Quote, error) {
	return f.quote, f.err
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct {
	calls int
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	return fn(ctx)
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

func attraction() *catalogservice.Entity {
	return &catalogservice.Entity{
		Type:      domain.EntityTypeAttraction,
		ID:        7,
		Name:      "Колесо обозрения",
		Capacity:  15,
		BasePrice: 500,
	}
}

func newTestUseCase(catalog CatalogClient, repo BookingRepository, pricingSvc PricingService, tx TransactionManager) *UseCase {
	uc := NewUseCase(catalog, repo, pricingSvc, tx, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: time.Date(2025, 11, 20, 12, 0, 0, 0, time.UTC)}
	return uc
}

// --- тесты ---

func TestExecute_Success(t *testing.T) {
	repo := &fakeBookingRepo{bookedQty: 5}
	tx := &fakeTxManager{}
	pricingSvc := &fakePricing{quote: pricing.Quote{
		UnitPrice:       450,
		TotalPrice:      900,
		DiscountAmount:  100,
		DiscountPercent: 10,
		AppliedRuleID:   ptrInt64(41),
	}}
	uc := newTestUseCase(&fakeCatalog{entity: attraction()}, repo, pricingSvc, tx)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        1,
		EntityType:    "attraction",
		VirtualSlotID: "7-20251129-14",
		Quantity:      2,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(101), resp.ID)
	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, "7-20251129-14", resp.VirtualSlotID)
	assert.Equal(t, int64(7), resp.EntityID)
	assert.Equal(t, 14, resp.StartHour)
	assert.Equal(t, 1, resp.DurationHours)
	assert.Equal(t, 2, resp.Quantity)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "Колесо обозрения", resp.EntityName)
	assert.Equal(t, 450.0, resp.UnitPrice)
	assert.Equal(t, 900.0, resp.TotalPrice)
	require.NotNil(t, resp.AppliedRuleID)
	assert.Equal(t, int64(41), *resp.AppliedRuleID)

	assert.Equal(t, 1, tx.calls)
	require.NotNil(t, repo.created)
	assert.True(t, repo.created.Date.Equal(time.Date(2025, 11, 29, 0, 0, 0, 0, time.UTC)))
}

func TestExecute_ExactCapacityFit(t *testing.T) {
	// 13 из 15 занято, просим ровно оставшиеся 2
	repo := &fakeBookingRepo{bookedQty: 13}
	uc := newTestUseCase(&fakeCatalog{entity: attraction()}, repo, &fakePricing{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        1,
		EntityType:    "attraction",
		VirtualSlotID: "7-20251129-14",
		Quantity:      2,
	})

	assert.NoError(t, err)
}

func TestExecute_SlotUnavailable(t *testing.T) {
	// 14 из 15 занято, просим 2
	repo := &fakeBookingRepo{bookedQty: 14}
	uc := newTestUseCase(&fakeCatalog{entity: attraction()}, repo, &fakePricing{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        1,
		EntityType:    "attraction",
		VirtualSlotID: "7-20251129-14",
		Quantity:      2,
	})

	assert.ErrorIs(t, err, ErrSlotUnavailable)
	assert.Nil(t, repo.created)
}

func TestExecute_MalformedSlotID(t *testing.T) {
	uc := newTestUseCase(&fakeCatalog{entity: attraction()}, &fakeBookingRepo{}, &fakePricing{}, &fakeTxManager{})

	tests := []string{
		"7-20251129",      // нет часа
		"7-2025-11-29-14", // лишние поля
		"abc-20251129-14", // нечисловой id
		"7-20251332-14",   // несуществующая дата
		"7-20251129-24",   // час вне диапазона
	}

	for _, slotID := range tests {
		t.Run(slotID, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				UserID: 1, EntityType: "attraction", VirtualSlotID: slotID, Quantity: 1,
			})
			assert.ErrorIs(t, err, ErrInvalidSlotID)
		})
	}
}

func TestExecute_SlotOutsideSchedule(t *testing.T) {
	uc := newTestUseCase(&fakeCatalog{entity: attraction()}, &fakeBookingRepo{}, &fakePricing{}, &fakeTxManager{})

	// синтаксически корректные идентификаторы часов, которых генератор не выдаёт
	for _, slotID := range []string{"7-20251129-09", "7-20251129-20", "7-20251129-23"} {
		t.Run(slotID, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				UserID: 1, EntityType: "attraction", VirtualSlotID: slotID, Quantity: 1,
			})
			assert.ErrorIs(t, err, ErrSlotMismatch)
		})
	}
}

func TestExecute_ComboLastStartShifts(t *testing.T) {
	combo := &catalogservice.Entity{
		Type:          domain.EntityTypeCombo,
		ID:            2,
		Name:          "Семейный день",
		Capacity:      20,
		BasePrice:     1200,
		AttractionIDs: []int64{1, 2, 3},
	}
	uc := newTestUseCase(&fakeCatalog{entity: combo}, &fakeBookingRepo{}, &fakePricing{}, &fakeTxManager{})

	// для трёхчасового комбо последний допустимый старт 17
	resp, err := uc.Execute(context.Background(), &Request{
		UserID: 1, EntityType: "combo", VirtualSlotID: "2-20251129-17", Quantity: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.DurationHours)

	_, err = uc.Execute(context.Background(), &Request{
		UserID: 1, EntityType: "combo", VirtualSlotID: "2-20251129-18", Quantity: 1,
	})
	assert.ErrorIs(t, err, ErrSlotMismatch)
}

func TestExecute_DateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeCatalog{entity: attraction()}, &fakeBookingRepo{}, &fakePricing{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 1, EntityType: "attraction", VirtualSlotID: "7-20251119-14", Quantity: 1,
	})

	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_SameDayIsAllowed(t *testing.T) {
	uc := newTestUseCase(&fakeCatalog{entity: attraction()}, &fakeBookingRepo{}, &fakePricing{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 1, EntityType: "attraction", VirtualSlotID: "7-20251120-14", Quantity: 1,
	})

	assert.NoError(t, err)
}

func TestExecute_EntityNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeCatalog{err: catalogservice.ErrEntityNotFound}, &fakeBookingRepo{}, &fakePricing{}, &fakeTxManager{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID: 1, EntityType: "attraction", VirtualSlotID: "99-20251129-14", Quantity: 1,
	})

	assert.ErrorIs(t, err, ErrEntityNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newTestUseCase(&fakeCatalog{entity: attraction()}, &fakeBookingRepo{}, &fakePricing{}, &fakeTxManager{})

	tests := []struct {
		name string
		req  *Request
	}{
		{"zero user", &Request{UserID: 0, EntityType: "attraction", VirtualSlotID: "7-20251129-14", Quantity: 1}},
		{"unknown entity type", &Request{UserID: 1, EntityType: "cinema", VirtualSlotID: "7-20251129-14", Quantity: 1}},
		{"empty slot id", &Request{UserID: 1, EntityType: "attraction", Quantity: 1}},
		{"zero quantity", &Request{UserID: 1, EntityType: "attraction", VirtualSlotID: "7-20251129-14", Quantity: 0}},
		{"quantity over limit", &Request{UserID: 1, EntityType: "attraction", VirtualSlotID: "7-20251129-14", Quantity: domain.MaxBookingQuantity + 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_DependencyFailures(t *testing.T) {
	boom := errors.New("connection refused")

	t.Run("booked qty failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeCatalog{entity: attraction()}, &fakeBookingRepo{bookedQtyErr: boom}, &fakePricing{}, &fakeTxManager{})
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 1, EntityType: "attraction", VirtualSlotID: "7-20251129-14", Quantity: 1,
		})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("pricing failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeCatalog{entity: attraction()}, &fakeBookingRepo{}, &fakePricing{err: boom}, &fakeTxManager{})
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 1, EntityType: "attraction", VirtualSlotID: "7-20251129-14", Quantity: 1,
		})
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("create failure", func(t *testing.T) {
		uc := newTestUseCase(&fakeCatalog{entity: attraction()}, &fakeBookingRepo{createErr: boom}, &fakePricing{}, &fakeTxManager{})
		_, err := uc.Execute(context.Background(), &Request{
			UserID: 1, EntityType: "attraction", VirtualSlotID: "7-20251129-14", Quantity: 1,
		})
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func ptrInt64(v int64) *int64 {
	return &v
}
