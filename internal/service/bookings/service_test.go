package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funpark/TicketingService/internal/domain"
	bookingRepo "github.com/funpark/TicketingService/internal/infra/storage/booking"
	"github.com/funpark/TicketingService/internal/service/bookings/models"
	"github.com/funpark/TicketingService/pkg/ptr"
)

type fakeRepo struct {
	booking   *domain.Booking
	getErr    error
	list      []*domain.Booking
	listErr   error
	cancelErr error

	cancelledID     int64
	cancelledStatus domain.BookingStatus
	cancelledReason string
	listStatus      *domain.BookingStatus
}

func (f *fakeRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	return f.booking, f.getErr
}

func (f *fakeRepo) GetByUserID(_ context.Context, _ int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	f.listStatus = status
	return f.list, f.listErr
}

func (f *fakeRepo) Cancel(_ context.Context, id int64, status domain.BookingStatus, reason string) error {
	f.cancelledID = id
	f.cancelledStatus = status
	f.cancelledReason = reason
	return f.cancelErr
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func sampleBooking() *domain.Booking {
	return &domain.Booking{
		ID:            42,
		Reference:     "9f0f2e9a-6f2a-4a58-9a3e-1df6f0a4c1bb",
		UserID:        7,
		EntityType:    domain.EntityTypeAttraction,
		EntityID:      3,
		Date:          time.Date(2025, 11, 29, 0, 0, 0, 0, time.UTC),
		StartHour:     14,
		DurationHours: 1,
		Quantity:      2,
		Status:        domain.StatusConfirmed,
		EntityName:    "Колесо обозрения",
		TotalPrice:    900,
	}
}

func TestGetByID_Owner(t *testing.T) {
	svc := NewService(&fakeRepo{booking: sampleBooking()}, nopLogger{})

	resp, err := svc.GetByID(context.Background(), 42, 7)

	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "3-20251129-14", resp.VirtualSlotID)
	assert.Equal(t, "2025-11-29", resp.BookingDate)
}

func TestGetByID_ForeignBooking(t *testing.T) {
	svc := NewService(&fakeRepo{booking: sampleBooking()}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 42, 8)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := NewService(&fakeRepo{getErr: bookingRepo.ErrBookingNotFound}, nopLogger{})

	_, err := svc.GetByID(context.Background(), 99, 7)

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetUserBookings_StatusFilter(t *testing.T) {
	repo := &fakeRepo{list: []*domain.Booking{sampleBooking()}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("confirmed"),
	})

	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	require.NotNil(t, repo.listStatus)
	assert.Equal(t, domain.StatusConfirmed, *repo.listStatus)
}

func TestGetUserBookings_InvalidStatus(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	_, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{
		UserID: 7,
		Status: ptr.Ptr("archived"),
	})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetUserBookings_Empty(t *testing.T) {
	svc := NewService(&fakeRepo{}, nopLogger{})

	resp, err := svc.GetUserBookings(context.Background(), &models.GetUserBookingsRequest{UserID: 7})

	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
}

func TestCancel_Owner(t *testing.T) {
	repo := &fakeRepo{booking: sampleBooking()}
	svc := NewService(repo, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{
		UserID:             7,
		CancellationReason: "передумал",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(42), repo.cancelledID)
	assert.Equal(t, domain.StatusCancelledByUser, repo.cancelledStatus)
	assert.Equal(t, "передумал", repo.cancelledReason)
}

func TestCancel_ForeignBooking(t *testing.T) {
	svc := NewService(&fakeRepo{booking: sampleBooking()}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 8})

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	b := sampleBooking()
	b.Status = domain.StatusCancelledByUser
	svc := NewService(&fakeRepo{booking: b}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 7})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_Completed(t *testing.T) {
	b := sampleBooking()
	b.Status = domain.StatusCompleted
	svc := NewService(&fakeRepo{booking: b}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 7})

	assert.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_RepoFailure(t *testing.T) {
	svc := NewService(&fakeRepo{booking: sampleBooking(), cancelErr: errors.New("boom")}, nopLogger{})

	err := svc.Cancel(context.Background(), 42, &models.CancelBookingRequest{UserID: 7})

	assert.ErrorIs(t, err, ErrInternal)
}
