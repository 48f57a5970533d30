package models

import (
	"errors"
	"time"

	"github.com/funpark/TicketingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	UserID             int64  `json:"userId"`
	CancellationReason string `json:"cancellationReason"`
}

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	UserID        int64  `json:"userId"`
	EntityType    string `json:"entityType"`
	EntityID      int64  `json:"entityId"`
	VirtualSlotID string `json:"virtualSlotId"`
	BookingDate   string `json:"bookingDate"` // "2025-11-29"
	StartHour     int    `json:"startHour"`
	DurationHours int    `json:"durationHours"`
	Quantity      int    `json:"quantity"`
	Status        string `json:"status"`

	// Денормализованная разбивка цены
	EntityName      string  `json:"entityName"`
	BasePrice       float64 `json:"basePrice"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountAmount  float64 `json:"discountAmount"`
	DiscountPercent float64 `json:"discountPercent"`
	TotalPrice      float64 `json:"totalPrice"`
	AppliedRuleID   *int64  `json:"appliedRuleId,omitempty"`
	AppliedOfferID  *int64  `json:"appliedOfferId,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		Reference:          b.Reference,
		UserID:             b.UserID,
		EntityType:         string(b.EntityType),
		EntityID:           b.EntityID,
		VirtualSlotID:      b.VirtualSlotID(),
		BookingDate:        b.Date.Format(domain.DateFormat),
		StartHour:          b.StartHour,
		DurationHours:      b.DurationHours,
		Quantity:           b.Quantity,
		Status:             string(b.Status),
		EntityName:         b.EntityName,
		BasePrice:          b.BasePrice,
		UnitPrice:          b.UnitPrice,
		DiscountAmount:     b.DiscountAmount,
		DiscountPercent:    b.DiscountPercent,
		TotalPrice:         b.TotalPrice,
		AppliedRuleID:      b.AppliedRuleID,
		AppliedOfferID:     b.AppliedOfferID,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		if resp := FromDomainBooking(b); resp != nil {
			result.Bookings = append(result.Bookings, *resp)
		}
	}

	return result
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted,
		domain.StatusCancelledByUser, domain.StatusCancelledByCompany:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
