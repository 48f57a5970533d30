package create_booking

import (
	"time"

	"github.com/funpark/TicketingService/internal/domain"
	createBooking "github.com/funpark/TicketingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	EntityType    string `json:"entityType"`    // "attraction" | "combo"
	VirtualSlotID string `json:"virtualSlotId"` // "{entity_id}-{YYYYMMDD}-{HH}"
	Quantity      int    `json:"quantity"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID            int64  `json:"id"`
	Reference     string `json:"reference"`
	UserID        int64  `json:"userId"`
	EntityType    string `json:"entityType"`
	EntityID      int64  `json:"entityId"`
	VirtualSlotID string `json:"virtualSlotId"`
	BookingDate   string `json:"bookingDate"`
	StartHour     int    `json:"startHour"`
	DurationHours int    `json:"durationHours"`
	Quantity      int    `json:"quantity"`
	Status        string `json:"status"`

	EntityName      string  `json:"entityName"`
	BasePrice       float64 `json:"basePrice"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountAmount  float64 `json:"discountAmount"`
	DiscountPercent float64 `json:"discountPercent"`
	TotalPrice      float64 `json:"totalPrice"`
	AppliedRuleID   *int64  `json:"appliedRuleId,omitempty"`
	AppliedOfferID  *int64  `json:"appliedOfferId,omitempty"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:        userID,
		EntityType:    r.EntityType,
		VirtualSlotID: r.VirtualSlotID,
		Quantity:      r.Quantity,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		Reference:       resp.Reference,
		UserID:          resp.UserID,
		EntityType:      resp.EntityType,
		EntityID:        resp.EntityID,
		VirtualSlotID:   resp.VirtualSlotID,
		BookingDate:     resp.Date.Format(domain.DateFormat),
		StartHour:       resp.StartHour,
		DurationHours:   resp.DurationHours,
		Quantity:        resp.Quantity,
		Status:          resp.Status,
		EntityName:      resp.EntityName,
		BasePrice:       resp.BasePrice,
		UnitPrice:       resp.UnitPrice,
		DiscountAmount:  resp.DiscountAmount,
		DiscountPercent: resp.DiscountPercent,
		TotalPrice:      resp.TotalPrice,
		AppliedRuleID:   resp.AppliedRuleID,
		AppliedOfferID:  resp.AppliedOfferID,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
