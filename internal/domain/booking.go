package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending            BookingStatus = "pending"
	StatusConfirmed          BookingStatus = "confirmed"
	StatusCompleted          BookingStatus = "completed"
	StatusCancelledByUser    BookingStatus = "cancelled_by_user"
	StatusCancelledByCompany BookingStatus = "cancelled_by_company"
)

// Booking represents a confirmed reservation of quantity seats in one
// virtual slot window.
type Booking struct {
	ID            int64
	Reference     string // external reference (uuid), exposed to users
	UserID        int64
	EntityType    EntityType
	EntityID      int64
	Date          time.Time
	StartHour     int
	DurationHours int
	Quantity      int
	Status        BookingStatus

	// Denormalized pricing breakdown for history
	EntityName      string
	BasePrice       float64
	UnitPrice       float64
	DiscountAmount  float64
	DiscountPercent float64
	TotalPrice      float64
	AppliedRuleID   *int64
	AppliedOfferID  *int64

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking still occupies slot capacity.
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelledByUser && b.Status != StatusCancelledByCompany
}

// CanBeCancelled returns true if the booking can be cancelled.
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled.
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByUser || b.Status == StatusCancelledByCompany
}

// VirtualSlotID returns the virtual slot id the booking was made against.
func (b *Booking) VirtualSlotID() string {
	return EncodeSlotID(b.EntityID, b.Date, b.StartHour)
}
