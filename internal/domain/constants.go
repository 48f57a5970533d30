package domain

// Default operating window and listing range
const (
	DefaultOpenHour  = 10
	DefaultCloseHour = 20

	// DefaultListingRangeDays горизонт листинга слотов по умолчанию (сегодня + 1 год)
	DefaultListingRangeDays = 365
)

// Business validation constants
const (
	MinHour = 0
	MaxHour = 23

	MinBookingQuantity = 1
	MaxBookingQuantity = 50

	MaxRuleNameLength           = 150
	MaxCancellationReasonLength = 500
	MaxDiscountPercent          = 100
)

// Time format constants
const (
	DateFormat     = "2006-01-02" // YYYY-MM-DD
	SlotDateFormat = "20060102"   // YYYYMMDD, used inside virtual slot ids
)

// InactiveStatuses список статусов, не занимающих вместимость слота
// Используется при подсчёте агрегатов бронирований
var InactiveStatuses = []BookingStatus{
	StatusCancelledByUser,
	StatusCancelledByCompany,
}

// ActiveStatuses список статусов активных бронирований
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
