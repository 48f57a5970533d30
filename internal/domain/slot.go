package domain

import "time"

// EntityType is the kind of bookable entity: a single attraction or a combo
// (bundle of attractions).
type EntityType string

const (
	EntityTypeAttraction EntityType = "attraction"
	EntityTypeCombo      EntityType = "combo"
)

// IsValid returns true for a known entity type.
func (t EntityType) IsValid() bool {
	return t == EntityTypeAttraction || t == EntityTypeCombo
}

// SlotDescriptor is one virtual bookable time window. Descriptors are
// computed per request and never persisted.
type SlotDescriptor struct {
	EntityType EntityType
	EntityID   int64
	Date       time.Time
	StartHour  int
	EndHour    int
	Capacity   int
	BasePrice  float64
}

// DurationHours returns the slot window length in hours.
func (d *SlotDescriptor) DurationHours() int {
	return d.EndHour - d.StartHour
}

// Slot is a descriptor annotated with availability figures.
type Slot struct {
	SlotDescriptor
	Booked    int
	Remaining int
	Available bool
}

// IsSoldOut returns true if the slot has no remaining capacity.
func (s *Slot) IsSoldOut() bool {
	return s.Remaining <= 0
}

// IsPartiallyBooked returns true if some but not all capacity is taken.
func (s *Slot) IsPartiallyBooked() bool {
	return s.Booked > 0 && s.Remaining > 0
}

// OccupancyRate returns the occupancy rate as a percentage (0-100).
func (s *Slot) OccupancyRate() float64 {
	if s.Capacity == 0 {
		return 0
	}
	return float64(s.Booked) / float64(s.Capacity) * 100
}

// SlotKey identifies one slot window for exact-match availability lookups.
// The date is kept as a YYYYMMDD string so the key is usable as a map key
// regardless of time.Time internals.
type SlotKey struct {
	EntityType EntityType
	EntityID   int64
	Date       string
	StartHour  int
}

// Key returns the exact-match key of the descriptor.
func (d *SlotDescriptor) Key() SlotKey {
	return SlotKey{
		EntityType: d.EntityType,
		EntityID:   d.EntityID,
		Date:       d.Date.Format(SlotDateFormat),
		StartHour:  d.StartHour,
	}
}

// BookingAggregate is the sum of confirmed booking quantities for one exact
// slot window, produced by the booking ledger. Read-only to the slot engine.
type BookingAggregate struct {
	EntityType EntityType
	EntityID   int64
	Date       time.Time
	StartHour  int
	BookedQty  int
}

// Key returns the exact-match key of the aggregate.
func (a *BookingAggregate) Key() SlotKey {
	return SlotKey{
		EntityType: a.EntityType,
		EntityID:   a.EntityID,
		Date:       a.Date.Format(SlotDateFormat),
		StartHour:  a.StartHour,
	}
}

// NormalizeDate strips the time-of-day part, keeping the calendar date in UTC.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
