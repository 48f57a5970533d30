package domain

import "time"

// RuleTargetType scopes a pricing rule to attractions, combos or everything.
type RuleTargetType string

const (
	RuleTargetAttraction RuleTargetType = "attraction"
	RuleTargetCombo      RuleTargetType = "combo"
	RuleTargetAll        RuleTargetType = "all"
)

// IsValid returns true for a known target type.
func (t RuleTargetType) IsValid() bool {
	return t == RuleTargetAttraction || t == RuleTargetCombo || t == RuleTargetAll
}

// TargetTypeFor maps an entity type to the rule target type matching it.
func TargetTypeFor(et EntityType) RuleTargetType {
	if et == EntityTypeCombo {
		return RuleTargetCombo
	}
	return RuleTargetAttraction
}

// DiscountType is how a discount value is applied to a price.
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// IsValid returns true for a known discount type.
func (t DiscountType) IsValid() bool {
	return t == DiscountFixed || t == DiscountPercentage
}

// DateRange is one inclusive date window of a rule. Ranges of a rule may
// overlap and be non-contiguous; matching is union semantics.
type DateRange struct {
	From time.Time
	To   time.Time
}

// Contains reports whether date (date part only) falls inside the range.
func (r DateRange) Contains(date time.Time) bool {
	d := NormalizeDate(date)
	return !d.Before(NormalizeDate(r.From)) && !d.After(NormalizeDate(r.To))
}

// PricingRule is a dynamic-pricing or happy-hour price adjustment.
// Rules are managed elsewhere; the slot engine only reads them.
type PricingRule struct {
	ID            int64
	Name          string
	TargetType    RuleTargetType
	TargetID      *int64 // set iff TargetType is attraction or combo
	DateRanges    []DateRange
	HourFrom      *int // inclusive; nil with HourTo nil means all-day
	HourTo        *int // exclusive
	DiscountType  DiscountType
	DiscountValue float64
	Priority      int // lower = higher precedence
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsAllDay returns true when the rule carries no time-of-day window.
func (r *PricingRule) IsAllDay() bool {
	return r.HourFrom == nil || r.HourTo == nil
}

// AppliesTo reports whether the rule targets the given entity.
func (r *PricingRule) AppliesTo(target RuleTargetType, targetID int64) bool {
	if r.TargetType == RuleTargetAll {
		return true
	}
	if r.TargetType != target {
		return false
	}
	return r.TargetID != nil && *r.TargetID == targetID
}

// MatchesDate reports whether date falls inside at least one date range.
func (r *PricingRule) MatchesDate(date time.Time) bool {
	for _, dr := range r.DateRanges {
		if dr.Contains(date) {
			return true
		}
	}
	return false
}

// MatchesHour reports whether hour falls inside the [HourFrom, HourTo)
// window. All-day rules match every hour.
func (r *PricingRule) MatchesHour(hour int) bool {
	if r.IsAllDay() {
		return true
	}
	return hour >= *r.HourFrom && hour < *r.HourTo
}

// OfferRule is a buy-X-get-Y offer. The buy side is scoped the same way a
// pricing rule is; the get side defines the discount granted on the derived
// number of units.
type OfferRule struct {
	PricingRule

	BuyQty           int
	GetQty           int
	GetTargetType    RuleTargetType
	GetTargetID      *int64
	GetDiscountType  DiscountType
	GetDiscountValue float64
}

// EligibleUnits returns how many of quantity units receive the offer
// discount: floor(quantity / BuyQty) * GetQty, capped at quantity.
func (o *OfferRule) EligibleUnits(quantity int) int {
	if o.BuyQty < 1 || o.GetQty < 1 || quantity < o.BuyQty {
		return 0
	}
	n := quantity / o.BuyQty * o.GetQty
	if n > quantity {
		n = quantity
	}
	return n
}

// GrantsFor reports whether the offer's get side covers the given entity.
// В рамках покупки одной сущности скидка применима, только если get-цель
// покрывает её же.
func (o *OfferRule) GrantsFor(target RuleTargetType, targetID int64) bool {
	if o.GetTargetType == RuleTargetAll {
		return true
	}
	if o.GetTargetType != target {
		return false
	}
	return o.GetTargetID == nil || *o.GetTargetID == targetID
}
