package list_slots

import "time"

// Request модель запроса на листинг виртуальных слотов.
// Либо Date (один день), либо StartDate/EndDate (диапазон); всё опционально —
// по умолчанию сегодня и год вперёд.
type Request struct {
	EntityType string // "attraction" | "combo"
	EntityID   int64
	Date       string // YYYY-MM-DD, один день
	StartDate  string // YYYY-MM-DD
	EndDate    string // YYYY-MM-DD
}

// Response модель ответа со слотами и метаданными сущности
type Response struct {
	Meta  Meta
	Slots []Slot
}

// Meta метаданные ответа листинга
type Meta struct {
	EntityType string
	EntityID   int64
	EntityName string
	Count      int
}

// Slot итоговый DTO виртуального слота
type Slot struct {
	VirtualSlotID   string
	Date            time.Time
	StartHour       int
	EndHour         int
	Capacity        int
	Booked          int
	Remaining       int
	Available       bool
	BasePrice       float64
	UnitPrice       float64
	DiscountAmount  float64
	DiscountPercent float64
	AppliedRuleID   *int64
	AppliedOfferID  *int64
}
