package list_slots

import (
	"github.com/funpark/TicketingService/internal/domain"
	listSlots "github.com/funpark/TicketingService/internal/usecase/list_slots"
)

// MetaResponse метаданные листинга
type MetaResponse struct {
	EntityType string `json:"entityType"`
	EntityID   int64  `json:"entityId"`
	EntityName string `json:"entityName"`
	Count      int    `json:"count"`
}

// SlotResponse HTTP модель виртуального слота
type SlotResponse struct {
	VirtualSlotID   string  `json:"virtualSlotId"`
	Date            string  `json:"date"` // "2025-11-29"
	StartHour       int     `json:"startHour"`
	EndHour         int     `json:"endHour"`
	Capacity        int     `json:"capacity"`
	Booked          int     `json:"booked"`
	Remaining       int     `json:"remaining"`
	Available       bool    `json:"available"`
	BasePrice       float64 `json:"basePrice"`
	UnitPrice       float64 `json:"unitPrice"`
	DiscountAmount  float64 `json:"discountAmount"`
	DiscountPercent float64 `json:"discountPercent"`
	AppliedRuleID   *int64  `json:"appliedRuleId,omitempty"`
	AppliedOfferID  *int64  `json:"appliedOfferId,omitempty"`
}

// ListSlotsResponse HTTP модель ответа листинга
type ListSlotsResponse struct {
	Meta  MetaResponse   `json:"meta"`
	Slots []SlotResponse `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *listSlots.Response) *ListSlotsResponse {
	slots := make([]SlotResponse, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		slots = append(slots, SlotResponse{
			VirtualSlotID:   s.VirtualSlotID,
			Date:            s.Date.Format(domain.DateFormat),
			StartHour:       s.StartHour,
			EndHour:         s.EndHour,
			Capacity:        s.Capacity,
			Booked:          s.Booked,
			Remaining:       s.Remaining,
			Available:       s.Available,
			BasePrice:       s.BasePrice,
			UnitPrice:       s.UnitPrice,
			DiscountAmount:  s.DiscountAmount,
			DiscountPercent: s.DiscountPercent,
			AppliedRuleID:   s.AppliedRuleID,
			AppliedOfferID:  s.AppliedOfferID,
		})
	}

	return &ListSlotsResponse{
		Meta: MetaResponse{
			EntityType: resp.Meta.EntityType,
			EntityID:   resp.Meta.EntityID,
			EntityName: resp.Meta.EntityName,
			Count:      resp.Meta.Count,
		},
		Slots: slots,
	}
}
