package models

import (
	"errors"
	"time"

	"github.com/funpark/TicketingService/internal/domain"
)

var (
	// ErrInvalidDate возвращается при нераспознаваемой дате диапазона
	ErrInvalidDate = errors.New("invalid date format, expected YYYY-MM-DD")
)

// Request модели

// DateRangeDTO один диапазон дат действия правила, границы включительно
type DateRangeDTO struct {
	From string `json:"from"` // "2025-11-01"
	To   string `json:"to"`   // "2025-11-30"
}

// CreatePriceRuleRequest запрос на создание ценового правила
type CreatePriceRuleRequest struct {
	Name          string         `json:"name"`
	TargetType    string         `json:"targetType"` // "attraction" | "combo" | "all"
	TargetID      *int64         `json:"targetId,omitempty"`
	DateRanges    []DateRangeDTO `json:"dateRanges"`
	HourFrom      *int           `json:"hourFrom,omitempty"` // включительно
	HourTo        *int           `json:"hourTo,omitempty"`   // исключительно
	DiscountType  string         `json:"discountType"`       // "fixed" | "percentage"
	DiscountValue float64        `json:"discountValue"`
	Priority      int            `json:"priority"`
}

// CreateOfferRuleRequest запрос на создание акционного правила (buy X get Y)
type CreateOfferRuleRequest struct {
	CreatePriceRuleRequest

	BuyQty           int     `json:"buyQty"`
	GetQty           int     `json:"getQty"`
	GetTargetType    string  `json:"getTargetType"`
	GetTargetID      *int64  `json:"getTargetId,omitempty"`
	GetDiscountType  string  `json:"getDiscountType"`
	GetDiscountValue float64 `json:"getDiscountValue"`
}

// Response модели

// PriceRuleResponse ответ с данными ценового правила
type PriceRuleResponse struct {
	ID            int64          `json:"id"`
	Name          string         `json:"name"`
	TargetType    string         `json:"targetType"`
	TargetID      *int64         `json:"targetId,omitempty"`
	DateRanges    []DateRangeDTO `json:"dateRanges"`
	HourFrom      *int           `json:"hourFrom,omitempty"`
	HourTo        *int           `json:"hourTo,omitempty"`
	DiscountType  string         `json:"discountType"`
	DiscountValue float64        `json:"discountValue"`
	Priority      int            `json:"priority"`
	Active        bool           `json:"active"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// OfferRuleResponse ответ с данными акционного правила
type OfferRuleResponse struct {
	PriceRuleResponse

	BuyQty           int     `json:"buyQty"`
	GetQty           int     `json:"getQty"`
	GetTargetType    string  `json:"getTargetType"`
	GetTargetID      *int64  `json:"getTargetId,omitempty"`
	GetDiscountType  string  `json:"getDiscountType"`
	GetDiscountValue float64 `json:"getDiscountValue"`
}

// RuleListResponse ответ со всеми правилами
type RuleListResponse struct {
	PriceRules []PriceRuleResponse `json:"priceRules"`
	OfferRules []OfferRuleResponse `json:"offerRules"`
}

// Методы конвертации

// ToDomainDateRanges конвертирует диапазоны дат в domain модель
func ToDomainDateRanges(ranges []DateRangeDTO) ([]domain.DateRange, error) {
	result := make([]domain.DateRange, 0, len(ranges))

	for _, r := range ranges {
		from, err := time.ParseInLocation(domain.DateFormat, r.From, time.UTC)
		if err != nil {
			return nil, ErrInvalidDate
		}
		to, err := time.ParseInLocation(domain.DateFormat, r.To, time.UTC)
		if err != nil {
			return nil, ErrInvalidDate
		}
		result = append(result, domain.DateRange{From: from, To: to})
	}

	return result, nil
}

// ToDomainPriceRule конвертирует request в domain модель
func (r *CreatePriceRuleRequest) ToDomainPriceRule() (*domain.PricingRule, error) {
	ranges, err := ToDomainDateRanges(r.DateRanges)
	if err != nil {
		return nil, err
	}

	return &domain.PricingRule{
		Name:          r.Name,
		TargetType:    domain.RuleTargetType(r.TargetType),
		TargetID:      r.TargetID,
		DateRanges:    ranges,
		HourFrom:      r.HourFrom,
		HourTo:        r.HourTo,
		DiscountType:  domain.DiscountType(r.DiscountType),
		DiscountValue: r.DiscountValue,
		Priority:      r.Priority,
		Active:        true,
	}, nil
}

// ToDomainOfferRule конвертирует request в domain модель
func (r *CreateOfferRuleRequest) ToDomainOfferRule() (*domain.OfferRule, error) {
	rule, err := r.ToDomainPriceRule()
	if err != nil {
		return nil, err
	}

	return &domain.OfferRule{
		PricingRule:      *rule,
		BuyQty:           r.BuyQty,
		GetQty:           r.GetQty,
		GetTargetType:    domain.RuleTargetType(r.GetTargetType),
		GetTargetID:      r.GetTargetID,
		GetDiscountType:  domain.DiscountType(r.GetDiscountType),
		GetDiscountValue: r.GetDiscountValue,
	}, nil
}

// FromDomainPriceRule конвертирует domain модель в DTO
func FromDomainPriceRule(rule *domain.PricingRule) *PriceRuleResponse {
	if rule == nil {
		return nil
	}

	ranges := make([]DateRangeDTO, 0, len(rule.DateRanges))
	for _, dr := range rule.DateRanges {
		ranges = append(ranges, DateRangeDTO{
			From: dr.From.Format(domain.DateFormat),
			To:   dr.To.Format(domain.DateFormat),
		})
	}

	return &PriceRuleResponse{
		ID:            rule.ID,
		Name:          rule.Name,
		TargetType:    string(rule.TargetType),
		TargetID:      rule.TargetID,
		DateRanges:    ranges,
		HourFrom:      rule.HourFrom,
		HourTo:        rule.HourTo,
		DiscountType:  string(rule.DiscountType),
		DiscountValue: rule.DiscountValue,
		Priority:      rule.Priority,
		Active:        rule.Active,
		CreatedAt:     rule.CreatedAt,
		UpdatedAt:     rule.UpdatedAt,
	}
}

// FromDomainOfferRule конвертирует domain модель в DTO
func FromDomainOfferRule(offer *domain.OfferRule) *OfferRuleResponse {
	if offer == nil {
		return nil
	}

	return &OfferRuleResponse{
		PriceRuleResponse: *FromDomainPriceRule(&offer.PricingRule),
		BuyQty:            offer.BuyQty,
		GetQty:            offer.GetQty,
		GetTargetType:     string(offer.GetTargetType),
		GetTargetID:       offer.GetTargetID,
		GetDiscountType:   string(offer.GetDiscountType),
		GetDiscountValue:  offer.GetDiscountValue,
	}
}

// FromDomainRules конвертирует списки domain моделей в DTO
func FromDomainRules(rules []*domain.PricingRule, offers []*domain.OfferRule) *RuleListResponse {
	result := &RuleListResponse{
		PriceRules: make([]PriceRuleResponse, 0, len(rules)),
		OfferRules: make([]OfferRuleResponse, 0, len(offers)),
	}

	for _, rule := range rules {
		if resp := FromDomainPriceRule(rule); resp != nil {
			result.PriceRules = append(result.PriceRules, *resp)
		}
	}
	for _, offer := range offers {
		if resp := FromDomainOfferRule(offer); resp != nil {
			result.OfferRules = append(result.OfferRules, *resp)
		}
	}

	return result
}
