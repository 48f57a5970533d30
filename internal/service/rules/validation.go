package rules

import (
	"fmt"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/internal/service/rules/models"
)

// validatePriceRuleRequest валидирует запрос на создание ценового правила
func validatePriceRuleRequest(req *models.CreatePriceRuleRequest) error {
	if req.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if len(req.Name) > domain.MaxRuleNameLength {
		return fmt.Errorf("%w: name exceeds %d characters", ErrInvalidInput, domain.MaxRuleNameLength)
	}

	if err := validateTarget(req.TargetType, req.TargetID); err != nil {
		return err
	}

	if err := validateDiscount(req.DiscountType, req.DiscountValue); err != nil {
		return err
	}

	if err := validateHourWindow(req.HourFrom, req.HourTo); err != nil {
		return err
	}

	if len(req.DateRanges) == 0 {
		return fmt.Errorf("%w: at least one date range is required", ErrInvalidInput)
	}
	for _, r := range req.DateRanges {
		if r.From == "" || r.To == "" {
			return fmt.Errorf("%w: date range bounds are required", ErrInvalidInput)
		}
	}

	return nil
}

// validateOfferRuleRequest валидирует запрос на создание акционного правила
func validateOfferRuleRequest(req *models.CreateOfferRuleRequest) error {
	if err := validatePriceRuleRequest(&req.CreatePriceRuleRequest); err != nil {
		return err
	}

	if req.BuyQty < 1 {
		return fmt.Errorf("%w: buyQty must be at least 1", ErrInvalidInput)
	}
	if req.GetQty < 1 {
		return fmt.Errorf("%w: getQty must be at least 1", ErrInvalidInput)
	}

	if err := validateTarget(req.GetTargetType, req.GetTargetID); err != nil {
		return err
	}

	return validateDiscount(req.GetDiscountType, req.GetDiscountValue)
}

// validateTarget проверяет согласованность типа цели и её идентификатора:
// targetID обязателен для attraction/combo и запрещён для all
func validateTarget(targetType string, targetID *int64) error {
	switch domain.RuleTargetType(targetType) {
	case domain.RuleTargetAll:
		if targetID != nil {
			return fmt.Errorf("%w: targetId must be omitted for target type %q", ErrInvalidInput, targetType)
		}
	case domain.RuleTargetAttraction, domain.RuleTargetCombo:
		if targetID == nil || *targetID <= 0 {
			return fmt.Errorf("%w: positive targetId is required for target type %q", ErrInvalidInput, targetType)
		}
	default:
		return fmt.Errorf("%w: unknown target type %q", ErrInvalidInput, targetType)
	}
	return nil
}

// validateDiscount проверяет тип и величину скидки
func validateDiscount(discountType string, value float64) error {
	switch domain.DiscountType(discountType) {
	case domain.DiscountFixed:
		if value < 0 {
			return fmt.Errorf("%w: discount value must be non-negative", ErrInvalidInput)
		}
	case domain.DiscountPercentage:
		if value < 0 || value > domain.MaxDiscountPercent {
			return fmt.Errorf("%w: percentage discount must be between 0 and %d", ErrInvalidInput, domain.MaxDiscountPercent)
		}
	default:
		return fmt.Errorf("%w: unknown discount type %q", ErrInvalidInput, discountType)
	}
	return nil
}

// validateHourWindow проверяет почасовое окно правила: либо оба края, либо
// ни одного (правило на весь день); окно [from, to), from < to
func validateHourWindow(hourFrom, hourTo *int) error {
	if (hourFrom == nil) != (hourTo == nil) {
		return fmt.Errorf("%w: hourFrom and hourTo must be set together", ErrInvalidInput)
	}
	if hourFrom == nil {
		return nil
	}

	if *hourFrom < domain.MinHour || *hourFrom > domain.MaxHour {
		return fmt.Errorf("%w: hourFrom must be between %d and %d", ErrInvalidInput, domain.MinHour, domain.MaxHour)
	}
	if *hourTo < domain.MinHour || *hourTo > domain.MaxHour+1 {
		return fmt.Errorf("%w: hourTo must be between %d and %d", ErrInvalidInput, domain.MinHour, domain.MaxHour+1)
	}
	if *hourFrom >= *hourTo {
		return fmt.Errorf("%w: hourFrom must be before hourTo", ErrInvalidInput)
	}

	return nil
}

// validateDateRanges проверяет уже распарсенные диапазоны: From <= To
func validateDateRanges(ranges []domain.DateRange) error {
	for _, r := range ranges {
		if r.From.After(r.To) {
			return fmt.Errorf("%w: date range from %s is after to %s",
				ErrInvalidInput, r.From.Format(domain.DateFormat), r.To.Format(domain.DateFormat))
		}
	}
	return nil
}
