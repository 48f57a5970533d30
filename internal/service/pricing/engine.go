package pricing

import (
	"math"
	"time"

	"github.com/funpark/TicketingService/internal/domain"
)

// QuoteInput входные данные расчёта цены для одного целевого слота
type QuoteInput struct {
	TargetType domain.RuleTargetType
	TargetID   int64
	Date       time.Time
	Hour       int
	Quantity   int
	BasePrice  float64
}

// Quote результат расчёта цены с разбивкой скидок.
// AppliedRuleID/AppliedOfferID заполняются для аудита применённых правил.
type Quote struct {
	UnitPrice       float64
	TotalPrice      float64
	DiscountAmount  float64
	DiscountPercent float64
	AppliedRuleID   *int64
	AppliedOfferID  *int64
}

// Round2 rounds currency values half-up at two decimals.
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}

// ComputeQuote рассчитывает итоговую цену за quantity единиц.
//
// Алгоритм:
//  1. Среди подходящих ценовых правил выбирается единственный победитель:
//     минимальный priority, при равенстве — минимальный id. Порядок полный,
//     конфликт правил невозможен по построению.
//  2. Buy-X-get-Y оферы оцениваются независимо и компонуются с победившим
//     правилом: floor(quantity/buy_qty)*get_qty единиц (не больше quantity)
//     получают скидку офера от уже скорректированной правилом цены единицы.
//     Скидку получают первые единицы заказа; внутри одного слота единицы
//     однородны, так что выбор влияет только на аудит.
//
// Вся денежная арифметика ведётся с двумя знаками, округление half-up.
func ComputeQuote(rules []*domain.PricingRule, offers []*domain.OfferRule, in QuoteInput) Quote {
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	unit := Round2(in.BasePrice)
	var ruleID *int64

	if rule := selectRule(rules, in); rule != nil {
		unit = applyDiscount(unit, rule.DiscountType, rule.DiscountValue)
		id := rule.ID
		ruleID = &id
	}

	discountedUnits := 0
	offerUnit := unit
	var offerID *int64

	if offer := selectOffer(offers, in); offer != nil {
		if n := offer.EligibleUnits(qty); n > 0 {
			discountedUnits = n
			offerUnit = applyDiscount(unit, offer.GetDiscountType, offer.GetDiscountValue)
			id := offer.ID
			offerID = &id
		}
	}

	total := Round2(float64(qty-discountedUnits)*unit + float64(discountedUnits)*offerUnit)
	baseTotal := Round2(float64(qty) * in.BasePrice)

	discount := Round2(baseTotal - total)
	if discount < 0 {
		discount = 0
	}

	percent := 0.0
	if baseTotal > 0 {
		percent = Round2(discount / baseTotal * 100)
	}

	return Quote{
		UnitPrice:       unit,
		TotalPrice:      total,
		DiscountAmount:  discount,
		DiscountPercent: percent,
		AppliedRuleID:   ruleID,
		AppliedOfferID:  offerID,
	}
}

// selectRule выбирает правило-победитель среди кандидатов.
// Кандидат: активно, цель совпадает (с учётом 'all'), дата входит хотя бы в
// один диапазон, час входит в окно [HourFrom, HourTo) если оно задано.
func selectRule(rules []*domain.PricingRule, in QuoteInput) *domain.PricingRule {
	var winner *domain.PricingRule

	for _, r := range rules {
		if !ruleMatches(r, in) {
			continue
		}
		if winner == nil || lessRule(r, winner) {
			winner = r
		}
	}

	return winner
}

// selectOffer выбирает офер-победитель по тому же полному порядку.
// Дополнительно get-цель офера должна покрывать покупаемую сущность.
func selectOffer(offers []*domain.OfferRule, in QuoteInput) *domain.OfferRule {
	var winner *domain.OfferRule

	for _, o := range offers {
		if !ruleMatches(&o.PricingRule, in) {
			continue
		}
		if !o.GrantsFor(in.TargetType, in.TargetID) {
			continue
		}
		if winner == nil || lessRule(&o.PricingRule, &winner.PricingRule) {
			winner = o
		}
	}

	return winner
}

func ruleMatches(r *domain.PricingRule, in QuoteInput) bool {
	return r.Active &&
		r.AppliesTo(in.TargetType, in.TargetID) &&
		r.MatchesDate(in.Date) &&
		r.MatchesHour(in.Hour)
}

// lessRule задаёт полный порядок разрешения: priority по возрастанию,
// при равенстве — меньший id (более старое правило) побеждает.
func lessRule(a, b *domain.PricingRule) bool {
	if a.Priority != b.Priority {
		return a.Priority < b.Priority
	}
	return a.ID < b.ID
}

// applyDiscount применяет скидку к цене единицы.
// fixed вычитает значение (с ограничением снизу нулём),
// percentage умножает на (1 - value/100) с округлением half-up.
func applyDiscount(unit float64, discountType domain.DiscountType, value float64) float64 {
	switch discountType {
	case domain.DiscountFixed:
		result := Round2(unit - value)
		if result < 0 {
			return 0
		}
		return result
	case domain.DiscountPercentage:
		return Round2(unit * (1 - value/100))
	default:
		return unit
	}
}
