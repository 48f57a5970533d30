package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/pkg/ptr"
)

var testDate = time.Date(2025, 11, 29, 0, 0, 0, 0, time.UTC)

func rangeAround(date time.Time, days int) []domain.DateRange {
	return []domain.DateRange{{From: date.AddDate(0, 0, -days), To: date.AddDate(0, 0, days)}}
}

func priceRule(id int64, priority int, dt domain.DiscountType, value float64) *domain.PricingRule {
	return &domain.PricingRule{
		ID:            id,
		TargetType:    domain.RuleTargetAll,
		DateRanges:    rangeAround(testDate, 7),
		DiscountType:  dt,
		DiscountValue: value,
		Priority:      priority,
		Active:        true,
	}
}

func attractionInput(qty int, base float64) QuoteInput {
	return QuoteInput{
		TargetType: domain.RuleTargetAttraction,
		TargetID:   3,
		Date:       testDate,
		Hour:       12,
		Quantity:   qty,
		BasePrice:  base,
	}
}

func TestComputeQuote_NoRules(t *testing.T) {
	q := ComputeQuote(nil, nil, attractionInput(2, 500))

	assert.Equal(t, 500.0, q.UnitPrice)
	assert.Equal(t, 1000.0, q.TotalPrice)
	assert.Equal(t, 0.0, q.DiscountAmount)
	assert.Equal(t, 0.0, q.DiscountPercent)
	assert.Nil(t, q.AppliedRuleID)
	assert.Nil(t, q.AppliedOfferID)
}

func TestComputeQuote_PercentageRoundedHalfUp(t *testing.T) {
	// 10% от 850.00 -> 765.00
	rules := []*domain.PricingRule{priceRule(1, 1, domain.DiscountPercentage, 10)}

	q := ComputeQuote(rules, nil, attractionInput(1, 850))

	assert.Equal(t, 765.0, q.UnitPrice)
	assert.Equal(t, 85.0, q.DiscountAmount)
	assert.Equal(t, 10.0, q.DiscountPercent)
	require.NotNil(t, q.AppliedRuleID)
	assert.Equal(t, int64(1), *q.AppliedRuleID)

	// дробный случай: 15% от 99.99 = 84.9915 -> 84.99
	rules[0].DiscountValue = 15
	q = ComputeQuote(rules, nil, attractionInput(1, 99.99))
	assert.Equal(t, 84.99, q.UnitPrice)
}

func TestComputeQuote_FixedClampedAtZero(t *testing.T) {
	rules := []*domain.PricingRule{priceRule(1, 1, domain.DiscountFixed, 600)}

	q := ComputeQuote(rules, nil, attractionInput(1, 500))

	assert.Equal(t, 0.0, q.UnitPrice)
	assert.Equal(t, 500.0, q.DiscountAmount)
	assert.Equal(t, 100.0, q.DiscountPercent)
}

func TestComputeQuote_LowestPriorityWins(t *testing.T) {
	low := priceRule(10, 2, domain.DiscountPercentage, 50)
	high := priceRule(20, 1, domain.DiscountPercentage, 10)

	// порядок на входе не влияет на результат
	for _, rules := range [][]*domain.PricingRule{{low, high}, {high, low}} {
		q := ComputeQuote(rules, nil, attractionInput(1, 100))
		require.NotNil(t, q.AppliedRuleID)
		assert.Equal(t, int64(20), *q.AppliedRuleID)
		assert.Equal(t, 90.0, q.UnitPrice)
	}
}

func TestComputeQuote_PriorityTieBrokenByOldestID(t *testing.T) {
	older := priceRule(5, 1, domain.DiscountPercentage, 20)
	newer := priceRule(9, 1, domain.DiscountPercentage, 40)

	q := ComputeQuote([]*domain.PricingRule{newer, older}, nil, attractionInput(1, 100))

	require.NotNil(t, q.AppliedRuleID)
	assert.Equal(t, int64(5), *q.AppliedRuleID)
	assert.Equal(t, 80.0, q.UnitPrice)
}

func TestComputeQuote_InactiveRuleIgnored(t *testing.T) {
	r := priceRule(1, 1, domain.DiscountPercentage, 10)
	r.Active = false

	q := ComputeQuote([]*domain.PricingRule{r}, nil, attractionInput(1, 100))

	assert.Nil(t, q.AppliedRuleID)
	assert.Equal(t, 100.0, q.UnitPrice)
}

func TestComputeQuote_TargetScoping(t *testing.T) {
	scoped := priceRule(1, 1, domain.DiscountPercentage, 10)
	scoped.TargetType = domain.RuleTargetAttraction
	scoped.TargetID = ptr.Ptr(int64(3))

	q := ComputeQuote([]*domain.PricingRule{scoped}, nil, attractionInput(1, 100))
	require.NotNil(t, q.AppliedRuleID)

	// другая сущность того же типа не матчится
	in := attractionInput(1, 100)
	in.TargetID = 4
	q = ComputeQuote([]*domain.PricingRule{scoped}, nil, in)
	assert.Nil(t, q.AppliedRuleID)

	// комбо не матчится на правило для аттракционов
	in = attractionInput(1, 100)
	in.TargetType = domain.RuleTargetCombo
	q = ComputeQuote([]*domain.PricingRule{scoped}, nil, in)
	assert.Nil(t, q.AppliedRuleID)
}

func TestComputeQuote_HappyHourWindow(t *testing.T) {
	// счастливые часы [16, 18): час 16 и 17 внутри, 18 уже нет
	happy := priceRule(1, 1, domain.DiscountPercentage, 30)
	happy.HourFrom = ptr.Ptr(16)
	happy.HourTo = ptr.Ptr(18)

	for hour, want := range map[int]float64{15: 100, 16: 70, 17: 70, 18: 100} {
		in := attractionInput(1, 100)
		in.Hour = hour
		q := ComputeQuote([]*domain.PricingRule{happy}, nil, in)
		assert.Equal(t, want, q.UnitPrice, "hour=%d", hour)
	}
}

func TestComputeQuote_DateRangeUnion(t *testing.T) {
	r := priceRule(1, 1, domain.DiscountPercentage, 10)
	// два несмежных диапазона; границы включительно
	r.DateRanges = []domain.DateRange{
		{From: testDate.AddDate(0, 0, -10), To: testDate.AddDate(0, 0, -5)},
		{From: testDate, To: testDate},
	}

	q := ComputeQuote([]*domain.PricingRule{r}, nil, attractionInput(1, 100))
	require.NotNil(t, q.AppliedRuleID)

	in := attractionInput(1, 100)
	in.Date = testDate.AddDate(0, 0, -3) // дыра между диапазонами
	q = ComputeQuote([]*domain.PricingRule{r}, nil, in)
	assert.Nil(t, q.AppliedRuleID)
}

func offerBuyXGetY(id int64, buy, get int, dt domain.DiscountType, value float64) *domain.OfferRule {
	return &domain.OfferRule{
		PricingRule: domain.PricingRule{
			ID:         id,
			TargetType: domain.RuleTargetAll,
			DateRanges: rangeAround(testDate, 7),
			Priority:   1,
			Active:     true,
		},
		BuyQty:           buy,
		GetQty:           get,
		GetTargetType:    domain.RuleTargetAll,
		GetDiscountType:  dt,
		GetDiscountValue: value,
	}
}

func TestComputeQuote_Buy3Get1FreeQuantity7(t *testing.T) {
	// buy-3-get-1: при quantity=7 скидку получают floor(7/3)*1 = 2 единицы
	offer := offerBuyXGetY(1, 3, 1, domain.DiscountPercentage, 100)

	q := ComputeQuote(nil, []*domain.OfferRule{offer}, attractionInput(7, 100))

	// 5 единиц по полной цене, 2 бесплатно
	assert.Equal(t, 500.0, q.TotalPrice)
	assert.Equal(t, 200.0, q.DiscountAmount)
	assert.Equal(t, 100.0, q.UnitPrice)
	require.NotNil(t, q.AppliedOfferID)
	assert.Equal(t, int64(1), *q.AppliedOfferID)
	assert.Nil(t, q.AppliedRuleID)
}

func TestComputeQuote_OfferBelowThreshold(t *testing.T) {
	offer := offerBuyXGetY(1, 3, 1, domain.DiscountPercentage, 100)

	q := ComputeQuote(nil, []*domain.OfferRule{offer}, attractionInput(2, 100))

	assert.Equal(t, 200.0, q.TotalPrice)
	assert.Nil(t, q.AppliedOfferID)
}

func TestComputeQuote_EligibleUnitsCappedAtQuantity(t *testing.T) {
	// buy-1-get-2: floor(4/1)*2 = 8, но не больше quantity
	offer := offerBuyXGetY(1, 1, 2, domain.DiscountFixed, 50)

	q := ComputeQuote(nil, []*domain.OfferRule{offer}, attractionInput(4, 100))

	assert.Equal(t, 200.0, q.TotalPrice) // все 4 единицы по 50
	assert.Equal(t, 200.0, q.DiscountAmount)
}

func TestComputeQuote_OfferComposesWithPriceRule(t *testing.T) {
	// правило -10%, затем офер buy-2-get-1 со скидкой 50% от уже сниженной цены
	rule := priceRule(1, 1, domain.DiscountPercentage, 10)
	offer := offerBuyXGetY(2, 2, 1, domain.DiscountPercentage, 50)

	q := ComputeQuote([]*domain.PricingRule{rule}, []*domain.OfferRule{offer}, attractionInput(3, 100))

	// unit = 90; одна единица за 45, две за 90
	assert.Equal(t, 90.0, q.UnitPrice)
	assert.Equal(t, 225.0, q.TotalPrice)
	assert.Equal(t, 75.0, q.DiscountAmount)
	assert.Equal(t, 25.0, q.DiscountPercent)
	require.NotNil(t, q.AppliedRuleID)
	require.NotNil(t, q.AppliedOfferID)
}

func TestComputeQuote_OfferGetTargetMustCoverEntity(t *testing.T) {
	offer := offerBuyXGetY(1, 2, 1, domain.DiscountPercentage, 100)
	offer.GetTargetType = domain.RuleTargetCombo // get-сторона не покрывает аттракцион

	q := ComputeQuote(nil, []*domain.OfferRule{offer}, attractionInput(4, 100))

	assert.Nil(t, q.AppliedOfferID)
	assert.Equal(t, 400.0, q.TotalPrice)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 765.0, Round2(765.0))
	assert.Equal(t, 84.99, Round2(84.9915))
	assert.Equal(t, 12.35, Round2(12.345000001))
	assert.Equal(t, 0.01, Round2(0.005))
}
