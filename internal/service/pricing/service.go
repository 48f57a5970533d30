package pricing

import (
	"context"
	"fmt"
	"strconv"
)

// Service сервис расчёта цен: читает активные правила из хранилища и
// делегирует чистому движку ComputeQuote
type Service struct {
	rulesRepo RulesRepository
	logger    Logger
}

// NewService создает новый экземпляр сервиса ценообразования
func NewService(rulesRepo RulesRepository, logger Logger) *Service {
	return &Service{
		rulesRepo: rulesRepo,
		logger:    logger,
	}
}

// Quote рассчитывает цену для одного целевого слота.
// Правила читаются на каждый вызов — изменения правил действуют сразу.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (Quote, error) {
	rules, offers, err := s.rulesRepo.GetActive(ctx)
	if err != nil {
		s.logger.Error("Quote: failed to load active rules: %v", err)
		return Quote{}, fmt.Errorf("%w: failed to load active rules: %v", ErrInternal, err)
	}

	quote := ComputeQuote(rules, offers, in)

	if quote.AppliedRuleID != nil || quote.AppliedOfferID != nil {
		s.logger.Info("Quote: target=%s/%d date=%s hour=%d qty=%d base=%.2f -> unit=%.2f total=%.2f (rule=%s, offer=%s)",
			in.TargetType, in.TargetID, in.Date.Format("2006-01-02"), in.Hour, in.Quantity, in.BasePrice,
			quote.UnitPrice, quote.TotalPrice, fmtID(quote.AppliedRuleID), fmtID(quote.AppliedOfferID))
	}

	return quote, nil
}

func fmtID(id *int64) string {
	if id == nil {
		return "-"
	}
	return strconv.FormatInt(*id, 10)
}
