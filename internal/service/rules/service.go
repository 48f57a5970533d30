package rules

import (
	"context"
	"errors"
	"fmt"

	"github.com/funpark/TicketingService/internal/domain"
	rulesRepo "github.com/funpark/TicketingService/internal/infra/storage/rules"
	"github.com/funpark/TicketingService/internal/service/rules/models"
)

// Service сервис управления правилами ценообразования
type Service struct {
	rulesRepo RulesRepository
	txManager TransactionManager
	logger    Logger
}

// NewService создает новый экземпляр сервиса правил
func NewService(rulesRepo RulesRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		rulesRepo: rulesRepo,
		txManager: txManager,
		logger:    logger,
	}
}

// CreatePriceRule создает ценовое правило.
// Правило и его диапазоны дат вставляются в одной транзакции.
func (s *Service) CreatePriceRule(ctx context.Context, req *models.CreatePriceRuleRequest) (*models.PriceRuleResponse, error) {
	s.logger.Info("CreatePriceRule: name=%q, target=%s, discount=%s/%.2f, priority=%d",
		req.Name, req.TargetType, req.DiscountType, req.DiscountValue, req.Priority)

	if err := validatePriceRuleRequest(req); err != nil {
		s.logger.Warn("CreatePriceRule: validation failed: %v", err)
		return nil, err
	}

	rule, err := req.ToDomainPriceRule()
	if err != nil {
		s.logger.Warn("CreatePriceRule: invalid date ranges: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateDateRanges(rule.DateRanges); err != nil {
		s.logger.Warn("CreatePriceRule: %v", err)
		return nil, err
	}

	var created *domain.PricingRule
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.rulesRepo.CreatePriceRule(txCtx, rule)
		if err != nil {
			return fmt.Errorf("%w: CreatePriceRule - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("CreatePriceRule: %v", err)
		return nil, err
	}

	s.logger.Info("CreatePriceRule: created rule id=%d", created.ID)
	return models.FromDomainPriceRule(created), nil
}

// CreateOfferRule создает акционное правило (buy X get Y)
func (s *Service) CreateOfferRule(ctx context.Context, req *models.CreateOfferRuleRequest) (*models.OfferRuleResponse, error) {
	s.logger.Info("CreateOfferRule: name=%q, target=%s, buy=%d get=%d, priority=%d",
		req.Name, req.TargetType, req.BuyQty, req.GetQty, req.Priority)

	if err := validateOfferRuleRequest(req); err != nil {
		s.logger.Warn("CreateOfferRule: validation failed: %v", err)
		return nil, err
	}

	offer, err := req.ToDomainOfferRule()
	if err != nil {
		s.logger.Warn("CreateOfferRule: invalid date ranges: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := validateDateRanges(offer.DateRanges); err != nil {
		s.logger.Warn("CreateOfferRule: %v", err)
		return nil, err
	}

	var created *domain.OfferRule
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.rulesRepo.CreateOfferRule(txCtx, offer)
		if err != nil {
			return fmt.Errorf("%w: CreateOfferRule - repository error: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("CreateOfferRule: %v", err)
		return nil, err
	}

	s.logger.Info("CreateOfferRule: created offer id=%d", created.ID)
	return models.FromDomainOfferRule(created), nil
}

// List возвращает все правила, опционально включая деактивированные
func (s *Service) List(ctx context.Context, includeInactive bool) (*models.RuleListResponse, error) {
	s.logger.Info("List: fetching rules, includeInactive=%t", includeInactive)

	rules, offers, err := s.rulesRepo.List(ctx, includeInactive)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d price rules, %d offer rules", len(rules), len(offers))
	return models.FromDomainRules(rules, offers), nil
}

// SetActive активирует или деактивирует правило.
// Изменение действует на все последующие расчёты цен сразу.
func (s *Service) SetActive(ctx context.Context, id int64, active bool) error {
	s.logger.Info("SetActive: rule id=%d, active=%t", id, active)

	if err := s.rulesRepo.SetActive(ctx, id, active); err != nil {
		if errors.Is(err, rulesRepo.ErrRuleNotFound) {
			s.logger.Warn("SetActive: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("SetActive: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: SetActive - repository error: %v", ErrInternal, err)
	}

	return nil
}

// Delete удаляет правило вместе с его диапазонами дат.
// Бронирования, созданные по правилу, не затрагиваются: разбивка цены
// денормализована в самом бронировании.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: rule id=%d", id)

	if err := s.rulesRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, rulesRepo.ErrRuleNotFound) {
			s.logger.Warn("Delete: rule id=%d not found", id)
			return ErrRuleNotFound
		}
		s.logger.Error("Delete: repository error for rule id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted rule id=%d", id)
	return nil
}
