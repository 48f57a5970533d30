package rules

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/pkg/dbmetrics"
	"github.com/funpark/TicketingService/pkg/psqlbuilder"
)

// Виды записей в таблице pricing_rules
const (
	kindPrice = "price"
	kindOffer = "offer"
)

var ruleColumns = []string{
	"id",
	"name",
	"rule_kind",
	"target_type",
	"target_id",
	"hour_from",
	"hour_to",
	"discount_type",
	"discount_value",
	"priority",
	"active",
	"buy_qty",
	"get_qty",
	"get_target_type",
	"get_target_id",
	"get_discount_type",
	"get_discount_value",
	"created_at",
	"updated_at",
}

// Repository репозиторий правил ценообразования и оферов.
// Правила и buy-X-get-Y оферы лежат в одной таблице pricing_rules
// (rule_kind 'price' | 'offer'), диапазоны дат — в rule_date_ranges.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreatePriceRule создает ценовое правило вместе с его диапазонами дат.
// Вызывается внутри транзакции (через txmanager), чтобы правило и диапазоны
// появлялись атомарно.
func (r *Repository) CreatePriceRule(ctx context.Context, rule *domain.PricingRule) (*domain.PricingRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("pricing_rules").
		Columns(
			"name",
			"rule_kind",
			"target_type",
			"target_id",
			"hour_from",
			"hour_to",
			"discount_type",
			"discount_value",
			"priority",
			"active",
		).
		Values(
			rule.Name,
			kindPrice,
			rule.TargetType,
			rule.TargetID,
			rule.HourFrom,
			rule.HourTo,
			rule.DiscountType,
			rule.DiscountValue,
			rule.Priority,
			rule.Active,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreatePriceRule - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePriceRule - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	if err := r.insertDateRanges(ctx, executor, rule.ID, rule.DateRanges); err != nil {
		return nil, err
	}

	return rule, nil
}

// CreateOfferRule создает buy-X-get-Y офер вместе с его диапазонами дат
func (r *Repository) CreateOfferRule(ctx context.Context, offer *domain.OfferRule) (*domain.OfferRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("pricing_rules").
		Columns(
			"name",
			"rule_kind",
			"target_type",
			"target_id",
			"hour_from",
			"hour_to",
			"discount_type",
			"discount_value",
			"priority",
			"active",
			"buy_qty",
			"get_qty",
			"get_target_type",
			"get_target_id",
			"get_discount_type",
			"get_discount_value",
		).
		Values(
			offer.Name,
			kindOffer,
			offer.TargetType,
			offer.TargetID,
			offer.HourFrom,
			offer.HourTo,
			offer.GetDiscountType, // discount_type колонка не используется офером, дублируем get-скидку
			0,
			offer.Priority,
			offer.Active,
			offer.BuyQty,
			offer.GetQty,
			offer.GetTargetType,
			offer.GetTargetID,
			offer.GetDiscountType,
			offer.GetDiscountValue,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateOfferRule - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&offer.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateOfferRule - execute insert: %v", ErrExecQuery, err)
	}

	offer.CreatedAt = createdAt.Time
	offer.UpdatedAt = updatedAt.Time

	if err := r.insertDateRanges(ctx, executor, offer.ID, offer.DateRanges); err != nil {
		return nil, err
	}

	return offer, nil
}

// insertDateRanges вставляет диапазоны дат правила
func (r *Repository) insertDateRanges(ctx context.Context, executor DBExecutor, ruleID int64, ranges []domain.DateRange) error {
	if len(ranges) == 0 {
		return nil
	}

	insert := psqlbuilder.Insert("rule_date_ranges").Columns("rule_id", "date_from", "date_to")
	for _, dr := range ranges {
		insert = insert.Values(ruleID, dr.From, dr.To)
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertDateRanges - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertDateRanges - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetActive получает все активные правила и оферы с их диапазонами дат
func (r *Repository) GetActive(ctx context.Context) ([]*domain.PricingRule, []*domain.OfferRule, error) {
	return r.list(ctx, false)
}

// List получает все правила и оферы; includeInactive добавляет выключенные
func (r *Repository) List(ctx context.Context, includeInactive bool) ([]*domain.PricingRule, []*domain.OfferRule, error) {
	return r.list(ctx, includeInactive)
}

func (r *Repository) list(ctx context.Context, includeInactive bool) ([]*domain.PricingRule, []*domain.OfferRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(ruleColumns...).
		From("pricing_rules").
		OrderBy("priority ASC, id ASC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"active": true})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: list - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: list - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	rules, offers, err := r.scanRules(rows)
	if err != nil {
		return nil, nil, err
	}

	ranges, err := r.loadDateRanges(ctx, executor)
	if err != nil {
		return nil, nil, err
	}

	for _, rule := range rules {
		rule.DateRanges = ranges[rule.ID]
	}
	for _, offer := range offers {
		offer.DateRanges = ranges[offer.ID]
	}

	return rules, offers, nil
}

// loadDateRanges загружает диапазоны дат всех правил одной выборкой
func (r *Repository) loadDateRanges(ctx context.Context, executor DBExecutor) (map[int64][]domain.DateRange, error) {
	query, args, err := psqlbuilder.Select("rule_id", "date_from", "date_to").
		From("rule_date_ranges").
		OrderBy("rule_id ASC, date_from ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: loadDateRanges - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: loadDateRanges - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make(map[int64][]domain.DateRange)
	for rows.Next() {
		var ruleID int64
		var dr domain.DateRange
		if err := rows.Scan(&ruleID, &dr.From, &dr.To); err != nil {
			return nil, fmt.Errorf("%w: loadDateRanges - scan row: %v", ErrScanRow, err)
		}
		result[ruleID] = append(result[ruleID], dr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: loadDateRanges - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// SetActive включает или выключает правило
func (r *Repository) SetActive(ctx context.Context, id int64, active bool) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("pricing_rules").
		Set("active", active).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetActive - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: SetActive - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: SetActive - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// Delete удаляет правило; диапазоны дат удаляются каскадом (FK ON DELETE CASCADE)
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("pricing_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// scanRules сканирует строки pricing_rules, раскладывая их на правила и оферы
func (r *Repository) scanRules(rows *sql.Rows) ([]*domain.PricingRule, []*domain.OfferRule, error) {
	rules := make([]*domain.PricingRule, 0)
	offers := make([]*domain.OfferRule, 0)

	for rows.Next() {
		var (
			base             domain.PricingRule
			kind             string
			hourFrom, hourTo sql.NullInt64
			targetID         sql.NullInt64

			buyQty, getQty   sql.NullInt64
			getTargetType    sql.NullString
			getTargetID      sql.NullInt64
			getDiscountType  sql.NullString
			getDiscountValue sql.NullFloat64

			createdAt, updatedAt sql.NullTime
		)

		err := rows.Scan(
			&base.ID,
			&base.Name,
			&kind,
			&base.TargetType,
			&targetID,
			&hourFrom,
			&hourTo,
			&base.DiscountType,
			&base.DiscountValue,
			&base.Priority,
			&base.Active,
			&buyQty,
			&getQty,
			&getTargetType,
			&getTargetID,
			&getDiscountType,
			&getDiscountValue,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}

		if targetID.Valid {
			v := targetID.Int64
			base.TargetID = &v
		}
		if hourFrom.Valid {
			v := int(hourFrom.Int64)
			base.HourFrom = &v
		}
		if hourTo.Valid {
			v := int(hourTo.Int64)
			base.HourTo = &v
		}
		base.CreatedAt = createdAt.Time
		base.UpdatedAt = updatedAt.Time

		if kind == kindOffer {
			offer := &domain.OfferRule{
				PricingRule:      base,
				BuyQty:           int(buyQty.Int64),
				GetQty:           int(getQty.Int64),
				GetTargetType:    domain.RuleTargetType(getTargetType.String),
				GetDiscountType:  domain.DiscountType(getDiscountType.String),
				GetDiscountValue: getDiscountValue.Float64,
			}
			if getTargetID.Valid {
				v := getTargetID.Int64
				offer.GetTargetID = &v
			}
			offers = append(offers, offer)
			continue
		}

		rule := base
		rules = append(rules, &rule)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, offers, nil
}
