package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/funpark/TicketingService/internal/domain"
	"github.com/funpark/TicketingService/pkg/dbmetrics"
	"github.com/funpark/TicketingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"reference",
	"user_id",
	"entity_type",
	"entity_id",
	"booking_date",
	"start_hour",
	"duration_hours",
	"quantity",
	"status",
	"entity_name",
	"base_price",
	"unit_price",
	"discount_amount",
	"discount_percent",
	"total_price",
	"applied_rule_id",
	"applied_offer_id",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований (booking ledger)
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Вызывается внутри сериализуемой транзакции usecase'а создания бронирования,
// чтобы проверка вместимости и вставка были атомарны.
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"reference",
			"user_id",
			"entity_type",
			"entity_id",
			"booking_date",
			"start_hour",
			"duration_hours",
			"quantity",
			"status",
			"entity_name",
			"base_price",
			"unit_price",
			"discount_amount",
			"discount_percent",
			"total_price",
			"applied_rule_id",
			"applied_offer_id",
		).
		Values(
			b.Reference,
			b.UserID,
			b.EntityType,
			b.EntityID,
			b.Date,
			b.StartHour,
			b.DurationHours,
			b.Quantity,
			b.Status,
			b.EntityName,
			b.BasePrice,
			b.UnitPrice,
			b.DiscountAmount,
			b.DiscountPercent,
			b.TotalPrice,
			b.AppliedRuleID,
			b.AppliedOfferID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	row := executor.QueryRowContext(ctx, query, args...)
	b, err := scanBooking(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByUserID получает список бронирований пользователя
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		OrderBy("booking_date DESC, start_hour DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// GetAggregates получает агрегаты бронирований сущности за период:
// сумму активных количеств по каждому окну (дата, стартовый час).
// Слоты без бронирований в выборку не попадают — вызывающая сторона
// трактует отсутствие агрегата как нулевую занятость.
func (r *Repository) GetAggregates(ctx context.Context, entityType domain.EntityType, entityID int64, startDate, endDate time.Time) ([]*domain.BookingAggregate, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"booking_date",
		"start_hour",
		"COALESCE(SUM(quantity), 0) AS booked_qty",
	).
		From("bookings").
		Where(squirrel.Eq{"entity_type": entityType, "entity_id": entityID}).
		Where(squirrel.GtOrEq{"booking_date": startDate}).
		Where(squirrel.LtOrEq{"booking_date": endDate}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		GroupBy("booking_date", "start_hour").
		OrderBy("booking_date ASC, start_hour ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetAggregates - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetAggregates - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	aggregates := make([]*domain.BookingAggregate, 0)
	for rows.Next() {
		agg := &domain.BookingAggregate{EntityType: entityType, EntityID: entityID}
		if err := rows.Scan(&agg.Date, &agg.StartHour, &agg.BookedQty); err != nil {
			return nil, fmt.Errorf("%w: GetAggregates - scan row: %v", ErrScanRow, err)
		}
		aggregates = append(aggregates, agg)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetAggregates - rows error: %v", ErrScanRow, err)
	}

	return aggregates, nil
}

// GetBookedQtyForSlot получает занятость одного окна слота.
// Внутри сериализуемой транзакции создания бронирования согласованность
// чтения и последующей вставки гарантирует уровень изоляции, блокировка
// строк не требуется.
func (r *Repository) GetBookedQtyForSlot(ctx context.Context, entityType domain.EntityType, entityID int64, date time.Time, startHour int) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COALESCE(SUM(quantity), 0)").
		From("bookings").
		Where(squirrel.Eq{
			"entity_type":  entityType,
			"entity_id":    entityID,
			"booking_date": date,
			"start_hour":   startHour,
		}).
		Where(squirrel.NotEq{"status": inactiveStatusStrings()}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: GetBookedQtyForSlot - build select query: %v", ErrBuildQuery, err)
	}

	var booked int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&booked); err != nil {
		return 0, fmt.Errorf("%w: GetBookedQtyForSlot - scan result: %v", ErrScanRow, err)
	}

	return booked, nil
}

// Cancel отменяет бронирование с указанием причины
func (r *Repository) Cancel(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func inactiveStatusStrings() []string {
	statuses := make([]string, len(domain.InactiveStatuses))
	for i, s := range domain.InactiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

func scanBooking(scan func(dest ...interface{}) error) (*domain.Booking, error) {
	var b domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := scan(
		&b.ID,
		&b.Reference,
		&b.UserID,
		&b.EntityType,
		&b.EntityID,
		&b.Date,
		&b.StartHour,
		&b.DurationHours,
		&b.Quantity,
		&b.Status,
		&b.EntityName,
		&b.BasePrice,
		&b.UnitPrice,
		&b.DiscountAmount,
		&b.DiscountPercent,
		&b.TotalPrice,
		&b.AppliedRuleID,
		&b.AppliedOfferID,
		&b.CancellationReason,
		&b.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return &b, nil
}
