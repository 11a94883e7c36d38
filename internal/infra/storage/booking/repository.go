package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CleaningService/pkg/psqlbuilder"
)

// pgExclusionViolation код ошибки PostgreSQL при нарушении EXCLUDE ограничения
const pgExclusionViolation = "23P01"

var bookingColumns = []string{
	"id",
	"cleaner_id",
	"channel_id",
	"client_id",
	"booking_date",
	"start_time",
	"end_time",
	"duration_minutes",
	"cleaner_count",
	"with_materials",
	"address",
	"area_code",
	"period_code",
	"status",
	"pricing_rule_id",
	"pricing_scope",
	"currency",
	"hourly_rate",
	"base_price",
	"materials_price",
	"tax_amount",
	"final_price",
	"notes",
	"cancellation_reason",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция, использует её.
// Пересечение с другим активным бронированием клинера отсекается
// EXCLUDE ограничением таблицы и возвращается как ErrOverlap
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"cleaner_id",
			"channel_id",
			"client_id",
			"booking_date",
			"start_time",
			"end_time",
			"duration_minutes",
			"cleaner_count",
			"with_materials",
			"address",
			"area_code",
			"period_code",
			"status",
			"pricing_rule_id",
			"pricing_scope",
			"currency",
			"hourly_rate",
			"base_price",
			"materials_price",
			"tax_amount",
			"final_price",
			"notes",
		).
		Values(
			booking.CleanerID,
			booking.ChannelID,
			booking.ClientID,
			booking.BookingDate,
			booking.StartTime,
			booking.EndTime,
			booking.DurationMinutes,
			booking.CleanerCount,
			booking.WithMaterials,
			booking.Address,
			booking.AreaCode,
			booking.PeriodCode,
			booking.Status,
			booking.Price.RuleID,
			booking.Price.Scope,
			booking.Price.Currency,
			booking.Price.HourlyRate,
			booking.Price.Base,
			booking.Price.Materials,
			booking.Price.Tax,
			booking.Price.Final,
			booking.Notes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		if isExclusionViolation(err) {
			return nil, fmt.Errorf("%w: cleaner %d on %s %s-%s", ErrOverlap,
				booking.CleanerID, booking.BookingDate.Format(domain.DateFormat), booking.StartTime, booking.EndTime)
		}
		return nil, queryError(ErrExecQuery, "Create - execute insert", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
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

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, queryError(ErrScanRow, "GetByID - scan booking", err)
	}

	return booking, nil
}

// List получает бронирования с фильтрацией
// Без явного статуса и IncludeCancelled отмененные бронирования исключаются
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := applyFilter(psqlbuilder.Select(bookingColumns...).From("bookings"), filter).
		OrderBy("booking_date ASC", "start_time ASC", "id ASC")

	if filter.Limit > 0 {
		selectBuilder = selectBuilder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		selectBuilder = selectBuilder.Offset(filter.Offset)
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(ErrExecQuery, "List - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByCleanerAndDate получает неотмененные бронирования клинера на дату
// Внутри транзакции строки блокируются (FOR UPDATE) до ее завершения
func (r *Repository) GetActiveByCleanerAndDate(ctx context.Context, cleanerID int64, date time.Time) ([]domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"cleaner_id": cleanerID}).
		Where(squirrel.Eq{"booking_date": date.Format(domain.DateFormat)}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		OrderBy("start_time ASC", "id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByCleanerAndDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, queryError(ErrExecQuery, "GetActiveByCleanerAndDate - execute query", err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetActiveByDate получает неотмененные бронирования на дату
// cleanerIDs ограничивает выборку (пусто = все клинеры)
func (r *Repository) GetActiveByDate(ctx context.Context, date time.Time, cleanerIDs []int64) ([]domain.Booking, error) {
	filter := domain.BookingsFilter{
		StartDate:  &date,
		EndDate:    &date,
		CleanerIDs: cleanerIDs,
	}
	return r.List(ctx, filter)
}

// LockCleaner берет транзакционный advisory lock на клинера
// Все создания бронирований одного клинера выполняются последовательно
func (r *Repository) LockCleaner(ctx context.Context, cleanerID int64) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return fmt.Errorf("%w: LockCleaner requires a transaction", ErrLock)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	if _, err := executor.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", cleanerID); err != nil {
		return queryError(ErrLock, "LockCleaner", err)
	}
	return nil
}

// UpdateStatus переводит бронирование из статуса from в статус to
// Если статус уже изменился, возвращает ErrStatusChanged
func (r *Repository) UpdateStatus(ctx context.Context, id int64, from, to domain.BookingStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", to).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": from}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return queryError(ErrExecQuery, "UpdateStatus - execute update", err)
	}

	return expectOneRow(result, "UpdateStatus")
}

// Cancel отменяет бронирование с указанием причины
// Строка сохраняется, цена не меняется
func (r *Repository) Cancel(ctx context.Context, id int64, reason *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancellation_reason", reason).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": []domain.BookingStatus{domain.StatusPending, domain.StatusConfirmed}}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return queryError(ErrExecQuery, "Cancel - execute update", err)
	}

	return expectOneRow(result, "Cancel")
}

func applyFilter(b squirrel.SelectBuilder, filter domain.BookingsFilter) squirrel.SelectBuilder {
	if filter.StartDate != nil {
		b = b.Where(squirrel.GtOrEq{"booking_date": filter.StartDate.Format(domain.DateFormat)})
	}
	if filter.EndDate != nil {
		b = b.Where(squirrel.LtOrEq{"booking_date": filter.EndDate.Format(domain.DateFormat)})
	}
	if len(filter.CleanerIDs) > 0 {
		b = b.Where(squirrel.Eq{"cleaner_id": filter.CleanerIDs})
	}
	if filter.ChannelID != nil {
		b = b.Where(squirrel.Eq{"channel_id": *filter.ChannelID})
	}

	if filter.Status != nil {
		b = b.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		b = b.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	return b
}

func expectOneRow(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrStatusChanged
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.CleanerID,
		&booking.ChannelID,
		&booking.ClientID,
		&booking.BookingDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.DurationMinutes,
		&booking.CleanerCount,
		&booking.WithMaterials,
		&booking.Address,
		&booking.AreaCode,
		&booking.PeriodCode,
		&booking.Status,
		&booking.Price.RuleID,
		&booking.Price.Scope,
		&booking.Price.Currency,
		&booking.Price.HourlyRate,
		&booking.Price.Base,
		&booking.Price.Materials,
		&booking.Price.Tax,
		&booking.Price.Final,
		&booking.Notes,
		&booking.CancellationReason,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time
	booking.Price.CleanerCount = booking.CleanerCount
	booking.Price.WithMaterials = booking.WithMaterials
	booking.Price.Hours = booking.DurationHours()

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]domain.Booking, error) {
	bookings := make([]domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, queryError(ErrScanRow, "scanBookings - scan row", err)
		}
		bookings = append(bookings, *booking)
	}

	if err := rows.Err(); err != nil {
		return nil, queryError(ErrScanRow, "scanBookings - rows error", err)
	}

	return bookings, nil
}

// queryError оборачивает ошибку драйвера, сохраняя *pq.Error в цепочке,
// чтобы менеджер транзакций мог распознать конфликт сериализации
func queryError(sentinel error, op string, err error) error {
	return fmt.Errorf("%w: %s: %w", sentinel, op, err)
}

func isExclusionViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pgExclusionViolation
}
