package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/psqlbuilder"
)

var periodColumns = []string{"id", "code", "name", "start_time", "end_time", "display_order"}

// ListPeriods возвращает каталог периодов в порядке отображения
func (r *Repository) ListPeriods(ctx context.Context) ([]domain.TimePeriod, error) {
	query, args, err := psqlbuilder.Select(periodColumns...).
		From("time_periods").
		OrderBy("display_order ASC", "start_time ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListPeriods - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, readError("ListPeriods - execute query", err)
	}
	defer rows.Close()

	periods := make([]domain.TimePeriod, 0)
	for rows.Next() {
		var p domain.TimePeriod
		if err := rows.Scan(&p.ID, &p.Code, &p.Name, &p.StartTime, &p.EndTime, &p.DisplayOrder); err != nil {
			return nil, readError("ListPeriods - scan row", err)
		}
		periods = append(periods, p)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("ListPeriods - rows error", err)
	}

	return periods, nil
}

// GetPeriodByID получает период по ID
func (r *Repository) GetPeriodByID(ctx context.Context, id int64) (*domain.TimePeriod, error) {
	query, args, err := psqlbuilder.Select(periodColumns...).
		From("time_periods").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetPeriodByID - build select query: %v", ErrBuildQuery, err)
	}

	var p domain.TimePeriod
	err = r.executor(ctx).QueryRowContext(ctx, query, args...).
		Scan(&p.ID, &p.Code, &p.Name, &p.StartTime, &p.EndTime, &p.DisplayOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, readError("GetPeriodByID - scan period", err)
	}
	return &p, nil
}

// CreatePeriod создает период
func (r *Repository) CreatePeriod(ctx context.Context, p *domain.TimePeriod) (*domain.TimePeriod, error) {
	query, args, err := psqlbuilder.Insert("time_periods").
		Columns("code", "name", "start_time", "end_time", "display_order").
		Values(p.Code, p.Name, p.StartTime, p.EndTime, p.DisplayOrder).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreatePeriod - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, writeError("CreatePeriod", err)
	}
	return p, nil
}

// UpdatePeriod обновляет период
func (r *Repository) UpdatePeriod(ctx context.Context, p *domain.TimePeriod) error {
	query, args, err := psqlbuilder.Update("time_periods").
		Set("code", p.Code).
		Set("name", p.Name).
		Set("start_time", p.StartTime).
		Set("end_time", p.EndTime).
		Set("display_order", p.DisplayOrder).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": p.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdatePeriod - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return writeError("UpdatePeriod", err)
	}
	return expectOneRow(result, "UpdatePeriod")
}
