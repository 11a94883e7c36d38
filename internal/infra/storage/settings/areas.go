package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/psqlbuilder"
)

var areaColumns = []string{"id", "code", "name", "search_keywords", "is_active"}

// ListAreas возвращает все особые зоны в порядке создания
func (r *Repository) ListAreas(ctx context.Context) ([]domain.SpecialArea, error) {
	query, args, err := psqlbuilder.Select(areaColumns...).
		From("special_areas").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAreas - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.executor(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, readError("ListAreas - execute query", err)
	}
	defer rows.Close()

	areas := make([]domain.SpecialArea, 0)
	for rows.Next() {
		area, err := scanArea(rows)
		if err != nil {
			return nil, readError("ListAreas - scan row", err)
		}
		areas = append(areas, *area)
	}
	if err := rows.Err(); err != nil {
		return nil, readError("ListAreas - rows error", err)
	}

	return areas, nil
}

// GetAreaByID получает особую зону по ID
func (r *Repository) GetAreaByID(ctx context.Context, id int64) (*domain.SpecialArea, error) {
	query, args, err := psqlbuilder.Select(areaColumns...).
		From("special_areas").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetAreaByID - build select query: %v", ErrBuildQuery, err)
	}

	area, err := scanArea(r.executor(ctx).QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, readError("GetAreaByID - scan area", err)
	}
	return area, nil
}

// CreateArea создает особую зону
func (r *Repository) CreateArea(ctx context.Context, area *domain.SpecialArea) (*domain.SpecialArea, error) {
	query, args, err := psqlbuilder.Insert("special_areas").
		Columns("code", "name", "search_keywords", "is_active").
		Values(area.Code, area.Name, pq.Array(area.SearchKeywords), area.IsActive).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateArea - build insert query: %v", ErrBuildQuery, err)
	}

	if err := r.executor(ctx).QueryRowContext(ctx, query, args...).Scan(&area.ID); err != nil {
		return nil, writeError("CreateArea", err)
	}
	return area, nil
}

// UpdateArea обновляет название, ключевые слова и активность зоны
// Код зоны не меняется: на него ссылаются тарифы и бронирования
func (r *Repository) UpdateArea(ctx context.Context, area *domain.SpecialArea) error {
	query, args, err := psqlbuilder.Update("special_areas").
		Set("name", area.Name).
		Set("search_keywords", pq.Array(area.SearchKeywords)).
		Set("is_active", area.IsActive).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": area.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateArea - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.executor(ctx).ExecContext(ctx, query, args...)
	if err != nil {
		return writeError("UpdateArea", err)
	}
	return expectOneRow(result, "UpdateArea")
}

func scanArea(row rowScanner) (*domain.SpecialArea, error) {
	var area domain.SpecialArea
	var keywords pq.StringArray

	if err := row.Scan(&area.ID, &area.Code, &area.Name, &keywords, &area.IsActive); err != nil {
		return nil, err
	}
	area.SearchKeywords = []string(keywords)
	return &area, nil
}
