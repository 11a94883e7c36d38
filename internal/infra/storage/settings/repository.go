package settings

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/m04kA/SMC-CleaningService/pkg/dbmetrics"
)

const (
	pgUniqueViolation    = "23505"
	pgExclusionViolation = "23P01"
)

// Repository репозиторий конфигурации: тарифы, особые зоны, периоды, правила зазора
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория конфигурации
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

func (r *Repository) executor(ctx context.Context) DBExecutor {
	return dbmetrics.GetExecutor(ctx, r.db)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func expectOneRow(result sql.Result, op string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// writeError переводит ошибки ограничений в ошибки репозитория
// Остальные ошибки драйвера остаются в цепочке для повтора транзакции
func writeError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pgExclusionViolation:
			return fmt.Errorf("%w: %s: %s", ErrOverlap, op, pqErr.Constraint)
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s: %s", ErrDuplicate, op, pqErr.Constraint)
		}
	}
	return fmt.Errorf("%w: %s: %w", ErrExecQuery, op, err)
}

func readError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrScanRow, op, err)
}
