package check_availability

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetActiveByCleanerAndDate(ctx context.Context, cleanerID int64, date time.Time) ([]domain.Booking, error)
}

// SnapshotProvider источник текущего снапшота правил
type SnapshotProvider interface {
	Get(ctx context.Context) (*domain.RuleSnapshot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
