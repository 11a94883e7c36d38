package classify_time_period

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

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
