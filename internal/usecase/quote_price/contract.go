package quote_price

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/metrics"
)

// SnapshotProvider источник текущего снапшота правил
type SnapshotProvider interface {
	Get(ctx context.Context) (*domain.RuleSnapshot, error)
}

// MetricsRecorder доменные метрики
type MetricsRecorder = metrics.Recorder

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
