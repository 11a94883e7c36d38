package snapshot

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/metrics"
)

// SettingsRepository источник строк конфигурации
type SettingsRepository interface {
	ListChannelRules(ctx context.Context, channelID *int64) ([]domain.ChannelPricingRule, error)
	ListAreaRules(ctx context.Context, areaCode *string) ([]domain.AreaPricingRule, error)
	ListAreas(ctx context.Context) ([]domain.SpecialArea, error)
	ListPeriods(ctx context.Context) ([]domain.TimePeriod, error)
	ListGapRules(ctx context.Context) ([]domain.GapRule, error)
}

// TxManager читает конфигурацию одной транзакцией
type TxManager interface {
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// MetricsRecorder доменные метрики
type MetricsRecorder = metrics.Recorder

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
