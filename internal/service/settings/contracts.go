package settings

import (
	"context"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/metrics"
)

// SettingsRepository интерфейс репозитория конфигурации
type SettingsRepository interface {
	ListChannelRules(ctx context.Context, channelID *int64) ([]domain.ChannelPricingRule, error)
	GetChannelRuleByID(ctx context.Context, id int64) (*domain.ChannelPricingRule, error)
	CreateChannelRule(ctx context.Context, rule *domain.ChannelPricingRule) (*domain.ChannelPricingRule, error)
	CloseChannelRule(ctx context.Context, id int64, effectiveTo time.Time) error
	SetChannelRuleActive(ctx context.Context, id int64, active bool) error

	ListAreaRules(ctx context.Context, areaCode *string) ([]domain.AreaPricingRule, error)
	CreateAreaRule(ctx context.Context, rule *domain.AreaPricingRule) (*domain.AreaPricingRule, error)
	CloseAreaRule(ctx context.Context, id int64, effectiveTo time.Time) error

	ListAreas(ctx context.Context) ([]domain.SpecialArea, error)
	GetAreaByID(ctx context.Context, id int64) (*domain.SpecialArea, error)
	CreateArea(ctx context.Context, area *domain.SpecialArea) (*domain.SpecialArea, error)
	UpdateArea(ctx context.Context, area *domain.SpecialArea) error

	ListPeriods(ctx context.Context) ([]domain.TimePeriod, error)
	GetPeriodByID(ctx context.Context, id int64) (*domain.TimePeriod, error)
	CreatePeriod(ctx context.Context, p *domain.TimePeriod) (*domain.TimePeriod, error)
	UpdatePeriod(ctx context.Context, p *domain.TimePeriod) error

	ListGapRules(ctx context.Context) ([]domain.GapRule, error)
	UpsertGapRule(ctx context.Context, rule *domain.GapRule) (*domain.GapRule, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// SnapshotInvalidator сбрасывает локальный кэш правил
type SnapshotInvalidator interface {
	Invalidate()
}

// Publisher рассылает сигнал об изменении конфигурации другим экземплярам
type Publisher interface {
	Publish(ctx context.Context, entity string) error
}

// MetricsRecorder доменные метрики
type MetricsRecorder = metrics.Recorder

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
