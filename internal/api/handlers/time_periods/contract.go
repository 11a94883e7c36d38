package time_periods

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

type SettingsService interface {
	ListTimePeriods(ctx context.Context) (*models.TimePeriodListResponse, error)
	CreateTimePeriod(ctx context.Context, req *models.TimePeriodRequest) (*models.TimePeriodResponse, error)
	UpdateTimePeriod(ctx context.Context, id int64, req *models.TimePeriodRequest) (*models.TimePeriodResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
