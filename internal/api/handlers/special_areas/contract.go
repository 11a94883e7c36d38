package special_areas

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

type SettingsService interface {
	ListSpecialAreas(ctx context.Context) (*models.SpecialAreaListResponse, error)
	CreateSpecialArea(ctx context.Context, req *models.SpecialAreaRequest) (*models.SpecialAreaResponse, error)
	UpdateSpecialArea(ctx context.Context, id int64, req *models.SpecialAreaRequest) (*models.SpecialAreaResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
