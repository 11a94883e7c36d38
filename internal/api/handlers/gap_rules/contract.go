package gap_rules

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

type SettingsService interface {
	ListGapRules(ctx context.Context) (*models.GapRuleListResponse, error)
	UpsertGapRule(ctx context.Context, req *models.GapRuleRequest) (*models.GapRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
