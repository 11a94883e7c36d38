package pricing_rules

import (
	"context"

	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

type SettingsService interface {
	ListChannelRules(ctx context.Context, channelID int64) (*models.PricingRuleListResponse, error)
	SupersedeChannelRule(ctx context.Context, channelID int64, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error)
	DeactivateChannelRule(ctx context.Context, ruleID int64) error
	ListAreaRules(ctx context.Context, areaCode string) (*models.PricingRuleListResponse, error)
	SupersedeAreaRule(ctx context.Context, areaCode string, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
