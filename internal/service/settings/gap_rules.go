package settings

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

// ListGapRules возвращает правила минимального зазора
func (s *Service) ListGapRules(ctx context.Context) (*models.GapRuleListResponse, error) {
	rules, err := s.repo.ListGapRules(ctx)
	if err != nil {
		return nil, s.fail("ListGapRules", domain.EntityGapRule, err)
	}
	return models.FromGapRuleList(rules), nil
}

// UpsertGapRule задает минимальный зазор канала или глобальный (channelId == nil)
func (s *Service) UpsertGapRule(ctx context.Context, req *models.GapRuleRequest) (*models.GapRuleResponse, error) {
	s.logger.Info("UpsertGapRule: channel=%v minutes=%d", req.ChannelID, req.MinimumGapMinutes)

	if req.MinimumGapMinutes < 0 || req.MinimumGapMinutes > domain.MaxGapMinutes {
		return nil, s.fail("UpsertGapRule", domain.EntityGapRule,
			fmt.Errorf("%w: minimumGapMinutes must be within [0, %d]", ErrInvalidInput, domain.MaxGapMinutes))
	}
	if req.ChannelID != nil && *req.ChannelID <= 0 {
		return nil, s.fail("UpsertGapRule", domain.EntityGapRule,
			fmt.Errorf("%w: channel id must be positive", ErrInvalidInput))
	}

	var saved *domain.GapRule
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		var err error
		saved, err = s.repo.UpsertGapRule(ctx, &domain.GapRule{
			ChannelID:         req.ChannelID,
			MinimumGapMinutes: req.MinimumGapMinutes,
		})
		return err
	})
	if err != nil {
		return nil, s.fail("UpsertGapRule", domain.EntityGapRule, err)
	}

	s.changed(ctx, domain.EntityGapRule)
	s.logger.Info("UpsertGapRule: saved rule id=%d", saved.ID)

	resp := models.FromGapRule(saved)
	return &resp, nil
}
