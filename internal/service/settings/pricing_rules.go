package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/pricing"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

// ListChannelRules возвращает историю тарифов канала
func (s *Service) ListChannelRules(ctx context.Context, channelID int64) (*models.PricingRuleListResponse, error) {
	if channelID <= 0 {
		return nil, fmt.Errorf("%w: channel id must be positive", ErrInvalidInput)
	}

	rules, err := s.repo.ListChannelRules(ctx, &channelID)
	if err != nil {
		return nil, s.fail("ListChannelRules", domain.EntityChannelRule, err)
	}

	return models.FromChannelRuleList(rules), nil
}

// SupersedeChannelRule вводит новый тариф канала
// Текущий бессрочный тариф, начавшийся раньше, закрывается датой начала нового.
// Правила не удаляются: история тарифов нужна для пересчета старых бронирований
func (s *Service) SupersedeChannelRule(ctx context.Context, channelID int64, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error) {
	s.logger.Info("SupersedeChannelRule: channel=%d from=%s", channelID, req.EffectiveFrom.Format(time.RFC3339))

	if err := validateRuleRequest(req); err != nil {
		return nil, s.fail("SupersedeChannelRule", domain.EntityChannelRule, err)
	}
	if channelID <= 0 {
		return nil, s.fail("SupersedeChannelRule", domain.EntityChannelRule,
			fmt.Errorf("%w: channel id must be positive", ErrInvalidInput))
	}

	newRule := domain.ChannelPricingRule{
		ChannelID:    channelID,
		PricingTerms: req.ToDomainTerms(),
		IsActive:     true,
		Effective:    req.ToDomainEffective(),
	}

	var created *domain.ChannelPricingRule
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		existing, err := s.repo.ListChannelRules(ctx, &channelID)
		if err != nil {
			return err
		}

		candidate := make([]domain.ChannelPricingRule, len(existing), len(existing)+1)
		copy(candidate, existing)

		var toClose []int64
		for i := range candidate {
			r := &candidate[i]
			if r.IsActive && r.Effective.IsOpenEnded() && r.Effective.From.Before(newRule.Effective.From) {
				to := newRule.Effective.From
				r.Effective.To = &to
				toClose = append(toClose, r.ID)
			}
		}
		candidate = append(candidate, newRule)

		// Проверяем итоговый набор до записи
		if err := pricing.ValidateChannelRules(candidate); err != nil {
			return err
		}

		for _, id := range toClose {
			if err := s.repo.CloseChannelRule(ctx, id, newRule.Effective.From); err != nil {
				return err
			}
		}

		rule := newRule
		created, err = s.repo.CreateChannelRule(ctx, &rule)
		return err
	})
	if err != nil {
		return nil, s.fail("SupersedeChannelRule", domain.EntityChannelRule, err)
	}

	s.changed(ctx, domain.EntityChannelRule)
	s.logger.Info("SupersedeChannelRule: created rule id=%d for channel=%d", created.ID, channelID)

	resp := models.FromChannelRule(created)
	return &resp, nil
}

// DeactivateChannelRule выключает тариф канала; запись остается в истории
func (s *Service) DeactivateChannelRule(ctx context.Context, ruleID int64) error {
	s.logger.Info("DeactivateChannelRule: rule id=%d", ruleID)

	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		rule, err := s.repo.GetChannelRuleByID(ctx, ruleID)
		if err != nil {
			return err
		}
		if !rule.IsActive {
			return nil
		}
		return s.repo.SetChannelRuleActive(ctx, ruleID, false)
	})
	if err != nil {
		return s.fail("DeactivateChannelRule", domain.EntityChannelRule, err)
	}

	s.changed(ctx, domain.EntityChannelRule)
	s.logger.Info("DeactivateChannelRule: rule id=%d deactivated", ruleID)
	return nil
}

// ListAreaRules возвращает историю тарифов особой зоны
func (s *Service) ListAreaRules(ctx context.Context, areaCode string) (*models.PricingRuleListResponse, error) {
	rules, err := s.repo.ListAreaRules(ctx, &areaCode)
	if err != nil {
		return nil, s.fail("ListAreaRules", domain.EntityAreaRule, err)
	}

	resp := &models.PricingRuleListResponse{Rules: make([]models.PricingRuleResponse, 0, len(rules))}
	for i := range rules {
		resp.Rules = append(resp.Rules, models.FromAreaRule(&rules[i]))
	}
	return resp, nil
}

// SupersedeAreaRule вводит новый тариф особой зоны по тем же правилам, что и для канала
func (s *Service) SupersedeAreaRule(ctx context.Context, areaCode string, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error) {
	s.logger.Info("SupersedeAreaRule: area=%s from=%s", areaCode, req.EffectiveFrom.Format(time.RFC3339))

	if err := validateRuleRequest(req); err != nil {
		return nil, s.fail("SupersedeAreaRule", domain.EntityAreaRule, err)
	}

	var created *domain.AreaPricingRule
	err := s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		registry, err := s.repo.ListAreas(ctx)
		if err != nil {
			return err
		}
		area, ok := findArea(registry, areaCode)
		if !ok {
			return fmt.Errorf("%w: %s", ErrAreaNotFound, areaCode)
		}

		existing, err := s.repo.ListAreaRules(ctx, &area.Code)
		if err != nil {
			return err
		}

		newRule := domain.AreaPricingRule{
			AreaCode:     area.Code,
			PricingTerms: req.ToDomainTerms(),
			IsActive:     true,
			Effective:    req.ToDomainEffective(),
		}

		candidate := make([]domain.AreaPricingRule, len(existing), len(existing)+1)
		copy(candidate, existing)

		var toClose []int64
		for i := range candidate {
			r := &candidate[i]
			if r.IsActive && r.Effective.IsOpenEnded() && r.Effective.From.Before(newRule.Effective.From) {
				to := newRule.Effective.From
				r.Effective.To = &to
				toClose = append(toClose, r.ID)
			}
		}
		candidate = append(candidate, newRule)

		if err := pricing.ValidateAreaRules(candidate); err != nil {
			return err
		}

		for _, id := range toClose {
			if err := s.repo.CloseAreaRule(ctx, id, newRule.Effective.From); err != nil {
				return err
			}
		}

		created, err = s.repo.CreateAreaRule(ctx, &newRule)
		return err
	})
	if err != nil {
		return nil, s.fail("SupersedeAreaRule", domain.EntityAreaRule, err)
	}

	s.changed(ctx, domain.EntityAreaRule)
	s.logger.Info("SupersedeAreaRule: created rule id=%d for area=%s", created.ID, created.AreaCode)

	resp := models.FromAreaRule(created)
	return &resp, nil
}

func validateRuleRequest(req *models.PricingRuleRequest) error {
	if req == nil {
		return fmt.Errorf("%w: empty request", ErrInvalidInput)
	}
	if req.EffectiveFrom.IsZero() {
		return fmt.Errorf("%w: effectiveFrom is required", ErrInvalidInput)
	}
	if req.EffectiveTo != nil && !req.EffectiveTo.After(req.EffectiveFrom) {
		return fmt.Errorf("%w: effectiveTo must be after effectiveFrom", ErrInvalidInput)
	}
	return nil
}

func findArea(registry []domain.SpecialArea, code string) (domain.SpecialArea, bool) {
	for _, area := range registry {
		if strings.EqualFold(area.Code, code) {
			return area, true
		}
	}
	return domain.SpecialArea{}, false
}
