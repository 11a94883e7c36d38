package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/periods"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// ListTimePeriods возвращает каталог периодов дня
func (s *Service) ListTimePeriods(ctx context.Context) (*models.TimePeriodListResponse, error) {
	catalog, err := s.repo.ListPeriods(ctx)
	if err != nil {
		return nil, s.fail("ListTimePeriods", domain.EntityTimePeriod, err)
	}
	return models.FromTimePeriodList(catalog), nil
}

// CreateTimePeriod добавляет период дня; периоды не должны пересекаться
func (s *Service) CreateTimePeriod(ctx context.Context, req *models.TimePeriodRequest) (*models.TimePeriodResponse, error) {
	s.logger.Info("CreateTimePeriod: code=%s %s-%s", req.Code, req.StartTime, req.EndTime)

	period, err := periodFromRequest(req)
	if err != nil {
		return nil, s.fail("CreateTimePeriod", domain.EntityTimePeriod, err)
	}

	var created *domain.TimePeriod
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		catalog, err := s.repo.ListPeriods(ctx)
		if err != nil {
			return err
		}

		if err := periods.ValidateCatalog(append(catalog, period)); err != nil {
			return err
		}

		candidate := period
		created, err = s.repo.CreatePeriod(ctx, &candidate)
		return err
	})
	if err != nil {
		return nil, s.fail("CreateTimePeriod", domain.EntityTimePeriod, err)
	}

	s.changed(ctx, domain.EntityTimePeriod)
	s.logger.Info("CreateTimePeriod: created period id=%d code=%s", created.ID, created.Code)

	resp := models.FromTimePeriod(created)
	return &resp, nil
}

// UpdateTimePeriod обновляет период дня целиком
func (s *Service) UpdateTimePeriod(ctx context.Context, id int64, req *models.TimePeriodRequest) (*models.TimePeriodResponse, error) {
	s.logger.Info("UpdateTimePeriod: id=%d code=%s %s-%s", id, req.Code, req.StartTime, req.EndTime)

	period, err := periodFromRequest(req)
	if err != nil {
		return nil, s.fail("UpdateTimePeriod", domain.EntityTimePeriod, err)
	}
	period.ID = id

	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetPeriodByID(ctx, id); err != nil {
			return err
		}

		catalog, err := s.repo.ListPeriods(ctx)
		if err != nil {
			return err
		}
		for i := range catalog {
			if catalog[i].ID == id {
				catalog[i] = period
			}
		}

		if err := periods.ValidateCatalog(catalog); err != nil {
			return err
		}

		return s.repo.UpdatePeriod(ctx, &period)
	})
	if err != nil {
		return nil, s.fail("UpdateTimePeriod", domain.EntityTimePeriod, err)
	}

	s.changed(ctx, domain.EntityTimePeriod)
	s.logger.Info("UpdateTimePeriod: updated period id=%d", id)

	resp := models.FromTimePeriod(&period)
	return &resp, nil
}

func periodFromRequest(req *models.TimePeriodRequest) (domain.TimePeriod, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.TimePeriod{}, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if len(code) > domain.MaxCodeLength {
		return domain.TimePeriod{}, fmt.Errorf("%w: code exceeds %d characters", ErrInvalidInput, domain.MaxCodeLength)
	}

	start, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return domain.TimePeriod{}, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	end, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return domain.TimePeriod{}, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = code
	}

	return domain.TimePeriod{
		Code:         code,
		Name:         name,
		StartTime:    start,
		EndTime:      end,
		DisplayOrder: req.DisplayOrder,
	}, nil
}
