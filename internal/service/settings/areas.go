package settings

import (
	"context"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/areas"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

// ListSpecialAreas возвращает реестр особых зон
func (s *Service) ListSpecialAreas(ctx context.Context) (*models.SpecialAreaListResponse, error) {
	registry, err := s.repo.ListAreas(ctx)
	if err != nil {
		return nil, s.fail("ListSpecialAreas", domain.EntitySpecialArea, err)
	}
	return models.FromSpecialAreaList(registry), nil
}

// CreateSpecialArea добавляет особую зону
// Ключевые слова нормализуются; пересечение с ключевыми словами другой активной зоны запрещено
func (s *Service) CreateSpecialArea(ctx context.Context, req *models.SpecialAreaRequest) (*models.SpecialAreaResponse, error) {
	s.logger.Info("CreateSpecialArea: code=%s", req.Code)

	area, err := areaFromRequest(req)
	if err != nil {
		return nil, s.fail("CreateSpecialArea", domain.EntitySpecialArea, err)
	}

	var created *domain.SpecialArea
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		registry, err := s.repo.ListAreas(ctx)
		if err != nil {
			return err
		}

		if err := areas.ValidateKeywords(append(registry, area)); err != nil {
			return err
		}

		candidate := area
		created, err = s.repo.CreateArea(ctx, &candidate)
		return err
	})
	if err != nil {
		return nil, s.fail("CreateSpecialArea", domain.EntitySpecialArea, err)
	}

	s.changed(ctx, domain.EntitySpecialArea)
	s.logger.Info("CreateSpecialArea: created area id=%d code=%s", created.ID, created.Code)

	resp := models.FromSpecialArea(created)
	return &resp, nil
}

// UpdateSpecialArea обновляет название, ключевые слова и активность особой зоны
// Код зоны изменить нельзя
func (s *Service) UpdateSpecialArea(ctx context.Context, id int64, req *models.SpecialAreaRequest) (*models.SpecialAreaResponse, error) {
	s.logger.Info("UpdateSpecialArea: id=%d code=%s", id, req.Code)

	area, err := areaFromRequest(req)
	if err != nil {
		return nil, s.fail("UpdateSpecialArea", domain.EntitySpecialArea, err)
	}
	area.ID = id

	var stored *domain.SpecialArea
	err = s.txManager.DoSerializable(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetAreaByID(ctx, id)
		if err != nil {
			return err
		}
		// На код ссылаются тарифы зоны и бронирования
		if current.Code != area.Code {
			return fmt.Errorf("%w: area code %q cannot be changed", ErrInvalidInput, current.Code)
		}

		registry, err := s.repo.ListAreas(ctx)
		if err != nil {
			return err
		}
		for i := range registry {
			if registry[i].ID == id {
				registry[i] = area
			}
		}

		if err := areas.ValidateKeywords(registry); err != nil {
			return err
		}

		if err := s.repo.UpdateArea(ctx, &area); err != nil {
			return err
		}

		stored, err = s.repo.GetAreaByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, s.fail("UpdateSpecialArea", domain.EntitySpecialArea, err)
	}

	s.changed(ctx, domain.EntitySpecialArea)
	s.logger.Info("UpdateSpecialArea: updated area id=%d", id)

	resp := models.FromSpecialArea(stored)
	return &resp, nil
}

func areaFromRequest(req *models.SpecialAreaRequest) (domain.SpecialArea, error) {
	code := strings.TrimSpace(req.Code)
	if code == "" {
		return domain.SpecialArea{}, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if len(code) > domain.MaxCodeLength {
		return domain.SpecialArea{}, fmt.Errorf("%w: code exceeds %d characters", ErrInvalidInput, domain.MaxCodeLength)
	}
	for _, kw := range req.SearchKeywords {
		if len(kw) > domain.MaxKeywordLength {
			return domain.SpecialArea{}, fmt.Errorf("%w: keyword exceeds %d characters", ErrInvalidInput, domain.MaxKeywordLength)
		}
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = code
	}

	return domain.SpecialArea{
		Code:           code,
		Name:           name,
		SearchKeywords: areas.NormalizeKeywords(req.SearchKeywords),
		IsActive:       active,
	}, nil
}
