package quote_price

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/pricing"
	"github.com/m04kA/SMC-CleaningService/internal/engine/slot"
)

// Options настройки расчета стоимости
type Options struct {
	// AllowUnclassified разрешает начало вне каталога периодов дня
	AllowUnclassified bool
}

// UseCase use case для предварительного расчета стоимости без сохранения
type UseCase struct {
	snapshots SnapshotProvider
	opts      Options
	metrics   MetricsRecorder
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(snapshots SnapshotProvider, opts Options, metrics MetricsRecorder, logger Logger) *UseCase {
	return &UseCase{
		snapshots: snapshots,
		opts:      opts,
		metrics:   metrics,
		logger:    logger,
	}
}

// Execute считает стоимость так же, как при создании бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuotePrice: channel=%d, date=%s, time=%s, hours=%s, cleaners=%d",
		req.ChannelID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours, req.CleanerCount)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, err
	}

	minutes, err := slot.DurationMinutes(req.DurationHours)
	if err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, slotError(err)
	}

	end, err := slot.EndTime(req.StartTime, minutes)
	if err != nil {
		uc.logger.Warn("QuotePrice: validation failed: %v", err)
		return nil, slotError(err)
	}

	snapshot, err := uc.snapshots.Get(ctx)
	if err != nil {
		uc.logger.Error("QuotePrice: failed to get rule snapshot: %v", err)
		return nil, fmt.Errorf("%w: failed to get rule snapshot: %v", ErrInternal, err)
	}

	areaCode, err := slot.Area(snapshot.Areas, req.AreaCode, req.Address)
	if err != nil {
		uc.logger.Warn("QuotePrice: %v", err)
		return nil, slotError(err)
	}

	periodCode, err := slot.Period(snapshot.Periods, req.StartTime, uc.opts.AllowUnclassified)
	if err != nil {
		uc.logger.Warn("QuotePrice: %v", err)
		return nil, slotError(err)
	}

	price, err := pricing.Resolve(snapshot, pricing.Request{
		ChannelID:     req.ChannelID,
		BookingDate:   req.Date,
		StartTime:     req.StartTime,
		DurationHours: pricing.HoursFromMinutes(minutes),
		CleanerCount:  req.CleanerCount,
		AreaCode:      areaCode,
		WithMaterials: req.WithMaterials,
	})
	if err != nil {
		var coverageErr *pricing.CoverageError
		switch {
		case errors.As(err, &coverageErr):
			uc.metrics.PricingCoverageMiss(strconv.FormatInt(req.ChannelID, 10))
			uc.logger.Warn("QuotePrice: %v", coverageErr)
			return nil, fmt.Errorf("%w: %v", ErrNoPricingCoverage, coverageErr)
		case errors.Is(err, pricing.ErrInvalidDuration):
			return nil, fmt.Errorf("%w: %v", ErrInvalidDuration, err)
		case errors.Is(err, pricing.ErrInvalidCleanerCount):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		uc.logger.Error("QuotePrice: failed to resolve price: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve price: %v", ErrInternal, err)
	}

	uc.logger.Info("QuotePrice: %s %s (rule=%d scope=%s)", price.Final, price.Currency, price.RuleID, price.Scope)

	return &Response{
		Price:      price,
		EndTime:    end,
		AreaCode:   areaCode,
		PeriodCode: periodCode,
	}, nil
}
