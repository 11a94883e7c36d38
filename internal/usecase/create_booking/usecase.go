package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/availability"
	"github.com/m04kA/SMC-CleaningService/internal/engine/pricing"
	"github.com/m04kA/SMC-CleaningService/internal/engine/slot"
	bookingRepo "github.com/m04kA/SMC-CleaningService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-CleaningService/pkg/metrics"
)

// Options настройки создания бронирований
type Options struct {
	// AllowUnclassified разрешает начало вне каталога периодов дня
	AllowUnclassified bool
}

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	snapshots    SnapshotProvider
	txManager    TransactionManager
	opts         Options
	metrics      MetricsRecorder
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	snapshots SnapshotProvider,
	txManager TransactionManager,
	opts Options,
	metrics MetricsRecorder,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		snapshots:    snapshots,
		txManager:    txManager,
		opts:         opts,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования
// Цена и предварительная проверка доступности считаются параллельно,
// окончательная проверка и запись выполняются в сериализуемой транзакции
// под advisory lock клинера
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: cleaner=%d, channel=%d, client=%d, date=%s, time=%s, hours=%s",
		req.CleanerID, req.ChannelID, req.ClientID, req.Date.Format(domain.DateFormat), req.StartTime, req.DurationHours)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	minutes, err := slot.DurationMinutes(req.DurationHours)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, slotError(err)
	}

	end, err := slot.EndTime(req.StartTime, minutes)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, slotError(err)
	}

	// 2. Получаем снапшот правил
	snapshot, err := uc.snapshots.Get(ctx)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get rule snapshot: %v", err)
		return nil, fmt.Errorf("%w: failed to get rule snapshot: %v", ErrInternal, err)
	}

	// 3. Проверяем, что начало не в прошлом (в часовом поясе сервиса)
	if isInPast(snapshot.Instant(req.Date, req.StartTime), uc.timeProvider.Now()) {
		uc.logger.Warn("CreateBooking: start %s %s is in the past", req.Date.Format(domain.DateFormat), req.StartTime)
		return nil, ErrInvalidDate
	}

	// 4. Особая зона: явная или по адресу
	areaCode, err := slot.Area(snapshot.Areas, req.AreaCode, req.Address)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, slotError(err)
	}

	// 5. Период дня
	periodCode, err := slot.Period(snapshot.Periods, req.StartTime, uc.opts.AllowUnclassified)
	if err != nil {
		uc.logger.Warn("CreateBooking: %v", err)
		return nil, slotError(err)
	}

	gap := availability.GapFor(snapshot.GapRules, req.ChannelID, snapshot.DefaultGapMinutes)
	candidate := availability.Candidate{
		CleanerID:   req.CleanerID,
		BookingDate: req.Date,
		StartTime:   req.StartTime,
		EndTime:     end,
	}

	// 6. Цена и предварительная проверка доступности параллельно
	// Обе ветки выполняются до конца, ошибка цены важнее конфликта
	var (
		price              domain.PriceBreakdown
		priceErr, checkErr error
		g                  errgroup.Group
	)

	g.Go(func() error {
		price, priceErr = pricing.Resolve(snapshot, pricing.Request{
			ChannelID:     req.ChannelID,
			BookingDate:   req.Date,
			StartTime:     req.StartTime,
			DurationHours: pricing.HoursFromMinutes(minutes),
			CleanerCount:  req.CleanerCount,
			AreaCode:      areaCode,
			WithMaterials: req.WithMaterials,
		})
		return nil
	})

	g.Go(func() error {
		checkErr = uc.precheck(ctx, candidate, gap)
		return nil
	})

	_ = g.Wait()
	if priceErr != nil {
		return nil, uc.mapError(req, priceErr)
	}
	if checkErr != nil {
		if errors.As(checkErr, new(*availability.ConflictError)) {
			uc.metrics.SchedulingConflict(metrics.StagePrecheck)
		}
		return nil, uc.mapError(req, checkErr)
	}

	uc.logger.Info("CreateBooking: price %s %s (rule=%d scope=%s), gap=%d min",
		price.Final, price.Currency, price.RuleID, price.Scope, gap)

	// 7. Окончательная проверка и запись
	var created *domain.Booking
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Сериализуем создание бронирований одного клинера
		if err := uc.bookingRepo.LockCleaner(txCtx, req.CleanerID); err != nil {
			return err
		}

		// 7.2. Перечитываем бронирования клинера с блокировкой (FOR UPDATE)
		existing, err := uc.bookingRepo.GetActiveByCleanerAndDate(txCtx, req.CleanerID, req.Date)
		if err != nil {
			return err
		}

		// 7.3. Повторная проверка доступности
		verdict, err := availability.Check(candidate, existing, gap)
		if err != nil {
			return err
		}
		if conflict := verdict.Err(); conflict != nil {
			uc.metrics.SchedulingConflict(metrics.StageCommit)
			return conflict
		}

		// 7.4. Сохраняем бронирование с зафиксированной ценой
		created, err = uc.bookingRepo.Create(txCtx, &domain.Booking{
			CleanerID:       req.CleanerID,
			ChannelID:       req.ChannelID,
			ClientID:        req.ClientID,
			BookingDate:     req.Date,
			StartTime:       req.StartTime,
			EndTime:         end,
			DurationMinutes: minutes,
			CleanerCount:    req.CleanerCount,
			WithMaterials:   req.WithMaterials,
			Address:         req.Address,
			AreaCode:        areaCode,
			PeriodCode:      periodCode,
			Status:          domain.StatusConfirmed,
			Price:           price,
			Notes:           req.Notes,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, bookingRepo.ErrOverlap) {
			uc.metrics.SchedulingConflict(metrics.StageConstraint)
		}
		return nil, uc.mapError(req, err)
	}

	uc.metrics.BookingCreated(strconv.FormatInt(req.ChannelID, 10))
	uc.logger.Info("CreateBooking: successfully created booking id=%d", created.ID)

	return &Response{Booking: *created, GapMinutes: gap}, nil
}

// precheck проверяет доступность клинера до открытия транзакции
func (uc *UseCase) precheck(ctx context.Context, candidate availability.Candidate, gap int) error {
	existing, err := uc.bookingRepo.GetActiveByCleanerAndDate(ctx, candidate.CleanerID, candidate.BookingDate)
	if err != nil {
		return fmt.Errorf("%w: precheck - failed to get bookings: %v", ErrInternal, err)
	}
	verdict, err := availability.Check(candidate, existing, gap)
	if err != nil {
		return fmt.Errorf("%w: precheck: %v", ErrInternal, err)
	}
	if conflict := verdict.Err(); conflict != nil {
		return conflict
	}
	return nil
}

// mapError переводит ошибки движка и репозитория в ошибки use case
func (uc *UseCase) mapError(req *Request, err error) error {
	var conflictErr *availability.ConflictError
	var coverageErr *pricing.CoverageError

	switch {
	case errors.As(err, &conflictErr):
		uc.logger.Warn("CreateBooking: cleaner=%d busy: %v", req.CleanerID, conflictErr)
		return fmt.Errorf("%w: %w", ErrSchedulingConflict, conflictErr)

	case errors.Is(err, bookingRepo.ErrOverlap):
		uc.logger.Warn("CreateBooking: cleaner=%d interval rejected by constraint", req.CleanerID)
		return fmt.Errorf("%w: %v", ErrSchedulingConflict, err)

	case errors.As(err, &coverageErr):
		uc.metrics.PricingCoverageMiss(strconv.FormatInt(req.ChannelID, 10))
		uc.logger.Warn("CreateBooking: %v", coverageErr)
		return fmt.Errorf("%w: %v", ErrNoPricingCoverage, coverageErr)

	case errors.Is(err, pricing.ErrInvalidDuration):
		uc.logger.Warn("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidDuration, err)

	case errors.Is(err, pricing.ErrInvalidCleanerCount):
		uc.logger.Warn("CreateBooking: %v", err)
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)

	case errors.Is(err, ErrInternal):
		uc.logger.Error("CreateBooking: %v", err)
		return err
	}

	uc.logger.Error("CreateBooking: failed to create booking: %v", err)
	return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
}
