package check_availability

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/availability"
)

// UseCase use case для проверки доступности клинера
// Проверка идет по зафиксированным бронированиям без блокировок,
// поэтому ответ может устареть к моменту создания бронирования
type UseCase struct {
	bookingRepo BookingRepository
	snapshots   SnapshotProvider
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, snapshots SnapshotProvider, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepo,
		snapshots:   snapshots,
		logger:      logger,
	}
}

// Execute выполняет use case проверки доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: cleaner=%d, channel=%d, date=%s, %s-%s",
		req.CleanerID, req.ChannelID, req.Date.Format(domain.DateFormat), req.StartTime, req.EndTime)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	snapshot, err := uc.snapshots.Get(ctx)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get rule snapshot: %v", err)
		return nil, fmt.Errorf("%w: failed to get rule snapshot: %v", ErrInternal, err)
	}

	existing, err := uc.bookingRepo.GetActiveByCleanerAndDate(ctx, req.CleanerID, req.Date)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	gap := availability.GapFor(snapshot.GapRules, req.ChannelID, snapshot.DefaultGapMinutes)

	verdict, err := availability.Check(availability.Candidate{
		CleanerID:        req.CleanerID,
		BookingDate:      req.Date,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		ExcludeBookingID: req.ExcludeBookingID,
	}, existing, gap)
	if err != nil {
		uc.logger.Error("CheckAvailability: failed to check availability: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if verdict.Available {
		uc.logger.Info("CheckAvailability: cleaner=%d is available (gap=%d)", req.CleanerID, gap)
	} else {
		uc.logger.Info("CheckAvailability: cleaner=%d conflicts with booking id=%d (gap=%d)",
			req.CleanerID, verdict.Conflict.BookingID, gap)
	}

	return &Response{
		Available:  verdict.Available,
		GapMinutes: verdict.GapMinutes,
		Conflict:   verdict.Conflict,
	}, nil
}
