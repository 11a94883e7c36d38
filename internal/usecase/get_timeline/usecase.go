package get_timeline

import (
	"context"
	"fmt"
	"slices"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/timeline"
)

// UseCase use case для построения таймлайна бронирований на день
type UseCase struct {
	bookingRepo   BookingRepository
	defaultWindow timeline.Window
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, defaultWindow timeline.Window, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		defaultWindow: defaultWindow,
		logger:        logger,
	}
}

// Execute выполняет use case построения таймлайна
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetTimeline: date=%s, cleaners=%v", req.Date.Format(domain.DateFormat), req.CleanerIDs)

	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	window := uc.defaultWindow
	if req.From != nil {
		window.Start = *req.From
	}
	if req.To != nil {
		window.End = *req.To
	}
	if err := window.Validate(); err != nil {
		uc.logger.Warn("GetTimeline: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bookings, err := uc.bookingRepo.GetActiveByDate(ctx, req.Date, req.CleanerIDs)
	if err != nil {
		uc.logger.Error("GetTimeline: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	lanes, err := timeline.ProjectLanes(bookings, window)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	resp := &Response{
		Date:   req.Date,
		Window: window,
		Lanes:  make([]Lane, 0, len(lanes)),
	}
	for _, lane := range lanes {
		resp.Lanes = append(resp.Lanes, Lane{
			CleanerID:  lane.CleanerID,
			Placements: slices.Collect(lane.Placements),
		})
	}

	uc.logger.Info("GetTimeline: %d bookings in %d lanes", len(bookings), len(resp.Lanes))
	return resp, nil
}
