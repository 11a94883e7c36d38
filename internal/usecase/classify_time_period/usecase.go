package classify_time_period

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-CleaningService/internal/engine/periods"
)

// UseCase определяет период дня для времени по текущему каталогу
type UseCase struct {
	snapshots SnapshotProvider
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(snapshots SnapshotProvider, logger Logger) *UseCase {
	return &UseCase{
		snapshots: snapshots,
		logger:    logger,
	}
}

// Execute выполняет use case классификации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if err := req.Time.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	snapshot, err := uc.snapshots.Get(ctx)
	if err != nil {
		uc.logger.Error("ClassifyTimePeriod: failed to get rule snapshot: %v", err)
		return nil, fmt.Errorf("%w: failed to get rule snapshot: %v", ErrInternal, err)
	}

	resp := &Response{Time: req.Time}
	if period, ok := periods.Classify(snapshot.Periods, req.Time); ok {
		resp.Period = &period
	}

	return resp, nil
}
