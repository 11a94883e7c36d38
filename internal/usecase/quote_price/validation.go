package quote_price

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/slot"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ChannelID <= 0 {
		return fmt.Errorf("%w: channelID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil || req.StartTime.Minutes() >= types.MinutesPerDay {
		return fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, req.StartTime)
	}

	if req.CleanerCount < domain.MinCleanerCount || req.CleanerCount > domain.MaxCleanerCount {
		return fmt.Errorf("%w: cleanerCount must be within [%d, %d]",
			ErrInvalidInput, domain.MinCleanerCount, domain.MaxCleanerCount)
	}

	return nil
}

// slotError переводит ошибки разбора слота в ошибки use case
func slotError(err error) error {
	switch {
	case errors.Is(err, slot.ErrInvalidDuration):
		return fmt.Errorf("%w: %v", ErrInvalidDuration, err)
	case errors.Is(err, slot.ErrAreaNotFound):
		return fmt.Errorf("%w: %v", ErrAreaNotFound, err)
	case errors.Is(err, slot.ErrOutsideServicePeriods):
		return fmt.Errorf("%w: %v", ErrOutsideServicePeriods, err)
	}
	return err
}
