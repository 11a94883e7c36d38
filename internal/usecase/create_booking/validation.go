package create_booking

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/slot"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.CleanerID <= 0 {
		return fmt.Errorf("%w: cleanerID must be positive", ErrInvalidInput)
	}

	if req.ChannelID <= 0 {
		return fmt.Errorf("%w: channelID must be positive", ErrInvalidInput)
	}

	if req.ClientID <= 0 {
		return fmt.Errorf("%w: clientID must be positive", ErrInvalidInput)
	}

	// Проверяем, что дата не является нулевой
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	// Проверяем, что время начала указано
	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	// Валидируем формат времени; "24:00" допустимо только как конец
	if err := req.StartTime.Validate(); err != nil || req.StartTime.Minutes() >= types.MinutesPerDay {
		return fmt.Errorf("%w: invalid startTime %q", ErrInvalidInput, req.StartTime)
	}

	if req.CleanerCount < domain.MinCleanerCount || req.CleanerCount > domain.MaxCleanerCount {
		return fmt.Errorf("%w: cleanerCount must be within [%d, %d]",
			ErrInvalidInput, domain.MinCleanerCount, domain.MaxCleanerCount)
	}

	if strings.TrimSpace(req.Address) == "" {
		return fmt.Errorf("%w: address is required", ErrInvalidInput)
	}
	if len(req.Address) > domain.MaxAddressLength {
		return fmt.Errorf("%w: address exceeds %d characters", ErrInvalidInput, domain.MaxAddressLength)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// isInPast проверяет, что момент начала уже прошел
func isInPast(start, now time.Time) bool {
	return start.Before(now)
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
