// Package slot resolves where a requested booking lands before it is priced:
// its length in minutes, end time, special area and day period. Quoting and
// booking share it so both follow one resolution path.
package slot

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/areas"
	"github.com/m04kA/SMC-CleaningService/internal/engine/periods"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

var (
	ErrInvalidDuration       = errors.New("slot: invalid duration")
	ErrAreaNotFound          = errors.New("slot: special area not found")
	ErrOutsideServicePeriods = errors.New("slot: start time is outside service periods")
)

var minutesPerHour = decimal.NewFromInt(60)

// DurationMinutes converts hours into whole minutes within the bookable range
func DurationMinutes(hours decimal.Decimal) (int, error) {
	if !hours.IsPositive() {
		return 0, fmt.Errorf("%w: duration must be positive, got %s hours", ErrInvalidDuration, hours)
	}

	minutes := hours.Mul(minutesPerHour)
	if !minutes.Equal(minutes.Truncate(0)) {
		return 0, fmt.Errorf("%w: %s hours is not a whole number of minutes", ErrInvalidDuration, hours)
	}

	m := int(minutes.IntPart())
	if m < domain.MinDurationMinutes || m > domain.MaxDurationMinutes {
		return 0, fmt.Errorf("%w: duration must be within [%d, %d] minutes",
			ErrInvalidDuration, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	return m, nil
}

// EndTime adds the duration to start; a booking must end by 24:00
func EndTime(start types.TimeString, minutes int) (types.TimeString, error) {
	end, err := start.AddMinutes(minutes)
	if err != nil {
		return "", fmt.Errorf("%w: booking must end by 24:00: %v", ErrInvalidDuration, err)
	}
	return end, nil
}

// Area picks the explicit area code if given, otherwise matches the address.
// An explicit code must name an active area.
func Area(registry []domain.SpecialArea, areaCode *string, address string) (*string, error) {
	if areaCode != nil && strings.TrimSpace(*areaCode) != "" {
		area, ok := areas.FindActive(registry, strings.TrimSpace(*areaCode))
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAreaNotFound, *areaCode)
		}
		return &area.Code, nil
	}

	if area, ok := areas.Match(registry, address); ok {
		return &area.Code, nil
	}
	return nil, nil
}

// Period classifies the start time. Unclassified starts yield nil when
// allowed and ErrOutsideServicePeriods otherwise.
func Period(catalog []domain.TimePeriod, start types.TimeString, allowUnclassified bool) (*string, error) {
	if period, ok := periods.Classify(catalog, start); ok {
		return &period.Code, nil
	}
	if !allowUnclassified {
		return nil, fmt.Errorf("%w: %s", ErrOutsideServicePeriods, start)
	}
	return nil, nil
}
