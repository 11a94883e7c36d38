// Package periods classifies a booking start time into the configured
// time-period catalog.
package periods

import (
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// Classify returns the period whose [StartTime, EndTime) contains t.
// ok == false means the time is unclassified: it falls into a gap of the
// catalog. That is a valid outcome, callers decide whether to accept it.
func Classify(catalog []domain.TimePeriod, t types.TimeString) (period domain.TimePeriod, ok bool) {
	for _, p := range catalog {
		if p.Contains(t) {
			return p, true
		}
	}
	return domain.TimePeriod{}, false
}

// ValidateCatalog checks that every period is well formed, codes are unique
// and no two periods share a minute.
func ValidateCatalog(catalog []domain.TimePeriod) error {
	codes := make(map[string]struct{}, len(catalog))

	for i := range catalog {
		p := &catalog[i]

		if p.Code == "" {
			return domain.NewIntegrityError(domain.EntityTimePeriod, "period #%d has empty code", p.ID)
		}
		if _, dup := codes[p.Code]; dup {
			return domain.NewIntegrityError(domain.EntityTimePeriod, "duplicate period code %q", p.Code)
		}
		codes[p.Code] = struct{}{}

		if err := p.StartTime.Validate(); err != nil {
			return domain.NewIntegrityError(domain.EntityTimePeriod, "period %q: %v", p.Code, err)
		}
		if err := p.EndTime.Validate(); err != nil {
			return domain.NewIntegrityError(domain.EntityTimePeriod, "period %q: %v", p.Code, err)
		}
		if !p.StartTime.IsBefore(p.EndTime) {
			return domain.NewIntegrityError(domain.EntityTimePeriod,
				"period %q: start %s is not before end %s", p.Code, p.StartTime, p.EndTime)
		}

		for j := 0; j < i; j++ {
			if p.Overlaps(&catalog[j]) {
				return domain.NewIntegrityError(domain.EntityTimePeriod,
					"period %q overlaps period %q", p.Code, catalog[j].Code)
			}
		}
	}

	return nil
}
