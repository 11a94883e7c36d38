// Package pricing resolves the price of a booking from a rule snapshot.
package pricing

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/engine/areas"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

var (
	// ErrNoPricingCoverage no active rule covers the booking instant
	ErrNoPricingCoverage = errors.New("no pricing coverage")

	// ErrInvalidDuration duration is zero or negative
	ErrInvalidDuration = errors.New("invalid duration")

	// ErrInvalidCleanerCount cleaner count is below one
	ErrInvalidCleanerCount = errors.New("invalid cleaner count")
)

// CoverageError reports the channel and instant that have no pricing rule
type CoverageError struct {
	ChannelID int64
	Instant   time.Time
}

func (e *CoverageError) Error() string {
	return fmt.Sprintf("%s: channel %d at %s", ErrNoPricingCoverage, e.ChannelID, e.Instant.Format(time.RFC3339))
}

func (e *CoverageError) Is(target error) bool {
	return target == ErrNoPricingCoverage
}

// Request is everything the resolver needs to price one booking
type Request struct {
	ChannelID     int64
	BookingDate   time.Time
	StartTime     types.TimeString
	DurationHours decimal.Decimal
	CleanerCount  int
	AreaCode      *string
	WithMaterials bool
}

// Resolve prices a booking against the snapshot.
// An active area override covering the instant beats the channel rule.
func Resolve(snapshot *domain.RuleSnapshot, req Request) (domain.PriceBreakdown, error) {
	if !req.DurationHours.IsPositive() {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: %s hours", ErrInvalidDuration, req.DurationHours)
	}
	if req.CleanerCount < domain.MinCleanerCount {
		return domain.PriceBreakdown{}, fmt.Errorf("%w: %d", ErrInvalidCleanerCount, req.CleanerCount)
	}
	if err := req.StartTime.Validate(); err != nil {
		return domain.PriceBreakdown{}, err
	}

	instant := snapshot.Instant(req.BookingDate, req.StartTime)

	if req.AreaCode != nil && *req.AreaCode != "" {
		if area, ok := areas.FindActive(snapshot.Areas, *req.AreaCode); ok {
			if rule, ok := AreaRuleAt(snapshot.AreaRules, area.Code, instant); ok {
				return Compute(rule.ID, domain.ScopeArea, rule.PricingTerms, req), nil
			}
		}
	}

	rule, ok := ChannelRuleAt(snapshot.ChannelRules, req.ChannelID, instant)
	if !ok {
		return domain.PriceBreakdown{}, &CoverageError{ChannelID: req.ChannelID, Instant: instant}
	}

	return Compute(rule.ID, domain.ScopeChannel, rule.PricingTerms, req), nil
}

// ChannelRuleAt finds the active rule for a channel covering instant
func ChannelRuleAt(rules []domain.ChannelPricingRule, channelID int64, instant time.Time) (domain.ChannelPricingRule, bool) {
	for _, r := range rules {
		if r.ChannelID == channelID && r.AppliesAt(instant) {
			return r, true
		}
	}
	return domain.ChannelPricingRule{}, false
}

// AreaRuleAt finds the active override for an area covering instant
func AreaRuleAt(rules []domain.AreaPricingRule, areaCode string, instant time.Time) (domain.AreaPricingRule, bool) {
	for _, r := range rules {
		if strings.EqualFold(r.AreaCode, areaCode) && r.AppliesAt(instant) {
			return r, true
		}
	}
	return domain.AreaPricingRule{}, false
}

// Compute applies pricing terms to a request:
//
//	base      = hourlyRate * hours * cleaners
//	materials = materialsFee * cleaners (only with materials)
//	tax       = (base + materials) * taxRate
//	final     = base + materials + tax
//
// Base and materials are rounded half up to the currency's minor unit, tax
// is taken from their rounded sum and rounded the same way. Final is the sum
// of the stored parts, so a breakdown always adds up.
func Compute(ruleID int64, scope domain.PricingScope, terms domain.PricingTerms, req Request) domain.PriceBreakdown {
	units := domain.MinorUnits(terms.Currency)
	cleaners := decimal.NewFromInt(int64(req.CleanerCount))

	base := roundHalfUp(terms.HourlyRatePerCleaner.Mul(req.DurationHours).Mul(cleaners), units)
	materials := decimal.Zero
	if req.WithMaterials {
		materials = roundHalfUp(terms.MaterialsPricePerCleaner.Mul(cleaners), units)
	}
	tax := roundHalfUp(base.Add(materials).Mul(terms.TaxRate), units)
	final := base.Add(materials).Add(tax)

	return domain.PriceBreakdown{
		RuleID:        ruleID,
		Scope:         scope,
		Currency:      terms.Currency,
		HourlyRate:    terms.HourlyRatePerCleaner,
		Hours:         req.DurationHours,
		CleanerCount:  req.CleanerCount,
		Base:          base,
		Materials:     materials,
		Tax:           tax,
		Final:         final,
		WithMaterials: req.WithMaterials,
	}
}

// decimal.Round rounds half away from zero, which is half up for the
// non-negative amounts priced here.
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Round(places)
}

// HoursFromMinutes converts booked minutes into an exact decimal hour count
func HoursFromMinutes(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60))
}
