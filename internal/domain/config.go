package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// TimePeriod is a named wall-clock window of the working day, [StartTime, EndTime)
type TimePeriod struct {
	ID           int64
	Code         string
	Name         string
	StartTime    types.TimeString
	EndTime      types.TimeString
	DisplayOrder int
}

// Contains reports whether a time of day falls into the period (start inclusive, end exclusive)
func (p *TimePeriod) Contains(t types.TimeString) bool {
	m := t.Minutes()
	return m >= p.StartTime.Minutes() && m < p.EndTime.Minutes()
}

// Overlaps reports whether two periods share any minute
func (p *TimePeriod) Overlaps(other *TimePeriod) bool {
	return p.StartTime.Minutes() < other.EndTime.Minutes() &&
		other.StartTime.Minutes() < p.EndTime.Minutes()
}

// EffectivePeriod is a half-open [From, To) interval; To == nil means open-ended ("current")
type EffectivePeriod struct {
	From time.Time
	To   *time.Time
}

// Contains reports whether instant falls into the interval
func (e EffectivePeriod) Contains(instant time.Time) bool {
	if instant.Before(e.From) {
		return false
	}
	return e.To == nil || instant.Before(*e.To)
}

// Overlaps reports whether two intervals intersect
func (e EffectivePeriod) Overlaps(other EffectivePeriod) bool {
	if e.To != nil && !other.From.Before(*e.To) {
		return false
	}
	if other.To != nil && !e.From.Before(*other.To) {
		return false
	}
	return true
}

// IsOpenEnded returns true if the interval has no end
func (e EffectivePeriod) IsOpenEnded() bool {
	return e.To == nil
}

// PricingTerms are the amounts a pricing rule carries
type PricingTerms struct {
	HourlyRatePerCleaner     decimal.Decimal
	MaterialsPricePerCleaner decimal.Decimal
	TaxRate                  decimal.Decimal // доля, 0.05 = 5%
	Currency                 string
}

// PricingScope tells which kind of rule produced a price
type PricingScope string

const (
	ScopeChannel PricingScope = "channel"
	ScopeArea    PricingScope = "area"
)

// ChannelPricingRule is a versioned pricing rule for a booking channel.
// Rules are never deleted, only superseded by a later one.
type ChannelPricingRule struct {
	ID        int64
	ChannelID int64
	PricingTerms
	IsActive  bool
	Effective EffectivePeriod
	CreatedAt time.Time
}

// AppliesAt returns true if the rule is active and covers instant
func (r *ChannelPricingRule) AppliesAt(instant time.Time) bool {
	return r.IsActive && r.Effective.Contains(instant)
}

// AreaPricingRule overrides channel pricing for bookings in a special area
type AreaPricingRule struct {
	ID       int64
	AreaCode string
	PricingTerms
	IsActive  bool
	Effective EffectivePeriod
	CreatedAt time.Time
}

// AppliesAt returns true if the rule is active and covers instant
func (r *AreaPricingRule) AppliesAt(instant time.Time) bool {
	return r.IsActive && r.Effective.Contains(instant)
}

// SpecialArea is a keyword-matched zone with its own pricing
type SpecialArea struct {
	ID             int64
	Code           string
	Name           string
	SearchKeywords []string // нормализованы: lower-case, без пробелов по краям, без дублей
	IsActive       bool
}

// GapRule is the minimum idle time between two assignments of one cleaner.
// ChannelID == nil is the global rule.
type GapRule struct {
	ID                int64
	ChannelID         *int64
	MinimumGapMinutes int
}

// IsGlobal returns true for the fallback rule
func (g *GapRule) IsGlobal() bool {
	return g.ChannelID == nil
}
