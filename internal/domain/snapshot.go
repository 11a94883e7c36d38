package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// ErrConfigurationIntegrity matches every *IntegrityError
var ErrConfigurationIntegrity = errors.New("configuration integrity violation")

// Сущности конфигурации для IntegrityError
const (
	EntityChannelRule = "channel_pricing_rule"
	EntityAreaRule    = "area_pricing_rule"
	EntitySpecialArea = "special_area"
	EntityTimePeriod  = "time_period"
	EntityGapRule     = "gap_rule"
)

// IntegrityError describes a configuration data-quality defect:
// overlapping active pricing intervals, ambiguous area keywords, overlapping periods.
type IntegrityError struct {
	Entity string
	Detail string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrConfigurationIntegrity, e.Entity, e.Detail)
}

func (e *IntegrityError) Is(target error) bool {
	return target == ErrConfigurationIntegrity
}

// NewIntegrityError creates an integrity error with a formatted detail
func NewIntegrityError(entity, format string, args ...interface{}) *IntegrityError {
	return &IntegrityError{Entity: entity, Detail: fmt.Sprintf(format, args...)}
}

// RuleSnapshot is an immutable view of the scheduling and pricing configuration.
// It is built once per reload and passed explicitly into every engine call.
type RuleSnapshot struct {
	ChannelRules      []ChannelPricingRule
	AreaRules         []AreaPricingRule
	Areas             []SpecialArea
	Periods           []TimePeriod
	GapRules          []GapRule
	Location          *time.Location
	DefaultGapMinutes int
	LoadedAt          time.Time
}

// NewRuleSnapshot copies the given rows and orders periods by DisplayOrder
// and areas by ID so the snapshot is independent from the caller's slices.
func NewRuleSnapshot(
	channelRules []ChannelPricingRule,
	areaRules []AreaPricingRule,
	areas []SpecialArea,
	periods []TimePeriod,
	gapRules []GapRule,
	loc *time.Location,
	defaultGapMinutes int,
	loadedAt time.Time,
) *RuleSnapshot {
	if loc == nil {
		loc = time.UTC
	}

	s := &RuleSnapshot{
		ChannelRules:      append([]ChannelPricingRule(nil), channelRules...),
		AreaRules:         append([]AreaPricingRule(nil), areaRules...),
		Areas:             make([]SpecialArea, len(areas)),
		Periods:           append([]TimePeriod(nil), periods...),
		GapRules:          append([]GapRule(nil), gapRules...),
		Location:          loc,
		DefaultGapMinutes: defaultGapMinutes,
		LoadedAt:          loadedAt,
	}
	for i, a := range areas {
		a.SearchKeywords = append([]string(nil), a.SearchKeywords...)
		s.Areas[i] = a
	}

	sort.SliceStable(s.Periods, func(i, j int) bool {
		if s.Periods[i].DisplayOrder != s.Periods[j].DisplayOrder {
			return s.Periods[i].DisplayOrder < s.Periods[j].DisplayOrder
		}
		return s.Periods[i].StartTime.Minutes() < s.Periods[j].StartTime.Minutes()
	})
	sort.SliceStable(s.Areas, func(i, j int) bool { return s.Areas[i].ID < s.Areas[j].ID })

	return s
}

// Instant combines a booking date and time of day in the snapshot's time zone
func (s *RuleSnapshot) Instant(date time.Time, t types.TimeString) time.Time {
	return t.On(date, s.Location)
}

// Age returns how long ago the snapshot was loaded
func (s *RuleSnapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.LoadedAt)
}
