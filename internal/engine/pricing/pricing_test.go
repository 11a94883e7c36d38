package pricing

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/ptr"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

const channelApp int64 = 1

var doha = time.FixedZone("AST", 3*60*60)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, doha)
}

func terms(rate, materials, tax string) domain.PricingTerms {
	return domain.PricingTerms{
		HourlyRatePerCleaner:     decimal.RequireFromString(rate),
		MaterialsPricePerCleaner: decimal.RequireFromString(materials),
		TaxRate:                  decimal.RequireFromString(tax),
		Currency:                 "QAR",
	}
}

func snapshot() *domain.RuleSnapshot {
	channelRules := []domain.ChannelPricingRule{
		{
			ID: 1, ChannelID: channelApp, PricingTerms: terms("20", "10", "0.05"), IsActive: true,
			Effective: domain.EffectivePeriod{From: at(2025, 1, 1), To: ptr.Ptr(at(2025, 3, 1))},
		},
		{
			ID: 2, ChannelID: channelApp, PricingTerms: terms("25", "10", "0.05"), IsActive: true,
			Effective: domain.EffectivePeriod{From: at(2025, 3, 1), To: ptr.Ptr(at(2025, 6, 1))},
		},
		{
			ID: 3, ChannelID: channelApp, PricingTerms: terms("99", "0", "0"), IsActive: false,
			Effective: domain.EffectivePeriod{From: at(2025, 6, 1)},
		},
	}
	areaRules := []domain.AreaPricingRule{
		{
			ID: 10, AreaCode: "pearl", PricingTerms: terms("40", "15", "0.05"), IsActive: true,
			Effective: domain.EffectivePeriod{From: at(2025, 1, 1)},
		},
	}
	registry := []domain.SpecialArea{
		{ID: 1, Code: "pearl", SearchKeywords: []string{"pearl"}, IsActive: true},
		{ID: 2, Code: "lusail", SearchKeywords: []string{"lusail"}, IsActive: true},
	}

	return domain.NewRuleSnapshot(channelRules, areaRules, registry, nil, nil, doha, 30, time.Now())
}

func request(d time.Time, start string, hours int64) Request {
	return Request{
		ChannelID:     channelApp,
		BookingDate:   d,
		StartTime:     types.MustTimeString(start),
		DurationHours: decimal.NewFromInt(hours),
		CleanerCount:  1,
		WithMaterials: true,
	}
}

func TestResolve_ReferenceScenario(t *testing.T) {
	got, err := Resolve(snapshot(), request(date(2025, 3, 10), "10:00", 3))
	require.NoError(t, err)

	want := domain.PriceBreakdown{
		RuleID:        2,
		Scope:         domain.ScopeChannel,
		Currency:      "QAR",
		HourlyRate:    decimal.RequireFromString("25"),
		Hours:         decimal.NewFromInt(3),
		CleanerCount:  1,
		Base:          decimal.RequireFromString("75"),
		Materials:     decimal.RequireFromString("10"),
		Tax:           decimal.RequireFromString("4.25"),
		Final:         decimal.RequireFromString("89.25"),
		WithMaterials: true,
	}
	if diff := cmp.Diff(want, got, cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })); diff != "" {
		t.Errorf("Resolve() mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_SelectsRuleByInstant(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		start    string
		wantRule int64
	}{
		{"inside first interval", date(2025, 2, 27), "09:00", 1},
		{"last minute of first interval", date(2025, 2, 28), "23:59", 1},
		{"boundary belongs to the later rule", date(2025, 3, 1), "00:00", 2},
		{"inside second interval", date(2025, 5, 31), "12:00", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(snapshot(), request(tt.date, tt.start, 2))
			require.NoError(t, err)
			assert.Equal(t, tt.wantRule, got.RuleID)
		})
	}
}

func TestResolve_NoCoverage(t *testing.T) {
	tests := []struct {
		name    string
		req     Request
		channel int64
	}{
		{"after last effectiveTo, only an inactive successor", request(date(2025, 6, 2), "10:00", 2), channelApp},
		{"before first rule", request(date(2024, 12, 31), "10:00", 2), channelApp},
		{"unknown channel", request(date(2025, 3, 10), "10:00", 2), 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.req
			req.ChannelID = tt.channel

			_, err := Resolve(snapshot(), req)
			assert.ErrorIs(t, err, ErrNoPricingCoverage)

			var covErr *CoverageError
			require.ErrorAs(t, err, &covErr)
			assert.Equal(t, tt.channel, covErr.ChannelID)
		})
	}
}

func TestResolve_AreaOverride(t *testing.T) {
	t.Run("area rule wins over channel rule", func(t *testing.T) {
		req := request(date(2025, 3, 10), "10:00", 2)
		req.AreaCode = ptr.Ptr("pearl")

		got, err := Resolve(snapshot(), req)
		require.NoError(t, err)
		assert.Equal(t, int64(10), got.RuleID)
		assert.Equal(t, domain.ScopeArea, got.Scope)
		assert.True(t, got.Base.Equal(decimal.NewFromInt(80)))
	})

	t.Run("area without override falls back to channel", func(t *testing.T) {
		req := request(date(2025, 3, 10), "10:00", 2)
		req.AreaCode = ptr.Ptr("lusail")

		got, err := Resolve(snapshot(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.ScopeChannel, got.Scope)
	})

	t.Run("area override covers a channel gap", func(t *testing.T) {
		req := request(date(2025, 7, 1), "10:00", 2)
		req.AreaCode = ptr.Ptr("pearl")

		got, err := Resolve(snapshot(), req)
		require.NoError(t, err)
		assert.Equal(t, domain.ScopeArea, got.Scope)
	})

	t.Run("unknown area code falls back to channel", func(t *testing.T) {
		req := request(date(2025, 7, 1), "10:00", 2)
		req.AreaCode = ptr.Ptr("nowhere")

		_, err := Resolve(snapshot(), req)
		assert.ErrorIs(t, err, ErrNoPricingCoverage)
	})
}

func TestResolve_InvalidInput(t *testing.T) {
	req := request(date(2025, 3, 10), "10:00", 0)
	_, err := Resolve(snapshot(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	req.DurationHours = decimal.NewFromInt(-1)
	_, err = Resolve(snapshot(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	req = request(date(2025, 3, 10), "10:00", 2)
	req.CleanerCount = 0
	_, err = Resolve(snapshot(), req)
	assert.ErrorIs(t, err, ErrInvalidCleanerCount)

	req = request(date(2025, 3, 10), "10:00", 2)
	req.StartTime = "25:61"
	_, err = Resolve(snapshot(), req)
	assert.ErrorIs(t, err, types.ErrInvalidTimeString)
}

func TestCompute_RoundsHalfUp(t *testing.T) {
	req := Request{
		DurationHours: HoursFromMinutes(90),
		CleanerCount:  3,
		WithMaterials: false,
	}
	// 16.5 * 1.5 * 3 = 74.25, tax 7% = 5.1975
	got := Compute(1, domain.ScopeChannel, terms("16.5", "10", "0.07"), req)

	assert.Equal(t, "74.25", got.Base.StringFixed(2))
	assert.Equal(t, "0.00", got.Materials.StringFixed(2))
	assert.Equal(t, "5.20", got.Tax.StringFixed(2))
	assert.Equal(t, "79.45", got.Final.StringFixed(2))
}

func TestCompute_MultipleCleanersScaleMaterials(t *testing.T) {
	req := Request{DurationHours: decimal.NewFromInt(2), CleanerCount: 2, WithMaterials: true}
	got := Compute(1, domain.ScopeChannel, terms("25", "10", "0"), req)

	assert.Equal(t, "100.00", got.Base.StringFixed(2))
	assert.Equal(t, "20.00", got.Materials.StringFixed(2))
	assert.Equal(t, "120.00", got.Final.StringFixed(2))
}

func TestCompute_PartsAddUpToFinal(t *testing.T) {
	tests := []struct {
		name          string
		terms         domain.PricingTerms
		minutes       int
		cleaners      int
		withMaterials bool
		wantFinal     string
	}{
		// 25 * 50/60 = 20.8333 -> 20.83, tax 1.0415 -> 1.04
		{name: "fractional hour", terms: terms("25", "10", "0.05"), minutes: 50, cleaners: 1, wantFinal: "21.87"},
		// 0.125 -> 0.13, tax 0.026 -> 0.03
		{name: "sub-unit rate", terms: terms("0.125", "0", "0.2"), minutes: 60, cleaners: 1, wantFinal: "0.16"},
		{name: "team with materials", terms: terms("17.35", "7.5", "0.05"), minutes: 105, cleaners: 3, withMaterials: true, wantFinal: "119.27"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := Request{
				DurationHours: HoursFromMinutes(tt.minutes),
				CleanerCount:  tt.cleaners,
				WithMaterials: tt.withMaterials,
			}
			got := Compute(1, domain.ScopeChannel, tt.terms, req)

			sum := got.Base.Add(got.Materials).Add(got.Tax)
			assert.True(t, sum.Equal(got.Final), "parts %s + %s + %s != final %s", got.Base, got.Materials, got.Tax, got.Final)
			assert.Equal(t, tt.wantFinal, got.Final.StringFixed(2))
		})
	}
}

func TestValidateChannelRules(t *testing.T) {
	require.NoError(t, ValidateChannelRules(snapshot().ChannelRules))

	t.Run("overlapping active rules", func(t *testing.T) {
		rules := snapshot().ChannelRules
		rules[1].Effective.From = at(2025, 2, 15)
		assert.ErrorIs(t, ValidateChannelRules(rules), domain.ErrConfigurationIntegrity)
	})

	t.Run("two open-ended active rules", func(t *testing.T) {
		rules := snapshot().ChannelRules
		rules[1].Effective.To = nil
		rules[2].IsActive = true
		assert.ErrorIs(t, ValidateChannelRules(rules), domain.ErrConfigurationIntegrity)
	})

	t.Run("overlap with an inactive rule is allowed", func(t *testing.T) {
		rules := snapshot().ChannelRules
		rules[2].Effective.From = at(2025, 4, 1)
		assert.NoError(t, ValidateChannelRules(rules))
	})

	t.Run("other channels do not clash", func(t *testing.T) {
		rules := snapshot().ChannelRules
		rules = append(rules, domain.ChannelPricingRule{
			ID: 4, ChannelID: 2, PricingTerms: terms("30", "0", "0"), IsActive: true,
			Effective: domain.EffectivePeriod{From: at(2025, 1, 1)},
		})
		assert.NoError(t, ValidateChannelRules(rules))
	})

	t.Run("tax rate above one", func(t *testing.T) {
		rules := snapshot().ChannelRules
		rules[0].TaxRate = decimal.NewFromInt(5)
		assert.ErrorIs(t, ValidateChannelRules(rules), domain.ErrConfigurationIntegrity)
	})
}

func TestValidateAreaRules(t *testing.T) {
	rules := snapshot().AreaRules
	require.NoError(t, ValidateAreaRules(rules))

	rules = append(rules, domain.AreaPricingRule{
		ID: 11, AreaCode: "PEARL", PricingTerms: terms("50", "0", "0"), IsActive: true,
		Effective: domain.EffectivePeriod{From: at(2026, 1, 1)},
	})
	assert.ErrorIs(t, ValidateAreaRules(rules), domain.ErrConfigurationIntegrity)
}
