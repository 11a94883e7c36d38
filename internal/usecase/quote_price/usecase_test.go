package quote_price

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
	"github.com/m04kA/SMC-CleaningService/pkg/metrics"
	"github.com/m04kA/SMC-CleaningService/pkg/ptr"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

type staticSnapshot struct {
	snap *domain.RuleSnapshot
	err  error
}

func (s staticSnapshot) Get(context.Context) (*domain.RuleSnapshot, error) { return s.snap, s.err }

type countingMetrics struct {
	metrics.Recorder
	misses []string
}

func (c *countingMetrics) PricingCoverageMiss(channel string) { c.misses = append(c.misses, channel) }

func ruleSnapshot() *domain.RuleSnapshot {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	channelRules := []domain.ChannelPricingRule{{
		ID: 2, ChannelID: 1, IsActive: true,
		PricingTerms: domain.PricingTerms{
			HourlyRatePerCleaner:     decimal.NewFromInt(25),
			MaterialsPricePerCleaner: decimal.NewFromInt(10),
			TaxRate:                  decimal.RequireFromString("0.05"),
			Currency:                 "QAR",
		},
		Effective: domain.EffectivePeriod{From: from},
	}}
	registry := []domain.SpecialArea{{ID: 1, Code: "pearl", SearchKeywords: []string{"pearl"}, IsActive: true}}
	catalog := []domain.TimePeriod{
		{ID: 1, Code: "morning", StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("12:00")},
	}
	return domain.NewRuleSnapshot(channelRules, nil, registry, catalog, nil, time.UTC, 30, time.Now())
}

func request() *Request {
	return &Request{
		ChannelID:     1,
		Date:          time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime:     types.MustTimeString("10:00"),
		DurationHours: decimal.NewFromInt(3),
		CleanerCount:  1,
		WithMaterials: true,
	}
}

func TestExecute_ReferenceQuote(t *testing.T) {
	uc := NewUseCase(staticSnapshot{snap: ruleSnapshot()}, Options{}, metrics.Nop(), logger.NewNop())

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	want := map[string]string{"base": "75", "materials": "10", "tax": "4.25", "final": "89.25"}
	got := map[string]string{
		"base":      resp.Price.Base.String(),
		"materials": resp.Price.Materials.String(),
		"tax":       resp.Price.Tax.String(),
		"final":     resp.Price.Final.String(),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("price mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, types.MustTimeString("13:00"), resp.EndTime)
	require.NotNil(t, resp.PeriodCode)
	assert.Equal(t, "morning", *resp.PeriodCode)
}

func TestExecute_AreaWithoutOverrideFallsBackToChannel(t *testing.T) {
	uc := NewUseCase(staticSnapshot{snap: ruleSnapshot()}, Options{}, metrics.Nop(), logger.NewNop())

	req := request()
	req.Address = "The Pearl, tower 3"

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp.AreaCode)
	assert.Equal(t, "pearl", *resp.AreaCode)
	assert.Equal(t, domain.ScopeChannel, resp.Price.Scope)
}

func TestExecute_Errors(t *testing.T) {
	m := &countingMetrics{Recorder: metrics.Nop()}
	uc := NewUseCase(staticSnapshot{snap: ruleSnapshot()}, Options{}, m, logger.NewNop())

	req := request()
	req.ChannelID = 5
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrNoPricingCoverage)
	assert.Equal(t, []string{"5"}, m.misses)

	req = request()
	req.DurationHours = decimal.RequireFromString("-1")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	req = request()
	req.StartTime = types.MustTimeString("14:00")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideServicePeriods)

	req = request()
	req.AreaCode = ptr.Ptr("westbay")
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrAreaNotFound)

	failing := NewUseCase(staticSnapshot{err: errors.New("db down")}, Options{}, metrics.Nop(), logger.NewNop())
	_, err = failing.Execute(context.Background(), request())
	assert.ErrorIs(t, err, ErrInternal)
}
