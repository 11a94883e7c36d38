package classify_time_period

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

type staticSnapshot struct{ snap *domain.RuleSnapshot }

func (s staticSnapshot) Get(context.Context) (*domain.RuleSnapshot, error) { return s.snap, nil }

func TestExecute(t *testing.T) {
	catalog := []domain.TimePeriod{
		{ID: 1, Code: "morning", StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("12:00"), DisplayOrder: 1},
		{ID: 2, Code: "afternoon", StartTime: types.MustTimeString("12:00"), EndTime: types.MustTimeString("17:00"), DisplayOrder: 2},
	}
	snap := domain.NewRuleSnapshot(nil, nil, nil, catalog, nil, time.UTC, 30, time.Now())
	uc := NewUseCase(staticSnapshot{snap}, logger.NewNop())

	tests := []struct {
		at   string
		want string
	}{
		{at: "08:00", want: "morning"},
		{at: "11:59", want: "morning"},
		{at: "12:00", want: "afternoon"},
		{at: "17:00", want: ""},
		{at: "07:30", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.at, func(t *testing.T) {
			resp, err := uc.Execute(context.Background(), &Request{Time: types.MustTimeString(tt.at)})
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, resp.Period)
				return
			}
			require.NotNil(t, resp.Period)
			assert.Equal(t, tt.want, resp.Period.Code)
		})
	}
}

func TestExecute_InvalidTime(t *testing.T) {
	uc := NewUseCase(staticSnapshot{domain.NewRuleSnapshot(nil, nil, nil, nil, nil, nil, 0, time.Now())}, logger.NewNop())
	_, err := uc.Execute(context.Background(), &Request{Time: types.TimeString("noon")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
