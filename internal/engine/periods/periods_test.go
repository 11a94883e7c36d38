package periods

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

func shift(code, start, end string, order int) domain.TimePeriod {
	return domain.TimePeriod{
		Code:         code,
		Name:         code,
		StartTime:    types.MustTimeString(start),
		EndTime:      types.MustTimeString(end),
		DisplayOrder: order,
	}
}

func catalog() []domain.TimePeriod {
	return []domain.TimePeriod{
		shift("shift_1", "08:00", "10:00", 1),
		shift("shift_2", "10:00", "12:00", 2),
		shift("shift_3", "14:00", "18:00", 3),
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		time     string
		wantCode string
		wantOK   bool
	}{
		{"start of first period", "08:00", "shift_1", true},
		{"inside period", "09:30", "shift_1", true},
		{"boundary goes to next period", "10:00", "shift_2", true},
		{"gap between periods", "12:00", "", false},
		{"before first period", "07:59", "", false},
		{"end of last period is excluded", "18:00", "", false},
		{"last minute of last period", "17:59", "shift_3", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, ok := Classify(catalog(), types.MustTimeString(tt.time))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantCode, p.Code)
		})
	}
}

func TestClassify_EmptyCatalog(t *testing.T) {
	_, ok := Classify(nil, types.MustTimeString("09:00"))
	assert.False(t, ok)
}

func TestValidateCatalog(t *testing.T) {
	require.NoError(t, ValidateCatalog(catalog()))

	tests := []struct {
		name    string
		catalog []domain.TimePeriod
	}{
		{"overlap", []domain.TimePeriod{shift("a", "08:00", "10:00", 1), shift("b", "09:00", "11:00", 2)}},
		{"empty interval", []domain.TimePeriod{shift("a", "10:00", "10:00", 1)}},
		{"reversed interval", []domain.TimePeriod{shift("a", "12:00", "10:00", 1)}},
		{"duplicate code", []domain.TimePeriod{shift("a", "08:00", "09:00", 1), shift("a", "09:00", "10:00", 2)}},
		{"empty code", []domain.TimePeriod{shift("", "08:00", "09:00", 1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateCatalog(tt.catalog), domain.ErrConfigurationIntegrity)
		})
	}
}
