package quote_price

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	quotePrice "github.com/m04kA/SMC-CleaningService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
	"github.com/m04kA/SMC-CleaningService/pkg/ptr"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *quotePrice.Request) (*quotePrice.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*quotePrice.Response), args.Error(1)
}

const body = `{"channelId":1,"bookingDate":"2025-03-10","startTime":"10:00","durationHours":"3","cleanerCount":1,"withMaterials":true}`

func TestHandle_Breakdown(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.Anything).Return(&quotePrice.Response{
		Price: domain.PriceBreakdown{
			RuleID:        4,
			Scope:         domain.ScopeChannel,
			Currency:      "QAR",
			HourlyRate:    decimal.NewFromInt(25),
			Hours:         decimal.NewFromInt(3),
			CleanerCount:  1,
			Base:          decimal.NewFromInt(75),
			Materials:     decimal.NewFromInt(10),
			Tax:           decimal.RequireFromString("4.25"),
			Final:         decimal.RequireFromString("89.25"),
			WithMaterials: true,
		},
		EndTime:    types.MustTimeString("13:00"),
		PeriodCode: ptr.Ptr("morning"),
	}, nil)

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/pricing/quote", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "89.25", resp["finalPrice"])
	assert.Equal(t, "4.25", resp["taxAmount"])
	assert.Equal(t, "13:00", resp["endTime"])
	assert.Equal(t, "morning", resp["periodCode"])
	assert.NotContains(t, resp, "areaCode")
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "no coverage", err: quotePrice.ErrNoPricingCoverage, want: http.StatusUnprocessableEntity},
		{name: "area", err: quotePrice.ErrAreaNotFound, want: http.StatusNotFound},
		{name: "duration", err: quotePrice.ErrInvalidDuration, want: http.StatusBadRequest},
		{name: "internal", err: quotePrice.ErrInternal, want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(mockUseCase)
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)

			rec := httptest.NewRecorder()
			NewHandler(uc, logger.NewNop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/pricing/quote", strings.NewReader(body)))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
