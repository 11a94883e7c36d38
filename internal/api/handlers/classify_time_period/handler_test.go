package classify_time_period

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	classifyTimePeriod "github.com/m04kA/SMC-CleaningService/internal/usecase/classify_time_period"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *classifyTimePeriod.Request) (*classifyTimePeriod.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*classifyTimePeriod.Response), args.Error(1)
}

func TestHandle(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, &classifyTimePeriod.Request{Time: "09:30"}).Return(&classifyTimePeriod.Response{
		Time: "09:30",
		Period: &domain.TimePeriod{
			Code: "morning", Name: "Morning",
			StartTime: types.MustTimeString("08:00"), EndTime: types.MustTimeString("12:00"),
		},
	}, nil)
	uc.On("Execute", mock.Anything, &classifyTimePeriod.Request{Time: "23:00"}).
		Return(&classifyTimePeriod.Response{Time: "23:00"}, nil)

	h := NewHandler(uc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/time-periods/classify?time=09:30", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"time":"09:30","classified":true,"period":{"code":"morning","name":"Morning","startTime":"08:00","endTime":"12:00"}}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/time-periods/classify?time=23:00", nil))
	assert.JSONEq(t, `{"time":"23:00","classified":false}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/time-periods/classify", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
