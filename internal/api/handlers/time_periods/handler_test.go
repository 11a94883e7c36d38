package time_periods

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) ListTimePeriods(ctx context.Context) (*models.TimePeriodListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimePeriodListResponse), args.Error(1)
}

func (m *mockService) CreateTimePeriod(ctx context.Context, req *models.TimePeriodRequest) (*models.TimePeriodResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimePeriodResponse), args.Error(1)
}

func (m *mockService) UpdateTimePeriod(ctx context.Context, id int64, req *models.TimePeriodRequest) (*models.TimePeriodResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TimePeriodResponse), args.Error(1)
}

func TestHandlers(t *testing.T) {
	svc := new(mockService)
	svc.On("ListTimePeriods", mock.Anything).Return(&models.TimePeriodListResponse{
		Periods: []models.TimePeriodResponse{{ID: 1, Code: "morning", StartTime: "08:00", EndTime: "12:00"}},
	}, nil)
	svc.On("CreateTimePeriod", mock.Anything, mock.Anything).
		Return(nil, domain.NewIntegrityError(domain.EntityTimePeriod, "periods morning and brunch overlap"))
	svc.On("UpdateTimePeriod", mock.Anything, int64(1), mock.Anything).
		Return(&models.TimePeriodResponse{ID: 1, Code: "morning", StartTime: "07:00", EndTime: "12:00"}, nil)
	svc.On("UpdateTimePeriod", mock.Anything, int64(2), mock.Anything).Return(nil, settings.ErrNotFound)

	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/settings/time-periods", h.List).Methods(http.MethodGet)
	r.HandleFunc("/settings/time-periods", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/settings/time-periods/{periodId}", h.Update).Methods(http.MethodPut)

	do := func(method, target, body string) int {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
		return rec.Code
	}
	body := `{"code":"morning","startTime":"07:00","endTime":"12:00","displayOrder":1}`

	assert.Equal(t, http.StatusOK, do(http.MethodGet, "/settings/time-periods", ""))
	assert.Equal(t, http.StatusUnprocessableEntity, do(http.MethodPost, "/settings/time-periods", body))
	assert.Equal(t, http.StatusOK, do(http.MethodPut, "/settings/time-periods/1", body))
	assert.Equal(t, http.StatusNotFound, do(http.MethodPut, "/settings/time-periods/2", body))
	assert.Equal(t, http.StatusBadRequest, do(http.MethodPost, "/settings/time-periods", `{"code":`))
}
