package check_availability

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-CleaningService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

type mockUseCase struct {
	mock.Mock
}

func (m *mockUseCase) Execute(ctx context.Context, req *checkAvailability.Request) (*checkAvailability.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*checkAvailability.Response), args.Error(1)
}

func serve(uc CheckAvailabilityUseCase, target string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/cleaners/{cleanerId}/availability", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodGet)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHandle_Conflict(t *testing.T) {
	uc := new(mockUseCase)
	uc.On("Execute", mock.Anything, mock.MatchedBy(func(req *checkAvailability.Request) bool {
		return req.CleanerID == 3 && req.ChannelID == 1 && req.ExcludeBookingID == 9 &&
			req.StartTime.String() == "13:15" && req.EndTime.String() == "15:00"
	})).Return(&checkAvailability.Response{
		Available:  false,
		GapMinutes: 30,
		Conflict: &domain.Assignment{
			BookingID: 7,
			StartTime: types.MustTimeString("10:00"),
			EndTime:   types.MustTimeString("13:00"),
		},
	}, nil)

	rec := serve(uc, "/cleaners/3/availability?date=2025-03-10&startTime=13:15&endTime=15:00&channelId=1&excludeBookingId=9")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Available)
	assert.Equal(t, 30, resp.GapMinutes)
	require.NotNil(t, resp.Conflict)
	assert.Equal(t, int64(7), resp.Conflict.BookingID)
	assert.Equal(t, "13:00", resp.Conflict.EndTime)
}

func TestHandle_InvalidParams(t *testing.T) {
	uc := new(mockUseCase)

	for _, target := range []string{
		"/cleaners/x/availability?date=2025-03-10&startTime=10:00&endTime=11:00&channelId=1",
		"/cleaners/3/availability?startTime=10:00&endTime=11:00&channelId=1",
		"/cleaners/3/availability?date=2025-03-10&startTime=10:00&endTime=11:00",
		"/cleaners/3/availability?date=2025-03-10&startTime=25:00&endTime=11:00&channelId=1",
	} {
		assert.Equal(t, http.StatusBadRequest, serve(uc, target).Code, target)
	}
	uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}
