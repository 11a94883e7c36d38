package list_bookings

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CleaningService/internal/service/bookings"
	"github.com/m04kA/SMC-CleaningService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BookingListResponse), args.Error(1)
}

func TestToServiceRequest(t *testing.T) {
	q, _ := url.ParseQuery("startDate=2025-03-01&endDate=2025-03-31&cleanerIds=3,7&channelId=2&status=confirmed&includeCancelled=true&limit=1000&offset=20")

	req, err := ToServiceRequest(q)
	require.NoError(t, err)

	assert.Equal(t, "2025-03-01", req.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2025-03-31", req.EndDate.Format("2006-01-02"))
	assert.Equal(t, []int64{3, 7}, req.CleanerIDs)
	assert.Equal(t, int64(2), *req.ChannelID)
	assert.Equal(t, "confirmed", *req.Status)
	assert.True(t, req.IncludeCancelled)
	assert.Equal(t, uint64(maxLimit), req.Limit)
	assert.Equal(t, uint64(20), req.Offset)
}

func TestToServiceRequest_Defaults(t *testing.T) {
	req, err := ToServiceRequest(url.Values{})
	require.NoError(t, err)

	assert.Nil(t, req.StartDate)
	assert.Nil(t, req.Status)
	assert.False(t, req.IncludeCancelled)
	assert.Equal(t, uint64(defaultLimit), req.Limit)
}

func TestHandle(t *testing.T) {
	svc := new(mockService)
	svc.On("List", mock.Anything, mock.Anything).
		Return(&models.BookingListResponse{Bookings: []models.BookingResponse{{ID: 1}, {ID: 2}}}, nil).Once()
	svc.On("List", mock.Anything, mock.Anything).Return(nil, bookings.ErrInvalidInput).Once()

	h := NewHandler(svc, logger.NewNop())

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/bookings?cleanerIds=3", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"bookings"`)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/bookings?status=unknown", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodGet, "/bookings?startDate=yesterday", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	svc.AssertNumberOfCalls(t, "List", 2)
}
