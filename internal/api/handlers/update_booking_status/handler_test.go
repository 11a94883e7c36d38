package update_booking_status

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/SMC-CleaningService/internal/service/bookings"
	"github.com/m04kA/SMC-CleaningService/internal/service/bookings/models"
	"github.com/m04kA/SMC-CleaningService/pkg/logger"
)

type mockService struct {
	mock.Mock
}

func (m *mockService) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	return m.Called(ctx, bookingID, req).Error(0)
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		svcErr error
		call   bool
		want   int
	}{
		{name: "ok", body: `{"status":"completed"}`, call: true, want: http.StatusNoContent},
		{name: "not found", body: `{"status":"completed"}`, svcErr: bookings.ErrBookingNotFound, call: true, want: http.StatusNotFound},
		{name: "bad status", body: `{"status":"done"}`, svcErr: bookings.ErrInvalidInput, call: true, want: http.StatusBadRequest},
		{name: "bad transition", body: `{"status":"confirmed"}`, svcErr: fmt.Errorf("%w: completed -> confirmed", bookings.ErrInvalidTransition), call: true, want: http.StatusConflict},
		{name: "bad body", body: `{"status":`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(mockService)
			if tt.call {
				svc.On("UpdateStatus", mock.Anything, int64(15), mock.Anything).Return(tt.svcErr)
			}

			r := mux.NewRouter()
			r.HandleFunc("/bookings/{bookingId}/status", NewHandler(svc, logger.NewNop()).Handle).Methods(http.MethodPatch)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/bookings/15/status", strings.NewReader(tt.body)))

			assert.Equal(t, tt.want, rec.Code)
			svc.AssertExpectations(t)
		})
	}
}
