package special_areas

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

func (m *mockService) ListSpecialAreas(ctx context.Context) (*models.SpecialAreaListResponse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialAreaListResponse), args.Error(1)
}

func (m *mockService) CreateSpecialArea(ctx context.Context, req *models.SpecialAreaRequest) (*models.SpecialAreaResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialAreaResponse), args.Error(1)
}

func (m *mockService) UpdateSpecialArea(ctx context.Context, id int64, req *models.SpecialAreaRequest) (*models.SpecialAreaResponse, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SpecialAreaResponse), args.Error(1)
}

func newRouter(svc SettingsService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/settings/areas", h.List).Methods(http.MethodGet)
	r.HandleFunc("/settings/areas", h.Create).Methods(http.MethodPost)
	r.HandleFunc("/settings/areas/{areaId}", h.Update).Methods(http.MethodPut)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestCreate(t *testing.T) {
	svc := new(mockService)
	svc.On("CreateSpecialArea", mock.Anything, mock.MatchedBy(func(req *models.SpecialAreaRequest) bool {
		return req.Code == "pearl"
	})).Return(&models.SpecialAreaResponse{ID: 1, Code: "pearl", SearchKeywords: []string{"pearl"}, IsActive: true}, nil)
	svc.On("CreateSpecialArea", mock.Anything, mock.MatchedBy(func(req *models.SpecialAreaRequest) bool {
		return req.Code == "lusail"
	})).Return(nil, domain.NewIntegrityError(domain.EntitySpecialArea, `keyword "pearl" is already used by area "pearl"`))

	r := newRouter(svc)

	rec := do(r, http.MethodPost, "/settings/areas", `{"code":"pearl","name":"The Pearl","searchKeywords":["Pearl"]}`)
	assert.Equal(t, http.StatusCreated, rec.Code)

	rec = do(r, http.MethodPost, "/settings/areas", `{"code":"lusail","searchKeywords":["pearl"]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "already used")
}

func TestUpdate(t *testing.T) {
	svc := new(mockService)
	svc.On("UpdateSpecialArea", mock.Anything, int64(9), mock.Anything).Return(nil, settings.ErrNotFound)
	svc.On("UpdateSpecialArea", mock.Anything, int64(1), mock.Anything).Return(nil, settings.ErrInvalidInput)

	r := newRouter(svc)
	body := `{"code":"pearl","searchKeywords":[]}`

	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPut, "/settings/areas/9", body).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/settings/areas/1", body).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPut, "/settings/areas/zero", body).Code)
}
