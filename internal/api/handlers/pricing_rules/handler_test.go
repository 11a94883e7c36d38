package pricing_rules

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
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

func (m *mockService) ListChannelRules(ctx context.Context, channelID int64) (*models.PricingRuleListResponse, error) {
	args := m.Called(ctx, channelID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingRuleListResponse), args.Error(1)
}

func (m *mockService) SupersedeChannelRule(ctx context.Context, channelID int64, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error) {
	args := m.Called(ctx, channelID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingRuleResponse), args.Error(1)
}

func (m *mockService) DeactivateChannelRule(ctx context.Context, ruleID int64) error {
	return m.Called(ctx, ruleID).Error(0)
}

func (m *mockService) ListAreaRules(ctx context.Context, areaCode string) (*models.PricingRuleListResponse, error) {
	args := m.Called(ctx, areaCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingRuleListResponse), args.Error(1)
}

func (m *mockService) SupersedeAreaRule(ctx context.Context, areaCode string, req *models.PricingRuleRequest) (*models.PricingRuleResponse, error) {
	args := m.Called(ctx, areaCode, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PricingRuleResponse), args.Error(1)
}

func newRouter(svc SettingsService) *mux.Router {
	h := NewHandler(svc, logger.NewNop())
	r := mux.NewRouter()
	r.HandleFunc("/settings/channels/{channelId}/pricing-rules", h.ListChannelRules).Methods(http.MethodGet)
	r.HandleFunc("/settings/channels/{channelId}/pricing-rules", h.SupersedeChannelRule).Methods(http.MethodPost)
	r.HandleFunc("/settings/pricing-rules/{ruleId}/deactivate", h.DeactivateChannelRule).Methods(http.MethodPatch)
	r.HandleFunc("/settings/areas/{areaCode}/pricing-rules", h.ListAreaRules).Methods(http.MethodGet)
	r.HandleFunc("/settings/areas/{areaCode}/pricing-rules", h.SupersedeAreaRule).Methods(http.MethodPost)
	return r
}

func do(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

const ruleBody = `{"hourlyRatePerCleaner":"30","materialsPricePerCleaner":"10","taxRate":"0.05","effectiveFrom":"2025-04-01T00:00:00Z"}`

func TestSupersedeChannelRule(t *testing.T) {
	svc := new(mockService)
	svc.On("SupersedeChannelRule", mock.Anything, int64(1), mock.MatchedBy(func(req *models.PricingRuleRequest) bool {
		return req.HourlyRatePerCleaner.Equal(decimal.NewFromInt(30)) &&
			req.EffectiveFrom.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	})).Return(&models.PricingRuleResponse{ID: 5, Scope: "channel"}, nil).Once()
	svc.On("SupersedeChannelRule", mock.Anything, int64(1), mock.Anything).
		Return(nil, domain.NewIntegrityError(domain.EntityChannelRule, "rule #4 overlaps rule #5")).Once()

	r := newRouter(svc)

	rec := do(r, http.MethodPost, "/settings/channels/1/pricing-rules", ruleBody)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"id":5`)

	rec = do(r, http.MethodPost, "/settings/channels/1/pricing-rules", ruleBody)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "rule #4 overlaps rule #5")

	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/settings/channels/x/pricing-rules", ruleBody).Code)
	assert.Equal(t, http.StatusBadRequest, do(r, http.MethodPost, "/settings/channels/1/pricing-rules", `{"rate":1}`).Code)
}

func TestDeactivateAndAreaErrors(t *testing.T) {
	svc := new(mockService)
	svc.On("DeactivateChannelRule", mock.Anything, int64(4)).Return(nil)
	svc.On("DeactivateChannelRule", mock.Anything, int64(5)).Return(settings.ErrNotFound)
	svc.On("SupersedeAreaRule", mock.Anything, "pearl", mock.Anything).Return(nil, settings.ErrAreaNotFound)
	svc.On("ListAreaRules", mock.Anything, "pearl").Return(&models.PricingRuleListResponse{}, nil)
	svc.On("ListChannelRules", mock.Anything, int64(1)).Return(nil, settings.ErrInternal)

	r := newRouter(svc)

	assert.Equal(t, http.StatusNoContent, do(r, http.MethodPatch, "/settings/pricing-rules/4/deactivate", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPatch, "/settings/pricing-rules/5/deactivate", "").Code)
	assert.Equal(t, http.StatusNotFound, do(r, http.MethodPost, "/settings/areas/pearl/pricing-rules", ruleBody).Code)
	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/settings/areas/pearl/pricing-rules", "").Code)
	assert.Equal(t, http.StatusInternalServerError, do(r, http.MethodGet, "/settings/channels/1/pricing-rules", "").Code)
}
