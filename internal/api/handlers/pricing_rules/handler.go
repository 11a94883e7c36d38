package pricing_rules

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
)

const (
	msgInvalidChannelID   = "некорректный ID канала"
	msgInvalidRuleID      = "некорректный ID тарифа"
	msgInvalidAreaCode    = "некорректный код особой зоны"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRule        = "некорректные условия тарифа"
	msgRuleNotFound       = "тариф не найден"
	msgAreaNotFound       = "особая зона не найдена"
)

// Handler тарифы каналов и особых зон
type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// ListChannelRules GET /api/v1/settings/channels/{channelId}/pricing-rules
func (h *Handler) ListChannelRules(w http.ResponseWriter, r *http.Request) {
	channelID, err := handlers.ParseID(mux.Vars(r)["channelId"])
	if err != nil {
		h.logger.Warn("GET /settings/channels/{id}/pricing-rules - Invalid channel ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidChannelID)
		return
	}

	result, err := h.service.ListChannelRules(r.Context(), channelID)
	if err != nil {
		h.respondError(w, "GET /settings/channels/{id}/pricing-rules", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SupersedeChannelRule POST /api/v1/settings/channels/{channelId}/pricing-rules
func (h *Handler) SupersedeChannelRule(w http.ResponseWriter, r *http.Request) {
	const route = "POST /settings/channels/{id}/pricing-rules"

	channelID, err := handlers.ParseID(mux.Vars(r)["channelId"])
	if err != nil {
		h.logger.Warn("%s - Invalid channel ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidChannelID)
		return
	}

	var req models.PricingRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SupersedeChannelRule(r.Context(), channelID, &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Rule created: channel_id=%d, rule_id=%d", route, channelID, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// DeactivateChannelRule PATCH /api/v1/settings/pricing-rules/{ruleId}/deactivate
func (h *Handler) DeactivateChannelRule(w http.ResponseWriter, r *http.Request) {
	const route = "PATCH /settings/pricing-rules/{id}/deactivate"

	ruleID, err := handlers.ParseID(mux.Vars(r)["ruleId"])
	if err != nil {
		h.logger.Warn("%s - Invalid rule ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRuleID)
		return
	}

	if err := h.service.DeactivateChannelRule(r.Context(), ruleID); err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Rule deactivated: rule_id=%d", route, ruleID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

// ListAreaRules GET /api/v1/settings/areas/{areaCode}/pricing-rules
func (h *Handler) ListAreaRules(w http.ResponseWriter, r *http.Request) {
	areaCode := mux.Vars(r)["areaCode"]
	if areaCode == "" {
		handlers.RespondBadRequest(w, msgInvalidAreaCode)
		return
	}

	result, err := h.service.ListAreaRules(r.Context(), areaCode)
	if err != nil {
		h.respondError(w, "GET /settings/areas/{code}/pricing-rules", err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// SupersedeAreaRule POST /api/v1/settings/areas/{areaCode}/pricing-rules
func (h *Handler) SupersedeAreaRule(w http.ResponseWriter, r *http.Request) {
	const route = "POST /settings/areas/{code}/pricing-rules"

	areaCode := mux.Vars(r)["areaCode"]
	if areaCode == "" {
		handlers.RespondBadRequest(w, msgInvalidAreaCode)
		return
	}

	var req models.PricingRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SupersedeAreaRule(r.Context(), areaCode, &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Rule created: area_code=%s, rule_id=%d", route, areaCode, result.ID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrConfigurationIntegrity):
		h.logger.Warn("%s - Integrity violation: %v", route, err)
		handlers.RespondUnprocessable(w, handlers.IntegrityMessage(err))

	case errors.Is(err, settings.ErrAreaNotFound):
		h.logger.Warn("%s - Area not found", route)
		handlers.RespondNotFound(w, msgAreaNotFound)

	case errors.Is(err, settings.ErrNotFound):
		h.logger.Warn("%s - Rule not found", route)
		handlers.RespondNotFound(w, msgRuleNotFound)

	case errors.Is(err, settings.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRule)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
