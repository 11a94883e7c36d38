package gap_rules

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings"
	"github.com/m04kA/SMC-CleaningService/internal/service/settings/models"
	"github.com/m04kA/SMC-CleaningService/pkg/ptr"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidGap         = "некорректный минимальный зазор"
)

// Handler правила минимального зазора между бронированиями
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

// List GET /api/v1/settings/gap-rules
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListGapRules(r.Context())
	if err != nil {
		h.logger.Error("GET /settings/gap-rules - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Upsert PUT /api/v1/settings/gap-rules
// Без channelId задается глобальное правило
func (h *Handler) Upsert(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /settings/gap-rules"

	var req models.GapRuleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertGapRule(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("%s - Invalid input: %v", route, err)
			handlers.RespondBadRequest(w, msgInvalidGap)

		case errors.Is(err, domain.ErrConfigurationIntegrity):
			h.logger.Warn("%s - Integrity violation: %v", route, err)
			handlers.RespondUnprocessable(w, handlers.IntegrityMessage(err))

		default:
			h.logger.Error("%s - Failed: error=%v", route, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("%s - Gap rule saved: channel_id=%d (0 - global), minutes=%d",
		route, ptr.Value(req.ChannelID, 0), result.MinimumGapMinutes)
	handlers.RespondJSON(w, http.StatusOK, result)
}
