package time_periods

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
	msgInvalidPeriodID    = "некорректный ID периода"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidPeriod      = "некорректный период: нужен code, startTime < endTime в формате HH:MM"
	msgPeriodNotFound     = "период не найден"
)

// Handler каталог периодов дня
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

// List GET /api/v1/settings/time-periods
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListTimePeriods(r.Context())
	if err != nil {
		h.respondError(w, "GET /settings/time-periods", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/settings/time-periods
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /settings/time-periods"

	var req models.TimePeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateTimePeriod(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Period created: id=%d, code=%s", route, result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/settings/time-periods/{periodId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /settings/time-periods/{id}"

	periodID, err := handlers.ParseID(mux.Vars(r)["periodId"])
	if err != nil {
		h.logger.Warn("%s - Invalid period ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPeriodID)
		return
	}

	var req models.TimePeriodRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateTimePeriod(r.Context(), periodID, &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Period updated: id=%d", route, periodID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrConfigurationIntegrity):
		h.logger.Warn("%s - Integrity violation: %v", route, err)
		handlers.RespondUnprocessable(w, handlers.IntegrityMessage(err))

	case errors.Is(err, settings.ErrNotFound):
		h.logger.Warn("%s - Period not found", route)
		handlers.RespondNotFound(w, msgPeriodNotFound)

	case errors.Is(err, settings.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidPeriod)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
