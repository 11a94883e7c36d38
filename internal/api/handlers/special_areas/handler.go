package special_areas

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
	msgInvalidAreaID      = "некорректный ID особой зоны"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidArea        = "некорректные данные особой зоны: нужны code и хотя бы одно ключевое слово"
	msgAreaNotFound       = "особая зона не найдена"
)

// Handler справочник особых зон
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

// List GET /api/v1/settings/areas
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSpecialAreas(r.Context())
	if err != nil {
		h.respondError(w, "GET /settings/areas", err)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// Create POST /api/v1/settings/areas
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const route = "POST /settings/areas"

	var req models.SpecialAreaRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSpecialArea(r.Context(), &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Area created: id=%d, code=%s", route, result.ID, result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/settings/areas/{areaId}
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const route = "PUT /settings/areas/{id}"

	areaID, err := handlers.ParseID(mux.Vars(r)["areaId"])
	if err != nil {
		h.logger.Warn("%s - Invalid area ID: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidAreaID)
		return
	}

	var req models.SpecialAreaRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSpecialArea(r.Context(), areaID, &req)
	if err != nil {
		h.respondError(w, route, err)
		return
	}

	h.logger.Info("%s - Area updated: id=%d", route, areaID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

func (h *Handler) respondError(w http.ResponseWriter, route string, err error) {
	switch {
	case errors.Is(err, domain.ErrConfigurationIntegrity):
		h.logger.Warn("%s - Integrity violation: %v", route, err)
		handlers.RespondUnprocessable(w, handlers.IntegrityMessage(err))

	case errors.Is(err, settings.ErrNotFound), errors.Is(err, settings.ErrAreaNotFound):
		h.logger.Warn("%s - Area not found", route)
		handlers.RespondNotFound(w, msgAreaNotFound)

	case errors.Is(err, settings.ErrInvalidInput):
		h.logger.Warn("%s - Invalid input: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidArea)

	default:
		h.logger.Error("%s - Failed: error=%v", route, err)
		handlers.RespondInternalError(w)
	}
}
