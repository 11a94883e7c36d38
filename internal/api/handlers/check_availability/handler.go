package check_availability

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-CleaningService/internal/usecase/check_availability"
)

const (
	msgInvalidCleanerID = "некорректный ID клинера"
	msgInvalidParams    = "некорректные параметры запроса: нужны date, startTime, endTime, channelId"
	msgInvalidInterval  = "время начала должно быть раньше времени окончания"
)

type Handler struct {
	useCase CheckAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase CheckAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/cleaners/{cleanerId}/availability
// Query params: date, startTime, endTime, channelId, excludeBookingId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cleanerID, err := handlers.ParseID(mux.Vars(r)["cleanerId"])
	if err != nil {
		h.logger.Warn("GET /cleaners/{id}/availability - Invalid cleaner ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCleanerID)
		return
	}

	useCaseReq, err := ToUseCaseRequest(cleanerID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /cleaners/{id}/availability - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, checkAvailability.ErrInvalidInput):
			h.logger.Warn("GET /cleaners/{id}/availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInterval)

		default:
			h.logger.Error("GET /cleaners/{id}/availability - Failed to check availability: cleaner_id=%d, error=%v",
				cleanerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /cleaners/{id}/availability - cleaner_id=%d, available=%t", cleanerID, result.Available)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(useCaseReq, result))
}
