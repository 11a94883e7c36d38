package get_timeline

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	getTimeline "github.com/m04kA/SMC-CleaningService/internal/usecase/get_timeline"
)

const (
	msgInvalidParams = "некорректные параметры запроса: нужен date (YYYY-MM-DD), from/to в формате HH:MM"
	msgInvalidWindow = "некорректное видимое окно: from должно быть раньше to"
)

type Handler struct {
	useCase GetTimelineUseCase
	logger  Logger
}

func NewHandler(useCase GetTimelineUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/timeline
// Query params: date, cleanerIds, from, to (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	useCaseReq, err := ToUseCaseRequest(r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /timeline - Invalid parameters: %v", err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getTimeline.ErrInvalidInput):
			h.logger.Warn("GET /timeline - Invalid window: %v", err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		default:
			h.logger.Error("GET /timeline - Failed to build timeline: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /timeline - Timeline built: date=%s, lanes=%d", r.URL.Query().Get("date"), len(result.Lanes))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
