package classify_time_period

import (
	"net/http"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	classifyTimePeriod "github.com/m04kA/SMC-CleaningService/internal/usecase/classify_time_period"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

const (
	msgInvalidTime = "некорректное время, ожидается HH:MM"
)

type Handler struct {
	useCase ClassifyTimePeriodUseCase
	logger  Logger
}

func NewHandler(useCase ClassifyTimePeriodUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/time-periods/classify?time=HH:MM
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	t, err := types.NewTimeStringFromString(r.URL.Query().Get("time"))
	if err != nil {
		h.logger.Warn("GET /time-periods/classify - Invalid time: %v", err)
		handlers.RespondBadRequest(w, msgInvalidTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &classifyTimePeriod.Request{Time: t})
	if err != nil {
		h.logger.Error("GET /time-periods/classify - Failed to classify: time=%s, error=%v", t, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
