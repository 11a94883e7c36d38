package quote_price

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	quotePrice "github.com/m04kA/SMC-CleaningService/internal/usecase/quote_price"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDateTime       = "некорректная дата (YYYY-MM-DD) или время (HH:MM)"
	msgInvalidInput          = "некорректные параметры расчета"
	msgInvalidDuration       = "некорректная длительность: от 0.25 до 12 часов, кратно минуте, окончание не позже 24:00"
	msgOutsideServicePeriods = "время начала вне периодов обслуживания"
	msgAreaNotFound          = "особая зона не найдена"
	msgNoPricingCoverage     = "нет действующего тарифа на выбранное время"
)

type Handler struct {
	useCase QuotePriceUseCase
	logger  Logger
}

func NewHandler(useCase QuotePriceUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/pricing/quote
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /pricing/quote - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /pricing/quote - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quotePrice.ErrAreaNotFound):
			h.logger.Warn("POST /pricing/quote - Area not found: area_code=%v", req.AreaCode)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, quotePrice.ErrNoPricingCoverage):
			h.logger.Warn("POST /pricing/quote - No pricing coverage: channel_id=%d", req.ChannelID)
			handlers.RespondUnprocessable(w, msgNoPricingCoverage)

		case errors.Is(err, quotePrice.ErrOutsideServicePeriods):
			h.logger.Warn("POST /pricing/quote - Outside service periods: start_time=%s", req.StartTime)
			handlers.RespondUnprocessable(w, msgOutsideServicePeriods)

		case errors.Is(err, quotePrice.ErrInvalidDuration):
			h.logger.Warn("POST /pricing/quote - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, quotePrice.ErrInvalidInput):
			h.logger.Warn("POST /pricing/quote - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /pricing/quote - Failed to quote price: channel_id=%d, error=%v", req.ChannelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /pricing/quote - Price quoted: channel_id=%d, final_price=%s %s",
		req.ChannelID, result.Price.Final, result.Price.Currency)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
