package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	createBooking "github.com/m04kA/SMC-CleaningService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgInvalidTime           = "некорректный формат времени начала, ожидается HH:MM"
	msgInvalidInput          = "некорректные данные бронирования"
	msgInvalidDuration       = "некорректная длительность: от 0.25 до 12 часов, кратно минуте, окончание не позже 24:00"
	msgStartInPast           = "время начала бронирования уже прошло"
	msgOutsideServicePeriods = "время начала вне периодов обслуживания"
	msgAreaNotFound          = "особая зона не найдена"
	msgNoPricingCoverage     = "нет действующего тарифа на выбранное время"
	msgCleanerNotAvailable   = "клинер занят в выбранное время"
)

var (
	errInvalidDate = errors.New("invalid booking date")
	errInvalidTime = errors.New("invalid start time")
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSchedulingConflict):
			h.logger.Warn("POST /bookings - Cleaner not available: cleaner_id=%d, error=%v", req.CleanerID, err)
			handlers.RespondConflict(w, msgCleanerNotAvailable)

		case errors.Is(err, createBooking.ErrAreaNotFound):
			h.logger.Warn("POST /bookings - Area not found: area_code=%v", req.AreaCode)
			handlers.RespondNotFound(w, msgAreaNotFound)

		case errors.Is(err, createBooking.ErrNoPricingCoverage):
			h.logger.Warn("POST /bookings - No pricing coverage: channel_id=%d", req.ChannelID)
			handlers.RespondUnprocessable(w, msgNoPricingCoverage)

		case errors.Is(err, createBooking.ErrOutsideServicePeriods):
			h.logger.Warn("POST /bookings - Outside service periods: start_time=%s", req.StartTime)
			handlers.RespondUnprocessable(w, msgOutsideServicePeriods)

		case errors.Is(err, createBooking.ErrInvalidDuration):
			h.logger.Warn("POST /bookings - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Start in the past: date=%s, time=%s", req.BookingDate, req.StartTime)
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: cleaner_id=%d, channel_id=%d, error=%v",
				req.CleanerID, req.ChannelID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, cleaner_id=%d, final_price=%s",
		result.Booking.ID, result.Booking.CleanerID, result.Booking.Price.Final)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
