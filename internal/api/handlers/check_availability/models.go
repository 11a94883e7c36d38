package check_availability

import (
	"net/url"
	"strconv"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	checkAvailability "github.com/m04kA/SMC-CleaningService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	CleanerID  int64               `json:"cleanerId"`
	Date       string              `json:"date"`
	StartTime  string              `json:"startTime"`
	EndTime    string              `json:"endTime"`
	Available  bool                `json:"available"`
	GapMinutes int                 `json:"gapMinutes"`
	Conflict   *ConflictingBooking `json:"conflict,omitempty"`
}

// ConflictingBooking бронирование, мешающее запрошенному интервалу
type ConflictingBooking struct {
	BookingID int64  `json:"bookingId"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// ToUseCaseRequest создает запрос use case из query параметров
// Обязательные: date, startTime, endTime, channelId; опционально excludeBookingId
func ToUseCaseRequest(cleanerID int64, q url.Values) (*checkAvailability.Request, error) {
	date, err := handlers.ParseDate(q.Get("date"))
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(q.Get("startTime"))
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(q.Get("endTime"))
	if err != nil {
		return nil, err
	}

	channelID, err := handlers.ParseID(q.Get("channelId"))
	if err != nil {
		return nil, err
	}

	req := &checkAvailability.Request{
		CleanerID: cleanerID,
		ChannelID: channelID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
	}

	if v := q.Get("excludeBookingId"); v != "" {
		if req.ExcludeBookingID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, err
		}
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(req *checkAvailability.Request, resp *checkAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		CleanerID:  req.CleanerID,
		Date:       req.Date.Format(domain.DateFormat),
		StartTime:  req.StartTime.String(),
		EndTime:    req.EndTime.String(),
		Available:  resp.Available,
		GapMinutes: resp.GapMinutes,
	}
	if resp.Conflict != nil {
		out.Conflict = &ConflictingBooking{
			BookingID: resp.Conflict.BookingID,
			StartTime: resp.Conflict.StartTime.String(),
			EndTime:   resp.Conflict.EndTime.String(),
		}
	}
	return out
}
