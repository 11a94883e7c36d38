package get_timeline

import (
	"math"
	"net/url"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	getTimeline "github.com/m04kA/SMC-CleaningService/internal/usecase/get_timeline"
)

// TimelineResponse HTTP response model
type TimelineResponse struct {
	Date         string `json:"date"`
	VisibleStart string `json:"visibleStart"`
	VisibleEnd   string `json:"visibleEnd"`
	Lanes        []Lane `json:"lanes"`
}

// Lane строка одного клинера
type Lane struct {
	CleanerID int64       `json:"cleanerId"`
	Bookings  []Placement `json:"bookings"`
}

// Placement положение бронирования на таймлайне (в процентах от окна)
type Placement struct {
	BookingID     int64   `json:"bookingId"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	OffsetPercent float64 `json:"offsetPercent"`
	WidthPercent  float64 `json:"widthPercent"`
	Clipped       bool    `json:"clipped"`
}

// ToUseCaseRequest создает запрос use case из query параметров
// Обязательный date; опционально cleanerIds, from, to
func ToUseCaseRequest(q url.Values) (*getTimeline.Request, error) {
	date, err := handlers.ParseDate(q.Get("date"))
	if err != nil {
		return nil, err
	}

	req := &getTimeline.Request{Date: date}
	if req.CleanerIDs, err = handlers.ParseIDList(q.Get("cleanerIds")); err != nil {
		return nil, err
	}
	if req.From, err = handlers.ParseOptionalTime(q.Get("from")); err != nil {
		return nil, err
	}
	if req.To, err = handlers.ParseOptionalTime(q.Get("to")); err != nil {
		return nil, err
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getTimeline.Response) *TimelineResponse {
	out := &TimelineResponse{
		Date:         resp.Date.Format(domain.DateFormat),
		VisibleStart: resp.Window.Start.String(),
		VisibleEnd:   resp.Window.End.String(),
		Lanes:        make([]Lane, 0, len(resp.Lanes)),
	}

	for _, lane := range resp.Lanes {
		l := Lane{CleanerID: lane.CleanerID, Bookings: make([]Placement, 0, len(lane.Placements))}
		for _, p := range lane.Placements {
			l.Bookings = append(l.Bookings, Placement{
				BookingID:     p.BookingID,
				StartTime:     p.StartTime.String(),
				EndTime:       p.EndTime.String(),
				OffsetPercent: round2(p.OffsetPercent()),
				WidthPercent:  round2(p.WidthPercent()),
				Clipped:       p.Clipped,
			})
		}
		out.Lanes = append(out.Lanes, l)
	}

	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
