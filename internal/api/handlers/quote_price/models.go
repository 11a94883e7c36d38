package quote_price

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/service/bookings/models"
	quotePrice "github.com/m04kA/SMC-CleaningService/internal/usecase/quote_price"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// QuoteRequest HTTP request model
type QuoteRequest struct {
	ChannelID     int64           `json:"channelId"`
	BookingDate   string          `json:"bookingDate"` // "2025-10-15"
	StartTime     string          `json:"startTime"`   // "10:00"
	DurationHours decimal.Decimal `json:"durationHours"`
	CleanerCount  int             `json:"cleanerCount"`
	WithMaterials bool            `json:"withMaterials"`
	Address       string          `json:"address,omitempty"`
	AreaCode      *string         `json:"areaCode,omitempty"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	models.PriceResponse
	EndTime    string  `json:"endTime"`
	AreaCode   *string `json:"areaCode,omitempty"`
	PeriodCode *string `json:"periodCode,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest() (*quotePrice.Request, error) {
	date, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("bookingDate: %w", err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("startTime: %w", err)
	}

	return &quotePrice.Request{
		ChannelID:     r.ChannelID,
		Date:          date,
		StartTime:     startTime,
		DurationHours: r.DurationHours,
		CleanerCount:  r.CleanerCount,
		WithMaterials: r.WithMaterials,
		Address:       r.Address,
		AreaCode:      r.AreaCode,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quotePrice.Response) *QuoteResponse {
	return &QuoteResponse{
		PriceResponse: models.FromPriceBreakdown(resp.Price),
		EndTime:       resp.EndTime.String(),
		AreaCode:      resp.AreaCode,
		PeriodCode:    resp.PeriodCode,
	}
}
