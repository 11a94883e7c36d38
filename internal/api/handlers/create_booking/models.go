package create_booking

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/internal/api/handlers"
	"github.com/m04kA/SMC-CleaningService/internal/service/bookings/models"
	createBooking "github.com/m04kA/SMC-CleaningService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	CleanerID     int64           `json:"cleanerId"`
	ChannelID     int64           `json:"channelId"`
	ClientID      int64           `json:"clientId"`
	BookingDate   string          `json:"bookingDate"` // "2025-10-15"
	StartTime     string          `json:"startTime"`   // "10:00"
	DurationHours decimal.Decimal `json:"durationHours"`
	CleanerCount  int             `json:"cleanerCount"`
	WithMaterials bool            `json:"withMaterials"`
	Address       string          `json:"address"`
	AreaCode      *string         `json:"areaCode,omitempty"`
	Notes         *string         `json:"notes,omitempty"`
}

// BookingCreatedResponse HTTP response model
type BookingCreatedResponse struct {
	*models.BookingResponse
	GapMinutes int `json:"gapMinutes"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	bookingDate, err := handlers.ParseDate(r.BookingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidDate, err)
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errInvalidTime, err)
	}

	return &createBooking.Request{
		CleanerID:     r.CleanerID,
		ChannelID:     r.ChannelID,
		ClientID:      r.ClientID,
		Date:          bookingDate,
		StartTime:     startTime,
		DurationHours: r.DurationHours,
		CleanerCount:  r.CleanerCount,
		WithMaterials: r.WithMaterials,
		Address:       r.Address,
		AreaCode:      r.AreaCode,
		Notes:         r.Notes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingCreatedResponse {
	return &BookingCreatedResponse{
		BookingResponse: models.FromDomainBooking(&resp.Booking),
		GapMinutes:      resp.GapMinutes,
	}
}
