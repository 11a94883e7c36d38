package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	StartDate        *time.Time // Начало периода (опционально)
	EndDate          *time.Time // Конец периода (опционально)
	CleanerIDs       []int64    // Фильтр по клинерам (опционально)
	ChannelID        *int64     // Фильтр по каналу (опционально)
	Status           *string    // Фильтр по статусу (опционально)
	IncludeCancelled bool       // Включить отмененные бронирования
	Limit            uint64
	Offset           uint64
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		CleanerIDs:       r.CleanerIDs,
		ChannelID:        r.ChannelID,
		IncludeCancelled: r.IncludeCancelled,
		Limit:            r.Limit,
		Offset:           r.Offset,
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// PriceResponse зафиксированная при создании стоимость
type PriceResponse struct {
	RuleID        int64           `json:"pricingRuleId"`
	Scope         string          `json:"pricingScope"`
	Currency      string          `json:"currency"`
	HourlyRate    decimal.Decimal `json:"hourlyRatePerCleaner"`
	Hours         decimal.Decimal `json:"hours"`
	CleanerCount  int             `json:"cleanerCount"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	Materials     decimal.Decimal `json:"materialsPrice"`
	TaxAmount     decimal.Decimal `json:"taxAmount"`
	FinalPrice    decimal.Decimal `json:"finalPrice"`
	WithMaterials bool            `json:"withMaterials"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64           `json:"id"`
	CleanerID     int64           `json:"cleanerId"`
	ChannelID     int64           `json:"channelId"`
	ClientID      int64           `json:"clientId"`
	BookingDate   string          `json:"bookingDate"` // "2025-10-15"
	StartTime     string          `json:"startTime"`   // "10:00"
	EndTime       string          `json:"endTime"`     // "12:30"
	DurationHours decimal.Decimal `json:"durationHours"`
	CleanerCount  int             `json:"cleanerCount"`
	WithMaterials bool            `json:"withMaterials"`
	Address       string          `json:"address"`
	AreaCode      *string         `json:"areaCode,omitempty"`
	PeriodCode    *string         `json:"periodCode,omitempty"`
	Status        string          `json:"status"`
	Price         PriceResponse   `json:"price"`
	Notes         *string         `json:"notes,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromPriceBreakdown конвертирует расчет стоимости в DTO
func FromPriceBreakdown(p domain.PriceBreakdown) PriceResponse {
	return PriceResponse{
		RuleID:        p.RuleID,
		Scope:         string(p.Scope),
		Currency:      p.Currency,
		HourlyRate:    p.HourlyRate,
		Hours:         p.Hours,
		CleanerCount:  p.CleanerCount,
		BasePrice:     p.Base,
		Materials:     p.Materials,
		TaxAmount:     p.Tax,
		FinalPrice:    p.Final,
		WithMaterials: p.WithMaterials,
	}
}

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                 b.ID,
		CleanerID:          b.CleanerID,
		ChannelID:          b.ChannelID,
		ClientID:           b.ClientID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          b.StartTime.String(),
		EndTime:            b.EndTime.String(),
		DurationHours:      b.DurationHours(),
		CleanerCount:       b.CleanerCount,
		WithMaterials:      b.WithMaterials,
		Address:            b.Address,
		AreaCode:           b.AreaCode,
		PeriodCode:         b.PeriodCode,
		Status:             string(b.Status),
		Price:              FromPriceBreakdown(b.Price),
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for i := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(&bookings[i]))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
