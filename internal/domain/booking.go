package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// IsValid returns true for known statuses
func (s BookingStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// PriceBreakdown is the result of price resolution. Amounts are rounded to the
// currency's minor unit; Scope tells whether a channel or an area rule applied.
type PriceBreakdown struct {
	RuleID        int64
	Scope         PricingScope
	Currency      string
	HourlyRate    decimal.Decimal
	Hours         decimal.Decimal
	CleanerCount  int
	Base          decimal.Decimal
	Materials     decimal.Decimal
	Tax           decimal.Decimal
	Final         decimal.Decimal
	WithMaterials bool
}

// Booking represents a cleaning booking assigned to a single cleaner
type Booking struct {
	ID              int64
	CleanerID       int64
	ChannelID       int64
	ClientID        int64
	BookingDate     time.Time
	StartTime       types.TimeString
	EndTime         types.TimeString
	DurationMinutes int
	CleanerCount    int
	WithMaterials   bool
	Address         string
	AreaCode        *string
	PeriodCode      *string
	Status          BookingStatus

	// Цена фиксируется при создании и больше не меняется
	Price PriceBreakdown

	Notes              *string
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// DurationHours returns the booked duration in hours
func (b *Booking) DurationHours() decimal.Decimal {
	return decimal.NewFromInt(int64(b.DurationMinutes)).Div(decimal.NewFromInt(60))
}

// IsActive returns true if the booking takes part in conflict checks and timelines
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanTransitionTo reports whether the status workflow allows moving to next.
// Cancellation has its own path and is not a transition here.
func (b *Booking) CanTransitionTo(next BookingStatus) bool {
	switch b.Status {
	case StatusPending:
		return next == StatusConfirmed
	case StatusConfirmed:
		return next == StatusCompleted
	}
	return false
}

// BookingsFilter фильтр для получения списка бронирований
type BookingsFilter struct {
	StartDate        *time.Time     // Начало периода (включительно)
	EndDate          *time.Time     // Конец периода (включительно)
	CleanerIDs       []int64        // Фильтр по клинерам (пусто = все)
	ChannelID        *int64         // Фильтр по каналу
	Status           *BookingStatus // Фильтр по статусу
	IncludeCancelled bool           // Включать ли отмененные бронирования
	Limit            uint64
	Offset           uint64
}
