package quote_price

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// Request модель запроса на расчет стоимости
type Request struct {
	ChannelID     int64
	Date          time.Time
	StartTime     types.TimeString
	DurationHours decimal.Decimal
	CleanerCount  int
	WithMaterials bool
	Address       string  // Используется для поиска особой зоны, если AreaCode не указан
	AreaCode      *string // Особая зона (опционально)
}

// Response модель ответа с расчетом стоимости
type Response struct {
	Price      domain.PriceBreakdown
	EndTime    types.TimeString
	AreaCode   *string // Особая зона, по которой считалась цена или найденная по адресу
	PeriodCode *string // nil, если время начала вне каталога периодов
}
