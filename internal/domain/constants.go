package domain

// Default configuration values
const (
	DefaultGapMinutes    = 30
	DefaultTimelineStart = "08:00"
	DefaultTimelineEnd   = "20:00"
	DefaultCurrency      = "QAR"
)

// Business validation constants
const (
	MinDurationMinutes          = 15
	MaxDurationMinutes          = 720 // 12 hours
	MinCleanerCount             = 1
	MaxCleanerCount             = 20
	MaxGapMinutes               = 480
	MaxNotesLength              = 500
	MaxAddressLength            = 500
	MaxCancellationReasonLength = 500
	MaxKeywordLength            = 100
	MaxCodeLength               = 50
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// CurrencyMinorUnits количество знаков после запятой для валют
// Неизвестные валюты округляются до 2 знаков
var CurrencyMinorUnits = map[string]int32{
	"QAR": 2,
	"AED": 2,
	"SAR": 2,
	"USD": 2,
	"EUR": 2,
	"KWD": 3,
	"BHD": 3,
	"OMR": 3,
	"JPY": 0,
}

// MinorUnits returns the rounding precision for a currency
func MinorUnits(currency string) int32 {
	if units, ok := CurrencyMinorUnits[currency]; ok {
		return units
	}
	return 2
}

// ActiveStatuses статусы бронирований, участвующих в проверке конфликтов
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
