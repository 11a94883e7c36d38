package create_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	CleanerID     int64            // ID клинера
	ChannelID     int64            // ID канала продаж
	ClientID      int64            // ID клиента
	Date          time.Time        // Дата бронирования (без времени)
	StartTime     types.TimeString // Время начала (например, "10:00")
	DurationHours decimal.Decimal  // Длительность в часах, кратная минуте
	CleanerCount  int              // Количество клинеров (влияет только на цену)
	WithMaterials bool             // С материалами клинера
	Address       string           // Адрес клиента
	AreaCode      *string          // Особая зона (если не указана, ищется по адресу)
	Notes         *string          // Дополнительные заметки (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Booking    domain.Booking // Сохраненное бронирование
	GapMinutes int            // Зазор, с которым проверялась доступность
}
