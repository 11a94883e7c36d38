package check_availability

import (
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// Request модель запроса на проверку доступности клинера
type Request struct {
	CleanerID        int64
	ChannelID        int64 // Определяет минимальный зазор
	Date             time.Time
	StartTime        types.TimeString
	EndTime          types.TimeString
	ExcludeBookingID int64 // Не учитывать это бронирование (0 - учитывать все)
}

// Response модель ответа
type Response struct {
	Available  bool
	GapMinutes int                // Зазор, с которым проверялась доступность
	Conflict   *domain.Assignment // Первое мешающее бронирование, nil если свободно
}
