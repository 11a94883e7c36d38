package get_timeline

import (
	"time"

	"github.com/m04kA/SMC-CleaningService/internal/engine/timeline"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// Request модель запроса таймлайна на день
type Request struct {
	Date       time.Time
	CleanerIDs []int64           // Пусто - все клинеры с бронированиями на дату
	From       *types.TimeString // Начало видимого окна (по умолчанию из конфига)
	To         *types.TimeString // Конец видимого окна (по умолчанию из конфига)
}

// Lane строка таймлайна одного клинера
type Lane struct {
	CleanerID  int64
	Placements []timeline.Placement
}

// Response модель ответа
type Response struct {
	Date   time.Time
	Window timeline.Window
	Lanes  []Lane
}
