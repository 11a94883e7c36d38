package classify_time_period

import (
	"github.com/m04kA/SMC-CleaningService/internal/domain"
	"github.com/m04kA/SMC-CleaningService/pkg/types"
)

// Request модель запроса
type Request struct {
	Time types.TimeString
}

// Response модель ответа
// Period == nil, если время не попадает ни в один период
type Response struct {
	Time   types.TimeString
	Period *domain.TimePeriod
}
