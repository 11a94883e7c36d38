package classify_time_period

import (
	"context"

	classifyTimePeriod "github.com/m04kA/SMC-CleaningService/internal/usecase/classify_time_period"
)

type ClassifyTimePeriodUseCase interface {
	Execute(ctx context.Context, req *classifyTimePeriod.Request) (*classifyTimePeriod.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
