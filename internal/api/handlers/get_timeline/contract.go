package get_timeline

import (
	"context"

	getTimeline "github.com/m04kA/SMC-CleaningService/internal/usecase/get_timeline"
)

type GetTimelineUseCase interface {
	Execute(ctx context.Context, req *getTimeline.Request) (*getTimeline.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
