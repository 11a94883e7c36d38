package classify_time_period

import "errors"

var (
	// ErrInvalidInput возвращается при некорректном времени
	ErrInvalidInput = errors.New("classify_time_period: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("classify_time_period: internal error")
)
