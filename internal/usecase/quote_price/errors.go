package quote_price

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("quote_price: invalid input data")

	// ErrInvalidDuration возвращается при некорректной длительности
	ErrInvalidDuration = errors.New("quote_price: invalid duration")

	// ErrOutsideServicePeriods возвращается, когда время начала не попадает ни в один период дня
	ErrOutsideServicePeriods = errors.New("quote_price: start time is outside service periods")

	// ErrAreaNotFound возвращается, когда указанная особая зона не найдена или неактивна
	ErrAreaNotFound = errors.New("quote_price: special area not found")

	// ErrNoPricingCoverage возвращается, когда на момент начала нет действующего тарифа
	ErrNoPricingCoverage = errors.New("quote_price: no pricing rule covers the booking")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("quote_price: internal error")
)
