package create_booking

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInvalidDuration возвращается при некорректной длительности
	ErrInvalidDuration = errors.New("create_booking: invalid duration")

	// ErrInvalidDate возвращается, когда время начала уже прошло
	ErrInvalidDate = errors.New("create_booking: booking start is in the past")

	// ErrOutsideServicePeriods возвращается, когда время начала не попадает ни в один период дня
	ErrOutsideServicePeriods = errors.New("create_booking: start time is outside service periods")

	// ErrAreaNotFound возвращается, когда указанная особая зона не найдена или неактивна
	ErrAreaNotFound = errors.New("create_booking: special area not found")

	// ErrNoPricingCoverage возвращается, когда на момент начала нет действующего тарифа
	ErrNoPricingCoverage = errors.New("create_booking: no pricing rule covers the booking")

	// ErrSchedulingConflict возвращается, когда клинер занят (с учетом зазора)
	ErrSchedulingConflict = errors.New("create_booking: cleaner is not available")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
