package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrOverlap возвращается, когда вставка нарушает ограничение на пересечение интервалов клинера
	ErrOverlap = errors.New("booking.repository: cleaner interval overlaps an existing booking")

	// ErrStatusChanged возвращается, когда статус бронирования изменился параллельно
	ErrStatusChanged = errors.New("booking.repository: booking status changed concurrently")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")

	// ErrLock возвращается при ошибке взятия advisory lock
	ErrLock = errors.New("booking.repository: failed to acquire cleaner lock")
)
