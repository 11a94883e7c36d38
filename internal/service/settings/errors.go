package settings

import "errors"

var (
	// ErrNotFound возвращается, когда запись конфигурации не найдена
	ErrNotFound = errors.New("settings.service: not found")

	// ErrAreaNotFound возвращается, когда особая зона не найдена
	ErrAreaNotFound = errors.New("settings.service: special area not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("settings.service: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings.service: internal error")
)
