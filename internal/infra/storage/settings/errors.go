package settings

import "errors"

var (
	// ErrNotFound возвращается, когда запись конфигурации не найдена
	ErrNotFound = errors.New("settings.repository: record not found")

	// ErrOverlap возвращается при нарушении EXCLUDE ограничения (пересечение интервалов)
	ErrOverlap = errors.New("settings.repository: interval overlaps an existing record")

	// ErrDuplicate возвращается при нарушении уникальности (код, канал)
	ErrDuplicate = errors.New("settings.repository: duplicate record")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("settings.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("settings.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("settings.repository: failed to scan row")
)
