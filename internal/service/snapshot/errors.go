package snapshot

import "errors"

var (
	// ErrLoadSnapshot возвращается при ошибке загрузки конфигурации
	ErrLoadSnapshot = errors.New("snapshot.service: failed to load rule snapshot")
)
