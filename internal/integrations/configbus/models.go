package configbus

import "time"

// Message сообщение об изменении конфигурации
type Message struct {
	Source    string    `json:"source"`     // ID экземпляра сервиса, изменившего конфигурацию
	Entity    string    `json:"entity"`     // Тип измененной сущности (channel_pricing_rule, special_area, ...)
	ChangedAt time.Time `json:"changed_at"` // Время изменения
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
