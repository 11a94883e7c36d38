package configbus

import "errors"

var (
	// ErrPublish возвращается при ошибке публикации сообщения об инвалидации
	ErrPublish = errors.New("configbus: failed to publish invalidation")

	// ErrSubscribe возвращается при ошибке подписки на канал
	ErrSubscribe = errors.New("configbus: failed to subscribe")

	// ErrInvalidMessage возвращается при некорректном сообщении в канале
	ErrInvalidMessage = errors.New("configbus: invalid message")
)
