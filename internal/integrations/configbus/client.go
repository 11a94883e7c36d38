package configbus

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// Client рассылает и принимает сигналы инвалидации кэша конфигурации через Redis pub/sub
// Каждый экземпляр сервиса после изменения настроек публикует сообщение,
// остальные экземпляры сбрасывают свой снапшот правил
type Client struct {
	rdb     *redis.Client
	channel string
	source  string
	log     Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(rdb *redis.Client, channel string, log Logger) *Client {
	return &Client{
		rdb:     rdb,
		channel: channel,
		source:  uuid.NewString(),
		log:     log,
	}
}

// Source возвращает ID текущего экземпляра
func (c *Client) Source() string {
	return c.source
}

// Publish публикует сообщение об изменении сущности
func (c *Client) Publish(ctx context.Context, entity string) error {
	payload, err := json.Marshal(Message{
		Source:    c.source,
		Entity:    entity,
		ChangedAt: time.Now().UTC(),
	})
	if err != nil {
		return fmt.Errorf("%w: marshal message: %v", ErrPublish, err)
	}

	if err := c.rdb.Publish(ctx, c.channel, payload).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	c.log.Info("ConfigBus: published invalidation entity=%s channel=%s", entity, c.channel)
	return nil
}

// Subscribe слушает канал до отмены ctx и вызывает onInvalidate
// на каждое сообщение от других экземпляров
func (c *Client) Subscribe(ctx context.Context, onInvalidate func(Message)) error {
	sub := c.rdb.Subscribe(ctx, c.channel)
	defer sub.Close()

	// Дожидаемся подтверждения подписки
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSubscribe, c.channel, err)
	}
	c.log.Info("ConfigBus: subscribed to %s", c.channel)

	messages := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			c.log.Info("ConfigBus: subscription to %s stopped", c.channel)
			return nil
		case msg, ok := <-messages:
			if !ok {
				return fmt.Errorf("%w: channel %s closed", ErrSubscribe, c.channel)
			}
			c.handle(msg.Payload, onInvalidate)
		}
	}
}

func (c *Client) handle(payload string, onInvalidate func(Message)) {
	m, err := decode(payload)
	if err != nil {
		c.log.Warn("ConfigBus: skip message: %v", err)
		return
	}
	if m.Source == c.source {
		return
	}

	c.log.Info("ConfigBus: invalidation from %s entity=%s", m.Source, m.Entity)
	onInvalidate(m)
}

func decode(payload string) (Message, error) {
	var m Message
	if err := json.Unmarshal([]byte(payload), &m); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if m.Source == "" {
		return Message{}, fmt.Errorf("%w: empty source", ErrInvalidMessage)
	}
	return m, nil
}
