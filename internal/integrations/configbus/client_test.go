package configbus

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-CleaningService/pkg/logger"
)

func newTestClient() *Client {
	// Клиент не подключается до первой команды
	rdb := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	return NewClient(rdb, "test:invalidate", logger.NewNop())
}

func TestHandle_InvokesCallbackForOtherInstances(t *testing.T) {
	c := newTestClient()

	var got []Message
	c.handle(`{"source":"other","entity":"special_area","changed_at":"2025-03-10T09:00:00Z"}`, func(m Message) {
		got = append(got, m)
	})

	if assert.Len(t, got, 1) {
		assert.Equal(t, "special_area", got[0].Entity)
		assert.Equal(t, time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), got[0].ChangedAt)
	}
}

func TestHandle_SkipsOwnAndMalformedMessages(t *testing.T) {
	c := newTestClient()

	calls := 0
	onInvalidate := func(Message) { calls++ }

	c.handle(`{"source":"`+c.Source()+`","entity":"gap_rule"}`, onInvalidate)
	c.handle(`not json`, onInvalidate)
	c.handle(`{"entity":"gap_rule"}`, onInvalidate)

	assert.Zero(t, calls)
}

func TestPublish_FailsWithoutRedis(t *testing.T) {
	c := newTestClient()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.ErrorIs(t, c.Publish(ctx, "gap_rule"), ErrPublish)
}

func TestDecode(t *testing.T) {
	_, err := decode(`{"source":""}`)
	assert.ErrorIs(t, err, ErrInvalidMessage)

	m, err := decode(`{"source":"a","entity":"time_period"}`)
	assert.NoError(t, err)
	assert.Equal(t, "time_period", m.Entity)
}
