package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	clientName     = "tourist-safety"
	connectRetries = 5
)

// NewRedisClient создает клиент Redis и ждет, пока сервер ответит на PING.
// Клиент используется для кэша профилей, очереди вебхуков и GEO-индекса позиций.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		ClientName:   clientName,
		PoolSize:     20,
		DialTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	var err error
	for attempt := 1; attempt <= connectRetries; attempt++ {
		if err = rdb.Ping(ctx).Err(); err == nil {
			return rdb, nil
		}
		if attempt == connectRetries {
			break
		}
		select {
		case <-ctx.Done():
			_ = rdb.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", ctx.Err())
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}

	_ = rdb.Close()
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", connectRetries, err)
}
