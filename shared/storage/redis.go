package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type redisDriver struct {
	client  *goRedis.Client
	channel string
}

// NewRedisDriver stores entries as plain Redis strings and announces every
// write on channel so that other processes sharing the namespace can react.
func NewRedisDriver(client *goRedis.Client, channel string) Driver {
	return &redisDriver{
		client:  client,
		channel: channel,
	}
}

func (d *redisDriver) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := d.client.Get(ctx, key).Result()
	if errors.Is(err, goRedis.Nil) {
		return "", false, nil
	}

	if err != nil {
		return "", false, fmt.Errorf("failed to get %s from redis: %w", key, err)
	}

	return value, true, nil
}

func (d *redisDriver) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := d.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in redis: %w", key, err)
	}

	d.publish(ctx, key)

	return nil
}

func (d *redisDriver) Delete(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete %s from redis: %w", key, err)
	}

	d.publish(ctx, key)

	return nil
}

func (d *redisDriver) Incr(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := d.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to increment %s in redis: %w", key, err)
	}

	if count == 1 && ttl > 0 {
		if err := d.client.Expire(ctx, key, ttl).Err(); err != nil {
			return count, fmt.Errorf("failed to set expiry on %s in redis: %w", key, err)
		}
	}

	return count, nil
}

func (d *redisDriver) Watch(ctx context.Context) (<-chan string, error) {
	pubsub := d.client.Subscribe(ctx, d.channel)

	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()

		return nil, fmt.Errorf("failed to subscribe to %s: %w", d.channel, err)
	}

	out := make(chan string, watchBuffer)

	go func() {
		defer close(out)
		defer pubsub.Close()

		messages := pubsub.Channel()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-messages:
				if !ok {
					return
				}

				select {
				case out <- msg.Payload:
				default:
					log.Warn().Str("key", msg.Payload).Msg("change notification dropped, watcher is behind")
				}
			}
		}
	}()

	return out, nil
}

// publish is best effort: a lost notification only delays a refresh.
func (d *redisDriver) publish(ctx context.Context, key string) {
	if err := d.client.Publish(ctx, d.channel, key).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Str("channel", d.channel).Msg("failed to publish change notification")
	}
}
