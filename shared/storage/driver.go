package storage

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"tripplanner/config"
	"tripplanner/infras/redis"
)

// watchBuffer bounds how many change notifications may queue up for a slow
// watcher before further notifications are dropped.
const watchBuffer = 16

// Driver is a raw string key-value backend.
type Driver interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// Incr adds one to the counter at key and returns the new value. A new
	// counter expires after ttl. Counters are not announced to watchers.
	Incr(ctx context.Context, key string, ttl time.Duration) (int64, error)
	// Watch emits the full key of every entry written or deleted until ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}

// NewDriver picks the backend named by STORE_DRIVER.
func NewDriver(cfg *config.Config) Driver {
	switch cfg.Store.Driver {
	case config.StoreDriverRedis:
		return NewRedisDriver(redis.New(cfg), cfg.Store.Channel)
	case config.StoreDriverMemory, "":
		log.Info().Msg("Using in-memory store, data is lost on restart")

		return NewMemoryDriver()
	default:
		log.Warn().Str("driver", cfg.Store.Driver).Msg("Unknown store driver, falling back to in-memory store")

		return NewMemoryDriver()
	}
}
