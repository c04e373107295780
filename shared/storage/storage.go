package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"tripplanner/config"
	"tripplanner/infras/otel"
	"tripplanner/shared/constant"
)

const (
	otelStorageKeyAttribute    = "storage.key"
	otelStorageResultAttribute = "storage.result"
	namespaceSeparator         = ":"
)

// Result tells a caller of Load what it got back.
type Result int

const (
	// Absent means nothing is stored under the key.
	Absent Result = iota
	// Found means the stored record was decoded into the value.
	Found
	// Recovered means the stored text could not be decoded and the value was
	// reset to its empty default instead.
	Recovered
)

func (r Result) String() string {
	switch r {
	case Found:
		return "found"
	case Recovered:
		return "recovered"
	default:
		return "absent"
	}
}

// Storage reads and writes whole JSON records in the key-value store.
type Storage interface {
	Load(ctx context.Context, key string, value any) (Result, error)
	Save(ctx context.Context, key string, value any, ttl time.Duration) error
	Remove(ctx context.Context, key string) error
	// Incr counts under key for window, starting from the first hit. Watchers
	// are not told about counters.
	Incr(ctx context.Context, key string, window time.Duration) (int64, error)
	// Watch emits the (namespace-relative) key of every changed record.
	Watch(ctx context.Context) (<-chan string, error)
}

type storageImpl struct {
	driver    Driver
	namespace string
	otel      otel.Otel
}

func New(driver Driver, cfg *config.Config, ot otel.Otel) Storage {
	return &storageImpl{
		driver:    driver,
		namespace: cfg.Store.Namespace,
		otel:      ot,
	}
}

// Load decodes the record stored under key into value, which must be a
// non-nil pointer. Corrupt text is not an error: value is reset and the
// Recovered result is returned.
func (s *storageImpl) Load(ctx context.Context, key string, value any) (res Result, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Load")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStorageKeyAttribute, key)

	raw, found, err := s.driver.Get(ctx, s.fullKey(key))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to read from store")

		return Absent, fmt.Errorf("failed to load %s: %w", key, err)
	}

	if !found || isNull(raw) {
		reset(value)
		scope.SetAttribute(otelStorageResultAttribute, Absent.String())

		return Absent, nil
	}

	if err := json.Unmarshal([]byte(raw), value); err != nil {
		reset(value)
		scope.SetAttribute(otelStorageResultAttribute, Recovered.String())
		log.Warn().Err(err).Str("key", key).Msg("stored record is unreadable, using empty default")

		return Recovered, nil
	}

	scope.SetAttribute(otelStorageResultAttribute, Found.String())

	return Found, nil
}

func (s *storageImpl) Save(ctx context.Context, key string, value any, ttl time.Duration) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Save")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStorageKeyAttribute, key)

	encoded, err := json.Marshal(value)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to encode record")

		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err = s.driver.Set(ctx, s.fullKey(key), string(encoded), ttl); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to write to store")

		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	log.Debug().Str("key", key).Int("bytes", len(encoded)).Msg("record saved")

	return nil
}

func (s *storageImpl) Remove(ctx context.Context, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Remove")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStorageKeyAttribute, key)

	if err = s.driver.Delete(ctx, s.fullKey(key)); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete from store")

		return fmt.Errorf("failed to remove %s: %w", key, err)
	}

	return nil
}

func (s *storageImpl) Incr(ctx context.Context, key string, window time.Duration) (count int64, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelStorageScopeName, constant.OtelStorageScopeName+".Incr")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute(otelStorageKeyAttribute, key)

	count, err = s.driver.Incr(ctx, s.fullKey(key), window)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to increment counter")

		return 0, fmt.Errorf("failed to increment %s: %w", key, err)
	}

	return count, nil
}

func (s *storageImpl) Watch(ctx context.Context) (<-chan string, error) {
	keys, err := s.driver.Watch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to watch store")

		return nil, fmt.Errorf("failed to watch store: %w", err)
	}

	out := make(chan string, watchBuffer)

	go func() {
		defer close(out)

		for full := range keys {
			key, ok := s.relativeKey(full)
			if !ok {
				continue
			}

			select {
			case out <- key:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

func (s *storageImpl) fullKey(key string) string {
	if s.namespace == "" {
		return key
	}

	return s.namespace + namespaceSeparator + key
}

func (s *storageImpl) relativeKey(full string) (string, bool) {
	if s.namespace == "" {
		return full, !strings.Contains(full, namespaceSeparator)
	}

	return strings.CutPrefix(full, s.namespace+namespaceSeparator)
}

func isNull(raw string) bool {
	return bytes.Equal(bytes.TrimSpace([]byte(raw)), []byte("null"))
}

func reset(value any) {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Pointer || rv.IsNil() {
		return
	}

	rv.Elem().Set(reflect.Zero(rv.Elem().Type()))
}
